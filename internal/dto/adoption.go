package dto

// AdoptionCount is the distinct count of users who ever authenticated.
type AdoptionCount struct {
	Count int `json:"count"`
}

// DepartmentAdoption reports assistant adoption for one department.
type DepartmentAdoption struct {
	Department          string  `json:"department"`
	ActiveUsers         int     `json:"active_users"`
	TotalEmployees      int     `json:"total_employees"`
	AdoptionRatePercent float64 `json:"adoption_rate_percent"`
}

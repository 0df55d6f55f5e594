package models

import "encoding/json"

// Column aliases seen across roster table shapes.
var (
	employeeNameKeys       = []string{"Employee Name", "full_name", "user_name"}
	employeeDepartmentKeys = []string{"Department", "department"}
)

// EmployeeRecord is one roster row. The reference table has shipped with
// several column namings, so decoding tries each alias in order.
type EmployeeRecord struct {
	Name       string
	Department string
}

// UnmarshalJSON resolves the name and department through the alias lists.
func (e *EmployeeRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Name = firstString(raw, employeeNameKeys)
	e.Department = firstString(raw, employeeDepartmentKeys)
	return nil
}

func firstString(raw map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if value, ok := raw[key]; ok {
			if s, ok := value.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

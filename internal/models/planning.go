package models

import "encoding/json"

// Ref is an ERP many2one reference, serialised upstream as an
// [id, display_name] pair or as false when unset.
type Ref struct {
	ID    int64
	Name  string
	Valid bool
}

// UnmarshalJSON accepts the pair form, false, and null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = Ref{}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		// false / null / anything non-array means the relation is unset.
		return nil
	}
	if len(pair) == 0 {
		return nil
	}

	var id int64
	if err := json.Unmarshal(pair[0], &id); err != nil {
		return nil
	}
	r.ID = id
	r.Valid = id != 0
	if len(pair) > 1 {
		_ = json.Unmarshal(pair[1], &r.Name)
	}
	return nil
}

// PlanningSlot is an ERP-scheduled span of planned work. Only slots with a
// valid subtask are planning-relevant.
type PlanningSlot struct {
	ID       int64  `json:"id"`
	Start    string `json:"start_datetime"`
	End      string `json:"end_datetime"`
	Employee Ref    `json:"employee_id"`
	Subtask  Ref    `json:"x_studio_sub_task_1"`
}

// TimesheetLine is one logged-work fact from the ERP.
type TimesheetLine struct {
	Date     string `json:"date"`
	Employee Ref    `json:"employee_id"`
	Task     Ref    `json:"task_id"`
}

// Amount tolerates the ERP habit of encoding absent numerics as false.
type Amount float64

// UnmarshalJSON accepts a number, false, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = 0
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}
	*a = Amount(value)
	return nil
}

// HoursGroupRange is the month window attached to a read_group row.
type HoursGroupRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// HoursGroup is one read_group row of timesheet hours grouped by month.
type HoursGroup struct {
	MonthLabel string                     `json:"date:month"`
	UnitAmount Amount                     `json:"unit_amount"`
	Range      map[string]HoursGroupRange `json:"__range"`
}

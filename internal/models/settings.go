package models

// SatisfactionDocument is the flat satisfaction settings file.
type SatisfactionDocument struct {
	OverallSatisfaction string `json:"overall_satisfaction"`
}

// EasePoint is a single period/value pair in the ease comparison series.
type EasePoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// EaseComparisonDocument holds the Odoo-vs-Nasma ease-of-use series.
type EaseComparisonDocument struct {
	Odoo  []EasePoint `json:"odoo"`
	Nasma []EasePoint `json:"nasma"`
}

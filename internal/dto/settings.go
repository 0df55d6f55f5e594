package dto

import "github.com/nasma-hq/nasma-insights-api/internal/models"

// SaveSatisfactionRequest updates the overall satisfaction figure.
type SaveSatisfactionRequest struct {
	Value string `json:"value" binding:"required"`
}

// SaveEaseComparisonRequest replaces both ease-of-use series wholesale.
type SaveEaseComparisonRequest struct {
	Odoo  []models.EasePoint `json:"odoo" binding:"required,dive"`
	Nasma []models.EasePoint `json:"nasma" binding:"required,dive"`
}

package service

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	appErrors "github.com/nasma-hq/nasma-insights-api/pkg/errors"
)

// SettingsStore abstracts persistence for the dashboard settings documents.
type SettingsStore interface {
	ReadSatisfaction() (models.SatisfactionDocument, bool, error)
	WriteSatisfaction(doc models.SatisfactionDocument) error
	ReadEaseComparison() (models.EaseComparisonDocument, bool, error)
	WriteEaseComparison(doc models.EaseComparisonDocument) error
}

// SettingsServiceParams bundles dependencies for NewSettingsService.
type SettingsServiceParams struct {
	Store     SettingsStore
	Validator *validator.Validate
	Logger    *zap.Logger
}

// SettingsService manages the two manually curated dashboard documents.
// Saves overwrite the whole document; concurrent writers race and the
// last one wins, which is an accepted gap for these low-churn values.
type SettingsService struct {
	store     SettingsStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs the service.
func NewSettingsService(params SettingsServiceParams) *SettingsService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	svc := &SettingsService{store: params.Store, validator: params.Validator, logger: params.Logger}
	svc.validator.RegisterValidation("score_string", func(fl validator.FieldLevel) bool {
		score, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && score >= 0 && score <= 10
	})
	return svc
}

type satisfactionInput struct {
	Value string `validate:"required,score_string"`
}

type easeComparisonInput struct {
	Odoo  []models.EasePoint `validate:"required,min=1,dive"`
	Nasma []models.EasePoint `validate:"required,min=1,dive"`
}

func defaultSatisfaction() models.SatisfactionDocument {
	return models.SatisfactionDocument{OverallSatisfaction: "9.62"}
}

func defaultEaseComparison() models.EaseComparisonDocument {
	return models.EaseComparisonDocument{
		Odoo:  []models.EasePoint{{Period: "Week 1", Value: 6.82}},
		Nasma: []models.EasePoint{{Period: "Week 1", Value: 9.00}},
	}
}

// Satisfaction returns the stored satisfaction figure, or the in-code
// default when nothing has been saved yet. The default is not persisted.
func (s *SettingsService) Satisfaction() models.SatisfactionDocument {
	doc, exists, err := s.store.ReadSatisfaction()
	if err != nil {
		s.logger.Warn("read satisfaction failed", zap.Error(err))
		return defaultSatisfaction()
	}
	if !exists {
		return defaultSatisfaction()
	}
	return doc
}

// SaveSatisfaction overwrites the satisfaction figure. The value must be
// a decimal score between 0 and 10.
func (s *SettingsService) SaveSatisfaction(value string) error {
	if err := s.validator.Struct(satisfactionInput{Value: value}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "satisfaction value must be a score between 0 and 10")
	}
	if err := s.store.WriteSatisfaction(models.SatisfactionDocument{OverallSatisfaction: value}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "save satisfaction failed")
	}
	return nil
}

// EaseComparison returns both ease-of-use series. The first read seeds the
// store with the default document so later edits start from it.
func (s *SettingsService) EaseComparison() models.EaseComparisonDocument {
	doc, exists, err := s.store.ReadEaseComparison()
	if err != nil {
		s.logger.Warn("read ease comparison failed", zap.Error(err))
		return defaultEaseComparison()
	}
	if !exists {
		seeded := defaultEaseComparison()
		if err := s.store.WriteEaseComparison(seeded); err != nil {
			s.logger.Warn("seed ease comparison failed", zap.Error(err))
		}
		return seeded
	}
	return doc
}

// SaveEaseComparison replaces both series wholesale.
func (s *SettingsService) SaveEaseComparison(odoo, nasma []models.EasePoint) error {
	if err := s.validator.Struct(easeComparisonInput{Odoo: odoo, Nasma: nasma}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "both series need at least one point")
	}
	if err := s.store.WriteEaseComparison(models.EaseComparisonDocument{Odoo: odoo, Nasma: nasma}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "save ease comparison failed")
	}
	return nil
}

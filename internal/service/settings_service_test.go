package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	appErrors "github.com/nasma-hq/nasma-insights-api/pkg/errors"
)

type settingsStoreStub struct {
	satisfaction       *models.SatisfactionDocument
	easeComparison     *models.EaseComparisonDocument
	readErr            error
	satisfactionWrites int
	easeWrites         int
}

func (s *settingsStoreStub) ReadSatisfaction() (models.SatisfactionDocument, bool, error) {
	if s.readErr != nil {
		return models.SatisfactionDocument{}, false, s.readErr
	}
	if s.satisfaction == nil {
		return models.SatisfactionDocument{}, false, nil
	}
	return *s.satisfaction, true, nil
}

func (s *settingsStoreStub) WriteSatisfaction(doc models.SatisfactionDocument) error {
	s.satisfaction = &doc
	s.satisfactionWrites++
	return nil
}

func (s *settingsStoreStub) ReadEaseComparison() (models.EaseComparisonDocument, bool, error) {
	if s.readErr != nil {
		return models.EaseComparisonDocument{}, false, s.readErr
	}
	if s.easeComparison == nil {
		return models.EaseComparisonDocument{}, false, nil
	}
	return *s.easeComparison, true, nil
}

func (s *settingsStoreStub) WriteEaseComparison(doc models.EaseComparisonDocument) error {
	s.easeComparison = &doc
	s.easeWrites++
	return nil
}

func TestSatisfactionDefaultIsNotPersisted(t *testing.T) {
	store := &settingsStoreStub{}
	svc := NewSettingsService(SettingsServiceParams{Store: store})

	doc := svc.Satisfaction()
	assert.Equal(t, "9.62", doc.OverallSatisfaction)
	assert.Zero(t, store.satisfactionWrites)
}

func TestSatisfactionRoundTrip(t *testing.T) {
	store := &settingsStoreStub{}
	svc := NewSettingsService(SettingsServiceParams{Store: store})

	require.NoError(t, svc.SaveSatisfaction("8.10"))
	assert.Equal(t, "8.10", svc.Satisfaction().OverallSatisfaction)
}

func TestSaveSatisfactionRejectsNonScores(t *testing.T) {
	store := &settingsStoreStub{}
	svc := NewSettingsService(SettingsServiceParams{Store: store})

	for _, value := range []string{"", "excellent", "-1", "10.5"} {
		err := svc.SaveSatisfaction(value)
		require.Error(t, err)
		var typed *appErrors.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, appErrors.ErrValidation.Code, typed.Code)
	}
	assert.Zero(t, store.satisfactionWrites)
}

func TestSaveEaseComparisonRejectsEmptySeries(t *testing.T) {
	store := &settingsStoreStub{}
	svc := NewSettingsService(SettingsServiceParams{Store: store})

	err := svc.SaveEaseComparison(nil, []models.EasePoint{{Period: "Week 1", Value: 9.1}})
	require.Error(t, err)
	assert.Zero(t, store.easeWrites)
}

func TestEaseComparisonSeedsDefaultOnFirstRead(t *testing.T) {
	store := &settingsStoreStub{}
	svc := NewSettingsService(SettingsServiceParams{Store: store})

	doc := svc.EaseComparison()
	require.Len(t, doc.Odoo, 1)
	assert.Equal(t, "Week 1", doc.Odoo[0].Period)
	assert.InDelta(t, 6.82, doc.Odoo[0].Value, 0.001)
	assert.InDelta(t, 9.00, doc.Nasma[0].Value, 0.001)
	assert.Equal(t, 1, store.easeWrites)

	// Second read hits the stored copy, not the seeding path.
	svc.EaseComparison()
	assert.Equal(t, 1, store.easeWrites)
}

func TestEaseComparisonRoundTrip(t *testing.T) {
	store := &settingsStoreStub{}
	svc := NewSettingsService(SettingsServiceParams{Store: store})

	odoo := []models.EasePoint{{Period: "Week 1", Value: 5.5}, {Period: "Week 2", Value: 6.0}}
	nasma := []models.EasePoint{{Period: "Week 1", Value: 9.1}}
	require.NoError(t, svc.SaveEaseComparison(odoo, nasma))

	doc := svc.EaseComparison()
	assert.Equal(t, odoo, doc.Odoo)
	assert.Equal(t, nasma, doc.Nasma)
}

func TestSettingsReadFailureFallsBackToDefaults(t *testing.T) {
	store := &settingsStoreStub{readErr: errors.New("disk gone")}
	svc := NewSettingsService(SettingsServiceParams{Store: store})

	assert.Equal(t, "9.62", svc.Satisfaction().OverallSatisfaction)
	assert.Len(t, svc.EaseComparison().Nasma, 1)
	assert.Zero(t, store.easeWrites)
}

package repository

import (
	"encoding/json"
	"fmt"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/storage"
)

const (
	satisfactionFile   = "satisfaction_data.json"
	easeComparisonFile = "ease_comparison_data.json"
)

// SettingsRepository persists small dashboard settings documents as whole
// JSON files. Writes replace the file; the last writer wins.
type SettingsRepository struct {
	store *storage.LocalStorage
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(store *storage.LocalStorage) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// ReadSatisfaction loads the satisfaction document. The second return is
// false when no document has been saved yet.
func (r *SettingsRepository) ReadSatisfaction() (models.SatisfactionDocument, bool, error) {
	var doc models.SatisfactionDocument
	exists, err := r.read(satisfactionFile, &doc)
	return doc, exists, err
}

// WriteSatisfaction stores the satisfaction document.
func (r *SettingsRepository) WriteSatisfaction(doc models.SatisfactionDocument) error {
	return r.write(satisfactionFile, doc)
}

// ReadEaseComparison loads the ease comparison document.
func (r *SettingsRepository) ReadEaseComparison() (models.EaseComparisonDocument, bool, error) {
	var doc models.EaseComparisonDocument
	exists, err := r.read(easeComparisonFile, &doc)
	return doc, exists, err
}

// WriteEaseComparison stores the ease comparison document.
func (r *SettingsRepository) WriteEaseComparison(doc models.EaseComparisonDocument) error {
	return r.write(easeComparisonFile, doc)
}

func (r *SettingsRepository) read(name string, dest interface{}) (bool, error) {
	data, exists, err := r.store.Read(name)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if !exists {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

func (r *SettingsRepository) write(name string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := r.store.Write(name, data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

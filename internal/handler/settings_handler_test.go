package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
)

type settingsServiceMock struct {
	satisfaction models.SatisfactionDocument
	ease         models.EaseComparisonDocument
	saveErr      error
}

func (m *settingsServiceMock) Satisfaction() models.SatisfactionDocument { return m.satisfaction }

func (m *settingsServiceMock) SaveSatisfaction(value string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.satisfaction = models.SatisfactionDocument{OverallSatisfaction: value}
	return nil
}

func (m *settingsServiceMock) EaseComparison() models.EaseComparisonDocument { return m.ease }

func (m *settingsServiceMock) SaveEaseComparison(odoo, nasma []models.EasePoint) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.ease = models.EaseComparisonDocument{Odoo: odoo, Nasma: nasma}
	return nil
}

func postRequest(t *testing.T, handlerFunc gin.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, target, bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handlerFunc(c)
	return w
}

func TestGetSatisfactionReturnsDocument(t *testing.T) {
	svc := &settingsServiceMock{satisfaction: models.SatisfactionDocument{OverallSatisfaction: "9.62"}}
	h := NewSettingsHandler(svc)

	w := getRequest(t, h.GetSatisfaction, "/satisfaction")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "9.62")
}

func TestSaveSatisfactionValidatesBody(t *testing.T) {
	h := NewSettingsHandler(&settingsServiceMock{})

	w := postRequest(t, h.SaveSatisfaction, "/satisfaction", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveSatisfactionRoundTrip(t *testing.T) {
	svc := &settingsServiceMock{}
	h := NewSettingsHandler(svc)

	w := postRequest(t, h.SaveSatisfaction, "/satisfaction", `{"value":"8.40"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "8.40", svc.satisfaction.OverallSatisfaction)
}

func TestSaveEaseComparisonValidatesBody(t *testing.T) {
	h := NewSettingsHandler(&settingsServiceMock{})

	w := postRequest(t, h.SaveEaseComparison, "/ease-comparison", `{"odoo":[{"period":"Week 1","value":6.8}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveEaseComparisonRoundTrip(t *testing.T) {
	svc := &settingsServiceMock{}
	h := NewSettingsHandler(svc)

	body := `{"odoo":[{"period":"Week 1","value":6.8}],"nasma":[{"period":"Week 1","value":9.1}]}`
	w := postRequest(t, h.SaveEaseComparison, "/ease-comparison", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.ease.Odoo, 1)
	assert.InDelta(t, 9.1, svc.ease.Nasma[0].Value, 0.001)
}

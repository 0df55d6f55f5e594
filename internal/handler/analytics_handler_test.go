package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/response"
)

type metricServiceMock struct {
	counts     []dto.RequestCount
	rates      []dto.RequestSuccessRate
	activities []dto.UserActivity
	lastWindow models.TimeRange
}

func (m *metricServiceMock) RequestCounts(ctx context.Context, window models.TimeRange) []dto.RequestCount {
	m.lastWindow = window
	return m.counts
}

func (m *metricServiceMock) SuccessRates(ctx context.Context, window models.TimeRange) []dto.RequestSuccessRate {
	m.lastWindow = window
	return m.rates
}

func (m *metricServiceMock) ActivitiesToday(ctx context.Context, window models.TimeRange) []dto.UserActivity {
	m.lastWindow = window
	return m.activities
}

type durationServiceMock struct {
	durations []dto.RequestDuration
}

func (m *durationServiceMock) RequestDurations(ctx context.Context, window models.TimeRange) []dto.RequestDuration {
	return m.durations
}

func getRequest(t *testing.T, handlerFunc gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	c.Request = req
	handlerFunc(c)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestAnalyticsHandlerRequestsPassesWindow(t *testing.T) {
	svc := &metricServiceMock{counts: []dto.RequestCount{{Attribute: "log_hours", Value: 3}}}
	h := NewAnalyticsHandler(svc, &durationServiceMock{})

	w := getRequest(t, h.Requests, "/requests?start_date=2024-09-01&end_date=2024-09-30")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-09-01", svc.lastWindow.Start)
	assert.Equal(t, "2024-09-30", svc.lastWindow.End)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Data)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestAnalyticsHandlerSuccessRates(t *testing.T) {
	svc := &metricServiceMock{rates: []dto.RequestSuccessRate{
		{RequestType: "timeoff", SuccessRatePercent: 66.7, Successes: 2, TotalEvents: 3},
	}}
	h := NewAnalyticsHandler(svc, &durationServiceMock{})

	w := getRequest(t, h.SuccessRates, "/success-rates")
	require.Equal(t, http.StatusOK, w.Code)

	payload, err := json.Marshal(decodeEnvelope(t, w).Data)
	require.NoError(t, err)
	var rates []dto.RequestSuccessRate
	require.NoError(t, json.Unmarshal(payload, &rates))
	require.Len(t, rates, 1)
	assert.InDelta(t, 66.7, rates[0].SuccessRatePercent, 0.001)
}

func TestAnalyticsHandlerRequestDurations(t *testing.T) {
	h := NewAnalyticsHandler(&metricServiceMock{}, &durationServiceMock{durations: []dto.RequestDuration{
		{RequestType: "log_hours", AvgDurationSeconds: 45, ThreadCount: 2},
	}})

	w := getRequest(t, h.RequestDurations, "/request-durations")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAnalyticsHandlerEmptyResultStaysAnArray(t *testing.T) {
	svc := &metricServiceMock{activities: []dto.UserActivity{}}
	h := NewAnalyticsHandler(svc, &durationServiceMock{})

	w := getRequest(t, h.ActivitiesToday, "/activities-today")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/response"
)

type messageReportService interface {
	ActiveUsersByMonth(ctx context.Context, window models.TimeRange) []dto.MonthlyActiveUsers
	MessagesSummary(ctx context.Context, window models.TimeRange) dto.MessagesSummary
	LogHoursUsers(ctx context.Context, window models.TimeRange) []dto.LogHoursUser
}

// MessagesHandler exposes the chat-history reports.
type MessagesHandler struct {
	messages messageReportService
}

// NewMessagesHandler constructs the handler.
func NewMessagesHandler(messages messageReportService) *MessagesHandler {
	return &MessagesHandler{messages: messages}
}

// ActiveUsers godoc
// @Summary Monthly active users from chat history
// @Tags Messages
// @Produce json
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {object} response.Envelope
// @Router /active-users [get]
func (h *MessagesHandler) ActiveUsers(c *gin.Context) {
	result := h.messages.ActiveUsersByMonth(c.Request.Context(), queryWindow(c))
	response.JSON(c, http.StatusOK, result)
}

// Summary godoc
// @Summary Monthly message totals and per-user breakdown
// @Tags Messages
// @Produce json
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {object} response.Envelope
// @Router /messages [get]
func (h *MessagesHandler) Summary(c *gin.Context) {
	result := h.messages.MessagesSummary(c.Request.Context(), queryWindow(c))
	response.JSON(c, http.StatusOK, result)
}

// LogHoursUsers godoc
// @Summary Distinct users who asked the assistant to log hours
// @Tags Messages
// @Produce json
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {object} response.Envelope
// @Router /log-hours [get]
func (h *MessagesHandler) LogHoursUsers(c *gin.Context) {
	result := h.messages.LogHoursUsers(c.Request.Context(), queryWindow(c))
	response.JSON(c, http.StatusOK, result)
}

package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
)

func TestMessagesCSVRendersBreakdown(t *testing.T) {
	svc := NewExportService(ExportServiceParams{
		Messages: newTestMessageService(&messageSourceStub{messages: []models.ChatMessage{
			userMessage("Alice", "2024-09-05T10:00:00Z"),
			userMessage("Alice", "2024-09-06T10:00:00Z"),
			userMessage("Bob", "2024-10-01T00:00:00Z"),
		}}),
	})

	raw, err := svc.MessagesCSV(context.Background(), models.TimeRange{})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(raw), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "month,user_name,messages_sent", string(lines[0]))
	assert.Equal(t, "September 2024,Alice,2", string(lines[1]))
	assert.Equal(t, "October 2024,Bob,1", string(lines[2]))
}

func TestAdoptionPDFRendersDocument(t *testing.T) {
	svc := NewExportService(ExportServiceParams{
		Adoption: NewAdoptionService(AdoptionServiceParams{
			Employees: &employeeSourceStub{employees: []models.EmployeeRecord{
				{Name: "Alice Smith", Department: "Engineering"},
			}},
			Usage:      &usageSourceStub{names: []string{"Alice Smith"}},
			Exclusions: testExclusions(),
		}),
	})

	raw, err := svc.AdoptionPDF(context.Background(), models.TimeRange{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

package email

import (
	"context"
	"fmt"
	"testing"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/Domenick1991/goaholidays/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	msg, ok := Compose(kafka.Event{
		Type:       kafka.EventBookingCreated,
		Name:       "Asha",
		Email:      "asha@example.com",
		Package:    domain.TierSilver,
		Persons:    1,
		TotalPrice: 3750,
	})
	require.True(t, ok)
	assert.Equal(t, "asha@example.com", msg.To)
	assert.Contains(t, msg.Body, "Rs. 3750.00")

	_, ok = Compose(kafka.Event{Type: "something_else"})
	assert.False(t, ok)
}

func TestSender_Send(t *testing.T) {
	var lines []string
	s := &Sender{logf: func(format string, v ...any) { lines = append(lines, fmt.Sprintf(format, v...)) }}
	ctx := context.Background()

	require.NoError(t, s.Send(ctx, kafka.Event{Type: kafka.EventEnquiryCreated, Email: "ravi@example.com", Name: "Ravi"}))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "send email to ravi@example.com")

	assert.Error(t, s.Send(ctx, kafka.Event{Type: kafka.EventBookingDeleted, ID: "b-1"}))
	assert.NoError(t, s.Send(ctx, kafka.Event{Type: "unknown"}))
}

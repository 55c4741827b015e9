package email

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/goaholidays/internal/kafka"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender struct {
	logf func(format string, v ...any)
}

func NewSender() *Sender {
	return &Sender{logf: log.Printf}
}

// Compose builds the notification for an event. ok is false for events nobody is told about.
func Compose(event kafka.Event) (Message, bool) {
	msg := Message{To: event.Email}

	switch event.Type {
	case kafka.EventBookingCreated:
		msg.Subject = "Your Goa holiday booking is confirmed"
		msg.Body = fmt.Sprintf("Hi %s, we have received your %s package booking for %d person(s). Total: Rs. %.2f.",
			event.Name, event.Package, event.Persons, event.TotalPrice)
	case kafka.EventBookingUpdated:
		msg.Subject = "Your Goa holiday booking was updated"
		msg.Body = fmt.Sprintf("Hi %s, your booking now covers the %s package for %d person(s). Total: Rs. %.2f.",
			event.Name, event.Package, event.Persons, event.TotalPrice)
	case kafka.EventBookingDeleted:
		msg.Subject = "Your Goa holiday booking was cancelled"
		msg.Body = fmt.Sprintf("Hi %s, your %s package booking has been cancelled.", event.Name, event.Package)
	case kafka.EventEnquiryCreated:
		msg.Subject = "We received your enquiry"
		msg.Body = fmt.Sprintf("Hi %s, thanks for asking about the %s package. We will call you on %s shortly.",
			event.Name, event.Package, event.Phone)
	default:
		return Message{}, false
	}
	return msg, true
}

func (s *Sender) Send(ctx context.Context, event kafka.Event) error {
	msg, ok := Compose(event)
	if !ok {
		s.logf("skip notification for event %s %s", event.Type, event.ID)
		return nil
	}
	if msg.To == "" {
		return fmt.Errorf("event %s %s has no recipient", event.Type, event.ID)
	}

	s.logf("send email to %s: %s | %s", msg.To, msg.Subject, msg.Body)
	return nil
}

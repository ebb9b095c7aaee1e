package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/repository"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// envelope holds the fields shared by booking and flight events.
type envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	FlightID   int64     `json:"flight_id"`
	BookingID  int64     `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type AuditHandler struct {
	audit repository.AuditRepository
}

func NewAuditHandler(audit repository.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Handle records one event. Undecodable messages are logged and skipped; a
// store failure is returned so the message is not committed.
func (h *AuditHandler) Handle(ctx context.Context, msg kafka.Message) error {
	entry, err := decode(msg)
	if err != nil {
		log.WithError(err).WithField("offset", msg.Offset).Warn("skipping malformed event")
		return nil
	}

	inserted, err := h.audit.Append(ctx, entry)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	if !inserted {
		log.WithField("event_id", entry.EventID).Debug("duplicate event ignored")
		return nil
	}
	log.WithFields(log.Fields{"event_id": entry.EventID, "type": entry.Type, "flight_id": entry.FlightID}).Info("event audited")
	return nil
}

func decode(msg kafka.Message) (domain.AuditEntry, error) {
	var e envelope
	if err := json.Unmarshal(msg.Value, &e); err != nil {
		return domain.AuditEntry{}, err
	}
	if e.ID == "" || e.Type == "" {
		return domain.AuditEntry{}, fmt.Errorf("event without id or type")
	}
	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = msg.Time
	}
	return domain.AuditEntry{
		EventID:    e.ID,
		Type:       e.Type,
		FlightID:   e.FlightID,
		BookingID:  e.BookingID,
		Payload:    msg.Value,
		OccurredAt: occurred,
	}, nil
}

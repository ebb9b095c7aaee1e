package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
	EventFlightCreated    = "flight_created"
	EventFlightDeleted    = "flight_deleted"
)

type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id"`
	FlightID   int64     `json:"flight_id"`
	TicketType string    `json:"ticket_type"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

type FlightEvent struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	FlightID      int64     `json:"flight_id"`
	DepartAirport string    `json:"depart_airport,omitempty"`
	DestAirport   string    `json:"dest_airport,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, bookingID, flightID int64, ticketType, email string) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		BookingID:  bookingID,
		FlightID:   flightID,
		TicketType: ticketType,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
}

func NewFlightEvent(eventType string, flightID int64, depart, dest string) FlightEvent {
	return FlightEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		FlightID:      flightID,
		DepartAirport: depart,
		DestAirport:   dest,
		OccurredAt:    time.Now().UTC(),
	}
}

// FlightKey partitions events by flight so one flight's history stays ordered.
func FlightKey(flightID int64) string {
	return strconv.FormatInt(flightID, 10)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	brokers    []string
	writer     messageWriter
	retryDelay time.Duration
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		brokers:    brokers,
		writer:     writer,
		retryDelay: 500 * time.Millisecond,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	log.WithFields(log.Fields{"topic": topic, "key": key}).Debug("event published")
	return nil
}

func (p *Producer) PublishWithRetry(ctx context.Context, topic, key string, payload any, maxRetries int) error {
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		err := p.Publish(ctx, topic, key, payload)
		if err == nil {
			return nil
		}

		lastErr = err
		log.WithError(err).WithField("attempt", i+1).Warn("publish failed")

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i+1) * p.retryDelay):
			}
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

// Retrying returns a publisher whose Publish goes through PublishWithRetry.
func (p *Producer) Retrying(maxRetries int) *RetryingProducer {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryingProducer{producer: p, maxRetries: maxRetries}
}

type RetryingProducer struct {
	producer   *Producer
	maxRetries int
}

func (r *RetryingProducer) Publish(ctx context.Context, topic, key string, payload any) error {
	return r.producer.PublishWithRetry(ctx, topic, key, payload, r.maxRetries)
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and lists its partitions.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}

	log.WithField("partitions", len(partitions)).Info("connected to kafka")
	return nil
}

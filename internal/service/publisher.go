package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/aakankshas938-hue/hotel-booking/internal/queue"
)

// RabbitPublisher emits booking events to the booking.events queue.
// It dials per publish, which keeps it connection-state free at the
// cost of latency on a path where latency does not matter (events are
// fired after the booking already committed). Errors are logged and
// returned; callers treat publishing as best-effort.
type RabbitPublisher struct {
	url string
}

// NewRabbitPublisher returns a publisher for the broker at the
// environment-configured URL.
func NewRabbitPublisher() *RabbitPublisher {
	return &RabbitPublisher{url: queue.BrokerURL()}
}

// PublishBookingEvent sends one event, declaring the durable queue on
// the way so consumers and publishers can start in any order.
func (p *RabbitPublisher) PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare("booking.events", true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", "booking.events", false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}

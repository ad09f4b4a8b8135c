// Package mq wires the outgoing mail queue. Mail jobs are published as
// JSON onto a durable queue; a separate worker drains it and talks SMTP,
// the web process never blocks on delivery.
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const MailQueue = "mail.outgoing"

// MailJob is the wire format consumed by the mail worker.
type MailJob struct {
	Recipient string            `json:"recipient"`
	Template  string            `json:"template"`
	Data      map[string]string `json:"data,omitempty"`
}

func NewMQConn(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func NewChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func SetupMailQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(MailQueue, true, false, false, false, nil)
	return err
}

func PublishMailJob(ch *amqp.Channel, job MailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal mail job: %w", err)
	}

	err = ch.PublishWithContext(
		context.Background(),
		"",
		MailQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish mail job to queue %s: %w", MailQueue, err)
	}

	return nil
}

// services/mail_service.go - outgoing mail
package services

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/AreaFiftyLAN/landev/mq"
)

// Mailer hands mail jobs off for asynchronous delivery. Sends are
// fire-and-forget from the caller's point of view: services log a failed
// hand-off and carry on, a broken mail pipeline never fails a request.
type Mailer interface {
	SendWelcome(recipient, username string) error
	SendTeamInvite(recipient, teamName, token string) error
}

// QueueMailer publishes mail jobs onto the RabbitMQ mail queue.
type QueueMailer struct {
	ch *amqp.Channel
}

var _ Mailer = (*QueueMailer)(nil)

func NewQueueMailer(ch *amqp.Channel) *QueueMailer {
	return &QueueMailer{ch: ch}
}

func (m *QueueMailer) SendWelcome(recipient, username string) error {
	return mq.PublishMailJob(m.ch, mq.MailJob{
		Recipient: recipient,
		Template:  "welcome",
		Data: map[string]string{
			"username": username,
		},
	})
}

func (m *QueueMailer) SendTeamInvite(recipient, teamName, token string) error {
	return mq.PublishMailJob(m.ch, mq.MailJob{
		Recipient: recipient,
		Template:  "team-invite",
		Data: map[string]string{
			"team":  teamName,
			"token": token,
		},
	})
}

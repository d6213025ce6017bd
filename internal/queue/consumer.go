package queue

import (
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"book-bazaar/internal/dto"
	"book-bazaar/internal/mail"
)

// StartMailConsumer drains the mail queue and delivers each job through the
// mailer. It reconnects with backoff when the broker drops; a failed delivery
// is requeued once so a transient SMTP error does not drop the mail.
func StartMailConsumer(url string, mailer *mail.Mailer) {
	backoff := time.Second
	for {
		if err := consumeOnce(url, mailer); err != nil {
			log.Printf("mail consumer: %v, reconnecting in %s", err, backoff)
		}
		time.Sleep(backoff)
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func consumeOnce(url string, mailer *mail.Mailer) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(mailQueueName, true, false, false, false, nil); err != nil {
		return err
	}
	deliveries, err := ch.Consume(mailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for d := range deliveries {
		var job dto.MailJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			log.Printf("mail consumer: drop malformed job: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		if err := mailer.Send(job); err != nil {
			log.Printf("mail consumer: send failed: %v", err)
			_ = d.Nack(false, !d.Redelivered)
			continue
		}
		_ = d.Ack(false)
	}
	return nil
}

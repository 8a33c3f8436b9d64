package notify

import (
	"context"
	"fmt"
	"log/slog"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rmachado/library-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoanQueueName is the queue the mailer consumes loan notifications from.
const LoanQueueName = "loan.created"

// loanCreatedMessage is the wire format of a loan notification. The mailer
// needs the full field set to compose the confirmation email.
type loanCreatedMessage struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"user_id"`
	BookID     int64       `json:"book_id"`
	LoanDate   domain.Date `json:"loan_date"`
	ReturnDate domain.Date `json:"return_date"`
}

// publishChannel is the slice of the AMQP channel API the notifier uses.
type publishChannel interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
}

// AMQPNotifier publishes notifications to a RabbitMQ queue via the default
// exchange.
type AMQPNotifier struct {
	channel publishChannel
	queue   string
	logger  *slog.Logger
}

// Ensure AMQPNotifier implements Notifier interface
var _ Notifier = (*AMQPNotifier)(nil)

// NewAMQPNotifier creates a notifier publishing to the given queue.
func NewAMQPNotifier(channel publishChannel, queue string, logger *slog.Logger) *AMQPNotifier {
	if channel == nil {
		panic("amqp channel cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AMQPNotifier{
		channel: channel,
		queue:   queue,
		logger:  logger.With(slog.String("component", "amqp_notifier")),
	}
}

// DeclareLoanQueue declares the durable loan notification queue. Call once
// at startup before publishing.
func DeclareLoanQueue(channel *amqp.Channel) error {
	_, err := channel.QueueDeclare(
		LoanQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", LoanQueueName, err)
	}
	return nil
}

// LoanCreated implements Notifier.LoanCreated
// Messages are persistent so a broker restart does not drop queued emails.
func (n *AMQPNotifier) LoanCreated(ctx context.Context, loan *domain.Loan) error {
	body, err := json.Marshal(loanCreatedMessage{
		ID:         loan.ID,
		UserID:     loan.UserID,
		BookID:     loan.BookID,
		LoanDate:   loan.LoanDate,
		ReturnDate: loan.ReturnDate,
	})
	if err != nil {
		return fmt.Errorf("failed to encode loan notification: %w", err)
	}

	err = n.channel.PublishWithContext(
		ctx,
		"",      // default exchange routes by queue name
		n.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		n.logger.Error("failed to publish loan notification",
			slog.String("error", err.Error()),
			slog.Int64("loan_id", loan.ID))
		return fmt.Errorf("failed to publish loan notification: %w", err)
	}

	n.logger.Debug("loan notification published",
		slog.Int64("loan_id", loan.ID),
		slog.String("queue", n.queue))
	return nil
}

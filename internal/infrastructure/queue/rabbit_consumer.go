package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RequestHandler processes one analysis request. A returned error requeues
// the message for one broker-level redelivery; a second failure drops it.
type RequestHandler func(ctx context.Context, req analyses.AnalysisRequest) error

// RabbitConsumer reads analysis requests off the queue and dispatches them
// to a handler.
type RabbitConsumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  logger.Logger
}

// NewRabbitConsumer creates a consumer bound to the analysis request queue.
func NewRabbitConsumer(settings *config.QueueSettings, logger logger.Logger) (*RabbitConsumer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	conn, err := amqp.Dial(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to message broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch, settings); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	// One unacked message at a time keeps slow analyses from piling up
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set prefetch: %w", err)
	}

	return &RabbitConsumer{
		conn:    conn,
		channel: ch,
		queue:   settings.Queue,
		logger:  logger,
	}, nil
}

// Consume blocks dispatching deliveries to the handler until the context is
// canceled or the delivery channel closes.
func (c *RabbitConsumer) Consume(ctx context.Context, handler RequestHandler) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.dispatch(ctx, delivery, handler)
		}
	}
}

func (c *RabbitConsumer) dispatch(ctx context.Context, delivery amqp.Delivery, handler RequestHandler) {
	var req analyses.AnalysisRequest
	if err := json.Unmarshal(delivery.Body, &req); err != nil {
		c.logger.Error("Dropping malformed analysis request: ", err)
		_ = delivery.Nack(false, false)
		return
	}

	if err := handler(ctx, req); err != nil {
		// Requeue once for transient failures, drop on the second pass
		requeue := !delivery.Redelivered
		c.logger.Error("Analysis request for plan ", req.PlanID, " failed (requeue=", requeue, "): ", err)
		_ = delivery.Nack(false, requeue)
		return
	}

	_ = delivery.Ack(false)
}

// Close releases the channel and connection.
func (c *RabbitConsumer) Close() {
	_ = c.channel.Close()
	_ = c.conn.Close()
}

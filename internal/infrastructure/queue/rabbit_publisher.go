package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BizLenz/api/internal/domain/analyses"
	"github.com/BizLenz/api/internal/pkg/config"
	"github.com/BizLenz/api/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

type rabbitPublisher struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     logger.Logger
}

// NewRabbitPublisher creates a RequestPublisher backed by a durable direct
// exchange. The queue is declared and bound here so either side of the
// pipeline can come up first.
func NewRabbitPublisher(settings *config.QueueSettings, logger logger.Logger) (analyses.RequestPublisher, func(), error) {
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}

	conn, err := amqp.Dial(settings.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to message broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch, settings); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}

	publisher := &rabbitPublisher{
		conn:       conn,
		channel:    ch,
		exchange:   settings.Exchange,
		routingKey: settings.RoutingKey,
		logger:     logger,
	}

	closeFunc := func() {
		_ = ch.Close()
		_ = conn.Close()
	}

	return publisher, closeFunc, nil
}

func declareTopology(ch *amqp.Channel, settings *config.QueueSettings) error {
	if err := ch.ExchangeDeclare(settings.Exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(settings.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.QueueBind(settings.Queue, settings.RoutingKey, settings.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

func (p *rabbitPublisher) PublishAnalysisRequest(ctx context.Context, req analyses.AnalysisRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode analysis request: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		p.routingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish analysis request: %w", err)
	}

	p.logger.Info("Published analysis request for plan ", req.PlanID)
	return nil
}

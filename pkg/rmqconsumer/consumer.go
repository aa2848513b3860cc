package rmqconsumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-registry-api/config"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

// Handler processes one message body. A returned error rejects the message
// without requeue so a poison message cannot loop.
type Handler interface {
	Handle(ctx context.Context, routingKey string, body []byte) error
}

type Consumer struct {
	cfg         config.MQ
	log         *zap.Logger
	handler     Handler
	routingKeys []string
	conn        *amqp091.Connection
	chConsume   *amqp091.Channel
	chDelivery  <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger, handler Handler, routingKeys ...string) *Consumer {
	return &Consumer{
		cfg:         cfg,
		log:         logger,
		handler:     handler,
		routingKeys: routingKeys,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range c.routingKeys {
		if err := c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.chDelivery = deliveries

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Error("delivery channel closed by broker")
				return
			}
			if err := c.delivery(ctx, msg); err != nil {
				c.log.Error("mq message handling error",
					zap.String("routing_key", msg.RoutingKey),
					zap.String("message_id", msg.MessageId),
					zap.Error(err),
				)
			}
		case <-ctx.Done():
			_ = c.chConsume.Close()
			_ = c.conn.Close()
			return
		}
	}
}

// delivery acks a handled message and rejects it otherwise.
func (c *Consumer) delivery(ctx context.Context, msg amqp091.Delivery) error {
	herr := c.handler.Handle(ctx, msg.RoutingKey, msg.Body)
	if herr == nil {
		if err := msg.Ack(false); err != nil {
			return fmt.Errorf("ack: %w", err)
		}
		return nil
	}

	if err := msg.Nack(false, false); err != nil {
		return errors.Join(herr, fmt.Errorf("nack: %w", err))
	}

	return herr
}

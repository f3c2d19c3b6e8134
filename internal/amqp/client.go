package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// ErrChannelClosed is returned by ConsumeRefresh when the broker closes the
// delivery channel.
var ErrChannelClosed = errors.New("message channel closed")

const publishTimeout = 5 * time.Second

// Client publishes and consumes goal refresh notifications on a fanout
// exchange. Every bound queue receives every notification.
type Client struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewClient connects and declares the durable fanout exchange.
func NewClient(url, exchange string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{conn: conn, channel: channel, exchange: exchange}

	err = channel.ExchangeDeclare(
		exchange,
		amqp091.ExchangeFanout,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	return client, nil
}

// PublishRefresh publishes a refresh notification to all subscribers.
func (c *Client) PublishRefresh(ctx context.Context, msg *RefreshMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// Fanout exchanges ignore the routing key.
	err = c.channel.PublishWithContext(ctx, c.exchange, "", false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    msg.Timestamp,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.InfoContext(ctx, "Published goals refresh message",
		"source", msg.Source,
		"reason", msg.Reason,
		"exchange", c.exchange)
	return nil
}

// subscribe declares and binds the queue a consumer reads from. An empty name
// asks the broker for a private queue that disappears with the connection;
// a named queue is durable and shared by every consumer using that name.
func (c *Client) subscribe(queue string) (string, error) {
	private := queue == ""
	q, err := c.channel.QueueDeclare(
		queue,
		!private, // durable
		private,  // delete when unused
		private,  // exclusive
		false,    // no-wait
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("declare queue: %w", err)
	}
	if err := c.channel.QueueBind(q.Name, "", c.exchange, false, nil); err != nil {
		return "", fmt.Errorf("bind queue %q: %w", q.Name, err)
	}
	return q.Name, nil
}

// ConsumeRefresh calls handler for every refresh notification until ctx is
// done. Undecodable messages are dropped; handler errors requeue.
func (c *Client) ConsumeRefresh(ctx context.Context, queue string, handler func(*RefreshMessage) error) error {
	name, err := c.subscribe(queue)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming goals refresh messages", "exchange", c.exchange, "queue", name)
	return consume(ctx, msgs, handler)
}

// acknowledger is the subset of amqp091.Delivery used by consume.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func consume(ctx context.Context, msgs <-chan amqp091.Delivery, handler func(*RefreshMessage) error) error {
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return ErrChannelClosed
			}
			handleDelivery(ctx, &delivery, delivery.Body, handler)
		}
	}
}

func handleDelivery(ctx context.Context, ack acknowledger, body []byte, handler func(*RefreshMessage) error) {
	msg, err := RefreshMessageFromJSON(body)
	if err != nil {
		slog.ErrorContext(ctx, "Dropping undecodable refresh message", "error", err)
		_ = ack.Nack(false, false)
		return
	}

	if err := handler(msg); err != nil {
		slog.ErrorContext(ctx, "Failed to handle message", "error", err, "source", msg.Source)
		_ = ack.Nack(false, true)
		return
	}

	_ = ack.Ack(false)
	slog.InfoContext(ctx, "Processed goals refresh message", "source", msg.Source, "reason", msg.Reason)
}

// Close releases the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

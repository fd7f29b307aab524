// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQOptions configures the RabbitMQ backend.
type RabbitMQOptions struct {
	URL           string
	QueueDurable  bool
	PrefetchCount int
}

// RabbitMQClient wraps a RabbitMQ connection/channel pair.
type RabbitMQClient struct {
	mu           sync.Mutex
	conn         *amqp.Connection
	channel      *amqp.Channel
	queueDurable bool
}

// NewRabbitMQClient dials the broker and opens a channel.
func NewRabbitMQClient(options RabbitMQOptions) (*RabbitMQClient, error) {
	if strings.TrimSpace(options.URL) == "" {
		return nil, errors.New("mq: rabbitmq url is required")
	}

	conn, err := amqp.Dial(options.URL)
	if err != nil {
		return nil, fmt.Errorf("mq: rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("mq: rabbitmq channel: %w", err)
	}

	if options.PrefetchCount > 0 {
		if err := ch.Qos(options.PrefetchCount, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("mq: rabbitmq qos: %w", err)
		}
	}

	return &RabbitMQClient{
		conn:         conn,
		channel:      ch,
		queueDurable: options.QueueDurable,
	}, nil
}

// Publish sends a persistent message to the named queue.
func (r *RabbitMQClient) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if strings.TrimSpace(channel) == "" {
		return "", errors.New("mq: rabbitmq channel is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.declareQueue(channel); err != nil {
		return "", err
	}

	headers := amqp.Table{}
	for key, value := range attrs {
		headers[key] = value
	}

	messageID := newMessageID()
	err := r.channel.PublishWithContext(ctx, "", channel, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Headers:      headers,
		Body:         data,
	})
	if err != nil {
		return "", fmt.Errorf("mq: rabbitmq publish: %w", err)
	}
	return messageID, nil
}

// Subscribe consumes messages from the named queue. A handler error nacks
// the delivery and requeues it.
func (r *RabbitMQClient) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if strings.TrimSpace(channel) == "" {
		return errors.New("mq: rabbitmq channel is required")
	}

	r.mu.Lock()
	if _, err := r.declareQueue(channel); err != nil {
		r.mu.Unlock()
		return err
	}

	consumerTag := fmt.Sprintf("lotmarket-%s", newMessageID())
	deliveries, err := r.channel.Consume(channel, consumerTag, false, false, false, false, nil)
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("mq: rabbitmq consume: %w", err)
	}
	defer func() {
		_ = r.channel.Cancel(consumerTag, false)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("mq: rabbitmq delivery channel closed")
			}
			message := Message{
				ID:         delivery.MessageId,
				Data:       delivery.Body,
				Attributes: headersToAttributes(delivery.Headers),
			}
			if err := handler(ctx, message); err != nil {
				_ = delivery.Nack(false, true)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

// Ping reports whether the connection is still open.
func (r *RabbitMQClient) Ping(context.Context) error {
	if r.conn == nil || r.conn.IsClosed() {
		return errors.New("mq: rabbitmq connection closed")
	}
	return nil
}

// Close closes the underlying channel and connection.
func (r *RabbitMQClient) Close() error {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func (r *RabbitMQClient) declareQueue(name string) (amqp.Queue, error) {
	queue, err := r.channel.QueueDeclare(name, r.queueDurable, false, false, false, nil)
	if err != nil {
		return queue, fmt.Errorf("mq: rabbitmq declare %s: %w", name, err)
	}
	return queue, nil
}

func headersToAttributes(headers amqp.Table) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(headers))
	for key, value := range headers {
		switch typed := value.(type) {
		case string:
			attrs[key] = typed
		case []byte:
			attrs[key] = string(typed)
		default:
			attrs[key] = fmt.Sprint(value)
		}
	}
	return attrs
}

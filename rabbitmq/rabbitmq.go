package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
	"github.com/zonafranca/invoicehub.go/db/models"
)

// bufPool reuses encode buffers between published events. With one
// publisher goroutine there is only ever one buffer in the pool.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const contentTypeJSON = "application/json"

// SubscribeToEventsFunc hands the publisher the channels carrying
// invoice and refund events.
type SubscribeToEventsFunc = func() (invoiceEvents, refundEvents chan models.Event, err error)

type Client interface {
	StartPublishEvents(ctx context.Context, subscribe SubscribeToEventsFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	conn           *amqp.Connection
	publishChannel *amqp.Channel

	logger *lecho.Logger

	eventExchange string
}

type ClientOption = func(client *DefaultClient)

func WithEventExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.eventExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

// Dial connects to rabbitmq, retrying with exponential backoff so a
// broker restart during deploys does not take the service down.
func Dial(uri string, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		eventExchange: "invoicehub_event",
	}
	for _, opt := range options {
		opt(client)
	}

	err := backoff.Retry(func() error {
		conn, err := amqp.Dial(uri)
		if err != nil {
			if client.logger != nil {
				client.logger.Errorf("rabbitmq dial failed, retrying: %v", err)
			}
			return err
		}
		client.conn = conn
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		return nil, err
	}

	client.publishChannel, err = client.conn.Channel()
	if err != nil {
		return nil, err
	}

	err = client.publishChannel.ExchangeDeclare(
		client.eventExchange,
		// topic exchange so consumers can filter on event type
		"topic",
		// durable
		true,
		// auto delete
		false,
		// internal
		false,
		// no wait
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return client, nil
}

func (client *DefaultClient) Close() error {
	return client.conn.Close()
}

func (client *DefaultClient) StartPublishEvents(ctx context.Context, subscribe SubscribeToEventsFunc) error {
	invoiceEvents, refundEvents, err := subscribe()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case event := <-invoiceEvents:
			client.publishEvent(ctx, event)
		case event := <-refundEvents:
			client.publishEvent(ctx, event)
		}
	}
}

func (client *DefaultClient) publishEvent(ctx context.Context, event models.Event) {
	buf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(buf)
	buf.Reset()

	if err := json.NewEncoder(buf).Encode(event); err != nil {
		client.logger.Errorf("Error encoding event %s: %v", event.ID, err)
		return
	}

	err := client.publishChannel.PublishWithContext(ctx,
		client.eventExchange,
		// the event type is the routing key, e.g. refund.succeeded
		event.Type,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			MessageId:   event.ID,
			Timestamp:   time.Now(),
			Body:        buf.Bytes(),
		},
	)
	if err != nil {
		client.logger.Errorf("Error publishing event %s: %v", event.ID, err)
		return
	}
	client.logger.Debugf("Published event %s (%s)", event.ID, event.Type)
}

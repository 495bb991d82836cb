package core

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
)

// IRabbitMQ is the broker surface the subscriber consumes from.
type IRabbitMQ interface {
	ConsumeMessage(ctx context.Context, queue, consumer string) (<-chan amqp.Delivery, error)
	Close() error
}

var ErrMBConn = errors.New("message broker connection failure")

package brokermessage

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"carnitas-elguero/internal/notsub/app/core"
	"carnitas-elguero/internal/xpkg/config"
	"carnitas-elguero/internal/xpkg/logger"
)

const (
	Exchange = "notificaciones_fanout"
	Queue    = "notificaciones_queue"
)

type RabbitMQ struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	mylog logger.Logger
}

// New connects to RabbitMQ and declares the same notification topology the
// comanda service publishes on, so either side can start first.
func New(ctx context.Context, rabbitmqCfg *config.RabbitMQ, mylog logger.Logger) (core.IRabbitMQ, error) {
	conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s:%s/%s",
		rabbitmqCfg.User,
		rabbitmqCfg.Password,
		rabbitmqCfg.Host,
		rabbitmqCfg.Port,
		rabbitmqCfg.VHost,
	))
	if err != nil {
		return nil, core.ErrMBConn
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, core.ErrMBConn
	}

	err = ch.ExchangeDeclare(Exchange, "fanout", true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(Queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(Queue, "", Exchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	mylog.Action("mb_connected").Info("Connected to RabbitMQ")
	return &RabbitMQ{conn: conn, ch: ch, mylog: mylog}, nil
}

func (r *RabbitMQ) ConsumeMessage(ctx context.Context, queue, consumer string) (<-chan amqp.Delivery, error) {
	return r.ch.ConsumeWithContext(ctx, queue, consumer, false, false, false, false, nil)
}

func (r *RabbitMQ) Close() error {
	if r.ch != nil && !r.ch.IsClosed() {
		if err := r.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %v", err)
		}
	}
	if r.conn != nil && !r.conn.IsClosed() {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %v", err)
		}
	}
	return nil
}

package brokermessage

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"carnitas-elguero/internal/comanda/app/core"
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

// New connects to RabbitMQ and declares the notification fanout topology.
func New(ctx context.Context, rabbitmqCfg *config.RabbitMQ, mylog logger.Logger) (core.IBroker, error) {
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

	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	mylog.Action("mb_connected").Info("Connected to RabbitMQ")
	return &RabbitMQ{conn: conn, ch: ch, mylog: mylog}, nil
}

func declareTopology(ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(
		Exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		Queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(Queue, "", Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// PushMessage publishes a JSON-encoded notification on the fanout exchange.
func (r *RabbitMQ) PushMessage(ctx context.Context, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	err = r.ch.PublishWithContext(ctx, Exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
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

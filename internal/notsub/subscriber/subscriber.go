package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"carnitas-elguero/internal/notsub/adapter/broker_message"
	"carnitas-elguero/internal/notsub/app/core"
	"carnitas-elguero/internal/notsub/domain/dto"
	"carnitas-elguero/internal/xpkg/config"
	"carnitas-elguero/internal/xpkg/logger"
)

// Subscriber consumes the staff notification queue and prints one readable
// line per message.
type Subscriber struct {
	cfg    *config.Config
	mylog  logger.Logger
	mb     core.IRabbitMQ
	ctx    context.Context
	appCtx context.Context

	mu sync.Mutex
	wg sync.WaitGroup
}

func New(ctx, appCtx context.Context, cfg *config.Config, mylog logger.Logger) *Subscriber {
	return &Subscriber{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
	}
}

// Run connects to the broker and consumes until the context is cancelled.
func (s *Subscriber) Run() error {
	mylog := s.mylog.Action("run_subscriber")

	mb, err := brokermessage.New(s.appCtx, s.cfg.RMQ, s.mylog)
	if err != nil {
		mylog.Action("mb_connection_failed").Error("Failed to connect to message broker", err)
		return err
	}
	s.mu.Lock()
	s.mb = mb
	s.mu.Unlock()

	messageBus, err := s.mb.ConsumeMessage(s.appCtx, brokermessage.Queue, "")
	if err != nil {
		return fmt.Errorf("failed to consume from rabbitmq: %w", err)
	}

	s.work(messageBus)
	return nil
}

func (s *Subscriber) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Action("graceful_shutdown_started").Info("Shutting down subscriber")

	// wait for in-flight messages
	s.wg.Wait()

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Action("mb_close_failed").Error("Failed to close message broker", err)
			return fmt.Errorf("mb close: %w", err)
		}
		s.mylog.Action("mb_closed").Info("Message broker closed")
	}

	s.mylog.Action("graceful_shutdown_completed").Info("Subscriber shut down gracefully")
	return nil
}

func (s *Subscriber) work(notifCh <-chan amqp.Delivery) {
	for {
		select {
		case <-s.ctx.Done():
			s.mylog.Action("work_shutdown").Info("Stopping message consumption due to context cancel")
			return

		case msg, ok := <-notifCh:
			if !ok {
				return
			}
			s.wg.Add(1)
			go func(msg amqp.Delivery) {
				defer s.wg.Done()

				if err := s.processMsg(msg); err != nil {
					s.mylog.Action("process_msg_failed").Error("Failed to process notification", err)
					if err := msg.Nack(false, false); err != nil {
						s.mylog.Action("nack_failed").Error("Failed to nack", err)
					}
				}
			}(msg)
		}
	}
}

func (s *Subscriber) processMsg(msg amqp.Delivery) error {
	var notif dto.Notification
	if err := json.Unmarshal(msg.Body, &notif); err != nil {
		return fmt.Errorf("unmarshal notification: %w", err)
	}

	log := s.mylog.WithGroup("details").With("tipo", notif.Tipo, "pedido_id", notif.PedidoID)
	log.Action("notification_received").Info("Received notification")

	switch notif.Tipo {
	case dto.NotifAlertaEntrega:
		fmt.Printf("¡Prepara un pedido! El pedido #%d de %s se entrega en %d min.\n",
			notif.PedidoID, notif.Cliente, notif.MinutosRestantes)
	case dto.NotifEstadoPedido:
		fmt.Printf("Pedido #%d cambió de '%s' a '%s'.\n",
			notif.PedidoID, notif.EstadoAnterior, notif.EstadoNuevo)
	default:
		fmt.Printf("Notificación desconocida para pedido #%d: %s\n", notif.PedidoID, notif.Tipo)
	}

	if err := msg.Ack(false); err != nil {
		return fmt.Errorf("acknowledge message: %w", err)
	}
	return nil
}

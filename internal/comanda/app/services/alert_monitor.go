package services

import (
	"context"
	"math"
	"time"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/xpkg/logger"
)

// AlertMonitor warns the staff shortly before an external pedido's requested
// delivery time. Every interval it scans pending external pedidos and emits
// exactly one alert per pedido whose horaEntrega falls inside the lookahead
// window. Alerted ids are remembered in memory only, so a restart may
// re-alert; that matches the original behavior.
type AlertMonitor struct {
	pedidoRepo    core.IPedidoRepo
	messageBroker core.IBroker
	mylog         logger.Logger

	interval  time.Duration
	lookahead time.Duration
	now       func() time.Time

	notified map[int64]struct{}
}

// NewAlertMonitor creates the monitor. messageBroker may be nil; alerts are
// then only logged.
func NewAlertMonitor(
	pedidoRepo core.IPedidoRepo,
	messageBroker core.IBroker,
	mylog logger.Logger,
	interval, lookahead time.Duration,
) *AlertMonitor {
	return &AlertMonitor{
		pedidoRepo:    pedidoRepo,
		messageBroker: messageBroker,
		mylog:         mylog,
		interval:      interval,
		lookahead:     lookahead,
		now:           time.Now,
		notified:      make(map[int64]struct{}),
	}
}

// Run scans on a fixed ticker until ctx is cancelled. Scan failures are
// logged and retried on the next tick.
func (am *AlertMonitor) Run(ctx context.Context) error {
	mylog := am.mylog.Action("alert_monitor_started").
		WithGroup("details").With("interval", am.interval.String(), "lookahead", am.lookahead.String())
	mylog.Info("Delivery-alert monitor is running")

	ticker := time.NewTicker(am.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			am.mylog.Action("alert_monitor_stopped").Info("Delivery-alert monitor stopped")
			return nil
		case <-ticker.C:
			if _, err := am.Scan(ctx); err != nil {
				am.mylog.Action("alert_scan_failed").Error("Failed to scan pedidos for alerts", err)
			}
		}
	}
}

// Scan runs a single pass and returns the alerts it emitted.
func (am *AlertMonitor) Scan(ctx context.Context) ([]dto.Notification, error) {
	pedidos, err := am.pedidoRepo.ListPendientesExternos(ctx)
	if err != nil {
		return nil, err
	}

	ahora := am.now()
	umbral := ahora.Add(am.lookahead)

	var alerts []dto.Notification
	for _, p := range pedidos {
		if p.HoraEntrega == nil {
			continue
		}
		if _, yaNotificado := am.notified[p.ID]; yaNotificado {
			continue
		}
		entrega := *p.HoraEntrega
		if !entrega.After(ahora) || entrega.After(umbral) {
			continue
		}

		cliente := "Cliente"
		if p.Cliente != nil && p.Cliente.Nombre != "" {
			cliente = p.Cliente.Nombre
		}
		minutos := int(math.Round(entrega.Sub(ahora).Minutes()))

		alert := dto.Notification{
			Tipo:             dto.NotifAlertaEntrega,
			PedidoID:         p.ID,
			Cliente:          cliente,
			MinutosRestantes: minutos,
			HoraEntrega:      entrega,
			EmitidoEn:        ahora.UTC(),
		}
		am.emit(ctx, alert)
		am.notified[p.ID] = struct{}{}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func (am *AlertMonitor) emit(ctx context.Context, alert dto.Notification) {
	am.mylog.Action("delivery_alert").
		Info("Pedido due soon", "pedido_id", alert.PedidoID, "cliente", alert.Cliente, "minutos_restantes", alert.MinutosRestantes)

	if am.messageBroker != nil {
		if err := am.messageBroker.PushMessage(ctx, alert); err != nil {
			am.mylog.Action("alert_publish_failed").Error("Failed to publish delivery alert", err, "pedido_id", alert.PedidoID)
		}
	}
}

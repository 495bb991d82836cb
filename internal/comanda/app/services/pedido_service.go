package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/comanda/domain/models"
	"carnitas-elguero/internal/xpkg/logger"
)

type PedidoService struct {
	pedidoRepo    core.IPedidoRepo
	messageBroker core.IBroker
	mylog         logger.Logger
	now           func() time.Time
}

// NewPedidoService creates the order ledger service. messageBroker may be
// nil when notifications are disabled.
func NewPedidoService(pedidoRepo core.IPedidoRepo, messageBroker core.IBroker, mylog logger.Logger) *PedidoService {
	return &PedidoService{
		pedidoRepo:    pedidoRepo,
		messageBroker: messageBroker,
		mylog:         mylog,
		now:           time.Now,
	}
}

func (ps *PedidoService) List(ctx context.Context) ([]models.Pedido, error) {
	return ps.pedidoRepo.List(ctx)
}

// Create records a new pedido. The initial estado is always "pendiente" no
// matter what the client submitted, fecha is server-assigned when absent,
// and total/cambio are recomputed from the line items rather than trusted.
func (ps *PedidoService) Create(ctx context.Context, req dto.PedidoCreateRequest) (models.Pedido, error) {
	mylog := ps.mylog.Action("create_pedido")

	pedido := models.Pedido{
		Tipo:          req.Tipo,
		Cliente:       req.Cliente,
		Items:         req.Items,
		CostoEnvio:    req.CostoEnvio,
		HoraEntrega:   req.HoraEntrega,
		MetodoPago:    req.MetodoPago,
		PagoCon:       req.PagoCon,
		Observaciones: req.Observaciones,
		Estado:        core.EstadoPendiente,
		MesaID:        req.MesaID,
	}

	pedido.Total = computeTotal(req.Items, req.CostoEnvio)
	if req.MetodoPago != nil && *req.MetodoPago == core.PagoEfectivo && req.PagoCon != nil {
		cambio := *req.PagoCon - pedido.Total
		pedido.Cambio = &cambio
	}

	pedido.Fecha = ps.now().UTC()
	if req.Fecha != nil && !req.Fecha.IsZero() {
		pedido.Fecha = req.Fecha.UTC()
	}

	created, err := ps.pedidoRepo.Create(ctx, pedido)
	if err != nil {
		mylog.Error("Failed to save pedido in db", err)
		return models.Pedido{}, err
	}

	mylog.Info("Pedido created successfully", "id", created.ID, "tipo", created.Tipo, "total", created.Total)
	return created, nil
}

// UpdateEstado applies the new status unconditionally; any state may move
// to any other. A staff notification is published on success, but a broker
// failure never fails the already-committed update.
func (ps *PedidoService) UpdateEstado(ctx context.Context, id int64, estado string) error {
	mylog := ps.mylog.Action("update_pedido_estado")

	oldEstado, err := ps.pedidoRepo.UpdateEstado(ctx, id, estado)
	if err != nil {
		mylog.Error("Failed to update pedido estado", err, "id", id)
		return err
	}
	mylog.Info("Pedido estado updated", "id", id, "old", oldEstado, "new", estado)

	if ps.messageBroker != nil {
		notif := dto.Notification{
			Tipo:           dto.NotifEstadoPedido,
			PedidoID:       id,
			EstadoAnterior: oldEstado,
			EstadoNuevo:    estado,
			EmitidoEn:      ps.now().UTC(),
		}
		if err := ps.messageBroker.PushMessage(ctx, notif); err != nil {
			mylog.Error("Failed to publish estado notification", err, "id", id)
		}
	}
	return nil
}

// ValidateCreate validates a pedido payload against predefined rules.
func (ps *PedidoService) ValidateCreate(req dto.PedidoCreateRequest) error {
	if req.Tipo == "" {
		return fmt.Errorf("invalid tipo: %w", core.ErrFieldIsEmpty)
	}
	if !core.AllowedTiposPedido[req.Tipo] {
		return fmt.Errorf("invalid tipo: undefined value: %s", req.Tipo)
	}

	if err := ps.validateItems(req.Items); err != nil {
		return err
	}

	switch req.Tipo {
	case core.TipoInterno:
		if req.MesaID == nil {
			return fmt.Errorf("invalid mesaId: required for pedido interno")
		}
	case core.TipoExterno:
		if req.Cliente == nil || req.Cliente.Nombre == "" {
			return fmt.Errorf("invalid cliente: nombre required for pedido externo")
		}
		if req.Cliente.TipoEntrega != "" && !core.AllowedTiposEntrega[req.Cliente.TipoEntrega] {
			return fmt.Errorf("invalid tipoEntrega: undefined value: %s", req.Cliente.TipoEntrega)
		}
		if req.Cliente.TipoEntrega == core.EntregaDomicilio && req.Cliente.Direccion == "" {
			return fmt.Errorf("invalid direccion: required for entrega a domicilio")
		}
	}

	if req.MetodoPago != nil && !core.AllowedMetodosPago[*req.MetodoPago] {
		return fmt.Errorf("invalid metodoPago: undefined value: %s", *req.MetodoPago)
	}
	if req.PagoCon != nil && (*req.PagoCon < 0 || math.IsNaN(*req.PagoCon) || math.IsInf(*req.PagoCon, 0)) {
		return fmt.Errorf("invalid pagoCon: must be a non-negative number")
	}
	if req.CostoEnvio != nil && *req.CostoEnvio < 0 {
		return fmt.Errorf("invalid costoEnvio: must not be negative")
	}
	return nil
}

// ValidateEstado checks a status-update value.
func (ps *PedidoService) ValidateEstado(estado string) error {
	if estado == "" {
		return fmt.Errorf("invalid estado: %w", core.ErrFieldIsEmpty)
	}
	if !core.AllowedEstadosPedido[estado] {
		return fmt.Errorf("invalid estado: undefined value: %s", estado)
	}
	return nil
}

func (ps *PedidoService) validateItems(items []models.Item) error {
	if len(items) == 0 {
		return fmt.Errorf("invalid items: %w", core.ErrFieldIsEmpty)
	}
	if len(items) > core.MaxItems {
		return fmt.Errorf("invalid items: amount %d exceeds %d", len(items), core.MaxItems)
	}
	for i, item := range items {
		if item.Nombre == "" {
			return fmt.Errorf("item %d: invalid nombre: %w", i+1, core.ErrFieldIsEmpty)
		}
		if item.Cantidad < 1 || item.Cantidad > core.MaxItemCantidad {
			return fmt.Errorf("item %d: cantidad %d must be in range [1, %d]", i+1, item.Cantidad, core.MaxItemCantidad)
		}
		if item.Precio < 0 || math.IsNaN(item.Precio) || math.IsInf(item.Precio, 0) {
			return fmt.Errorf("item %d: precio must be a non-negative number", i+1)
		}
	}
	return nil
}

func computeTotal(items []models.Item, costoEnvio *float64) float64 {
	total := 0.0
	for _, item := range items {
		total += float64(item.Cantidad) * item.Precio
	}
	if costoEnvio != nil {
		total += *costoEnvio
	}
	return total
}

package dto

import "time"

// Notification mirrors the message published by the comanda service on the
// notification fanout.
type Notification struct {
	Tipo             string    `json:"tipo"`
	PedidoID         int64     `json:"pedidoId"`
	Cliente          string    `json:"cliente"`
	EstadoAnterior   string    `json:"estadoAnterior"`
	EstadoNuevo      string    `json:"estadoNuevo"`
	MinutosRestantes int       `json:"minutosRestantes"`
	HoraEntrega      time.Time `json:"horaEntrega"`
	EmitidoEn        time.Time `json:"emitidoEn"`
}

const (
	NotifEstadoPedido  = "estado_pedido"
	NotifAlertaEntrega = "alerta_entrega"
)

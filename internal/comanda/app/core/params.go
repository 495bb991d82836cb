package core

// ComandaParams holds the CLI-tunable knobs of the comanda service.
type ComandaParams struct {
	Port             int
	AlertInterval    int // seconds between delivery-alert scans
	AlertLookahead   int // minutes before horaEntrega that an alert fires
	SkipNotification bool
}

// WaitTime is the per-request timeout in seconds.
const WaitTime = 10

// Order lifecycle states.
const (
	EstadoPendiente   = "pendiente"
	EstadoPreparacion = "preparacion"
	EstadoListo       = "listo"
	EstadoEntregado   = "entregado"
)

// Table occupancy states.
const (
	MesaDisponible = "disponible"
	MesaOcupada    = "ocupada"
)

// Order channels.
const (
	TipoExterno = "externo"
	TipoInterno = "interno"
)

// Payment methods.
const (
	PagoEfectivo      = "efectivo"
	PagoTransferencia = "transferencia"
)

// Delivery modes for external orders.
const (
	EntregaRecoger   = "recoger"
	EntregaDomicilio = "domicilio"
)

var AllowedEstadosPedido = map[string]bool{
	EstadoPendiente:   true,
	EstadoPreparacion: true,
	EstadoListo:       true,
	EstadoEntregado:   true,
}

var AllowedEstadosMesa = map[string]bool{
	MesaDisponible: true,
	MesaOcupada:    true,
}

var AllowedTiposPedido = map[string]bool{
	TipoExterno: true,
	TipoInterno: true,
}

var AllowedMetodosPago = map[string]bool{
	PagoEfectivo:      true,
	PagoTransferencia: true,
}

var AllowedTiposEntrega = map[string]bool{
	EntregaRecoger:   true,
	EntregaDomicilio: true,
}

// Validation bounds.
const (
	MaxNombreLen    = 100
	MaxItems        = 50
	MaxItemCantidad = 100
)

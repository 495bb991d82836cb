package dto

import (
	"encoding/json"
	"strings"
	"time"

	"carnitas-elguero/internal/comanda/domain/models"
)

// TiposField accepts the variant list either as a JSON array or as a single
// delimited label string ("Maciza, Cuerito, Surtida"), which is how the
// admin form submits it.
type TiposField []string

func (t *TiposField) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = TiposField(trimLabels(list))
		return nil
	}
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*t = TiposField(ParseTipos(label))
	return nil
}

// ParseTipos splits a comma-delimited label string into a trimmed list,
// dropping empty entries.
func ParseTipos(label string) []string {
	return trimLabels(strings.Split(label, ","))
}

func trimLabels(labels []string) []string {
	var out []string
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

type ProductoCreateRequest struct {
	Nombre     string     `json:"nombre"`
	Precio     float64    `json:"precio"`
	Categoria  string     `json:"categoria"`
	Tipos      TiposField `json:"tipos"`
	Disponible *bool      `json:"disponible"`
}

// ProductoUpdateRequest is a partial update; nil fields stay unchanged.
type ProductoUpdateRequest struct {
	Nombre     *string  `json:"nombre"`
	Precio     *float64 `json:"precio"`
	Disponible *bool    `json:"disponible"`
}

type MesaUpdateRequest struct {
	Estado       string `json:"estado"`
	PedidoActual *int64 `json:"pedidoActual"`
}

type PedidoCreateRequest struct {
	Tipo          string          `json:"tipo"`
	Cliente       *models.Cliente `json:"cliente"`
	Items         []models.Item   `json:"items"`
	Total         float64         `json:"total"`
	CostoEnvio    *float64        `json:"costoEnvio"`
	HoraEntrega   *time.Time      `json:"horaEntrega"`
	MetodoPago    *string         `json:"metodoPago"`
	PagoCon       *float64        `json:"pagoCon"`
	Observaciones *string         `json:"observaciones"`
	Estado        string          `json:"estado"`
	Fecha         *time.Time      `json:"fecha"`
	MesaID        *int64          `json:"mesaId"`
}

type PedidoEstadoRequest struct {
	Estado string `json:"estado"`
}

type SaborCreateRequest struct {
	Nombre    string `json:"nombre"`
	Categoria string `json:"categoria"`
}

type SaborUpdateRequest struct {
	Disponible *bool `json:"disponible"`
}

// Notification is the message published on the staff notification fanout.
// Tipo distinguishes status changes from delivery alerts.
type Notification struct {
	Tipo             string    `json:"tipo"`
	PedidoID         int64     `json:"pedidoId"`
	Cliente          string    `json:"cliente,omitempty"`
	EstadoAnterior   string    `json:"estadoAnterior,omitempty"`
	EstadoNuevo      string    `json:"estadoNuevo,omitempty"`
	MinutosRestantes int       `json:"minutosRestantes,omitempty"`
	HoraEntrega      time.Time `json:"horaEntrega,omitzero"`
	EmitidoEn        time.Time `json:"emitidoEn"`
}

const (
	NotifEstadoPedido  = "estado_pedido"
	NotifAlertaEntrega = "alerta_entrega"
)

package models

import "time"

// Producto is a catalog item. Tipos holds the variant labels (cuts) a
// customer can pick from; it is nil for goods without variants.
type Producto struct {
	ID         int64    `json:"id"`
	Nombre     string   `json:"nombre"`
	Precio     float64  `json:"precio"`
	Categoria  string   `json:"categoria"`
	Disponible bool     `json:"disponible"`
	Tipos      []string `json:"tipos"`
}

// Mesa is a dine-in table. PedidoActual is non-nil exactly when the table
// is occupied.
type Mesa struct {
	ID           int64  `json:"id"`
	Numero       int    `json:"numero"`
	Estado       string `json:"estado"`
	PedidoActual *int64 `json:"pedidoActual"`
}

// Cliente is the customer block of an external order.
type Cliente struct {
	Nombre      string `json:"nombre"`
	Telefono    string `json:"telefono"`
	Direccion   string `json:"direccion"`
	TipoEntrega string `json:"tipoEntrega"`
}

// Item is one ordered line. Tipo is the chosen variant label, if the
// product has variants. ConVerdura only applies to tacos and tortas.
type Item struct {
	ProductoID int64   `json:"productoId"`
	Nombre     string  `json:"nombre"`
	Precio     float64 `json:"precio"`
	Cantidad   int     `json:"cantidad"`
	Tipo       string  `json:"tipo,omitempty"`
	ConVerdura *bool   `json:"conVerdura"`
}

type Pedido struct {
	ID            int64      `json:"id"`
	Tipo          string     `json:"tipo"`
	Cliente       *Cliente   `json:"cliente"`
	Items         []Item     `json:"items"`
	Total         float64    `json:"total"`
	CostoEnvio    *float64   `json:"costoEnvio"`
	HoraEntrega   *time.Time `json:"horaEntrega"`
	MetodoPago    *string    `json:"metodoPago"`
	PagoCon       *float64   `json:"pagoCon"`
	Cambio        *float64   `json:"cambio"`
	Observaciones *string    `json:"observaciones"`
	Estado        string     `json:"estado"`
	Fecha         time.Time  `json:"fecha"`
	MesaID        *int64     `json:"mesaId"`
}

// Sabor is a flavor entry offered per category, toggled on and off as the
// pots empty over the day.
type Sabor struct {
	ID         int64  `json:"id"`
	Nombre     string `json:"nombre"`
	Categoria  string `json:"categoria"`
	Disponible bool   `json:"disponible"`
}

package core

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/comanda/domain/models"
)

// IDB is the storage handle owned by the server: opened at startup,
// closed at shutdown, never global.
type IDB interface {
	GetPool() *pgxpool.Pool
	IsAlive(ctx context.Context) error
	Close() error
}

type IProductoRepo interface {
	List(ctx context.Context) ([]models.Producto, error)
	Create(ctx context.Context, p models.Producto) (models.Producto, error)
	Update(ctx context.Context, id int64, upd dto.ProductoUpdateRequest) (models.Producto, error)
}

type IMesaRepo interface {
	List(ctx context.Context) ([]models.Mesa, error)
	UpdateEstado(ctx context.Context, id int64, estado string, pedidoActual *int64) (models.Mesa, error)
}

type IPedidoRepo interface {
	List(ctx context.Context) ([]models.Pedido, error)
	// ListPendientesExternos returns pending external orders with a set
	// delivery time, for the delivery-alert monitor.
	ListPendientesExternos(ctx context.Context) ([]models.Pedido, error)
	Create(ctx context.Context, p models.Pedido) (models.Pedido, error)
	// UpdateEstado applies the new status and returns the previous one.
	UpdateEstado(ctx context.Context, id int64, estado string) (string, error)
}

type ISaborRepo interface {
	List(ctx context.Context, categoria string) ([]models.Sabor, error)
	Create(ctx context.Context, s models.Sabor) (models.Sabor, error)
	UpdateDisponible(ctx context.Context, id int64, disponible bool) (models.Sabor, error)
}

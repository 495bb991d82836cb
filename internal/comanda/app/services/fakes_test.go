package services

import (
	"context"
	"sync"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/comanda/domain/models"
)

type fakeProductoRepo struct {
	productos []models.Producto
	nextID    int64
}

func (f *fakeProductoRepo) List(ctx context.Context) ([]models.Producto, error) {
	out := make([]models.Producto, len(f.productos))
	copy(out, f.productos)
	return out, nil
}

func (f *fakeProductoRepo) Create(ctx context.Context, p models.Producto) (models.Producto, error) {
	for _, existing := range f.productos {
		if existing.Nombre == p.Nombre {
			return models.Producto{}, core.ErrDuplicateNombre
		}
	}
	f.nextID++
	p.ID = f.nextID
	f.productos = append(f.productos, p)
	return p, nil
}

func (f *fakeProductoRepo) Update(ctx context.Context, id int64, upd dto.ProductoUpdateRequest) (models.Producto, error) {
	for i := range f.productos {
		if f.productos[i].ID != id {
			continue
		}
		if upd.Nombre != nil {
			f.productos[i].Nombre = *upd.Nombre
		}
		if upd.Precio != nil {
			f.productos[i].Precio = *upd.Precio
		}
		if upd.Disponible != nil {
			f.productos[i].Disponible = *upd.Disponible
		}
		return f.productos[i], nil
	}
	return models.Producto{}, core.ErrNotFound
}

type fakeMesaRepo struct {
	mesas []models.Mesa
}

func (f *fakeMesaRepo) List(ctx context.Context) ([]models.Mesa, error) {
	out := make([]models.Mesa, len(f.mesas))
	copy(out, f.mesas)
	return out, nil
}

func (f *fakeMesaRepo) UpdateEstado(ctx context.Context, id int64, estado string, pedidoActual *int64) (models.Mesa, error) {
	for i := range f.mesas {
		if f.mesas[i].ID != id {
			continue
		}
		f.mesas[i].Estado = estado
		f.mesas[i].PedidoActual = pedidoActual
		return f.mesas[i], nil
	}
	return models.Mesa{}, core.ErrNotFound
}

type fakePedidoRepo struct {
	pedidos []models.Pedido
	nextID  int64
}

func (f *fakePedidoRepo) List(ctx context.Context) ([]models.Pedido, error) {
	out := make([]models.Pedido, len(f.pedidos))
	copy(out, f.pedidos)
	return out, nil
}

func (f *fakePedidoRepo) ListPendientesExternos(ctx context.Context) ([]models.Pedido, error) {
	var out []models.Pedido
	for _, p := range f.pedidos {
		if p.Tipo == core.TipoExterno && p.Estado == core.EstadoPendiente && p.HoraEntrega != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePedidoRepo) Create(ctx context.Context, p models.Pedido) (models.Pedido, error) {
	f.nextID++
	p.ID = f.nextID
	f.pedidos = append(f.pedidos, p)
	return p, nil
}

func (f *fakePedidoRepo) UpdateEstado(ctx context.Context, id int64, estado string) (string, error) {
	for i := range f.pedidos {
		if f.pedidos[i].ID != id {
			continue
		}
		old := f.pedidos[i].Estado
		f.pedidos[i].Estado = estado
		return old, nil
	}
	return "", core.ErrNotFound
}

type fakeBroker struct {
	mu       sync.Mutex
	messages []any
	failWith error
}

func (f *fakeBroker) PushMessage(ctx context.Context, message any) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeBroker) Close() error { return nil }

func (f *fakeBroker) published() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]any, len(f.messages))
	copy(out, f.messages)
	return out
}

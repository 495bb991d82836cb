package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/comanda/domain/models"
	"carnitas-elguero/internal/xpkg/logger"
)

func newTestPedidoService(repo core.IPedidoRepo, broker core.IBroker) *PedidoService {
	ps := NewPedidoService(repo, broker, logger.Discard())
	ps.now = func() time.Time {
		return time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	}
	return ps
}

func externoRequest() dto.PedidoCreateRequest {
	return dto.PedidoCreateRequest{
		Tipo: core.TipoExterno,
		Cliente: &models.Cliente{
			Nombre:      "Don Ramón",
			Telefono:    "5512345678",
			TipoEntrega: core.EntregaRecoger,
		},
		Items: []models.Item{
			{ProductoID: 1, Nombre: "Taco 15", Precio: 15, Cantidad: 3},
			{ProductoID: 2, Nombre: "Refresco", Precio: 25, Cantidad: 1},
		},
	}
}

func TestPedidoCreateForcesPendiente(t *testing.T) {
	ps := newTestPedidoService(&fakePedidoRepo{}, nil)

	req := externoRequest()
	req.Estado = core.EstadoEntregado // clients cannot pick the initial state

	created, err := ps.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, core.EstadoPendiente, created.Estado)
	assert.Equal(t, int64(1), created.ID)
}

func TestPedidoCreateComputesTotal(t *testing.T) {
	ps := newTestPedidoService(&fakePedidoRepo{}, nil)

	req := externoRequest()
	req.Total = 1.0 // ignored; the server recomputes from the items

	created, err := ps.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 70.0, created.Total, "3*15 + 1*25")

	envio := 30.0
	req = externoRequest()
	req.CostoEnvio = &envio
	req.Cliente.TipoEntrega = core.EntregaDomicilio
	req.Cliente.Direccion = "Av. Juárez 5"

	created, err = ps.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, created.Total, "delivery fee is part of the total")
}

func TestPedidoCreateComputesCambio(t *testing.T) {
	ps := newTestPedidoService(&fakePedidoRepo{}, nil)

	metodo := core.PagoEfectivo
	pagoCon := 200.0
	req := externoRequest()
	req.MetodoPago = &metodo
	req.PagoCon = &pagoCon

	created, err := ps.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, created.Cambio)
	assert.Equal(t, 130.0, *created.Cambio)

	// transferencia never carries change
	metodo = core.PagoTransferencia
	req = externoRequest()
	req.MetodoPago = &metodo
	req.PagoCon = &pagoCon

	created, err = ps.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, created.Cambio)
}

func TestPedidoCreateAssignsFecha(t *testing.T) {
	ps := newTestPedidoService(&fakePedidoRepo{}, nil)

	created, err := ps.Create(context.Background(), externoRequest())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC), created.Fecha)

	fecha := time.Date(2024, 6, 14, 9, 30, 0, 0, time.UTC)
	req := externoRequest()
	req.Fecha = &fecha
	created, err = ps.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, fecha, created.Fecha, "an explicit fecha is kept")
}

func TestPedidoValidateCreate(t *testing.T) {
	ps := newTestPedidoService(&fakePedidoRepo{}, nil)
	mesaID := int64(3)
	badPago := "cheque"
	negativo := -10.0

	tests := []struct {
		name    string
		mutate  func(*dto.PedidoCreateRequest)
		wantErr bool
	}{
		{"valid externo", func(r *dto.PedidoCreateRequest) {}, false},
		{"valid interno", func(r *dto.PedidoCreateRequest) {
			r.Tipo = core.TipoInterno
			r.Cliente = nil
			r.MesaID = &mesaID
		}, false},
		{"missing tipo", func(r *dto.PedidoCreateRequest) { r.Tipo = "" }, true},
		{"unknown tipo", func(r *dto.PedidoCreateRequest) { r.Tipo = "telefonico" }, true},
		{"no items", func(r *dto.PedidoCreateRequest) { r.Items = nil }, true},
		{"item without nombre", func(r *dto.PedidoCreateRequest) { r.Items[0].Nombre = "" }, true},
		{"item zero cantidad", func(r *dto.PedidoCreateRequest) { r.Items[0].Cantidad = 0 }, true},
		{"item negative precio", func(r *dto.PedidoCreateRequest) { r.Items[0].Precio = -1 }, true},
		{"interno without mesa", func(r *dto.PedidoCreateRequest) {
			r.Tipo = core.TipoInterno
			r.Cliente = nil
		}, true},
		{"externo without cliente", func(r *dto.PedidoCreateRequest) { r.Cliente = nil }, true},
		{"externo empty nombre", func(r *dto.PedidoCreateRequest) { r.Cliente.Nombre = "" }, true},
		{"domicilio without direccion", func(r *dto.PedidoCreateRequest) {
			r.Cliente.TipoEntrega = core.EntregaDomicilio
		}, true},
		{"unknown metodoPago", func(r *dto.PedidoCreateRequest) { r.MetodoPago = &badPago }, true},
		{"negative pagoCon", func(r *dto.PedidoCreateRequest) { r.PagoCon = &negativo }, true},
		{"negative costoEnvio", func(r *dto.PedidoCreateRequest) { r.CostoEnvio = &negativo }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := externoRequest()
			tt.mutate(&req)
			err := ps.ValidateCreate(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPedidoValidateEstado(t *testing.T) {
	ps := newTestPedidoService(&fakePedidoRepo{}, nil)

	for _, estado := range []string{core.EstadoPendiente, core.EstadoPreparacion, core.EstadoListo, core.EstadoEntregado} {
		assert.NoError(t, ps.ValidateEstado(estado))
	}
	assert.Error(t, ps.ValidateEstado(""))
	assert.Error(t, ps.ValidateEstado("cancelado"))
}

func TestPedidoUpdateEstadoPublishesNotification(t *testing.T) {
	repo := &fakePedidoRepo{}
	broker := &fakeBroker{}
	ps := newTestPedidoService(repo, broker)
	ctx := context.Background()

	created, err := ps.Create(ctx, externoRequest())
	require.NoError(t, err)

	require.NoError(t, ps.UpdateEstado(ctx, created.ID, core.EstadoPreparacion))

	published := broker.published()
	require.Len(t, published, 1)
	notif, ok := published[0].(dto.Notification)
	require.True(t, ok)
	assert.Equal(t, dto.NotifEstadoPedido, notif.Tipo)
	assert.Equal(t, created.ID, notif.PedidoID)
	assert.Equal(t, core.EstadoPendiente, notif.EstadoAnterior)
	assert.Equal(t, core.EstadoPreparacion, notif.EstadoNuevo)
}

func TestPedidoUpdateEstadoBrokerFailureIsSwallowed(t *testing.T) {
	repo := &fakePedidoRepo{}
	broker := &fakeBroker{failWith: errors.New("channel closed")}
	ps := newTestPedidoService(repo, broker)
	ctx := context.Background()

	created, err := ps.Create(ctx, externoRequest())
	require.NoError(t, err)

	assert.NoError(t, ps.UpdateEstado(ctx, created.ID, core.EstadoListo),
		"a committed estado change survives a broker outage")

	list, err := ps.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, core.EstadoListo, list[0].Estado)
}

func TestPedidoUpdateEstadoNotFound(t *testing.T) {
	ps := newTestPedidoService(&fakePedidoRepo{}, nil)

	err := ps.UpdateEstado(context.Background(), 404, core.EstadoListo)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/comanda/domain/models"
	"carnitas-elguero/internal/xpkg/logger"
)

func TestMesaValidateUpdate(t *testing.T) {
	ms := NewMesaService(&fakeMesaRepo{}, logger.Discard())
	pedidoID := int64(7)

	assert.Error(t, ms.ValidateUpdate(dto.MesaUpdateRequest{}))
	assert.Error(t, ms.ValidateUpdate(dto.MesaUpdateRequest{Estado: "reservada"}))
	assert.Error(t, ms.ValidateUpdate(dto.MesaUpdateRequest{Estado: core.MesaOcupada}),
		"ocupada without an order marker is inconsistent")

	assert.NoError(t, ms.ValidateUpdate(dto.MesaUpdateRequest{Estado: core.MesaOcupada, PedidoActual: &pedidoID}))
	assert.NoError(t, ms.ValidateUpdate(dto.MesaUpdateRequest{Estado: core.MesaDisponible}))
}

func TestMesaOccupyAndRelease(t *testing.T) {
	repo := &fakeMesaRepo{mesas: []models.Mesa{
		{ID: 1, Numero: 1, Estado: core.MesaDisponible},
		{ID: 2, Numero: 2, Estado: core.MesaDisponible},
	}}
	ms := NewMesaService(repo, logger.Discard())
	ctx := context.Background()

	pedidoID := int64(42)
	mesa, err := ms.UpdateEstado(ctx, 1, dto.MesaUpdateRequest{Estado: core.MesaOcupada, PedidoActual: &pedidoID})
	require.NoError(t, err)
	assert.Equal(t, core.MesaOcupada, mesa.Estado)
	require.NotNil(t, mesa.PedidoActual)
	assert.Equal(t, int64(42), *mesa.PedidoActual)

	// releasing clears the marker even if the client echoes it back
	mesa, err = ms.UpdateEstado(ctx, 1, dto.MesaUpdateRequest{Estado: core.MesaDisponible, PedidoActual: &pedidoID})
	require.NoError(t, err)
	assert.Equal(t, core.MesaDisponible, mesa.Estado)
	assert.Nil(t, mesa.PedidoActual)

	list, err := ms.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, core.MesaDisponible, list[1].Estado, "other mesas are untouched")
}

func TestMesaUpdateNotFound(t *testing.T) {
	ms := NewMesaService(&fakeMesaRepo{}, logger.Discard())

	_, err := ms.UpdateEstado(context.Background(), 99, dto.MesaUpdateRequest{Estado: core.MesaDisponible})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

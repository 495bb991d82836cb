package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/xpkg/logger"
)

func TestProductoValidateCreate(t *testing.T) {
	ps := NewProductoService(&fakeProductoRepo{}, logger.Discard())

	tests := []struct {
		name    string
		req     dto.ProductoCreateRequest
		wantErr bool
	}{
		{"valid", dto.ProductoCreateRequest{Nombre: "Taco 15", Precio: 15, Categoria: "taco"}, false},
		{"valid with tipos", dto.ProductoCreateRequest{Nombre: "Torta", Precio: 35, Categoria: "torta", Tipos: dto.TiposField{"Maciza", "Surtida"}}, false},
		{"empty nombre", dto.ProductoCreateRequest{Precio: 15, Categoria: "taco"}, true},
		{"empty categoria", dto.ProductoCreateRequest{Nombre: "Taco 15", Precio: 15}, true},
		{"zero precio", dto.ProductoCreateRequest{Nombre: "Taco 15", Categoria: "taco"}, true},
		{"negative precio", dto.ProductoCreateRequest{Nombre: "Taco 15", Precio: -5, Categoria: "taco"}, true},
		{"NaN precio", dto.ProductoCreateRequest{Nombre: "Taco 15", Precio: math.NaN(), Categoria: "taco"}, true},
		{"infinite precio", dto.ProductoCreateRequest{Nombre: "Taco 15", Precio: math.Inf(1), Categoria: "taco"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ps.ValidateCreate(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductoCreate(t *testing.T) {
	repo := &fakeProductoRepo{}
	ps := NewProductoService(repo, logger.Discard())
	ctx := context.Background()

	created, err := ps.Create(ctx, dto.ProductoCreateRequest{
		Nombre:    "Taco 15",
		Precio:    15,
		Categoria: "taco",
		Tipos:     dto.TiposField{"Maciza", "Cuerito"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.Disponible, "new productos default to disponible")
	assert.Equal(t, []string{"Maciza", "Cuerito"}, created.Tipos)

	_, err = ps.Create(ctx, dto.ProductoCreateRequest{Nombre: "Taco 15", Precio: 20, Categoria: "taco"})
	assert.ErrorIs(t, err, core.ErrDuplicateNombre)
}

func TestProductoCreateExplicitDisponible(t *testing.T) {
	ps := NewProductoService(&fakeProductoRepo{}, logger.Discard())

	disponible := false
	created, err := ps.Create(context.Background(), dto.ProductoCreateRequest{
		Nombre:     "Agua de horchata",
		Precio:     25,
		Categoria:  "bebida",
		Disponible: &disponible,
	})
	require.NoError(t, err)
	assert.False(t, created.Disponible)
}

func TestProductoValidateUpdate(t *testing.T) {
	ps := NewProductoService(&fakeProductoRepo{}, logger.Discard())

	assert.Error(t, ps.ValidateUpdate(dto.ProductoUpdateRequest{}), "empty update is rejected")

	empty := ""
	assert.Error(t, ps.ValidateUpdate(dto.ProductoUpdateRequest{Nombre: &empty}))

	negative := -1.0
	assert.Error(t, ps.ValidateUpdate(dto.ProductoUpdateRequest{Precio: &negative}))

	precio := 18.0
	assert.NoError(t, ps.ValidateUpdate(dto.ProductoUpdateRequest{Precio: &precio}))

	// zero is fine on update, it marks a free item rather than a bad form
	zero := 0.0
	assert.NoError(t, ps.ValidateUpdate(dto.ProductoUpdateRequest{Precio: &zero}))
}

func TestProductoUpdate(t *testing.T) {
	repo := &fakeProductoRepo{}
	ps := NewProductoService(repo, logger.Discard())
	ctx := context.Background()

	created, err := ps.Create(ctx, dto.ProductoCreateRequest{Nombre: "Taco 15", Precio: 15, Categoria: "taco"})
	require.NoError(t, err)

	precio := 18.0
	updated, err := ps.Update(ctx, created.ID, dto.ProductoUpdateRequest{Precio: &precio})
	require.NoError(t, err)
	assert.Equal(t, 18.0, updated.Precio)
	assert.Equal(t, "Taco 15", updated.Nombre, "untouched fields survive a partial update")

	list, err := ps.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 18.0, list[0].Precio)

	_, err = ps.Update(ctx, 999, dto.ProductoUpdateRequest{Precio: &precio})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestProductoAvailabilityToggle(t *testing.T) {
	repo := &fakeProductoRepo{}
	ps := NewProductoService(repo, logger.Discard())
	ctx := context.Background()

	created, err := ps.Create(ctx, dto.ProductoCreateRequest{Nombre: "Carnitas kilo", Precio: 280, Categoria: "carnitas"})
	require.NoError(t, err)

	off, on := false, true
	updated, err := ps.Update(ctx, created.ID, dto.ProductoUpdateRequest{Disponible: &off})
	require.NoError(t, err)
	assert.False(t, updated.Disponible)

	updated, err = ps.Update(ctx, created.ID, dto.ProductoUpdateRequest{Disponible: &on})
	require.NoError(t, err)
	assert.True(t, updated.Disponible)
	assert.Equal(t, created.Precio, updated.Precio, "toggling availability leaves the rest intact")
}

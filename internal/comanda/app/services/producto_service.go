package services

import (
	"context"
	"fmt"
	"math"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/comanda/domain/models"
	"carnitas-elguero/internal/xpkg/logger"
)

type ProductoService struct {
	productoRepo core.IProductoRepo
	mylog        logger.Logger
}

func NewProductoService(productoRepo core.IProductoRepo, mylog logger.Logger) *ProductoService {
	return &ProductoService{
		productoRepo: productoRepo,
		mylog:        mylog,
	}
}

func (ps *ProductoService) List(ctx context.Context) ([]models.Producto, error) {
	return ps.productoRepo.List(ctx)
}

func (ps *ProductoService) Create(ctx context.Context, req dto.ProductoCreateRequest) (models.Producto, error) {
	mylog := ps.mylog.Action("create_producto")

	producto := models.Producto{
		Nombre:     req.Nombre,
		Precio:     req.Precio,
		Categoria:  req.Categoria,
		Tipos:      []string(req.Tipos),
		Disponible: true,
	}
	if req.Disponible != nil {
		producto.Disponible = *req.Disponible
	}

	created, err := ps.productoRepo.Create(ctx, producto)
	if err != nil {
		mylog.Error("Failed to save producto in db", err)
		return models.Producto{}, err
	}

	mylog.Info("Producto created successfully", "id", created.ID, "nombre", created.Nombre)
	return created, nil
}

func (ps *ProductoService) Update(ctx context.Context, id int64, upd dto.ProductoUpdateRequest) (models.Producto, error) {
	updated, err := ps.productoRepo.Update(ctx, id, upd)
	if err != nil {
		ps.mylog.Action("update_producto").Error("Failed to update producto", err, "id", id)
		return models.Producto{}, err
	}
	return updated, nil
}

// ValidateCreate validates a new catalog entry against predefined rules.
func (ps *ProductoService) ValidateCreate(req dto.ProductoCreateRequest) error {
	if req.Nombre == "" {
		return fmt.Errorf("invalid nombre: %w", core.ErrFieldIsEmpty)
	}
	if len(req.Nombre) > core.MaxNombreLen {
		return fmt.Errorf("invalid nombre: length %d exceeds %d", len(req.Nombre), core.MaxNombreLen)
	}
	if req.Categoria == "" {
		return fmt.Errorf("invalid categoria: %w", core.ErrFieldIsEmpty)
	}
	if err := validatePrecio(req.Precio); err != nil {
		return err
	}
	if req.Precio == 0 {
		return fmt.Errorf("invalid precio: must be positive")
	}
	return nil
}

// ValidateUpdate checks a partial update; every present field must be valid
// and at least one field must be present.
func (ps *ProductoService) ValidateUpdate(upd dto.ProductoUpdateRequest) error {
	if upd.Nombre == nil && upd.Precio == nil && upd.Disponible == nil {
		return fmt.Errorf("invalid update: no fields provided")
	}
	if upd.Nombre != nil && *upd.Nombre == "" {
		return fmt.Errorf("invalid nombre: %w", core.ErrFieldIsEmpty)
	}
	if upd.Precio != nil {
		if err := validatePrecio(*upd.Precio); err != nil {
			return err
		}
	}
	return nil
}

func validatePrecio(precio float64) error {
	if math.IsNaN(precio) || math.IsInf(precio, 0) {
		return fmt.Errorf("invalid precio: must be a finite number")
	}
	if precio < 0 {
		return fmt.Errorf("invalid precio: must not be negative: %f", precio)
	}
	return nil
}

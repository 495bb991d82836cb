package services

import (
	"context"
	"fmt"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/comanda/domain/models"
	"carnitas-elguero/internal/xpkg/logger"
)

type SaborService struct {
	saborRepo core.ISaborRepo
	mylog     logger.Logger
}

func NewSaborService(saborRepo core.ISaborRepo, mylog logger.Logger) *SaborService {
	return &SaborService{
		saborRepo: saborRepo,
		mylog:     mylog,
	}
}

func (ss *SaborService) List(ctx context.Context, categoria string) ([]models.Sabor, error) {
	return ss.saborRepo.List(ctx, categoria)
}

func (ss *SaborService) Create(ctx context.Context, req dto.SaborCreateRequest) (models.Sabor, error) {
	sabor, err := ss.saborRepo.Create(ctx, models.Sabor{
		Nombre:    req.Nombre,
		Categoria: req.Categoria,
	})
	if err != nil {
		ss.mylog.Action("create_sabor").Error("Failed to save sabor in db", err)
		return models.Sabor{}, err
	}
	return sabor, nil
}

func (ss *SaborService) UpdateDisponible(ctx context.Context, id int64, disponible bool) (models.Sabor, error) {
	sabor, err := ss.saborRepo.UpdateDisponible(ctx, id, disponible)
	if err != nil {
		ss.mylog.Action("update_sabor").Error("Failed to update sabor", err, "id", id)
		return models.Sabor{}, err
	}
	return sabor, nil
}

func (ss *SaborService) ValidateCreate(req dto.SaborCreateRequest) error {
	if req.Nombre == "" {
		return fmt.Errorf("invalid nombre: %w", core.ErrFieldIsEmpty)
	}
	if req.Categoria == "" {
		return fmt.Errorf("invalid categoria: %w", core.ErrFieldIsEmpty)
	}
	return nil
}

package services

import (
	"context"
	"fmt"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/comanda/domain/models"
	"carnitas-elguero/internal/xpkg/logger"
)

type MesaService struct {
	mesaRepo core.IMesaRepo
	mylog    logger.Logger
}

func NewMesaService(mesaRepo core.IMesaRepo, mylog logger.Logger) *MesaService {
	return &MesaService{
		mesaRepo: mesaRepo,
		mylog:    mylog,
	}
}

func (ms *MesaService) List(ctx context.Context) ([]models.Mesa, error) {
	return ms.mesaRepo.List(ctx)
}

// UpdateEstado moves a mesa between disponible and ocupada. The occupancy
// invariant is enforced here: ocupada always carries an active-order marker,
// disponible never does.
func (ms *MesaService) UpdateEstado(ctx context.Context, id int64, req dto.MesaUpdateRequest) (models.Mesa, error) {
	mylog := ms.mylog.Action("update_mesa")

	pedidoActual := req.PedidoActual
	if req.Estado == core.MesaDisponible {
		// releasing always clears the marker, whatever the client sent
		pedidoActual = nil
	}

	mesa, err := ms.mesaRepo.UpdateEstado(ctx, id, req.Estado, pedidoActual)
	if err != nil {
		mylog.Error("Failed to update mesa", err, "id", id)
		return models.Mesa{}, err
	}

	mylog.Info("Mesa updated", "numero", mesa.Numero, "estado", mesa.Estado)
	return mesa, nil
}

func (ms *MesaService) ValidateUpdate(req dto.MesaUpdateRequest) error {
	if req.Estado == "" {
		return fmt.Errorf("invalid estado: %w", core.ErrFieldIsEmpty)
	}
	if !core.AllowedEstadosMesa[req.Estado] {
		return fmt.Errorf("invalid estado: undefined value: %s", req.Estado)
	}
	if req.Estado == core.MesaOcupada && req.PedidoActual == nil {
		return fmt.Errorf("invalid pedidoActual: required when mesa is ocupada")
	}
	return nil
}

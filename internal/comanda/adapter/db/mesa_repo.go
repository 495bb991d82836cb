package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/models"
)

type MesaRepo struct {
	db core.IDB
}

func NewMesaRepo(db core.IDB) *MesaRepo {
	return &MesaRepo{db: db}
}

func (mr *MesaRepo) List(ctx context.Context) ([]models.Mesa, error) {
	rows, err := mr.db.GetPool().Query(ctx,
		`SELECT id, numero, estado, pedido_actual FROM mesas ORDER BY numero`)
	if err != nil {
		return nil, fmt.Errorf("query mesas: %w", err)
	}
	defer rows.Close()

	var mesas []models.Mesa
	for rows.Next() {
		var m models.Mesa
		if err := rows.Scan(&m.ID, &m.Numero, &m.Estado, &m.PedidoActual); err != nil {
			return nil, fmt.Errorf("scan mesa: %w", err)
		}
		mesas = append(mesas, m)
	}
	return mesas, rows.Err()
}

// UpdateEstado writes the occupancy state and the active-order marker as one
// row update, so a mesa can never be half-transitioned.
func (mr *MesaRepo) UpdateEstado(ctx context.Context, id int64, estado string, pedidoActual *int64) (models.Mesa, error) {
	var m models.Mesa
	err := mr.db.GetPool().QueryRow(ctx, `
		UPDATE mesas SET estado = $1, pedido_actual = $2 WHERE id = $3
		RETURNING id, numero, estado, pedido_actual`,
		estado, pedidoActual, id,
	).Scan(&m.ID, &m.Numero, &m.Estado, &m.PedidoActual)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Mesa{}, core.ErrNotFound
		}
		return models.Mesa{}, fmt.Errorf("update mesa: %w", err)
	}
	return m, nil
}

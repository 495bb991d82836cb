package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/models"
)

type PedidoRepo struct {
	db core.IDB
}

func NewPedidoRepo(db core.IDB) *PedidoRepo {
	return &PedidoRepo{db: db}
}

const pedidoColumns = `id, tipo, cliente, items, total, costo_envio, hora_entrega,
	metodo_pago, pago_con, cambio, observaciones, estado, fecha, mesa_id`

func (pr *PedidoRepo) List(ctx context.Context) ([]models.Pedido, error) {
	rows, err := pr.db.GetPool().Query(ctx,
		`SELECT `+pedidoColumns+` FROM pedidos ORDER BY fecha DESC`)
	if err != nil {
		return nil, fmt.Errorf("query pedidos: %w", err)
	}
	defer rows.Close()
	return scanPedidos(rows)
}

func (pr *PedidoRepo) ListPendientesExternos(ctx context.Context) ([]models.Pedido, error) {
	rows, err := pr.db.GetPool().Query(ctx,
		`SELECT `+pedidoColumns+` FROM pedidos
		 WHERE tipo = $1 AND estado = $2 AND hora_entrega IS NOT NULL
		 ORDER BY hora_entrega`,
		core.TipoExterno, core.EstadoPendiente)
	if err != nil {
		return nil, fmt.Errorf("query pedidos pendientes: %w", err)
	}
	defer rows.Close()
	return scanPedidos(rows)
}

func scanPedidos(rows pgx.Rows) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	for rows.Next() {
		var p models.Pedido
		err := rows.Scan(&p.ID, &p.Tipo, &p.Cliente, &p.Items, &p.Total, &p.CostoEnvio,
			&p.HoraEntrega, &p.MetodoPago, &p.PagoCon, &p.Cambio, &p.Observaciones,
			&p.Estado, &p.Fecha, &p.MesaID)
		if err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		pedidos = append(pedidos, p)
	}
	return pedidos, rows.Err()
}

func (pr *PedidoRepo) Create(ctx context.Context, p models.Pedido) (models.Pedido, error) {
	err := pr.db.GetPool().QueryRow(ctx, `
		INSERT INTO pedidos (tipo, cliente, items, total, costo_envio, hora_entrega,
			metodo_pago, pago_con, cambio, observaciones, estado, fecha, mesa_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		p.Tipo, p.Cliente, p.Items, p.Total, p.CostoEnvio, p.HoraEntrega,
		p.MetodoPago, p.PagoCon, p.Cambio, p.Observaciones, p.Estado, p.Fecha, p.MesaID,
	).Scan(&p.ID)
	if err != nil {
		return models.Pedido{}, fmt.Errorf("insert pedido: %w", err)
	}
	return p, nil
}

// UpdateEstado sets the new status and reports the one it replaced. Both
// reads happen in one transaction so the returned pair is consistent.
func (pr *PedidoRepo) UpdateEstado(ctx context.Context, id int64, estado string) (string, error) {
	tx, err := pr.db.GetPool().Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var oldEstado string
	err = tx.QueryRow(ctx, `SELECT estado FROM pedidos WHERE id = $1 FOR UPDATE`, id).Scan(&oldEstado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", core.ErrNotFound
		}
		return "", fmt.Errorf("select estado: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE pedidos SET estado = $1 WHERE id = $2`, estado, id); err != nil {
		return "", fmt.Errorf("update estado: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}
	return oldEstado, nil
}

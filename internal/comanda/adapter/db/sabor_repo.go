package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/models"
)

type SaborRepo struct {
	db core.IDB
}

func NewSaborRepo(db core.IDB) *SaborRepo {
	return &SaborRepo{db: db}
}

// List returns sabores ordered by nombre, optionally filtered by categoria.
func (sr *SaborRepo) List(ctx context.Context, categoria string) ([]models.Sabor, error) {
	query := `SELECT id, nombre, categoria, disponible FROM sabores`
	args := []any{}
	if categoria != "" {
		query += ` WHERE categoria = $1`
		args = append(args, categoria)
	}
	query += ` ORDER BY nombre`

	rows, err := sr.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sabores: %w", err)
	}
	defer rows.Close()

	var sabores []models.Sabor
	for rows.Next() {
		var s models.Sabor
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Categoria, &s.Disponible); err != nil {
			return nil, fmt.Errorf("scan sabor: %w", err)
		}
		sabores = append(sabores, s)
	}
	return sabores, rows.Err()
}

func (sr *SaborRepo) Create(ctx context.Context, s models.Sabor) (models.Sabor, error) {
	err := sr.db.GetPool().QueryRow(ctx,
		`INSERT INTO sabores (nombre, categoria, disponible) VALUES ($1, $2, TRUE)
		 RETURNING id, disponible`,
		s.Nombre, s.Categoria,
	).Scan(&s.ID, &s.Disponible)
	if err != nil {
		return models.Sabor{}, fmt.Errorf("insert sabor: %w", err)
	}
	return s, nil
}

func (sr *SaborRepo) UpdateDisponible(ctx context.Context, id int64, disponible bool) (models.Sabor, error) {
	var s models.Sabor
	err := sr.db.GetPool().QueryRow(ctx,
		`UPDATE sabores SET disponible = $1 WHERE id = $2
		 RETURNING id, nombre, categoria, disponible`,
		disponible, id,
	).Scan(&s.ID, &s.Nombre, &s.Categoria, &s.Disponible)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Sabor{}, core.ErrNotFound
		}
		return models.Sabor{}, fmt.Errorf("update sabor: %w", err)
	}
	return s, nil
}

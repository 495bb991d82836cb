package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/comanda/domain/dto"
	"carnitas-elguero/internal/comanda/domain/models"
)

const uniqueViolation = "23505"

type ProductoRepo struct {
	db core.IDB
}

func NewProductoRepo(db core.IDB) *ProductoRepo {
	return &ProductoRepo{db: db}
}

func (pr *ProductoRepo) List(ctx context.Context) ([]models.Producto, error) {
	rows, err := pr.db.GetPool().Query(ctx,
		`SELECT id, nombre, precio, categoria, disponible, tipos FROM productos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query productos: %w", err)
	}
	defer rows.Close()

	var productos []models.Producto
	for rows.Next() {
		var p models.Producto
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Precio, &p.Categoria, &p.Disponible, &p.Tipos); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		productos = append(productos, p)
	}
	return productos, rows.Err()
}

func (pr *ProductoRepo) Create(ctx context.Context, p models.Producto) (models.Producto, error) {
	err := pr.db.GetPool().QueryRow(ctx, `
		INSERT INTO productos (nombre, precio, categoria, disponible, tipos)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.Nombre, p.Precio, p.Categoria, p.Disponible, p.Tipos,
	).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Producto{}, core.ErrDuplicateNombre
		}
		return models.Producto{}, fmt.Errorf("insert producto: %w", err)
	}
	return p, nil
}

// Update applies only the fields present in upd, in a single statement.
func (pr *ProductoRepo) Update(ctx context.Context, id int64, upd dto.ProductoUpdateRequest) (models.Producto, error) {
	sets := []string{}
	args := []any{}
	i := 1

	if upd.Nombre != nil {
		sets = append(sets, fmt.Sprintf("nombre = $%d", i))
		args = append(args, *upd.Nombre)
		i++
	}
	if upd.Precio != nil {
		sets = append(sets, fmt.Sprintf("precio = $%d", i))
		args = append(args, *upd.Precio)
		i++
	}
	if upd.Disponible != nil {
		sets = append(sets, fmt.Sprintf("disponible = $%d", i))
		args = append(args, *upd.Disponible)
		i++
	}

	var p models.Producto
	query := fmt.Sprintf(`
		UPDATE productos SET %s WHERE id = $%d
		RETURNING id, nombre, precio, categoria, disponible, tipos`,
		strings.Join(sets, ", "), i)
	args = append(args, id)

	err := pr.db.GetPool().QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.Nombre, &p.Precio, &p.Categoria, &p.Disponible, &p.Tipos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Producto{}, core.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Producto{}, core.ErrDuplicateNombre
		}
		return models.Producto{}, fmt.Errorf("update producto: %w", err)
	}
	return p, nil
}

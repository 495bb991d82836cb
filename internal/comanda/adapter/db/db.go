package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/xpkg/config"
	"carnitas-elguero/internal/xpkg/logger"
)

type DB struct {
	pool  *pgxpool.Pool
	mylog logger.Logger
}

// Start opens a connection pool, verifies it and bootstraps the schema.
func Start(ctx context.Context, dbCfg *config.Postgres, mylog logger.Logger) (core.IDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbCfg.User, dbCfg.Password, dbCfg.Host, dbCfg.Port, dbCfg.Database)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	connCtx, cancel := context.WithTimeout(ctx, core.WaitTime*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{pool: pool, mylog: mylog}
	if err := d.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	mylog.Action("db_connected").Info("Connected to PostgreSQL database")
	return d, nil
}

func (d *DB) GetPool() *pgxpool.Pool {
	return d.pool
}

// IsAlive pings the pool to verify it's responsive.
func (d *DB) IsAlive(ctx context.Context) error {
	if d.pool == nil {
		return core.ErrDBConn
	}
	if err := d.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	if d.pool != nil {
		d.pool.Close()
	}
	return nil
}

// migrate creates the tables if absent and seeds the fixed provisioning set
// (catalog, four mesas, taco and torta cuts). Seeding only runs on empty
// tables, so restarting never duplicates rows.
func (d *DB) migrate(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS productos (
			id BIGSERIAL PRIMARY KEY,
			nombre TEXT NOT NULL UNIQUE,
			precio DOUBLE PRECISION NOT NULL,
			categoria TEXT NOT NULL,
			disponible BOOLEAN NOT NULL DEFAULT TRUE,
			tipos TEXT[]
		)`,
		`CREATE TABLE IF NOT EXISTS mesas (
			id BIGSERIAL PRIMARY KEY,
			numero INTEGER NOT NULL UNIQUE,
			estado TEXT NOT NULL DEFAULT 'disponible',
			pedido_actual BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS pedidos (
			id BIGSERIAL PRIMARY KEY,
			tipo TEXT NOT NULL,
			cliente JSONB,
			items JSONB NOT NULL,
			total DOUBLE PRECISION NOT NULL,
			costo_envio DOUBLE PRECISION,
			hora_entrega TIMESTAMPTZ,
			metodo_pago TEXT,
			pago_con DOUBLE PRECISION,
			cambio DOUBLE PRECISION,
			observaciones TEXT,
			estado TEXT NOT NULL DEFAULT 'pendiente',
			fecha TIMESTAMPTZ NOT NULL DEFAULT now(),
			mesa_id BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS sabores (
			id BIGSERIAL PRIMARY KEY,
			nombre TEXT NOT NULL,
			categoria TEXT NOT NULL,
			disponible BOOLEAN NOT NULL DEFAULT TRUE
		)`,
	}

	for _, stmt := range schema {
		if _, err := d.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	return d.seed(ctx)
}

func (d *DB) seed(ctx context.Context) error {
	var count int
	if err := d.pool.QueryRow(ctx, `SELECT COUNT(1) FROM productos`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		cortesTaco := []string{"Cuerito", "Maciza", "Surtida", "Buche", "Nana", "Chamorro", "Oreja"}
		cortesTorta := []string{"Cuerito", "Maciza", "Surtida"}
		productos := []struct {
			nombre    string
			precio    float64
			categoria string
			tipos     []string
		}{
			{"Taco", 15, "taco", cortesTaco},
			{"Carnitas 1/4", 80, "carnitas", nil},
			{"Carnitas 1/2", 150, "carnitas", nil},
			{"Carnitas 1kg", 300, "carnitas", nil},
			{"Torta", 50, "torta", cortesTorta},
			{"Refresco", 25, "bebida", nil},
			{"Jugo Natural", 30, "bebida", nil},
			{"Agua Fresca", 20, "bebida", nil},
		}
		for _, p := range productos {
			_, err := d.pool.Exec(ctx,
				`INSERT INTO productos (nombre, precio, categoria, disponible, tipos) VALUES ($1, $2, $3, TRUE, $4)`,
				p.nombre, p.precio, p.categoria, p.tipos)
			if err != nil {
				return fmt.Errorf("seed productos: %w", err)
			}
		}
		for _, c := range cortesTaco {
			if _, err := d.pool.Exec(ctx,
				`INSERT INTO sabores (nombre, categoria) VALUES ($1, 'taco')`, c); err != nil {
				return fmt.Errorf("seed sabores: %w", err)
			}
		}
		d.mylog.Action("db_seeded").Info("Seeded catalog fixtures")
	}

	if err := d.pool.QueryRow(ctx, `SELECT COUNT(1) FROM mesas`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for numero := 1; numero <= 4; numero++ {
			_, err := d.pool.Exec(ctx,
				`INSERT INTO mesas (numero, estado) VALUES ($1, 'disponible')`, numero)
			if err != nil {
				return fmt.Errorf("seed mesas: %w", err)
			}
		}
		d.mylog.Action("db_seeded").Info("Seeded mesas")
	}

	return nil
}

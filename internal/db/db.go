package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB держит пул соединений к хранилищу модификаторов
// (таблица entity_attribute_modifiers).
type DB struct {
	pool *pgxpool.Pool
}

// New подключается к PostgreSQL по dsn и проверяет соединение.
// Схему хранилища создаёт RunMigrations.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to modifier store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging modifier store: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close закрывает пул.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool возвращает пул для ModifierRepository и ModifierPersistenceService.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

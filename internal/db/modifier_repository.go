package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ModifierRow соответствует одной строке entity_attribute_modifiers.
type ModifierRow struct {
	EntityID   int64
	Attribute  string
	ModifierID uuid.UUID
	Name       string
	Amount     float64
	Operation  string
}

// ModifierRepository хранит постоянные модификаторы атрибутов сущностей.
type ModifierRepository struct {
	db *pgxpool.Pool
}

// NewModifierRepository создаёт новый ModifierRepository.
func NewModifierRepository(db *pgxpool.Pool) *ModifierRepository {
	return &ModifierRepository{db: db}
}

// LoadByEntityID загружает все модификаторы сущности, упорядоченные по атрибуту и id.
func (r *ModifierRepository) LoadByEntityID(ctx context.Context, entityID int64) ([]ModifierRow, error) {
	query := `
		SELECT attribute, modifier_id, name, amount, operation
		FROM entity_attribute_modifiers
		WHERE entity_id = $1
		ORDER BY attribute, modifier_id
	`

	rows, err := r.db.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("querying modifiers for entity %d: %w", entityID, err)
	}
	defer rows.Close()

	var result []ModifierRow
	for rows.Next() {
		row := ModifierRow{EntityID: entityID}
		var id pgtype.UUID
		if err := rows.Scan(&row.Attribute, &id, &row.Name, &row.Amount, &row.Operation); err != nil {
			return nil, fmt.Errorf("scanning modifier row: %w", err)
		}
		row.ModifierID = uuid.UUID(id.Bytes)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating modifier rows: %w", err)
	}

	return result, nil
}

// Upsert сохраняет один модификатор. Повторное сохранение с тем же
// (entity_id, attribute, modifier_id) перезаписывает amount.
func (r *ModifierRepository) Upsert(ctx context.Context, row ModifierRow) error {
	query := `
		INSERT INTO entity_attribute_modifiers (entity_id, attribute, modifier_id, name, amount, operation)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (entity_id, attribute, modifier_id)
		DO UPDATE SET name = EXCLUDED.name, amount = EXCLUDED.amount, operation = EXCLUDED.operation
	`
	_, err := r.db.Exec(ctx, query,
		row.EntityID, row.Attribute, pgUUID(row.ModifierID), row.Name, row.Amount, row.Operation)
	if err != nil {
		return fmt.Errorf("upserting modifier %s for entity %d: %w", row.ModifierID, row.EntityID, err)
	}
	return nil
}

// Delete удаляет модификатор с атрибута сущности. Возвращает false, если строки не было.
func (r *ModifierRepository) Delete(ctx context.Context, entityID int64, attribute string, modifierID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM entity_attribute_modifiers WHERE entity_id = $1 AND attribute = $2 AND modifier_id = $3`,
		entityID, attribute, pgUUID(modifierID))
	if err != nil {
		return false, fmt.Errorf("deleting modifier %s for entity %d: %w", modifierID, entityID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// SaveAllTx заменяет все модификаторы сущности внутри транзакции (полная перезапись).
func (r *ModifierRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, entityID int64, mods []ModifierRow) error {
	if _, err := tx.Exec(ctx, `DELETE FROM entity_attribute_modifiers WHERE entity_id = $1`, entityID); err != nil {
		return fmt.Errorf("deleting old modifiers for entity %d: %w", entityID, err)
	}

	if len(mods) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(mods))
	for _, m := range mods {
		rows = append(rows, []any{entityID, m.Attribute, pgUUID(m.ModifierID), m.Name, m.Amount, m.Operation})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"entity_attribute_modifiers"},
		[]string{"entity_id", "attribute", "modifier_id", "name", "amount", "operation"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting modifiers for entity %d: %w", entityID, err)
	}

	slog.Debug("saved entity modifiers",
		"entityID", entityID,
		"count", len(mods))

	return nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

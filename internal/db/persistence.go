package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Excaliburns/Placebo/internal/attribute"
)

// ErrNilAttributes is returned by SaveEntity for a nil attribute map.
var ErrNilAttributes = errors.New("entity has no attribute map")

// AttributeLookup resolves attribute keys read back from the database.
type AttributeLookup interface {
	Lookup(key string) (*attribute.Attribute, bool)
}

// OperationLookup resolves operation tokens read back from the database.
type OperationLookup interface {
	Lookup(token string) (attribute.Operation, bool)
}

// ModifierPersistenceService сохраняет и восстанавливает постоянные модификаторы
// атрибутов сущности. Временные модификаторы не сохраняются.
type ModifierPersistenceService struct {
	pool *pgxpool.Pool
	repo *ModifierRepository
}

// NewModifierPersistenceService создаёт новый сервис.
func NewModifierPersistenceService(pool *pgxpool.Pool, repo *ModifierRepository) *ModifierPersistenceService {
	return &ModifierPersistenceService{pool: pool, repo: repo}
}

// SaveEntity заменяет сохранённые модификаторы сущности текущими постоянными
// модификаторами из attrs в одной транзакции. Для nil attrs возвращает
// ErrNilAttributes, не трогая базу.
func (s *ModifierPersistenceService) SaveEntity(ctx context.Context, entityID int64, attrs *attribute.Map) error {
	if attrs == nil {
		return fmt.Errorf("saving entity %d: %w", entityID, ErrNilAttributes)
	}

	var rows []ModifierRow
	for _, inst := range attrs.Instances() {
		key := inst.Attribute().Key
		for _, m := range inst.PermanentModifiers() {
			rows = append(rows, ModifierRow{
				EntityID:   entityID,
				Attribute:  key,
				ModifierID: m.ID,
				Name:       m.Name,
				Amount:     m.Amount,
				Operation:  m.Operation.String(),
			})
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for entity %d: %w", entityID, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "entityID", entityID, "error", err)
		}
	}()

	if err := s.repo.SaveAllTx(ctx, tx, entityID, rows); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for entity %d: %w", entityID, err)
	}

	slog.Info("entity modifiers saved", "entityID", entityID, "count", len(rows))
	return nil
}

// RestoreEntity устанавливает сохранённые модификаторы сущности в attrs как постоянные.
// Строки с неизвестным атрибутом или операцией, а также атрибуты, которых у сущности
// нет, пропускаются с предупреждением. Возвращает число восстановленных модификаторов.
func (s *ModifierPersistenceService) RestoreEntity(
	ctx context.Context,
	entityID int64,
	attrs *attribute.Map,
	attributes AttributeLookup,
	operations OperationLookup,
) (int, error) {
	rows, err := s.repo.LoadByEntityID(ctx, entityID)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, row := range rows {
		a, ok := attributes.Lookup(row.Attribute)
		if !ok {
			slog.Warn("skipping stored modifier: unknown attribute",
				"entityID", entityID, "attribute", row.Attribute, "id", row.ModifierID)
			continue
		}
		op, ok := operations.Lookup(row.Operation)
		if !ok {
			slog.Warn("skipping stored modifier: unknown operation",
				"entityID", entityID, "operation", row.Operation, "id", row.ModifierID)
			continue
		}
		inst := attrs.Instance(a)
		if inst == nil {
			slog.Warn("skipping stored modifier: entity lacks attribute",
				"entityID", entityID, "attribute", row.Attribute, "id", row.ModifierID)
			continue
		}

		inst.AddPermanentModifier(attribute.Modifier{
			ID:        row.ModifierID,
			Name:      row.Name,
			Amount:    row.Amount,
			Operation: op,
		})
		restored++
	}

	slog.Debug("entity modifiers restored", "entityID", entityID, "count", restored, "stored", len(rows))
	return restored, nil
}

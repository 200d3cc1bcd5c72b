package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pledgewall/internal/platform/kv"
)

// Store is a kv.Store backed by a single Postgres table. Atomic multi-key
// commits map onto a database transaction; prefix scans map onto an
// index-ordered LIKE query.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the backing table if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&entryModel{})
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row entryModel
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, s.logError("kv_get_failed", err, "key", key)
	}
	return row.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.set(ctx, s.db, key, value)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&entryModel{}).Error; err != nil {
		return s.logError("kv_delete_failed", err, "key", key)
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]kv.Entry, error) {
	var rows []entryModel
	if err := s.db.WithContext(ctx).
		Where("key LIKE ?", escapeLike(prefix)+"%").
		Order("key ASC").
		Find(&rows).Error; err != nil {
		return nil, s.logError("kv_list_failed", err, "prefix", prefix)
	}
	items := make([]kv.Entry, 0, len(rows))
	for _, row := range rows {
		items = append(items, kv.Entry{
			Key:   row.Key,
			Value: row.Value,
		})
	}
	return items, nil
}

func (s *Store) Commit(ctx context.Context, ops []kv.Op) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if op.Delete {
				if err := tx.Where("key = ?", op.Key).Delete(&entryModel{}).Error; err != nil {
					return err
				}
				continue
			}
			if err := s.set(ctx, tx, op.Key, op.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isSerializationFailure(err) {
			return kv.ErrConflict
		}
		return s.logError("kv_commit_failed", err, "ops", len(ops))
	}
	return nil
}

func (s *Store) set(ctx context.Context, tx *gorm.DB, key string, value []byte) error {
	row := entryModel{
		Key:       key,
		Value:     append([]byte(nil), value...),
		UpdatedAt: time.Now().UTC(),
	}
	create := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      row.Value,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return s.logError("kv_set_failed", create.Error, "key", key)
	}
	return nil
}

func (s *Store) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "platform/kv/postgres",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	s.logger.Error("kv store operation failed", fields...)
	return err
}

type entryModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (entryModel) TableName() string {
	return "kv_entries"
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01")
}

var _ kv.Store = (*Store)(nil)

// Package sqlite provides a SQLite implementation of the rowguard store
// using grove ORM with Go-based migrations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
	"github.com/rowguard/rowguard/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a SQLite implementation of the rowguard store.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// Migrate runs programmatic migrations via the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("rowguard/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("rowguard/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (s *Store) CreateDecision(ctx context.Context, e *decisionlog.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m, err := decisionToModel(e)
	if err != nil {
		return fmt.Errorf("rowguard: create decision: %w", err)
	}
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("rowguard: create decision: %w", err)
	}
	return nil
}

func (s *Store) GetDecision(ctx context.Context, decisionID id.DecisionID) (*decisionlog.Entry, error) {
	m := new(decisionModel)
	err := s.sdb.NewSelect(m).Where("id = ?", decisionID.String()).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("decision %s: %w", decisionID, decisionlog.ErrNotFound)
		}
		return nil, fmt.Errorf("rowguard: get decision: %w", err)
	}
	e, err := decisionFromModel(m)
	if err != nil {
		return nil, fmt.Errorf("rowguard: get decision: %w", err)
	}
	return e, nil
}

func (s *Store) ListDecisions(ctx context.Context, filter *decisionlog.QueryFilter) ([]*decisionlog.Entry, error) {
	var models []decisionModel
	q := s.sdb.NewSelect(&models).OrderExpr("created_at DESC")
	if filter != nil {
		if filter.Permission != "" {
			q = q.Where("permission = ?", filter.Permission)
		}
		if filter.Resource != "" {
			q = q.Where("resource = ?", filter.Resource)
		}
		if filter.Principal != "" {
			// Principals are stored as a JSON array of strings.
			q = q.Where("principals LIKE ?", "%"+jsonStringLiteral(filter.Principal)+"%")
		}
		if filter.Decision != "" {
			q = q.Where("decision = ?", filter.Decision)
		}
		if filter.After != nil {
			q = q.Where("created_at >= ?", *filter.After)
		}
		if filter.Before != nil {
			q = q.Where("created_at <= ?", *filter.Before)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("rowguard: list decisions: %w", err)
	}
	result := make([]*decisionlog.Entry, len(models))
	for i := range models {
		e, err := decisionFromModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("rowguard: list decisions: %w", err)
		}
		result[i] = e
	}
	return result, nil
}

func (s *Store) CountDecisions(ctx context.Context, filter *decisionlog.QueryFilter) (int64, error) {
	q := s.sdb.NewSelect((*decisionModel)(nil))
	if filter != nil {
		if filter.Permission != "" {
			q = q.Where("permission = ?", filter.Permission)
		}
		if filter.Resource != "" {
			q = q.Where("resource = ?", filter.Resource)
		}
		if filter.Principal != "" {
			q = q.Where("principals LIKE ?", "%"+jsonStringLiteral(filter.Principal)+"%")
		}
		if filter.Decision != "" {
			q = q.Where("decision = ?", filter.Decision)
		}
		if filter.After != nil {
			q = q.Where("created_at >= ?", *filter.After)
		}
		if filter.Before != nil {
			q = q.Where("created_at <= ?", *filter.Before)
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("rowguard: count decisions: %w", err)
	}
	return count, nil
}

func (s *Store) PurgeDecisions(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.sdb.NewDelete((*decisionModel)(nil)).
		Where("created_at < ?", before).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("rowguard: purge decisions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rowguard: purge decisions rows: %w", err)
	}
	return n, nil
}

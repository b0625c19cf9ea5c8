// Package postgres provides a PostgreSQL implementation of the rowguard
// store using grove ORM with Go-based migrations.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
	"github.com/rowguard/rowguard/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a PostgreSQL implementation of the rowguard store.
type Store struct {
	db   *grove.DB
	pgdb *pgdriver.PgDB
}

// New creates a new PostgreSQL store.
func New(db *grove.DB) *Store {
	return &Store{
		db:   db,
		pgdb: pgdriver.Unwrap(db),
	}
}

// Migrate runs programmatic migrations via the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pgdb)
	if err != nil {
		return fmt.Errorf("rowguard/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("rowguard/postgres: migration failed: %w", err)
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

func (s *Store) CreateDecision(ctx context.Context, e *decisionlog.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m := decisionToModel(e)
	if _, err := s.pgdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("rowguard: create decision: %w", err)
	}
	return nil
}

func (s *Store) GetDecision(ctx context.Context, decisionID id.DecisionID) (*decisionlog.Entry, error) {
	m := new(decisionModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", decisionID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("decision %s: %w", decisionID, decisionlog.ErrNotFound)
		}
		return nil, fmt.Errorf("rowguard: get decision: %w", err)
	}
	return decisionFromModel(m), nil
}

func (s *Store) ListDecisions(ctx context.Context, filter *decisionlog.QueryFilter) ([]*decisionlog.Entry, error) {
	var models []decisionModel
	q := s.pgdb.NewSelect(&models).OrderExpr("created_at DESC")
	if filter != nil {
		if filter.Permission != "" {
			q = q.Where("permission = ?", filter.Permission)
		}
		if filter.Resource != "" {
			q = q.Where("resource = ?", filter.Resource)
		}
		if filter.Principal != "" {
			// JSONB containment: the stored array must contain the principal.
			q = q.Where("principals @> ?", jsonArray(filter.Principal))
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
		result[i] = decisionFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountDecisions(ctx context.Context, filter *decisionlog.QueryFilter) (int64, error) {
	q := s.pgdb.NewSelect((*decisionModel)(nil))
	if filter != nil {
		if filter.Permission != "" {
			q = q.Where("permission = ?", filter.Permission)
		}
		if filter.Resource != "" {
			q = q.Where("resource = ?", filter.Resource)
		}
		if filter.Principal != "" {
			q = q.Where("principals @> ?", jsonArray(filter.Principal))
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
	res, err := s.pgdb.NewDelete((*decisionModel)(nil)).
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

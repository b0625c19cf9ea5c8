// Package mongo provides a MongoDB implementation of the rowguard store
// backed by grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
	"github.com/rowguard/rowguard/store"
)

// colDecisions is the decision log collection name.
const colDecisions = "rowguard_decisions"

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a MongoDB implementation of the rowguard store.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// Migrate creates indexes for the decision log collection.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := []mongod.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "permission", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "resource", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "decision", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "principals", Value: 1}}},
	}
	_, err := s.mdb.Collection(colDecisions).Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("rowguard/mongo: migrate %s indexes: %w", colDecisions, err)
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

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

func (s *Store) CreateDecision(ctx context.Context, e *decisionlog.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m := decisionToModel(e)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("rowguard: create decision: %w", err)
	}
	return nil
}

func (s *Store) GetDecision(ctx context.Context, decisionID id.DecisionID) (*decisionlog.Entry, error) {
	var m decisionModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": decisionID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, fmt.Errorf("decision %s: %w", decisionID, decisionlog.ErrNotFound)
		}
		return nil, fmt.Errorf("rowguard: get decision: %w", err)
	}
	return decisionFromModel(&m), nil
}

func (s *Store) ListDecisions(ctx context.Context, filter *decisionlog.QueryFilter) ([]*decisionlog.Entry, error) {
	var models []decisionModel
	q := s.mdb.NewFind(&models).
		Filter(decisionFilter(filter)).
		Sort(bson.D{{Key: "created_at", Value: -1}})
	if filter != nil {
		if filter.Limit > 0 {
			q = q.Limit(int64(filter.Limit))
		}
		if filter.Offset > 0 {
			q = q.Skip(int64(filter.Offset))
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
	count, err := s.mdb.NewFind((*decisionModel)(nil)).
		Filter(decisionFilter(filter)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("rowguard: count decisions: %w", err)
	}
	return count, nil
}

func (s *Store) PurgeDecisions(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.mdb.NewDelete((*decisionModel)(nil)).
		Many().
		Filter(bson.M{"created_at": bson.M{"$lt": before}}).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("rowguard: purge decisions: %w", err)
	}
	return res.DeletedCount(), nil
}

// decisionFilter translates a query filter into a bson filter document.
func decisionFilter(filter *decisionlog.QueryFilter) bson.M {
	f := bson.M{}
	if filter == nil {
		return f
	}
	if filter.Permission != "" {
		f["permission"] = filter.Permission
	}
	if filter.Resource != "" {
		f["resource"] = filter.Resource
	}
	if filter.Principal != "" {
		// Array membership: matches documents whose principals contain it.
		f["principals"] = filter.Principal
	}
	if filter.Decision != "" {
		f["decision"] = filter.Decision
	}
	if filter.After != nil || filter.Before != nil {
		dateFilter := bson.M{}
		if filter.After != nil {
			dateFilter["$gte"] = *filter.After
		}
		if filter.Before != nil {
			dateFilter["$lte"] = *filter.Before
		}
		f["created_at"] = dateFilter
	}
	return f
}

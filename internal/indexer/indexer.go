package indexer

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IndexDefinition struct {
	Collection string
	Index      mongo.IndexModel
}

type Manager struct {
	db      *mongo.Database
	indexes []IndexDefinition
	options *Options
}

type Options struct {
	Timeout         time.Duration
	ContinueOnError bool
	SkipIfExists    bool
}

type Result struct {
	SuccessCount int
	FailedCount  int
	Duration     time.Duration
}

func DefaultOptions() *Options {
	return &Options{
		Timeout:         60 * time.Second,
		ContinueOnError: true,
		SkipIfExists:    true,
	}
}

func NewManager(db *mongo.Database, opts ...*Options) *Manager {
	var managerOptions *Options
	if len(opts) > 0 {
		managerOptions = opts[0]
	} else {
		managerOptions = DefaultOptions()
	}

	return &Manager{
		db:      db,
		indexes: []IndexDefinition{},
		options: managerOptions,
	}
}

func (m *Manager) AddIndex(collection string, index mongo.IndexModel) *Manager {
	m.indexes = append(m.indexes, IndexDefinition{
		Collection: collection,
		Index:      index,
	})
	return m
}

func (m *Manager) AddCompoundIndex(collection string, fields []string, opts ...*options.IndexOptions) *Manager {
	keys := bson.D{}
	for _, field := range fields {
		keys = append(keys, bson.E{Key: field, Value: 1})
	}

	indexOpts := options.Index()
	if len(opts) > 0 {
		indexOpts = opts[0]
	}

	return m.AddIndex(collection, mongo.IndexModel{Keys: keys, Options: indexOpts})
}

// Create ensures every registered index exists.
func (m *Manager) Create(ctx context.Context) (*Result, error) {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), m.options.Timeout)
		defer cancel()
	}

	start := time.Now()
	result := &Result{}

	for _, def := range m.indexes {
		if m.options.SkipIfExists {
			exists, err := m.indexExists(ctx, def.Collection, def.Index.Options.Name)
			if err == nil && exists {
				result.SuccessCount++
				continue
			}
		}

		collection := m.db.Collection(def.Collection)
		indexName, err := collection.Indexes().CreateOne(ctx, def.Index)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				log.Printf("Warning: Cannot create unique index on %s due to duplicate data", def.Collection)
			} else {
				log.Printf("Failed to create index on %s: %v", def.Collection, err)
			}

			result.FailedCount++
			if !m.options.ContinueOnError {
				result.Duration = time.Since(start)
				return result, err
			}
			continue
		}

		log.Printf("Created index %s on collection %s", indexName, def.Collection)
		result.SuccessCount++
	}

	result.Duration = time.Since(start)

	if result.FailedCount > 0 {
		return result, fmt.Errorf("%d indexes failed to create", result.FailedCount)
	}
	return result, nil
}

func (m *Manager) List(ctx context.Context, collection string) ([]bson.M, error) {
	cursor, err := m.db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var indexes []bson.M
	if err = cursor.All(ctx, &indexes); err != nil {
		return nil, err
	}
	return indexes, nil
}

func (m *Manager) indexExists(ctx context.Context, collection string, indexName *string) (bool, error) {
	if indexName == nil {
		return false, nil
	}

	indexes, err := m.List(ctx, collection)
	if err != nil {
		return false, err
	}
	for _, idx := range indexes {
		if name, ok := idx["name"].(string); ok && name == *indexName {
			return true, nil
		}
	}
	return false, nil
}

// Package shelter provides the collection gateway: create, read, update and
// delete over a single document collection.
package shelter

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Antles/FinalCS340/internal/core/docdb"
	domainerrors "github.com/Antles/FinalCS340/internal/domain/errors"
	"github.com/Antles/FinalCS340/internal/domain/models"
	"github.com/Antles/FinalCS340/internal/infrastructure/docdb/mongodb"
	"github.com/Antles/FinalCS340/internal/pkg/metrics"
)

// Operation names used in logs and metrics.
const (
	OperationCreate = "create"
	OperationRead   = "read"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Config holds the dependencies of a Gateway.
type Config struct {
	Client  docdb.Client
	Logger  *zerolog.Logger
	Metrics *metrics.Metrics
	// ConnectTimeout and AppName are only used by Connect.
	ConnectTimeout time.Duration
	AppName        string
}

// Option customizes a Gateway created by Connect.
type Option func(*Config)

// WithLogger sets the logger. The global logger is used otherwise.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = &logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithConnectTimeout bounds connection establishment in Connect.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ConnectTimeout = d
	}
}

// WithAppName sets the application name reported to the server by Connect.
func WithAppName(name string) Option {
	return func(c *Config) {
		c.AppName = name
	}
}

// Gateway is bound to one collection for its whole lifetime and owns the
// client it was created with. It performs no locking; concurrent use is as
// safe as the underlying client.
type Gateway struct {
	client     docdb.Client
	collection docdb.Collection
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

// New creates a Gateway over an open client.
func New(cfg *Config) (*Gateway, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("document db client is required")
	}

	collection := cfg.Client.Collection()
	if collection == nil {
		return nil, fmt.Errorf("document db client is not bound to a collection")
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Gateway{
		client:     cfg.Client,
		collection: collection,
		logger:     logger.With().Str("collection", collection.Name()).Logger(),
		metrics:    cfg.Metrics,
	}, nil
}

// Connect opens a MongoDB connection for params and binds a Gateway to the
// named collection. Connection failures are returned as is; there is no retry.
func Connect(ctx context.Context, params docdb.ConnectionParams, opts ...Option) (*Gateway, error) {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := mongodb.NewClient(ctx, &mongodb.ClientConfig{
		Params:         params,
		ConnectTimeout: cfg.ConnectTimeout,
		AppName:        cfg.AppName,
	})
	if err != nil {
		logger := log.Logger
		if cfg.Logger != nil {
			logger = *cfg.Logger
		}
		logger.Error().Err(err).Str("host", params.Host).Int("port", params.Port).Msg("Error connecting to MongoDB")
		return nil, err
	}

	cfg.Client = client
	return New(cfg)
}

// CollectionName returns the name of the bound collection.
func (g *Gateway) CollectionName() string {
	return g.collection.Name()
}

// Ping verifies the connection held by the gateway.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.client.Ping(ctx)
}

// Close releases the connection. The gateway must not be used afterwards.
func (g *Gateway) Close(ctx context.Context) error {
	return g.client.Close(ctx)
}

// Create inserts doc and reports whether the store assigned it an identifier.
// An empty document is the only case reported as an error; store faults are
// logged and reported as false.
func (g *Gateway) Create(ctx context.Context, doc models.Document) (bool, error) {
	id, err := g.Insert(ctx, doc)
	if err != nil {
		if domainerrors.IsInvalidInput(err) {
			return false, err
		}
		g.logger.Error().Err(err).Str("operation", OperationCreate).Msgf("An error occurred during create: %v", err)
		return false, nil
	}

	if id == nil {
		g.logger.Warn().Str("operation", OperationCreate).Msg("Insert operation was not acknowledged.")
		return false, nil
	}

	g.logger.Info().
		Str("operation", OperationCreate).
		Interface("id", id).
		Msgf("Successfully inserted document with ID: %v", id)
	return true, nil
}

// Read returns every document matching query; an empty query matches all.
// A nil query and store faults are logged and yield an empty slice, which
// callers cannot tell apart from no matches. Use Find to distinguish them.
func (g *Gateway) Read(ctx context.Context, query models.Query) []models.Document {
	docs, err := g.Find(ctx, query)
	if err != nil {
		if domainerrors.IsInvalidInput(err) {
			g.logger.Error().Str("operation", OperationRead).Msg("Error: Query parameter cannot be nil for read operation.")
		} else {
			g.logger.Error().Err(err).Str("operation", OperationRead).Msgf("An error occurred during read: %v", err)
		}
		return []models.Document{}
	}

	g.logger.Debug().Str("operation", OperationRead).Int("count", len(docs)).Msgf("Found %d document(s).", len(docs))
	return docs
}

// Update sets the fields of data on every document matching query and
// returns the number of documents modified. Empty arguments and store
// faults are logged and yield 0.
func (g *Gateway) Update(ctx context.Context, query models.Query, data models.UpdateSpec) int64 {
	result, err := g.UpdateMatching(ctx, query, data)
	if err != nil {
		if domainerrors.IsInvalidInput(err) {
			g.logger.Error().Str("operation", OperationUpdate).Msg("Error: Query and update data parameters must be provided.")
		} else {
			g.logger.Error().Err(err).Str("operation", OperationUpdate).Msgf("An error occurred during update: %v", err)
		}
		return 0
	}

	g.logger.Info().
		Str("operation", OperationUpdate).
		Int64("matched", result.MatchedCount).
		Int64("count", result.ModifiedCount).
		Msgf("Successfully modified %d document(s).", result.ModifiedCount)
	return result.ModifiedCount
}

// Delete removes every document matching query and returns how many were
// removed. An empty query is refused so the collection cannot be wiped by
// accident; it and store faults are logged and yield 0.
func (g *Gateway) Delete(ctx context.Context, query models.Query) int64 {
	deleted, err := g.DeleteMatching(ctx, query)
	if err != nil {
		if domainerrors.IsInvalidInput(err) {
			g.logger.Error().Str("operation", OperationDelete).Msg("Error: A non-empty query parameter is required to prevent accidental mass deletion.")
		} else {
			g.logger.Error().Err(err).Str("operation", OperationDelete).Msgf("An error occurred during delete: %v", err)
		}
		return 0
	}

	g.logger.Info().Str("operation", OperationDelete).Int64("count", deleted).Msgf("Successfully deleted %d document(s).", deleted)
	return deleted
}

// Insert inserts doc and returns the identifier assigned to it.
func (g *Gateway) Insert(ctx context.Context, doc models.Document) (interface{}, error) {
	if doc.IsEmpty() {
		g.record(OperationCreate, metrics.OutcomeInvalidInput, 0)
		return nil, domainerrors.NewInvalidInputError("Nothing to save, because data parameter is empty")
	}

	start := time.Now()
	id, err := g.collection.InsertOne(ctx, doc)
	if err != nil {
		g.record(OperationCreate, metrics.OutcomeStoreFault, time.Since(start))
		return nil, domainerrors.NewStoreFaultError(OperationCreate, err)
	}

	g.record(OperationCreate, metrics.OutcomeSuccess, time.Since(start))
	if id != nil {
		g.metrics.AddDocuments(OperationCreate, g.collection.Name(), 1)
	}
	return id, nil
}

// Find returns every document matching query. Unlike Read it reports a nil
// query and store faults as errors.
func (g *Gateway) Find(ctx context.Context, query models.Query) ([]models.Document, error) {
	if query == nil {
		g.record(OperationRead, metrics.OutcomeInvalidInput, 0)
		return nil, domainerrors.NewInvalidInputError("query parameter is required for read")
	}

	start := time.Now()
	docs, err := g.find(ctx, query)
	if err != nil {
		g.record(OperationRead, metrics.OutcomeStoreFault, time.Since(start))
		return nil, domainerrors.NewStoreFaultError(OperationRead, err)
	}

	g.record(OperationRead, metrics.OutcomeSuccess, time.Since(start))
	g.metrics.AddDocuments(OperationRead, g.collection.Name(), int64(len(docs)))
	return docs, nil
}

func (g *Gateway) find(ctx context.Context, query models.Query) ([]models.Document, error) {
	cursor, err := g.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

// UpdateMatching applies data with $set semantics to every document
// matching query and returns the matched and modified counts.
func (g *Gateway) UpdateMatching(ctx context.Context, query models.Query, data models.UpdateSpec) (*docdb.UpdateResult, error) {
	if query.IsEmpty() || data.IsEmpty() {
		g.record(OperationUpdate, metrics.OutcomeInvalidInput, 0)
		return nil, domainerrors.NewInvalidInputError("query and update data must both be non-empty")
	}

	start := time.Now()
	result, err := g.collection.UpdateMany(ctx, query, data.SetOperator())
	if err != nil {
		g.record(OperationUpdate, metrics.OutcomeStoreFault, time.Since(start))
		return nil, domainerrors.NewStoreFaultError(OperationUpdate, err)
	}

	g.record(OperationUpdate, metrics.OutcomeSuccess, time.Since(start))
	g.metrics.AddDocuments(OperationUpdate, g.collection.Name(), result.ModifiedCount)
	return result, nil
}

// DeleteMatching removes every document matching query and returns the
// number removed. An empty query is rejected.
func (g *Gateway) DeleteMatching(ctx context.Context, query models.Query) (int64, error) {
	if query.IsEmpty() {
		g.record(OperationDelete, metrics.OutcomeInvalidInput, 0)
		return 0, domainerrors.NewInvalidInputError("a non-empty query is required for delete")
	}

	start := time.Now()
	result, err := g.collection.DeleteMany(ctx, query)
	if err != nil {
		g.record(OperationDelete, metrics.OutcomeStoreFault, time.Since(start))
		return 0, domainerrors.NewStoreFaultError(OperationDelete, err)
	}

	g.record(OperationDelete, metrics.OutcomeSuccess, time.Since(start))
	g.metrics.AddDocuments(OperationDelete, g.collection.Name(), result.DeletedCount)
	return result.DeletedCount, nil
}

func (g *Gateway) record(operation, outcome string, d time.Duration) {
	g.metrics.RecordDBOperation(operation, g.collection.Name(), outcome, d)
}

package testutils

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Antles/FinalCS340/internal/core/docdb"
	"github.com/Antles/FinalCS340/internal/domain/models"
)

// MemoryCollection is an in-memory docdb.Collection. Filters match on
// top-level field equality and updates support the $set operator only,
// which is all the gateway issues.
type MemoryCollection struct {
	mu   sync.Mutex
	name string
	docs []models.Document
}

// NewMemoryCollection creates an empty collection.
func NewMemoryCollection(name string) *MemoryCollection {
	return &MemoryCollection{name: name}
}

// Name returns the collection name.
func (c *MemoryCollection) Name() string {
	return c.name
}

// Len returns the number of stored documents.
func (c *MemoryCollection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

// InsertOne stores a copy of document, assigning an ObjectID if it has no _id.
func (c *MemoryCollection) InsertOne(ctx context.Context, document interface{}) (interface{}, error) {
	fields, err := toMap(document)
	if err != nil {
		return nil, err
	}

	doc := models.Document(fields).Clone()
	if _, ok := doc[models.IDField]; !ok {
		doc[models.IDField] = primitive.NewObjectID()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.docs {
		if valuesEqual(existing[models.IDField], doc[models.IDField]) {
			return nil, fmt.Errorf("E11000 duplicate key error collection: %s index: _id_", c.name)
		}
	}
	c.docs = append(c.docs, doc)
	return doc[models.IDField], nil
}

// Find returns a cursor over copies of the matching documents.
func (c *MemoryCollection) Find(ctx context.Context, filter interface{}) (docdb.Cursor, error) {
	criteria, err := toMap(filter)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var matched []models.Document
	for _, doc := range c.docs {
		if matches(doc, criteria) {
			matched = append(matched, doc.Clone())
		}
	}
	return &memoryCursor{docs: matched, pos: -1}, nil
}

// UpdateMany applies a $set update to every matching document. Documents
// whose fields already hold the new values are matched but not modified.
func (c *MemoryCollection) UpdateMany(ctx context.Context, filter interface{}, update interface{}) (*docdb.UpdateResult, error) {
	criteria, err := toMap(filter)
	if err != nil {
		return nil, err
	}
	ops, err := toMap(update)
	if err != nil {
		return nil, err
	}
	set, err := toMap(ops["$set"])
	if err != nil || len(ops) != 1 {
		return nil, fmt.Errorf("only $set updates are supported")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result := &docdb.UpdateResult{}
	for _, doc := range c.docs {
		if !matches(doc, criteria) {
			continue
		}
		result.MatchedCount++
		changed := false
		for k, v := range set {
			if current, ok := doc[k]; !ok || !valuesEqual(current, v) {
				doc[k] = v
				changed = true
			}
		}
		if changed {
			result.ModifiedCount++
		}
	}
	return result, nil
}

// DeleteMany removes every matching document.
func (c *MemoryCollection) DeleteMany(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	criteria, err := toMap(filter)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.docs[:0]
	var deleted int64
	for _, doc := range c.docs {
		if matches(doc, criteria) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	c.docs = kept
	return &docdb.DeleteResult{DeletedCount: deleted}, nil
}

type memoryCursor struct {
	docs []models.Document
	pos  int
}

func (c *memoryCursor) Next(ctx context.Context) bool {
	if c.pos+1 >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

func (c *memoryCursor) Decode(v interface{}) error {
	out, ok := v.(*models.Document)
	if !ok {
		return fmt.Errorf("cannot decode into %T", v)
	}
	if c.pos < 0 || c.pos >= len(c.docs) {
		return fmt.Errorf("cursor is not positioned on a document")
	}
	*out = c.docs[c.pos].Clone()
	return nil
}

func (c *memoryCursor) All(ctx context.Context, results interface{}) error {
	out, ok := results.(*[]models.Document)
	if !ok {
		return fmt.Errorf("cannot decode into %T", results)
	}
	remaining := c.docs[c.pos+1:]
	docs := make([]models.Document, 0, len(remaining))
	for _, doc := range remaining {
		docs = append(docs, doc.Clone())
	}
	*out = docs
	c.pos = len(c.docs)
	return nil
}

func (c *memoryCursor) Err() error {
	return nil
}

func (c *memoryCursor) Close(ctx context.Context) error {
	return nil
}

func toMap(v interface{}) (map[string]interface{}, error) {
	switch m := v.(type) {
	case models.Document:
		return m, nil
	case models.Query:
		return m, nil
	case models.UpdateSpec:
		return m, nil
	case bson.M:
		return m, nil
	case map[string]interface{}:
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported document type %T", v)
	}
}

func matches(doc models.Document, criteria map[string]interface{}) bool {
	for k, want := range criteria {
		got, ok := doc[k]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

// valuesEqual compares numbers by value regardless of their Go type.
func valuesEqual(a, b interface{}) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

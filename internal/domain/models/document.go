// Package models provides the schema-less document types stored by the gateway.
package models

import (
	"go.mongodb.org/mongo-driver/bson"
)

// IDField is the field holding the server-assigned document identifier.
const IDField = "_id"

// Document is a single schema-less record. Values may be strings, numbers,
// booleans, nested documents, arrays or driver primitives such as ObjectIDs.
type Document map[string]interface{}

// IsEmpty reports whether the document has no fields.
func (d Document) IsEmpty() bool {
	return len(d) == 0
}

// ID returns the document identifier, or nil if it has not been persisted.
func (d Document) ID() interface{} {
	return d[IDField]
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Query selects documents by field. A nil Query is treated as missing, while
// an empty non-nil Query matches every document.
type Query map[string]interface{}

// IsEmpty reports whether the query has no criteria.
func (q Query) IsEmpty() bool {
	return len(q) == 0
}

// UpdateSpec lists the fields to set on every matched document. Fields not
// named are left untouched.
type UpdateSpec map[string]interface{}

// IsEmpty reports whether the update names no fields.
func (u UpdateSpec) IsEmpty() bool {
	return len(u) == 0
}

// SetOperator wraps the fields in a $set update document.
func (u UpdateSpec) SetOperator() bson.M {
	return bson.M{"$set": map[string]interface{}(u)}
}

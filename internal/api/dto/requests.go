// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/Antles/FinalCS340/internal/domain/models"

// Request bodies are MongoDB relaxed Extended JSON, so the bson tags drive
// decoding. The json tags only describe the shape for the API docs.

// SearchDocumentsRequest represents the request body for searching documents.
// A missing query is rejected; an empty one matches every document.
type SearchDocumentsRequest struct {
	Query models.Query `bson:"query" json:"query" swaggertype:"object"`
}

// UpdateDocumentsRequest represents the request body for updating documents.
type UpdateDocumentsRequest struct {
	Query  models.Query      `bson:"query" json:"query" swaggertype:"object"`
	Update models.UpdateSpec `bson:"update" json:"update" swaggertype:"object"`
}

// DeleteDocumentsRequest represents the request body for deleting documents.
type DeleteDocumentsRequest struct {
	Query models.Query `bson:"query" json:"query" swaggertype:"object"`
}

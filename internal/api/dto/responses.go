package dto

import "github.com/Antles/FinalCS340/internal/domain/models"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// CreateDocumentResponse represents the response for creating a document.
type CreateDocumentResponse struct {
	Created bool        `bson:"created" json:"created"`
	ID      interface{} `bson:"id" json:"id" swaggertype:"string"`
}

// SearchDocumentsResponse represents the response for searching documents.
type SearchDocumentsResponse struct {
	Documents []models.Document `bson:"documents" json:"documents" swaggertype:"array,object"`
	Count     int64             `bson:"count" json:"count"`
}

// UpdateDocumentsResponse represents the response for updating documents.
type UpdateDocumentsResponse struct {
	Matched  int64 `bson:"matched" json:"matched"`
	Modified int64 `bson:"modified" json:"modified"`
}

// DeleteDocumentsResponse represents the response for deleting documents.
type DeleteDocumentsResponse struct {
	Deleted int64 `bson:"deleted" json:"deleted"`
}

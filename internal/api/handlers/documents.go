package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Antles/FinalCS340/internal/api/dto"
	"github.com/Antles/FinalCS340/internal/api/middleware"
	"github.com/Antles/FinalCS340/internal/core/docdb"
	"github.com/Antles/FinalCS340/internal/domain/errors"
	"github.com/Antles/FinalCS340/internal/domain/models"
)

// maxBodyBytes caps request bodies; MongoDB documents are limited to 16 MiB.
const maxBodyBytes = 16 << 20

const extJSONContentType = "application/json; charset=utf-8"

// DocumentGateway is the typed surface of the collection gateway.
type DocumentGateway interface {
	Insert(ctx context.Context, doc models.Document) (interface{}, error)
	Find(ctx context.Context, query models.Query) ([]models.Document, error)
	UpdateMatching(ctx context.Context, query models.Query, data models.UpdateSpec) (*docdb.UpdateResult, error)
	DeleteMatching(ctx context.Context, query models.Query) (int64, error)
}

// DocumentsHandler handles document endpoints.
type DocumentsHandler struct {
	gateway DocumentGateway
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(gateway DocumentGateway) *DocumentsHandler {
	return &DocumentsHandler{
		gateway: gateway,
	}
}

// CreateDocument handles POST /documents
// @Summary Create a document
// @Description Inserts one document. The body is MongoDB relaxed Extended JSON.
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body object true "Document to insert"
// @Success 201 {object} dto.CreateDocumentResponse
// @Failure 400 {object} dto.ErrorResponse "Empty or malformed document"
// @Failure 502 {object} dto.ErrorResponse "Store fault"
// @Router /api/v1/animal-shelter/documents [post]
func (h *DocumentsHandler) CreateDocument(c *gin.Context) {
	var doc models.Document
	if err := bindExtJSON(c, &doc); err != nil {
		middleware.HandleError(c, err)
		return
	}

	id, err := h.gateway.Insert(c.Request.Context(), doc)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	writeExtJSON(c, http.StatusCreated, dto.CreateDocumentResponse{
		Created: id != nil,
		ID:      id,
	})
}

// SearchDocuments handles POST /documents/search
// @Summary Search documents
// @Description Returns every document matching the query. An empty query matches all documents.
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body dto.SearchDocumentsRequest true "Search request"
// @Success 200 {object} dto.SearchDocumentsResponse
// @Failure 400 {object} dto.ErrorResponse "Missing query"
// @Failure 502 {object} dto.ErrorResponse "Store fault"
// @Router /api/v1/animal-shelter/documents/search [post]
func (h *DocumentsHandler) SearchDocuments(c *gin.Context) {
	var req dto.SearchDocumentsRequest
	if err := bindExtJSON(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	docs, err := h.gateway.Find(c.Request.Context(), req.Query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	writeExtJSON(c, http.StatusOK, dto.SearchDocumentsResponse{
		Documents: docs,
		Count:     int64(len(docs)),
	})
}

// UpdateDocuments handles PATCH /documents
// @Summary Update documents
// @Description Sets the given fields on every document matching the query.
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body dto.UpdateDocumentsRequest true "Update request"
// @Success 200 {object} dto.UpdateDocumentsResponse
// @Failure 400 {object} dto.ErrorResponse "Empty query or update"
// @Failure 502 {object} dto.ErrorResponse "Store fault"
// @Router /api/v1/animal-shelter/documents [patch]
func (h *DocumentsHandler) UpdateDocuments(c *gin.Context) {
	var req dto.UpdateDocumentsRequest
	if err := bindExtJSON(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	result, err := h.gateway.UpdateMatching(c.Request.Context(), req.Query, req.Update)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	writeExtJSON(c, http.StatusOK, dto.UpdateDocumentsResponse{
		Matched:  result.MatchedCount,
		Modified: result.ModifiedCount,
	})
}

// DeleteDocuments handles DELETE /documents
// @Summary Delete documents
// @Description Removes every document matching the query. An empty query is refused.
// @Tags Documents
// @Accept json
// @Produce json
// @Param request body dto.DeleteDocumentsRequest true "Delete request"
// @Success 200 {object} dto.DeleteDocumentsResponse
// @Failure 400 {object} dto.ErrorResponse "Empty query"
// @Failure 502 {object} dto.ErrorResponse "Store fault"
// @Router /api/v1/animal-shelter/documents [delete]
func (h *DocumentsHandler) DeleteDocuments(c *gin.Context) {
	var req dto.DeleteDocumentsRequest
	if err := bindExtJSON(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	deleted, err := h.gateway.DeleteMatching(c.Request.Context(), req.Query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	writeExtJSON(c, http.StatusOK, dto.DeleteDocumentsResponse{
		Deleted: deleted,
	})
}

// bindExtJSON decodes a relaxed or canonical Extended JSON body into v.
func bindExtJSON(c *gin.Context, v interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		return errors.NewBadRequestError("failed to read request body", err.Error())
	}
	if len(body) == 0 {
		return errors.NewBadRequestError("request body is required", "")
	}
	if err := bson.UnmarshalExtJSON(body, false, v); err != nil {
		return errors.NewBadRequestError("invalid request body", err.Error())
	}
	return nil
}

// writeExtJSON writes v as relaxed Extended JSON so ObjectIDs and dates
// round-trip.
func writeExtJSON(c *gin.Context, status int, v interface{}) {
	data, err := bson.MarshalExtJSON(v, false, false)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to encode response", err))
		return
	}
	c.Data(status, extJSONContentType, data)
}

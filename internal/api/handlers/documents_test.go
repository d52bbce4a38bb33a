package handlers_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Antles/FinalCS340/internal/api/dto"
	"github.com/Antles/FinalCS340/internal/api/handlers"
	"github.com/Antles/FinalCS340/internal/core/docdb"
	"github.com/Antles/FinalCS340/internal/mocks"
	"github.com/Antles/FinalCS340/internal/services/shelter"
	"github.com/Antles/FinalCS340/internal/testutils"
)

const documentsPath = "/documents"

func newDocumentsRouter(t *testing.T, collection docdb.Collection) *gin.Engine {
	t.Helper()

	var logs bytes.Buffer
	logger := testutils.NewTestLogger(&logs)
	gateway, err := shelter.New(&shelter.Config{
		Client: mocks.NewMockDocDBClient(collection),
		Logger: &logger,
	})
	require.NoError(t, err)

	handler := handlers.NewDocumentsHandler(gateway)

	router := testutils.SetupTestRouter()
	router.POST(documentsPath, handler.CreateDocument)
	router.POST(documentsPath+"/search", handler.SearchDocuments)
	router.PATCH(documentsPath, handler.UpdateDocuments)
	router.DELETE(documentsPath, handler.DeleteDocuments)
	return router
}

func seededCollection(t *testing.T) *testutils.MemoryCollection {
	t.Helper()
	collection := testutils.NewMemoryCollection(testutils.TestCollection)
	for _, animal := range testutils.SeedAnimals() {
		_, err := collection.InsertOne(testutils.TestContext(), animal)
		require.NoError(t, err)
	}
	return collection
}

func TestDocumentsHandler_CreateDocument(t *testing.T) {
	// Setup
	collection := testutils.NewMemoryCollection(testutils.TestCollection)
	router := newDocumentsRouter(t, collection)

	// Execute
	w := testutils.PerformRequest(router, "POST", documentsPath,
		`{"name": "Rex", "animal_type": "Dog", "age_upon_outcome_in_weeks": 104.5}`, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusCreated, w)

	var response dto.CreateDocumentResponse
	testutils.ParseExtJSONResponse(t, w, &response)

	assert.True(t, response.Created)
	assert.IsType(t, primitive.ObjectID{}, response.ID)
	assert.Equal(t, 1, collection.Len())
}

func TestDocumentsHandler_CreateDocument_ExtendedJSONIdentifier(t *testing.T) {
	collection := testutils.NewMemoryCollection(testutils.TestCollection)
	router := newDocumentsRouter(t, collection)
	id, err := primitive.ObjectIDFromHex("5f1b2c3d4e5f6a7b8c9d0e1f")
	require.NoError(t, err)

	w := testutils.PerformRequest(router, "POST", documentsPath,
		`{"_id": {"$oid": "5f1b2c3d4e5f6a7b8c9d0e1f"}, "name": "Rex"}`, nil)

	testutils.AssertStatusCode(t, http.StatusCreated, w)
	assert.JSONEq(t, `{"created": true, "id": {"$oid": "5f1b2c3d4e5f6a7b8c9d0e1f"}}`, w.Body.String())

	var response dto.CreateDocumentResponse
	testutils.ParseExtJSONResponse(t, w, &response)
	assert.Equal(t, id, response.ID)
}

func TestDocumentsHandler_CreateDocument_BadInput(t *testing.T) {
	tests := []struct {
		name     string
		body     interface{}
		wantCode string
	}{
		{name: "empty document", body: `{}`, wantCode: "INVALID_INPUT"},
		{name: "missing body", body: nil, wantCode: "BAD_REQUEST"},
		{name: "malformed json", body: `{"name": `, wantCode: "BAD_REQUEST"},
		{name: "not a document", body: `["Rex"]`, wantCode: "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection := testutils.NewMemoryCollection(testutils.TestCollection)
			router := newDocumentsRouter(t, collection)

			w := testutils.PerformRequest(router, "POST", documentsPath, tt.body, nil)

			testutils.AssertStatusCode(t, http.StatusBadRequest, w)
			var response dto.ErrorResponse
			testutils.ParseJSONResponse(t, w, &response)
			assert.Equal(t, tt.wantCode, response.Code)
			assert.Zero(t, collection.Len())
		})
	}
}

func TestDocumentsHandler_CreateDocument_StoreFault(t *testing.T) {
	// Setup
	collection := mocks.NewMockCollection(testutils.TestCollection)
	collection.On("InsertOne", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	router := newDocumentsRouter(t, collection)

	// Execute
	w := testutils.PerformRequest(router, "POST", documentsPath, `{"name": "Rex"}`, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusBadGateway, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "STORE_FAULT", response.Code)
	assert.Equal(t, "create failed", response.Message)

	collection.AssertExpectations(t)
}

func TestDocumentsHandler_SearchDocuments(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCount int64
		wantNames []string
	}{
		{
			name:      "matching breed",
			body:      `{"query": {"breed": "German Shepherd"}}`,
			wantCount: 2,
			wantNames: []string{"Rex", "Max"},
		},
		{
			name:      "empty query matches all",
			body:      `{"query": {}}`,
			wantCount: 3,
			wantNames: []string{"Rex", "Bella", "Max"},
		},
		{
			name:      "no match",
			body:      `{"query": {"name": "Nobody"}}`,
			wantCount: 0,
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newDocumentsRouter(t, seededCollection(t))

			w := testutils.PerformRequest(router, "POST", documentsPath+"/search", tt.body, nil)

			testutils.AssertStatusCode(t, http.StatusOK, w)

			var response dto.SearchDocumentsResponse
			testutils.ParseExtJSONResponse(t, w, &response)

			assert.Equal(t, tt.wantCount, response.Count)
			names := []string{}
			for _, doc := range response.Documents {
				names = append(names, doc["name"].(string))
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestDocumentsHandler_SearchDocuments_MissingQuery(t *testing.T) {
	router := newDocumentsRouter(t, seededCollection(t))

	for _, body := range []string{`{}`, `{"query": null}`} {
		w := testutils.PerformRequest(router, "POST", documentsPath+"/search", body, nil)

		testutils.AssertStatusCode(t, http.StatusBadRequest, w)
		var response dto.ErrorResponse
		testutils.ParseJSONResponse(t, w, &response)
		assert.Equal(t, "INVALID_INPUT", response.Code, body)
	}
}

func TestDocumentsHandler_SearchDocuments_StoreFault(t *testing.T) {
	collection := mocks.NewMockCollection(testutils.TestCollection)
	collection.On("Find", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	router := newDocumentsRouter(t, collection)

	w := testutils.PerformRequest(router, "POST", documentsPath+"/search", `{"query": {"name": "Rex"}}`, nil)

	testutils.AssertStatusCode(t, http.StatusBadGateway, w)
	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "STORE_FAULT", response.Code)
	assert.Equal(t, "read failed", response.Message)
}

func TestDocumentsHandler_UpdateDocuments(t *testing.T) {
	// Setup
	collection := seededCollection(t)
	router := newDocumentsRouter(t, collection)
	body := `{"query": {"breed": "German Shepherd"}, "update": {"outcome_type": "Transfer"}}`

	// Execute
	first := testutils.PerformRequest(router, "PATCH", documentsPath, body, nil)
	second := testutils.PerformRequest(router, "PATCH", documentsPath, body, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, first)
	var response dto.UpdateDocumentsResponse
	testutils.ParseExtJSONResponse(t, first, &response)
	assert.Equal(t, dto.UpdateDocumentsResponse{Matched: 2, Modified: 2}, response)

	// An identical update matches the same documents but changes nothing.
	testutils.AssertStatusCode(t, http.StatusOK, second)
	testutils.ParseExtJSONResponse(t, second, &response)
	assert.Equal(t, dto.UpdateDocumentsResponse{Matched: 2, Modified: 0}, response)
}

func TestDocumentsHandler_UpdateDocuments_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty query", body: `{"query": {}, "update": {"outcome_type": "Transfer"}}`},
		{name: "empty update", body: `{"query": {"name": "Rex"}, "update": {}}`},
		{name: "missing update", body: `{"query": {"name": "Rex"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newDocumentsRouter(t, seededCollection(t))

			w := testutils.PerformRequest(router, "PATCH", documentsPath, tt.body, nil)

			testutils.AssertStatusCode(t, http.StatusBadRequest, w)
			var response dto.ErrorResponse
			testutils.ParseJSONResponse(t, w, &response)
			assert.Equal(t, "INVALID_INPUT", response.Code)
		})
	}
}

func TestDocumentsHandler_DeleteDocuments(t *testing.T) {
	// Setup
	collection := seededCollection(t)
	router := newDocumentsRouter(t, collection)
	body := `{"query": {"breed": "German Shepherd"}}`

	// Execute
	first := testutils.PerformRequest(router, "DELETE", documentsPath, body, nil)
	second := testutils.PerformRequest(router, "DELETE", documentsPath, body, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, first)
	assert.JSONEq(t, `{"deleted": 2}`, first.Body.String())

	testutils.AssertStatusCode(t, http.StatusOK, second)
	assert.JSONEq(t, `{"deleted": 0}`, second.Body.String())

	assert.Equal(t, 1, collection.Len())
}

func TestDocumentsHandler_DeleteDocuments_EmptyQueryRefused(t *testing.T) {
	collection := seededCollection(t)
	router := newDocumentsRouter(t, collection)

	w := testutils.PerformRequest(router, "DELETE", documentsPath, `{"query": {}}`, nil)

	testutils.AssertStatusCode(t, http.StatusBadRequest, w)
	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "INVALID_INPUT", response.Code)
	assert.Equal(t, 3, collection.Len())
}

func TestDocumentsHandler_DeleteDocuments_StoreFault(t *testing.T) {
	collection := mocks.NewMockCollection(testutils.TestCollection)
	collection.On("DeleteMany", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	router := newDocumentsRouter(t, collection)

	w := testutils.PerformRequest(router, "DELETE", documentsPath, `{"query": {"name": "Rex"}}`, nil)

	testutils.AssertStatusCode(t, http.StatusBadGateway, w)
	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "STORE_FAULT", response.Code)
}

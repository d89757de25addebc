package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/hotel-booking-assistant/internal/knowledge"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

func TestUploadBatchesDocuments(t *testing.T) {
	var batches []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/knowledge/documents", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body struct {
			Documents []knowledge.Document `json:"documents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		batches = append(batches, len(body.Documents))
		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"documents":%d,"chunks":%d}`, len(body.Documents), len(body.Documents))
	}))
	defer srv.Close()

	docs := make([]knowledge.Document, 45)
	for i := range docs {
		docs[i] = knowledge.Document{Title: fmt.Sprintf("doc %d", i), Content: "text"}
	}

	chunks, err := upload(context.Background(), srv.Client(), srv.URL, "tok", docs, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 45, chunks)
	assert.Equal(t, []int{20, 20, 5}, batches)
}

func TestUploadStopsOnRejectedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := upload(context.Background(), srv.Client(), srv.URL, "bad", []knowledge.Document{{Content: "x"}}, logging.Discard())
	assert.ErrorContains(t, err, "status 401")
}

func TestLoadKnowledgeFile(t *testing.T) {
	file, err := loadKnowledgeFile(filepath.Join("..", "..", "testdata", "hotel-knowledge.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, file.HotelName)
	assert.NotEmpty(t, file.Documents)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"documents":[]}`), 0o600))
	_, err = loadKnowledgeFile(empty)
	assert.Error(t, err)
}

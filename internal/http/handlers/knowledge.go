package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/wolfman30/hotel-booking-assistant/internal/knowledge"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

// maxDocumentBytes caps a single ingestion request body.
const maxDocumentBytes = 5 << 20

// DocumentIngester stores hotel documents for retrieval.
type DocumentIngester interface {
	Ingest(ctx context.Context, docs []knowledge.Document) (int, error)
}

// KnowledgeHandler accepts hotel documentation uploads from staff.
type KnowledgeHandler struct {
	ingester DocumentIngester
	logger   *logging.Logger
}

// NewKnowledgeHandler creates a knowledge upload handler.
func NewKnowledgeHandler(ingester DocumentIngester, logger *logging.Logger) *KnowledgeHandler {
	if ingester == nil {
		panic("handlers: document ingester cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &KnowledgeHandler{ingester: ingester, logger: logger}
}

type ingestRequest struct {
	Documents []knowledge.Document `json:"documents"`
}

type ingestResponse struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
}

// UploadDocuments ingests JSON {"documents":[{title,content}]}, a raw
// text/plain body or an application/pdf file. Raw uploads take their title
// from ?title=.
// POST /knowledge/documents
func (h *KnowledgeHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	var docs []knowledge.Document
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "text/plain":
		docs = []knowledge.Document{{
			Title:   strings.TrimSpace(r.URL.Query().Get("title")),
			Content: string(body),
		}}
	case "application/pdf":
		text, err := extractPDFText(body)
		if err != nil {
			h.logger.Warn("rejected pdf upload", "error", err, "bytes", len(body))
			jsonError(w, "invalid pdf document", http.StatusBadRequest)
			return
		}
		docs = []knowledge.Document{{
			Title:   strings.TrimSpace(r.URL.Query().Get("title")),
			Content: text,
		}}
	default:
		var req ingestRequest
		if err := json.Unmarshal(body, &req); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		docs = req.Documents
	}
	if len(docs) == 0 {
		jsonError(w, "no documents provided", http.StatusBadRequest)
		return
	}

	chunks, err := h.ingester.Ingest(r.Context(), docs)
	if err != nil {
		if errors.Is(err, knowledge.ErrEmptyDocument) {
			jsonError(w, "documents contain no text", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to ingest documents", "error", err, "documents", len(docs))
		jsonError(w, "failed to process documents", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, ingestResponse{Documents: len(docs), Chunks: chunks})
}

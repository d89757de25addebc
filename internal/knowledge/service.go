package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

var knowledgeTracer = otel.Tracer("hotel.internal.knowledge")

var (
	// ErrNoDocuments is returned by Answer before anything was ingested.
	ErrNoDocuments = errors.New("knowledge: no documents ingested")
	// ErrEmptyDocument is returned by Ingest when nothing usable was sent.
	ErrEmptyDocument = errors.New("knowledge: document has no text")
)

// NotFoundAnswer is what the model is told to say when the context lacks an answer.
const NotFoundAnswer = "I apologize, but I don't have information about that in our hotel documentation. Please contact our reservations team at our main office or visit our website for additional assistance."

const answerPrompt = `You are a professional hotel booking assistant providing exceptional guest service.
Answer ONLY using the context below.
If the answer is not available in the context, respond with:
"` + NotFoundAnswer + `"

Always maintain a courteous and professional tone befitting a luxury hotel.`

// Document is plain text uploaded by hotel staff.
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Config tunes retrieval.
type Config struct {
	Model        string
	TopK         int
	ChunkSize    int
	ChunkOverlap int
	MaxTokens    int32
}

// Service answers guest questions from ingested hotel documents.
type Service struct {
	store  *VectorStore
	llm    LLMClient
	repo   Repository
	cfg    Config
	logger *logging.Logger
}

// NewService wires retrieval. repo may be nil, in which case ingested
// chunks live only in memory.
func NewService(store *VectorStore, llm LLMClient, repo Repository, cfg Config, logger *logging.Logger) *Service {
	if store == nil {
		panic("knowledge: vector store cannot be nil")
	}
	if llm == nil {
		panic("knowledge: llm client cannot be nil")
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = DefaultChunkOverlap
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:  store,
		llm:    llm,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Ingest chunks, embeds and stores docs, returning the number of chunks added.
func (s *Service) Ingest(ctx context.Context, docs []Document) (int, error) {
	ctx, span := knowledgeTracer.Start(ctx, "knowledge.ingest")
	defer span.End()

	var chunks []string
	for _, doc := range docs {
		chunks = append(chunks, SplitText(doc.Content, s.cfg.ChunkSize, s.cfg.ChunkOverlap)...)
	}
	if len(chunks) == 0 {
		return 0, ErrEmptyDocument
	}
	span.SetAttributes(attribute.Int("hotel.chunks", len(chunks)))

	if err := s.store.Add(ctx, chunks); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("knowledge: embed chunks: %w", err)
	}
	if s.repo != nil {
		if err := s.repo.AppendChunks(ctx, chunks); err != nil {
			span.RecordError(err)
			s.logger.Warn("failed to persist knowledge chunks", "error", err, "chunks", len(chunks))
		}
	}
	s.logger.Info("knowledge ingested", "documents", len(docs), "chunks", len(chunks))
	return len(chunks), nil
}

// Hydrate reloads persisted chunks into the vector store.
func (s *Service) Hydrate(ctx context.Context) (int, error) {
	if s.repo == nil {
		return 0, nil
	}
	chunks, err := s.repo.LoadChunks(ctx)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}
	s.store.Reset()
	if err := s.store.Add(ctx, chunks); err != nil {
		return 0, fmt.Errorf("knowledge: hydrate: %w", err)
	}
	s.logger.Info("knowledge hydrated", "chunks", len(chunks))
	return len(chunks), nil
}

// Answer responds to a guest question using only the ingested documents.
// When the model is unavailable a canned answer for the question's topic
// is returned instead of an error.
func (s *Service) Answer(ctx context.Context, query string) (string, error) {
	ctx, span := knowledgeTracer.Start(ctx, "knowledge.answer")
	defer span.End()

	if s.store.Len() == 0 {
		return "", ErrNoDocuments
	}

	matches, err := s.store.Query(ctx, query, s.cfg.TopK)
	if err != nil {
		span.RecordError(err)
		s.logger.Warn("knowledge query failed", "error", err)
		return FormalResponse(DetectTopic(query)), nil
	}
	span.SetAttributes(attribute.Int("hotel.matches", len(matches)))

	resp, err := s.llm.Complete(ctx, LLMRequest{
		Model:  s.cfg.Model,
		System: []string{answerPrompt},
		Messages: []ChatMessage{{
			Role:    ChatRoleUser,
			Content: buildQuestion(matches, query),
		}},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		span.RecordError(err)
		s.logger.Warn("knowledge completion failed", "error", err)
		return FormalResponse(DetectTopic(query)), nil
	}
	if strings.TrimSpace(resp.Text) == "" {
		return FormalResponse(DetectTopic(query)), nil
	}
	return resp.Text, nil
}

func buildQuestion(matches []string, query string) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	b.WriteString(strings.Join(matches, "\n\n"))
	b.WriteString("\n\nQuestion:\n")
	b.WriteString(query)
	return b.String()
}

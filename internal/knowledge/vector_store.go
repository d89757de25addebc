package knowledge

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

// VectorStore keeps embeddings in memory and supports simple cosine retrieval.
type VectorStore struct {
	embedder Embedder
	logger   *logging.Logger

	mu     sync.RWMutex
	chunks []storedChunk
}

type storedChunk struct {
	content   string
	embedding []float32
}

// NewVectorStore creates an in-memory store.
func NewVectorStore(embedder Embedder, logger *logging.Logger) *VectorStore {
	if embedder == nil {
		panic("knowledge: embedder cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &VectorStore{
		embedder: embedder,
		logger:   logger,
	}
}

// Add embeds and stores the provided chunks.
func (s *VectorStore) Add(ctx context.Context, contents []string) error {
	if len(contents) == 0 {
		return nil
	}

	vectors, err := s.embedder.Embed(ctx, contents)
	if err != nil {
		return err
	}
	if len(vectors) != len(contents) {
		return errors.New("knowledge: embedding response size mismatch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, vec := range vectors {
		s.chunks = append(s.chunks, storedChunk{
			content:   contents[i],
			embedding: vec,
		})
	}
	return nil
}

// Len is the number of stored chunks.
func (s *VectorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Reset drops every stored chunk.
func (s *VectorStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
}

// Query returns the topK chunks most similar to query.
func (s *VectorStore) Query(ctx context.Context, query string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 3
	}
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, nil
	}
	queryVec := vectors[0]

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.chunks) == 0 {
		return nil, nil
	}

	type scored struct {
		score   float64
		content string
	}
	results := make([]scored, 0, len(s.chunks))
	for _, c := range s.chunks {
		results = append(results, scored{score: cosineSimilarity(queryVec, c.embedding), content: c.content})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	limit := topK
	if len(results) < limit {
		limit = len(results)
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = results[i].content
	}
	return out, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/hotel-booking-assistant/internal/config"
	"github.com/wolfman30/hotel-booking-assistant/internal/knowledge"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

// BuildKnowledgeService wires document retrieval for out-of-band questions.
// It returns nil without error when no provider is configured, in which
// case guests get the upload-documents fallback.
func BuildKnowledgeService(ctx context.Context, cfg *appconfig.Config, redisClient *redis.Client, loadAWS AWSConfigLoader, logger *logging.Logger) (*knowledge.Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		llm      knowledge.LLMClient
		embedder knowledge.Embedder
		model    string
	)
	switch cfg.LLMProvider {
	case "", "gemini":
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			logger.Warn("GEMINI_API_KEY not set; document answers disabled")
			return nil, nil
		}
		client, err := knowledge.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiEmbeddingModel)
		if err != nil {
			return nil, err
		}
		llm, embedder, model = client, client, cfg.GeminiModel
	case "bedrock":
		if strings.TrimSpace(cfg.BedrockModelID) == "" {
			logger.Warn("BEDROCK_MODEL_ID not set; document answers disabled")
			return nil, nil
		}
		if loadAWS == nil {
			return nil, fmt.Errorf("bootstrap: bedrock provider requires aws config")
		}
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		runtime := bedrockruntime.NewFromConfig(awsCfg)
		llm = knowledge.NewBedrockClient(runtime, cfg.BedrockModelID)
		embedder = knowledge.NewBedrockEmbedder(runtime, cfg.BedrockEmbeddingModelID)
		model = cfg.BedrockModelID
	default:
		return nil, fmt.Errorf("bootstrap: unknown llm provider %q", cfg.LLMProvider)
	}

	var repo knowledge.Repository
	if redisClient != nil {
		repo = knowledge.NewRedisRepository(redisClient)
	}

	svc := knowledge.NewService(
		knowledge.NewVectorStore(embedder, logger),
		llm,
		repo,
		knowledge.Config{Model: model, TopK: cfg.RetrievalTopK},
		logger,
	)
	if n, err := svc.Hydrate(ctx); err != nil {
		logger.Warn("failed to hydrate knowledge store", "error", err)
	} else if n > 0 {
		logger.Info("knowledge store hydrated", "chunks", n)
	}

	logger.Info("document answers enabled", "provider", cfg.LLMProvider, "model", model)
	return svc, nil
}

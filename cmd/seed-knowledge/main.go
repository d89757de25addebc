package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	appconfig "github.com/wolfman30/hotel-booking-assistant/internal/config"
	httpmiddleware "github.com/wolfman30/hotel-booking-assistant/internal/http/middleware"
	"github.com/wolfman30/hotel-booking-assistant/internal/knowledge"
	"github.com/wolfman30/hotel-booking-assistant/pkg/logging"
)

const uploadBatchSize = 20

// KnowledgeFile is the on-disk seed format.
type KnowledgeFile struct {
	HotelName string               `json:"hotel_name"`
	Documents []knowledge.Document `json:"documents"`
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println("Usage: seed-knowledge <knowledge-file.json>")
		fmt.Println("Example: seed-knowledge testdata/hotel-knowledge.json")
		os.Exit(1)
	}

	cfg := appconfig.Load()
	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: "text"})

	apiURL := strings.TrimRight(os.Getenv("API_URL"), "/")
	if apiURL == "" {
		apiURL = "http://localhost:" + cfg.Port
	}

	file, err := loadKnowledgeFile(os.Args[1])
	if err != nil {
		logger.Error("failed to load knowledge file", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	token := strings.TrimSpace(os.Getenv("ADMIN_TOKEN"))
	if token == "" {
		token, err = httpmiddleware.SignAdminToken(cfg.AdminJWTSecret, "seed-knowledge", 10*time.Minute)
		if err != nil {
			logger.Error("set ADMIN_TOKEN or ADMIN_JWT_SECRET", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("seeding knowledge base", "api_url", apiURL, "hotel", file.HotelName, "documents", len(file.Documents))

	client := &http.Client{Timeout: 60 * time.Second}
	chunks, err := upload(context.Background(), client, apiURL, token, file.Documents, logger)
	if err != nil {
		logger.Error("knowledge seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("knowledge seeding complete", "chunks", chunks)
}

func loadKnowledgeFile(path string) (*KnowledgeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file KnowledgeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.Documents) == 0 {
		return nil, errors.New("knowledge file has no documents")
	}
	return &file, nil
}

// upload posts docs in batches and returns the total number of chunks the
// server reported.
func upload(ctx context.Context, client *http.Client, apiURL, token string, docs []knowledge.Document, logger *logging.Logger) (int, error) {
	total := 0
	batches := (len(docs) + uploadBatchSize - 1) / uploadBatchSize
	for i := 0; i < len(docs); i += uploadBatchSize {
		batch := docs[i:min(i+uploadBatchSize, len(docs))]
		batchNum := i/uploadBatchSize + 1

		payload, err := json.Marshal(map[string]any{"documents": batch})
		if err != nil {
			return total, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/knowledge/documents", bytes.NewReader(payload))
		if err != nil {
			return total, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := client.Do(req)
		if err != nil {
			return total, fmt.Errorf("batch %d: %w", batchNum, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			return total, fmt.Errorf("batch %d: status %d: %s", batchNum, resp.StatusCode, strings.TrimSpace(string(body)))
		}
		var result struct {
			Chunks int `json:"chunks"`
		}
		if err := json.Unmarshal(body, &result); err == nil {
			total += result.Chunks
		}
		logger.Info("batch uploaded", "batch", batchNum, "of", batches, "documents", len(batch))
	}
	return total, nil
}

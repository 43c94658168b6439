package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/techikansh/blogging-platform/internal/api"
	"github.com/techikansh/blogging-platform/internal/types"
	"github.com/techikansh/blogging-platform/internal/utils"
)

// DraftRecord represents one draft post in the JSON seed file
type DraftRecord struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"imageUrl"`
	Featured bool     `json:"featured"`
}

func main() {
	// Command line flags
	jsonFile := flag.String("file", "posts.json", "Path to the JSON file of drafts")
	apiURL := flag.String("api", "http://localhost:8080", "Base URL of the blog API")
	token := flag.String("token", "", "Bearer token for authenticated publishing")
	pause := flag.Duration("pause", 200*time.Millisecond, "Delay between create calls")
	flag.Parse()

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Load JSON file
	logger.Info("Loading draft file", zap.String("file", *jsonFile))
	drafts, err := loadDraftFile(*jsonFile)
	if err != nil {
		logger.Fatal("Failed to load draft file", zap.Error(err))
	}
	logger.Info("Loaded drafts", zap.Int("count", len(drafts)))

	client := api.NewClient(*apiURL, 30*time.Second, api.StaticToken(*token))

	successful := 0
	failed := 0

	for i, draft := range drafts {
		req := types.CreatePostRequest{
			Title:    draft.Title,
			Subtitle: draft.Subtitle,
			Content:  draft.Content,
			ReadTime: utils.EstimateReadTime(draft.Content),
			ImageURL: draft.ImageURL,
			Featured: draft.Featured,
			Category: draft.Category,
			Tags:     draft.Tags,
		}

		resp, err := client.CreatePost(ctx, req)
		switch {
		case err != nil:
			logger.Error("Failed to create post", zap.Int("index", i), zap.String("title", draft.Title), zap.Error(err))
			failed++
		case !resp.Success:
			logger.Error("Create rejected by server", zap.Int("index", i), zap.String("title", draft.Title), zap.String("message", resp.Message))
			failed++
		default:
			logger.Info("Created post", zap.Int("index", i), zap.String("title", draft.Title))
			successful++
		}

		// Small delay between calls to stay polite to the API
		if i+1 < len(drafts) {
			time.Sleep(*pause)
		}
	}

	logger.Info("Completed seeding",
		zap.Int("total", len(drafts)),
		zap.Int("successful", successful),
		zap.Int("failed", failed))
}

// loadDraftFile reads and parses the JSON seed file
func loadDraftFile(filePath string) ([]DraftRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var drafts []DraftRecord
	if err := json.NewDecoder(file).Decode(&drafts); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return drafts, nil
}

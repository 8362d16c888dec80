package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/config"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/logger"
	"github.com/jsm1306/NiveshBuddy-Assignment/pkg/redis"
)

// cacheTTL bounds how long an analysis for identical metrics is
// reused instead of calling the model again.
const cacheTTL = 24 * time.Hour

// Analyzer generates narrative strategy analysis via the Gemini API.
// The call is a single synchronous round trip; failures surface to
// the caller without retry.
type Analyzer struct {
	client          *genai.Client
	model           string
	temperature     float32
	topP            float32
	maxOutputTokens int32
	cache           *redis.Cache
	logger          *logger.Logger
}

// New creates a Gemini-backed analyzer. Requires GEMINI_API_KEY.
// cache may be nil when Redis is not configured.
func New(ctx context.Context, cfg *config.Config, cache *redis.Cache, log *logger.Logger) (*Analyzer, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not found")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	return &Analyzer{
		client:          client,
		model:           cfg.Gemini.Model,
		temperature:     float32(cfg.Gemini.Temperature),
		topP:            float32(cfg.Gemini.TopP),
		maxOutputTokens: int32(cfg.Gemini.MaxOutputTokens),
		cache:           cache,
		logger:          log,
	}, nil
}

// Analyze runs the comparison payload through the model and returns
// the narrative text. Identical payloads hit the cache when one is
// configured.
func (a *Analyzer) Analyze(ctx context.Context, cmp *Comparison, mode Mode) (string, error) {
	metricsJSON, err := cmp.JSON()
	if err != nil {
		return "", err
	}

	cacheKey := ""
	if a.cache != nil {
		hash, err := cmp.Hash()
		if err == nil {
			cacheKey = fmt.Sprintf("analysis:%s:%s", mode, hash)
			var cached string
			if found, _ := a.cache.Get(ctx, cacheKey, &cached); found {
				a.logger.WithField("mode", string(mode)).Info("Analysis served from cache")
				return cached, nil
			}
		}
	}

	prompt, err := BuildPrompt(metricsJSON, mode)
	if err != nil {
		return "", err
	}

	a.logger.WithFields(map[string]interface{}{
		"model": a.model,
		"mode":  string(mode),
	}).Info("Requesting strategy analysis")

	startTime := time.Now()

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(a.temperature),
		TopP:            genai.Ptr(a.topP),
		MaxOutputTokens: a.maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini API returned empty response")
	}

	a.logger.WithFields(map[string]interface{}{
		"model":       a.model,
		"duration_ms": time.Since(startTime).Milliseconds(),
		"chars":       len(text),
	}).Info("Strategy analysis completed")

	if a.cache != nil && cacheKey != "" {
		if err := a.cache.Set(ctx, cacheKey, text, cacheTTL); err != nil {
			a.logger.WithError(err).Warn("Failed to cache analysis")
		}
	}

	return text, nil
}

// extractText concatenates the text parts of the first candidate that
// has any.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String()
}

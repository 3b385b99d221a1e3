package announce

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultHTTPTimeout    = 30 * time.Second

	tonePrompt = "You are a fun and enthusiastic event host. Announce the following lucky draw winners for our corporate event. Make it sound exciting, celebratory, and brief. Keep it to one or two sentences. Winners: "
)

var (
	ErrMissingCredential = errors.New("gemini api key is not configured")
	ErrEmptyResponse     = errors.New("gemini returned no text")
)

// GeminiConfig configures the Gemini generateContent endpoint.
type GeminiConfig struct {
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

// GeminiClient generates announcement text with the Gemini REST API.
type GeminiClient struct {
	cfg GeminiConfig
}

// NewGeminiClient builds a client, filling in endpoint, model and HTTP client
// defaults.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultGeminiEndpoint
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultGeminiModel
	}
	return &GeminiClient{cfg: cfg}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Prompt is the instruction sent for a list of winners.
func Prompt(winners []string) string {
	return tonePrompt + strings.Join(winners, ", ")
}

// Generate asks Gemini for an announcement of winners.
func (g *GeminiClient) Generate(ctx context.Context, winners []string) (string, error) {
	apiKey := strings.TrimSpace(g.cfg.APIKey)
	if apiKey == "" {
		return "", ErrMissingCredential
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: Prompt(winners)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(g.cfg.Endpoint, "/"), g.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	res, err := g.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read gemini error body: %w", err)
		}
		return "", fmt.Errorf("gemini request status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var payload geminiResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	var text strings.Builder
	for _, candidate := range payload.Candidates {
		for _, part := range candidate.Content.Parts {
			text.WriteString(part.Text)
		}
		if text.Len() > 0 {
			break
		}
	}

	out := strings.TrimSpace(text.String())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

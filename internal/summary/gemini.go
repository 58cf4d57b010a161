package summary

import (
	"context"
	"fmt"

	"hogarboard/internal/finance"
	"hogarboard/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiSummarizer implements Summarizer against the Google Gemini API.
type GeminiSummarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

var _ Summarizer = (*GeminiSummarizer)(nil)

// NewGeminiSummarizer creates a summarizer using the given API key and model
// name, e.g. "gemini-2.0-flash". A nil logger falls back to a default.
func NewGeminiSummarizer(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSummarizer{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Summarize produces a short digest of the report via the Gemini API.
func (s *GeminiSummarizer) Summarize(ctx context.Context, report *finance.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("no report to summarize")
	}

	prompt := BuildPrompt(report)
	s.logger.WithField(logging.FieldMonth, report.ActiveMonth).Debug("Requesting report summary from Gemini")

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// Close releases the underlying API client.
func (s *GeminiSummarizer) Close() error {
	return s.client.Close()
}

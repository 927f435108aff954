// Package ai implements the answer-extraction oracle on the Anthropic API.
// The oracle is treated as untrusted: responses are parsed defensively and a
// malformed reply means "no answer found", never a failed batch.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"github.com/lzkit/lzkit/internal/catalog"
	"github.com/lzkit/lzkit/internal/docs"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5-20250929"

const defaultMaxTokens = 1024

// Config wires an Oracle.
type Config struct {
	APIKey    string // falls back to ANTHROPIC_API_KEY
	Model     string
	MaxTokens int
	Retry     RetryConfig
	// CallsPerSecond rate-limits API calls across the extraction batch.
	// Zero means 2/s.
	CallsPerSecond float64
	Logger         *slog.Logger
}

// Oracle extracts answers to discovery questions from document context.
// It implements docs.Oracle.
type Oracle struct {
	client    *anthropic.Client
	model     string
	maxTokens int
	retry     RetryConfig
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// New creates an oracle. A missing API key is a configuration error and is
// reported before any session work begins.
func New(cfg Config) (*Oracle, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	retry := cfg.Retry
	if retry.MaxRetries == 0 {
		retry = DefaultRetryConfig()
	}
	rps := cfg.CallsPerSecond
	if rps <= 0 {
		rps = 2
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Oracle{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
		retry:     retry,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		logger:    logger,
	}, nil
}

// extractionReply is the JSON shape the model is asked to return.
type extractionReply struct {
	Answer         string  `json:"answer"`
	Confidence     float64 `json:"confidence"`
	SourceDocument string  `json:"source_document"`
}

// ExtractAnswer implements docs.Oracle. It asks the model to answer one
// question from the provided document context. A reply that cannot be parsed
// is treated as "no answer found".
func (o *Oracle) ExtractAnswer(ctx context.Context, q catalog.Question, docContext string) (*docs.Extraction, bool, error) {
	if strings.TrimSpace(docContext) == "" {
		return nil, false, nil
	}

	if err := o.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	prompt := buildExtractionPrompt(q, docContext)

	var response *anthropic.Message
	err := o.retryWithBackoff(ctx, "extract_answer", func(attemptCtx context.Context) error {
		resp, apiErr := o.client.Messages.New(attemptCtx, anthropic.MessageNewParams{
			Model:     anthropic.Model(o.model),
			MaxTokens: int64(o.maxTokens),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if apiErr != nil {
			return apiErr
		}
		response = resp
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text string
	for _, block := range response.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	reply, ok := parseReply[extractionReply](text)
	if !ok {
		o.logger.Warn("unparseable oracle reply, treating as no answer",
			"question", q.ID)
		return nil, false, nil
	}
	if strings.TrimSpace(reply.Answer) == "" || strings.EqualFold(reply.Answer, "null") {
		return nil, false, nil
	}

	confidence := reply.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &docs.Extraction{
		Text:       reply.Answer,
		Confidence: confidence,
		SourceRef:  reply.SourceDocument,
	}, true, nil
}

// buildExtractionPrompt asks for a strict-JSON answer to one question.
func buildExtractionPrompt(q catalog.Question, docContext string) string {
	var b strings.Builder
	b.WriteString("Extract the answer to this specific question from the provided content.\n\n")
	fmt.Fprintf(&b, "QUESTION: %s\n", q.Text)
	if q.HelpText != "" {
		fmt.Fprintf(&b, "CONTEXT: %s\n", q.HelpText)
	}
	if len(q.Examples) > 0 {
		fmt.Fprintf(&b, "EXAMPLES: %s\n", strings.Join(q.Examples, "; "))
	}
	b.WriteString("\nRELEVANT CONTENT:\n")
	b.WriteString(docContext)
	b.WriteString(`

TASK: If you find a clear answer, return JSON with:
{
  "answer": "the specific answer text",
  "confidence": 0.0-1.0,
  "source_document": "document name where the answer was found"
}

If no clear answer is found, return: {"answer": null}
Return ONLY the JSON object, no other text.`)
	return b.String()
}

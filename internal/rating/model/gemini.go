package model

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/resumerater/resumerater-backend/internal/rating/domain"
	"google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

var _ Client = (*Gemini)(nil)

type config struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration

	client *http.Client
}

// Option configures a Gemini client.
type Option func(*config)

func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithBaseURL points the client at another endpoint, e.g. a test server.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithTimeout bounds a single Generate call.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// Gemini calls the Gemini API with the page image and Prompt.
type Gemini struct {
	cfg    *config
	client *genai.Client
}

// NewGemini creates a Gemini client. The API key is required.
func NewGemini(ctx context.Context, apiKey, model string, options ...Option) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &config{
		apiKey: apiKey,
		model:  model,
	}

	for _, option := range options {
		option(cfg)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.apiKey,
		Backend: genai.BackendGeminiAPI,

		HTTPClient: cfg.client,
	}

	if cfg.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{
			BaseURL: cfg.baseURL,
		}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Gemini{cfg: cfg, client: client}, nil
}

func (g *Gemini) Name() string { return g.cfg.model }

// Generate sends the prompt and the page image as a single user turn.
func (g *Gemini) Generate(ctx context.Context, page *domain.RenderedPage) (*domain.ModelReply, error) {
	if g.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.timeout)
		defer cancel()
	}

	mimeType := page.MIMEType
	if mimeType == "" {
		mimeType = domain.PNGMIMEType
	}

	parts := []*genai.Part{
		genai.NewPartFromText(Prompt),
		{
			InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     page.Data,
			},
		},
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.model, contents, nil)
	if err != nil {
		return nil, &domain.ModelError{Model: g.cfg.model, Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		reason := "no candidates"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			reason = "prompt blocked: " + string(resp.PromptFeedback.BlockReason)
		}
		return nil, &domain.ModelError{Model: g.cfg.model, Err: errors.New(reason)}
	}

	return &domain.ModelReply{
		Text:  resp.Text(),
		Model: g.cfg.model,
	}, nil
}

// Package gita implements the daily quote fetcher. It wraps the Gemini API
// and asks for one Bhagavad Gita verse as a structured JSON object. Every
// failure path returns a nil quote; callers must treat absence as "no
// quote this cycle" and never retry automatically.
package gita

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/iskcon-portal/iskcon-portal/internal/config"
	"github.com/iskcon-portal/iskcon-portal/internal/store/models"
)

const (
	defaultTimeout = 30 * time.Second

	// DefaultModel is used when the config leaves gita.model empty.
	DefaultModel = "gemini-3-flash-preview"

	prompt = "Generate a powerful and inspiring quote from the Bhagavad Gita for ISKCON devotees today."
)

type engine struct {
	client *genai.Client
	model  string
}

// Engine represents the Gemini quote engine.
var Engine engine

// Open initializes the Gemini client from the given configuration. With an
// empty API key the engine stays unconfigured and every fetch fails closed.
func Open(ctx context.Context, cfg config.Gita) error {
	if cfg.APIKey == "" {
		log.Warn().Msg("gita quote engine disabled: no api key configured")
		return nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return err
	}

	Engine.client = client

	Engine.model = cfg.Model
	if Engine.model == "" {
		Engine.model = DefaultModel
	}

	return nil
}

// quoteSchema constrains the model response to the exact quote field set.
func quoteSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"verse":       {Type: genai.TypeString},
			"translation": {Type: genai.TypeString},
			"purport":     {Type: genai.TypeString},
			"chapter":     {Type: genai.TypeInteger},
			"text":        {Type: genai.TypeInteger},
		},
		Required: []string{"verse", "translation", "purport", "chapter", "text"},
	}
}

// Fetch requests one quote from the Gemini API. Each call re-hits the
// external service; there is no caching.
func (e *engine) Fetch(ctx context.Context) (*models.GitaQuote, error) {
	if e.client == nil {
		return nil, ErrClientNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   quoteSchema(),
		},
	)
	if err != nil {
		return nil, err
	}

	quote, err := ParseQuote(resp.Text())
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("chapter", quote.Chapter).
		Int("text", quote.Text).
		Msg("gita quote fetched")

	return quote, nil
}

// ParseQuote decodes the model response text and validates it against the
// expected field set, failing closed on any mismatch.
func ParseQuote(text string) (*models.GitaQuote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var quote models.GitaQuote
	if err := json.Unmarshal([]byte(text), &quote); err != nil {
		return nil, ErrMalformedQuote
	}

	if quote.Verse == "" || quote.Translation == "" || quote.Purport == "" {
		return nil, ErrMalformedQuote
	}

	if quote.Chapter < 1 || quote.Text < 1 {
		return nil, ErrMalformedQuote
	}

	return &quote, nil
}

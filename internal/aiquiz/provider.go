package aiquiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
	"google.golang.org/genai"
)

// Provider is the narrow "complete this prompt" capability. Implementations
// return the model's raw text; extraction and validation happen downstream.
type Provider interface {
	Name() string
	Generate(ctx context.Context, system, user string) (string, error)
}

var ErrEmptyResponse = errors.New("empty model response")

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider reads GEMINI_API_KEY from the environment via the client.
func NewGeminiProvider(ctx context.Context) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{
		client: client,
		model:  config.Getenv("GEMINI_MODEL", "gemini-2.0-flash"),
	}, nil
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Generate(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		log.WithError(err).Error("Gemini generation failed")
		return "", fmt.Errorf("gemini: %w", err)
	}

	raw := result.Text()
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyResponse
	}
	log.Debugf("[AIQUIZ] Raw Gemini response:\n%s", raw)
	return raw, nil
}

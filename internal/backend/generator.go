package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/StudyAssist/internal/config"
)

// ErrEmptyCompletion is returned when the model answers with no content.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

// Generator turns study material into summary and quiz text.
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// ChatCompleter is the part of *openai.Client the generator needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// StudyGenerator asks an OpenAI-compatible chat model for a summary and quiz.
type StudyGenerator struct {
	client ChatCompleter
	model  string
}

func NewStudyGenerator(client ChatCompleter, model string) *StudyGenerator {
	if model == "" {
		model = config.DefaultModel
	}
	return &StudyGenerator{client: client, model: model}
}

// NewStudyGeneratorFromConfig builds the OpenAI client from the active
// profile.
func NewStudyGeneratorFromConfig(cfg *config.Config) (*StudyGenerator, error) {
	if !cfg.IsValid() {
		return nil, fmt.Errorf("profile '%s' has no API key; run: studyassist profile edit %s", cfg.ActiveProfile, cfg.ActiveProfile)
	}

	clientConfig := openai.DefaultConfig(cfg.GetAPIKey())
	if cfg.GetBaseURL() != "" {
		clientConfig.BaseURL = cfg.GetBaseURL()
	}

	return NewStudyGenerator(openai.NewClientWithConfig(clientConfig), cfg.GetModel()), nil
}

func (g *StudyGenerator) Model() string {
	return g.model
}

func (g *StudyGenerator) Generate(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(text)},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

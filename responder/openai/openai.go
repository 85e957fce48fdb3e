// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package openai provides a [server.Responder] backed by the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"
	"log/slog"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/go-a2a/a2a-lite/server"
)

// DefaultInstructions is the system prompt used when Config.Instructions is
// empty.
const DefaultInstructions = "You are a helpful assistant. Answer the user's request concisely."

// Config configures a [Responder].
type Config struct {
	// APIKey authenticates against the OpenAI API.
	APIKey string

	// Model is the chat model to use. Defaults to gpt-4o-mini.
	Model string

	// Instructions is the system prompt sent ahead of every query.
	// Defaults to [DefaultInstructions].
	Instructions string
}

// Responder answers task queries with a single chat completion per call.
// Session IDs are ignored; every query stands alone.
type Responder struct {
	client       sdk.Client
	model        string
	instructions string
	logger       *slog.Logger
}

var _ server.Responder = (*Responder)(nil)

// New creates a new [Responder] from cfg.
func New(cfg Config) (*Responder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key must not be empty")
	}

	model := cfg.Model
	if model == "" {
		model = sdk.ChatModelGPT4oMini
	}
	instructions := cfg.Instructions
	if instructions == "" {
		instructions = DefaultInstructions
	}

	return &Responder{
		client:       sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:        model,
		instructions: instructions,
		logger:       slog.Default(),
	}, nil
}

// WithLogger sets the logger to use.
func (r *Responder) WithLogger(logger *slog.Logger) *Responder {
	r.logger = logger
	return r
}

// Respond implements [server.Responder].
func (r *Responder) Respond(ctx context.Context, query, sessionID string) (string, error) {
	r.logger.DebugContext(ctx, "requesting chat completion",
		slog.String("model", r.model),
		slog.String("session_id", sessionID),
	)

	completion, err := r.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model: r.model,
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(r.instructions),
			sdk.UserMessage(query),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

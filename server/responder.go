// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
)

// Responder produces the agent's reply to a user query. It is the boundary
// to whatever actually does the work, typically an LLM client; the server
// never inspects the reply beyond appending it to the task history.
//
// Respond may block for as long as the backend takes; callers that need a
// deadline set one on ctx.
type Responder interface {
	Respond(ctx context.Context, query, sessionID string) (string, error)
}

// ResponderFunc adapts a function to the [Responder] interface.
type ResponderFunc func(ctx context.Context, query, sessionID string) (string, error)

var _ Responder = (ResponderFunc)(nil)

// Respond implements [Responder].
func (f ResponderFunc) Respond(ctx context.Context, query, sessionID string) (string, error) {
	return f(ctx, query, sessionID)
}

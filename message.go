// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Role represents the role of a message sender.
type Role string

// Role constants for message senders.
const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is one turn in a task's conversation. Messages are immutable once
// appended to a history.
type Message struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// NewUserTextMessage creates a user message containing a single TextPart.
func NewUserTextMessage(text string) Message {
	return Message{
		Role:  RoleUser,
		Parts: []Part{NewTextPart(text)},
	}
}

// NewAgentTextMessage creates an agent message containing a single TextPart.
func NewAgentTextMessage(text string) Message {
	return Message{
		Role:  RoleAgent,
		Parts: []Part{NewTextPart(text)},
	}
}

// Validate ensures the Message is valid.
func (m Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAgent {
		return fmt.Errorf("invalid message role: %q", m.Role)
	}
	if len(m.Parts) == 0 {
		return fmt.Errorf("message must contain at least one part")
	}
	for i, part := range m.Parts {
		if part == nil {
			return fmt.Errorf("message part at index %d cannot be nil", i)
		}
		if err := part.Validate(); err != nil {
			return fmt.Errorf("message part at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// Text returns the text of the message's first part, or the empty string if
// the message has no parts or its first part is not a TextPart.
func (m Message) Text() string {
	if len(m.Parts) == 0 {
		return ""
	}
	if tp, ok := m.Parts[0].(*TextPart); ok {
		return tp.Text
	}
	return ""
}

// TextParts returns the text content of every TextPart in the message, in
// order.
func (m Message) TextParts() []string {
	var texts []string
	for _, part := range m.Parts {
		if tp, ok := part.(*TextPart); ok {
			texts = append(texts, tp.Text)
		}
	}
	return texts
}

// UnmarshalJSON implements [json.Unmarshaler]. Parts are decoded in two
// phases: the raw part is captured first, then dispatched on its "type"
// discriminator.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role  Role             `json:"role"`
		Parts []jsontext.Value `json:"parts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal message: %w", err)
	}

	m.Role = raw.Role
	m.Parts = nil
	if raw.Parts == nil {
		return nil
	}

	m.Parts = make([]Part, len(raw.Parts))
	for i, partData := range raw.Parts {
		part, err := UnmarshalPart(partData)
		if err != nil {
			return fmt.Errorf("part at index %d: %w", i, err)
		}
		m.Parts[i] = part
	}
	return nil
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// Part type discriminators used on the wire.
const (
	PartTypeText = "text"
	PartTypeFile = "file"
	PartTypeData = "data"
)

// Part is one segment of a message's content. Only text parts are produced by
// this implementation; file and data parts are admitted by the model so other
// agents' payloads decode cleanly.
type Part interface {
	Validate() error

	// partType returns the wire discriminator and seals the interface.
	partType() string
}

// TextPart is a plain-text message segment.
type TextPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var _ Part = (*TextPart)(nil)

// NewTextPart creates a new TextPart with the given text.
func NewTextPart(text string) *TextPart {
	return &TextPart{
		Type: PartTypeText,
		Text: text,
	}
}

// Validate ensures the TextPart is valid. Empty text is allowed; a responder
// may legitimately reply with nothing.
func (p *TextPart) Validate() error {
	if p.Type != PartTypeText {
		return fmt.Errorf("text part has type %q, want %q", p.Type, PartTypeText)
	}
	return nil
}

func (p *TextPart) partType() string { return PartTypeText }

// FileContent is the payload of a FilePart, referenced by URI or embedded as
// bytes.
type FileContent struct {
	Name     string `json:"name,omitzero"`
	MimeType string `json:"mimeType,omitzero"`
	URI      string `json:"uri,omitzero"`
	Bytes    []byte `json:"bytes,omitzero"`
}

// FilePart is a file message segment.
type FilePart struct {
	Type string      `json:"type"`
	File FileContent `json:"file"`
}

var _ Part = (*FilePart)(nil)

// Validate ensures the FilePart is valid.
func (p *FilePart) Validate() error {
	if p.Type != PartTypeFile {
		return fmt.Errorf("file part has type %q, want %q", p.Type, PartTypeFile)
	}
	if p.File.URI == "" && len(p.File.Bytes) == 0 {
		return fmt.Errorf("file part must carry a URI or bytes")
	}
	return nil
}

func (p *FilePart) partType() string { return PartTypeFile }

// DataPart is a structured-data message segment.
type DataPart struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

var _ Part = (*DataPart)(nil)

// Validate ensures the DataPart is valid.
func (p *DataPart) Validate() error {
	if p.Type != PartTypeData {
		return fmt.Errorf("data part has type %q, want %q", p.Type, PartTypeData)
	}
	return nil
}

func (p *DataPart) partType() string { return PartTypeData }

// UnmarshalPart decodes a single part, dispatching on its "type" field.
// Unknown part types are rejected rather than partially parsed.
func UnmarshalPart(data []byte) (Part, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("peek part type: %w", err)
	}

	switch probe.Type {
	case PartTypeText:
		var p TextPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal text part: %w", err)
		}
		return &p, nil

	case PartTypeFile:
		var p FilePart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal file part: %w", err)
		}
		return &p, nil

	case PartTypeData:
		var p DataPart
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal data part: %w", err)
		}
		return &p, nil

	default:
		return nil, fmt.Errorf("unknown part type: %q", probe.Type)
	}
}

package parser

import (
	"errors"
	"maps"
	"slices"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// Shape names the top-level form of a recommendation response.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapePapersObject
	ShapePaperArray
	ShapeChatEnvelope
	ShapeNestedPapers
	ShapeText
)

func (s Shape) String() string {
	switch s {
	case ShapePapersObject:
		return "papers_object"
	case ShapePaperArray:
		return "paper_array"
	case ShapeChatEnvelope:
		return "chat_envelope"
	case ShapeNestedPapers:
		return "nested_papers"
	case ShapeText:
		return "text"
	default:
		return "unrecognized"
	}
}

// Path records which route produced the paper entries.
type Path string

const (
	PathDirect    Path = "direct"
	PathNested    Path = "nested"
	PathFenced    Path = "fenced"
	PathBalanced  Path = "balanced"
	PathWholeText Path = "whole_text"
	PathNone      Path = "none"
)

// Envelope is a classified response. Entries is set for the papers object,
// paper array and nested shapes; Content for the chat envelope and text
// shapes.
type Envelope struct {
	Shape   Shape
	Entries []any
	Content string
}

// Classify inspects a decoded JSON value without reading any paper fields.
// The first matching shape wins.
func Classify(value any) Envelope {
	candidates := Candidates(value)
	if len(candidates) == 0 {
		return Envelope{Shape: ShapeUnrecognized}
	}
	return candidates[0]
}

// Candidates lists every shape value matches, in recognition order. A
// response can match several: an object with an empty papers array may
// still carry chat content or a nested papers array.
func Candidates(value any) []Envelope {
	var out []Envelope

	if entries, ok := papersField(value); ok {
		out = append(out, Envelope{Shape: ShapePapersObject, Entries: entries})
	}

	switch v := value.(type) {
	case []any:
		out = append(out, Envelope{Shape: ShapePaperArray, Entries: v})
	case string:
		out = append(out, Envelope{Shape: ShapeText, Content: v})
	case map[string]any:
		if content, ok := chatContent(v); ok {
			out = append(out, Envelope{Shape: ShapeChatEnvelope, Content: content})
		}
		if entries, ok := nestedPapers(v); ok {
			out = append(out, Envelope{Shape: ShapeNestedPapers, Entries: entries})
		}
	}

	return out
}

// chatContent reads choices[0].delta.content, falling back to
// choices[0].message.content.
func chatContent(object map[string]any) (string, bool) {
	choices, ok := object["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}
	choice, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}

	for _, key := range []string{"delta", "message"} {
		part, ok := choice[key].(map[string]any)
		if !ok {
			continue
		}
		if content, ok := part["content"].(string); ok && content != "" {
			return content, true
		}
	}

	return "", false
}

// nestedPapers finds a papers array one level down, either in a child
// object or in a child string holding JSON.
func nestedPapers(object map[string]any) ([]any, bool) {
	for _, key := range slices.Sorted(maps.Keys(object)) {
		switch child := object[key].(type) {
		case map[string]any:
			if entries, ok := papersField(child); ok {
				return entries, true
			}
		case string:
			value, err := decodeJSON([]byte(child))
			if err != nil {
				continue
			}
			if entries, ok := papersField(value); ok {
				return entries, true
			}
		}
	}

	return nil, false
}

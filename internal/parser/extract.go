package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

var (
	fencedJSONPattern   = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
)

// ExtractBalancedObject returns the text from the first '{' up to its
// matching '}'. Braces inside JSON string literals do not count toward the
// depth. It reports false when there is no '{' or the depth never returns
// to zero.
func ExtractBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// ExtractFencedJSON returns the body of the first ```json fenced block.
func ExtractFencedJSON(text string) (string, bool) {
	match := fencedJSONPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ExtractPapers looks for a JSON object carrying a "papers" array inside
// free text. It tries a fenced ```json block, then the first balanced
// object, then the whole text.
func ExtractPapers(text string) ([]any, Path) {
	text = strings.TrimSpace(text)

	if fenced, ok := ExtractFencedJSON(text); ok {
		if entries, ok := papersFromText(fenced); ok {
			return entries, PathFenced
		}
	}

	if candidate, ok := ExtractBalancedObject(text); ok {
		if entries, ok := papersFromText(candidate); ok {
			return entries, PathBalanced
		}
	}

	if entries, ok := papersFromText(text); ok {
		return entries, PathWholeText
	}

	return nil, PathNone
}

func papersFromText(text string) ([]any, bool) {
	value, err := decodeJSON([]byte(text))
	if err != nil {
		value, err = decodeJSON([]byte(repairTrailingCommas(text)))
		if err != nil {
			return nil, false
		}
	}

	return papersField(value)
}

func papersField(value any) ([]any, bool) {
	object, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	entries, ok := object["papers"].([]any)
	return entries, ok
}

func repairTrailingCommas(text string) string {
	text = trailingCommaObject.ReplaceAllString(text, "}")
	return trailingCommaArray.ReplaceAllString(text, "]")
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	var extra any
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	return value, nil
}

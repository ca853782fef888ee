// Package parser turns recommendation API responses of uneven shape into
// validated papers. Parsing never fails: when nothing usable is found the
// result holds placeholder papers and Fallback is set.
package parser

import (
	"github.com/bnema/paperswipe/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// MaxPapers caps the number of papers returned for one response.
const MaxPapers = 5

type Result struct {
	Papers   []domain.Paper
	Shape    Shape
	Path     Path
	Dropped  int
	Fallback bool
}

type Parser struct {
	logger   zerolog.Logger
	validate *validator.Validate
	limit    int
}

type Option func(*Parser)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger.With().Str("component", "parser").Logger()
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{
		logger:   zerolog.Nop(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		limit:    MaxPapers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes a raw response body and extracts papers from it. A body
// that is not JSON is unrecognized.
func (p *Parser) Parse(body []byte) Result {
	value, err := decodeJSON(body)
	if err != nil {
		p.logger.Debug().Err(err).Int("bytes", len(body)).Msg("response body is not JSON")
		return p.fallback(Result{Shape: ShapeUnrecognized, Path: PathNone})
	}

	return p.ParseValue(value)
}

// ParseValue extracts papers from an already decoded JSON value. Each
// matching shape is tried in recognition order until one yields at least
// one valid paper.
func (p *Parser) ParseValue(value any) Result {
	candidates := Candidates(value)

	fallback := Result{Shape: ShapeUnrecognized, Path: PathNone}
	for i, envelope := range candidates {
		entries, path := envelope.entries()
		result := p.filter(entries, envelope.Shape, path)
		if len(result.Papers) > 0 {
			result.Dropped += fallback.Dropped
			return result
		}

		if i == 0 {
			fallback.Shape, fallback.Path = result.Shape, result.Path
		}
		fallback.Dropped += result.Dropped
		p.logger.Debug().Stringer("shape", envelope.Shape).Str("path", string(path)).Int("dropped", result.Dropped).Msg("no valid papers in shape, trying next")
	}

	return p.fallback(fallback)
}

func (p *Parser) fallback(result Result) Result {
	p.logger.Warn().Stringer("shape", result.Shape).Str("path", string(result.Path)).Int("dropped", result.Dropped).Msg("no valid papers in response, using placeholders")
	result.Papers = FallbackPapers(p.limit)
	result.Fallback = true
	return result
}

func (e Envelope) entries() ([]any, Path) {
	switch e.Shape {
	case ShapePapersObject, ShapePaperArray:
		return e.Entries, PathDirect
	case ShapeNestedPapers:
		return e.Entries, PathNested
	case ShapeChatEnvelope, ShapeText:
		return ExtractPapers(e.Content)
	default:
		return nil, PathNone
	}
}

// filter keeps valid entries in order, up to the parser limit.
func (p *Parser) filter(entries []any, shape Shape, path Path) Result {
	result := Result{Shape: shape, Path: path}

	for i, entry := range entries {
		if len(result.Papers) == p.limit {
			break
		}

		c, ok := decodeEntry(entry)
		if !ok {
			result.Dropped++
			p.logger.Debug().Int("index", i).Msg("dropping non-object paper entry")
			continue
		}
		if err := p.validate.Struct(c); err != nil {
			result.Dropped++
			p.logger.Debug().Int("index", i).Str("title", c.Title).Err(err).Msg("dropping invalid paper entry")
			continue
		}

		result.Papers = append(result.Papers, c.paper())
	}

	return result
}

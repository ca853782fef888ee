package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	libraryPathKey    = "library.path"
	libraryFileMode   = 0o600
	libraryDirMode    = 0o700
	libraryConfigDir  = ".paperswipe"
	libraryConfigFile = "library.toml"
	tempFilePattern   = ".library-*.toml.tmp"
)

// Repository keeps the whole library as one TOML document and rewrites it
// atomically on every change.
type Repository struct {
	libraryPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.LibraryStore = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	libraryPath := cfg.GetString(libraryPathKey)
	if libraryPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		libraryPath = filepath.Join(homeDir, libraryConfigDir, libraryConfigFile)
	}

	libraryPath, err := normalizeLibraryPath(libraryPath)
	if err != nil {
		return nil, err
	}

	return &Repository{libraryPath: libraryPath, mu: lockForPath(libraryPath)}, nil
}

func (r *Repository) Path() string {
	return r.libraryPath
}

func (r *Repository) List(ctx context.Context) ([]domain.Paper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	papers := make([]domain.Paper, 0, len(file.Papers))
	for _, entry := range file.Papers {
		papers = append(papers, fromSchema(entry))
	}

	return papers, nil
}

// Add appends paper unless a paper with the same title is already stored.
func (r *Repository) Add(ctx context.Context, paper domain.Paper) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return false, err
	}

	for _, entry := range file.Papers {
		if fromSchema(entry).SameAs(paper) {
			return false, nil
		}
	}
	file.Papers = append(file.Papers, toSchema(paper))

	if err := ctx.Err(); err != nil {
		return false, err
	}

	if err := r.writeSchema(file); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) Remove(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	remaining := slices.DeleteFunc(slices.Clone(file.Papers), func(entry paperSchema) bool {
		return entry.Title == title
	})
	if len(remaining) == len(file.Papers) {
		return domain.ErrPaperNotFound
	}
	file.Papers = remaining

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(fileSchema{})
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.libraryPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read library file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode library file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.libraryPath), libraryDirMode); err != nil {
		return fmt.Errorf("create library directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode library file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.libraryPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp library file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp library file: %w", err)
	}

	if err := tempFile.Chmod(libraryFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp library file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp library file: %w", err)
	}

	if err := os.Rename(tempName, r.libraryPath); err != nil {
		return fmt.Errorf("replace library file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizeLibraryPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve library path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(paper domain.Paper) paperSchema {
	return paperSchema{
		Title:    paper.Title,
		Authors:  paper.Authors,
		Abstract: paper.Abstract,
		Year:     paper.Year,
		Venue:    paper.Venue,
		Tags:     paper.Tags,
		SavedAt:  formatTime(paper.SavedAt),
	}
}

func fromSchema(entry paperSchema) domain.Paper {
	return domain.Paper{
		Title:    entry.Title,
		Authors:  entry.Authors,
		Abstract: entry.Abstract,
		Year:     entry.Year,
		Venue:    entry.Venue,
		Tags:     entry.Tags,
		SavedAt:  parseTime(entry.SavedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}

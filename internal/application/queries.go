package application

import (
	"github.com/bnema/paperswipe/internal/domain"
	"github.com/bnema/paperswipe/internal/parser"
)

// Search is one recommendation round: the parsed response and the swipe
// session built over it.
type Search struct {
	ID      string
	Topic   string
	Result  parser.Result
	Session *domain.SwipeSession
}

// LibraryView is the library after filtering, plus totals over the whole
// library.
type LibraryView struct {
	Papers []domain.Paper
	Stats  domain.LibraryStats
}

// SaveSelectionResult counts a selection: Saved papers were newly stored,
// Duplicates were already in the library.
type SaveSelectionResult struct {
	Received   int
	Saved      int
	Duplicates int
}

package domain

import "errors"

var (
	ErrPaperNotFound = errors.New("paper not found")
	ErrEmptyTopic    = errors.New("research topic is empty")
	ErrTransport     = errors.New("recommendation transport failure")
)

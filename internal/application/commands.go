package application

import "github.com/bnema/paperswipe/internal/domain"

type SearchCommand struct {
	Topic string
}

// SaveSelectionCommand persists a batch of papers chosen outside a swipe
// session, such as through the HTTP API.
type SaveSelectionCommand struct {
	Papers []domain.Paper
}

type RemovePaperCommand struct {
	Title string
}

// RemoveMatchingCommand removes every paper whose title matches a glob
// pattern such as "Deep*" or "*{GAN,Diffusion}*".
type RemoveMatchingCommand struct {
	Pattern string
}

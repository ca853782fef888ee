package ports

import "context"

// Recommender fetches the raw recommendation response body for a topic.
type Recommender interface {
	Recommend(ctx context.Context, topic string) ([]byte, error)
}

package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaperJSONOmitsSavedAtUntilAccepted(t *testing.T) {
	paper := Paper{Title: "T", Authors: "A", Abstract: "B"}

	data, err := json.Marshal(paper)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "saved_at")

	saved := paper.WithSavedAt(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	data, err = json.Marshal(saved)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"saved_at":"2026-01-10T09:00:00Z"`)
}

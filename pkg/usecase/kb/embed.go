package kb

import (
	"context"
	"strings"

	"github.com/instavoice/assistant/pkg/utils/logging"
)

// Embed turns text into an embedding vector. It fails soft: any
// problem (empty input, missing client, remote error) yields nil after
// a log entry, and no outbound call is made for empty input. Single
// attempt, no retry.
func (u *UseCase) Embed(ctx context.Context, text string) []float32 {
	logger := logging.From(ctx)

	if u.gemini == nil {
		logger.Error("gemini client not initialized, cannot generate embedding")
		return nil
	}

	if strings.TrimSpace(text) == "" {
		logger.Warn("embedding requested for empty text")
		return nil
	}

	// Null bytes are rejected by the embedding API.
	processed := strings.ReplaceAll(text, "\x00", "")

	vector, err := u.gemini.Embedding(ctx, processed)
	if err != nil {
		logger.Error("failed to generate embedding", "error", err, "text", truncate(processed, 50))
		return nil
	}

	logger.Info("generated embedding", "text", truncate(processed, 50), "dimensions", len(vector))
	return vector
}

// truncate shortens log text to n runes so multi-byte characters are
// never split mid-sequence.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

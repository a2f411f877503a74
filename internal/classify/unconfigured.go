package classify

import (
	"context"
	"errors"

	"govlens/backend/internal/models"
)

// ErrNotConfigured is returned by the Unconfigured classifier.
var ErrNotConfigured = errors.New("classifier not configured: set GEMINI_API_KEY")

// Unconfigured is the classifier used when no API key is present. Every call
// fails, which makes intake degrade to the documented fallback record, so the
// service stays demo-usable without credentials.
type Unconfigured struct{}

func (Unconfigured) Classify(ctx context.Context, req Request) (models.Classification, error) {
	return models.Classification{}, ErrNotConfigured
}

func (Unconfigured) Transcribe(ctx context.Context, audio models.EncodedMedia) (string, error) {
	return "", ErrNotConfigured
}

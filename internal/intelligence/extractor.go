package intelligence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/datemate/internal/domain"
)

// EntityExtractor turns one piece of user text into a partially-null
// attribute bag. Implementations may be slow and unreliable.
type EntityExtractor interface {
	Extract(ctx context.Context, text string) (domain.Entities, error)
}

// ExtractorFunc adapts a plain function to EntityExtractor.
type ExtractorFunc func(ctx context.Context, text string) (domain.Entities, error)

func (f ExtractorFunc) Extract(ctx context.Context, text string) (domain.Entities, error) {
	return f(ctx, text)
}

// BuildQuery runs the extractor and builds a Query for one turn. It never
// fails because of the extractor: on error the returned Query is empty with
// confidence 0, and the error is returned alongside for logging.
func BuildQuery(ctx context.Context, extractor EntityExtractor, sessionID, text string, now time.Time) (*domain.Query, error) {
	q := domain.NewQuery(sessionID, text, now)
	if extractor == nil {
		return q, errors.New("no entity extractor configured")
	}

	entities, err := extractor.Extract(ctx, text)
	if err != nil {
		return q, fmt.Errorf("extracting entities: %w", err)
	}
	q.Apply(Normalize(entities))
	return q, nil
}

// fallbackExtractor tries primary first and uses secondary when primary
// fails or finds nothing at all.
type fallbackExtractor struct {
	primary   EntityExtractor
	secondary EntityExtractor
	onError   func(error)
}

// WithFallback chains two extractors. onError, if non-nil, sees every
// primary failure before the fallback runs.
func WithFallback(primary, secondary EntityExtractor, onError func(error)) EntityExtractor {
	return &fallbackExtractor{primary: primary, secondary: secondary, onError: onError}
}

func (f *fallbackExtractor) Extract(ctx context.Context, text string) (domain.Entities, error) {
	entities, err := f.primary.Extract(ctx, text)
	if err == nil && !entities.IsEmpty() {
		return entities, nil
	}
	if err != nil && f.onError != nil {
		f.onError(err)
	}
	if ctx.Err() != nil {
		return domain.Entities{}, ctx.Err()
	}
	return f.secondary.Extract(ctx, text)
}

package dictionary

import (
	"context"
	"log"
	"strings"
	"time"
)

// Client defines the interface for translation providers.
type Client interface {
	Lookup(ctx context.Context, word string) (string, error)
	Name() string
}

// Fallback chains translation providers: each is tried in order and the
// first non-blank result wins. It satisfies the TranslationLookup
// collaborator the mistake repository expects.
type Fallback struct {
	sources []Client
	timeout time.Duration
}

// NewFallback creates a fallback chain over the given providers.
func NewFallback(sources ...Client) *Fallback {
	return &Fallback{
		sources: sources,
		timeout: 10 * time.Second,
	}
}

// QueryTranslation returns the first non-blank translation the chain
// produces, or the empty string. Provider failures are logged, never
// surfaced: a missing translation is not an error condition.
func (f *Fallback) QueryTranslation(word string) string {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	for _, src := range f.sources {
		translation, err := src.Lookup(ctx, word)
		if err != nil {
			log.Printf("dictionary lookup via %s failed for %q: %v", src.Name(), word, err)
			continue
		}
		if strings.TrimSpace(translation) != "" {
			return translation
		}
	}
	return ""
}

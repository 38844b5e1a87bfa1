package dictionary

import (
	"context"

	"github.com/zmx4/aelp/internal/refdict"
)

// ReferenceClient adapts the reference dictionary store to the Client
// interface so it can head a fallback chain.
type ReferenceClient struct {
	store *refdict.Store
}

// NewReferenceClient creates a reference-store translation provider.
func NewReferenceClient(store *refdict.Store) *ReferenceClient {
	return &ReferenceClient{store: store}
}

func (c *ReferenceClient) Name() string {
	return "reference"
}

// Lookup returns the stored translation; absent words yield an empty
// string, not an error, so the chain can move on.
func (c *ReferenceClient) Lookup(_ context.Context, word string) (string, error) {
	return c.store.QueryTranslation(word), nil
}

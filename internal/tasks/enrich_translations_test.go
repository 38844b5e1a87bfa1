package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zmx4/aelp/internal/entities"
)

type fakeWordStore struct {
	blank    []entities.Word
	blankErr error
	set      map[uint]string
	setErr   error
}

func (f *fakeWordStore) Blank(limit int) ([]entities.Word, error) {
	return f.blank, f.blankErr
}

func (f *fakeWordStore) SetTranslation(id uint, translation string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.set == nil {
		f.set = make(map[uint]string)
	}
	f.set[id] = translation
	return nil
}

type fakeDictClient struct {
	translations map[string]string
	err          error
}

func (f *fakeDictClient) Lookup(ctx context.Context, word string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.translations[word], nil
}

func (f *fakeDictClient) Name() string { return "fake" }

func TestEnrichTranslationsProcessor(t *testing.T) {
	store := &fakeWordStore{blank: []entities.Word{
		{ID: 1, Text: "apple"},
		{ID: 2, Text: "unknown"},
	}}
	client := &fakeDictClient{translations: map[string]string{"apple": "a fruit"}}

	processor := EnrichTranslationsProcessor(store, client)
	require.NoError(t, processor(context.Background(), EnrichTranslationsTask{}))

	// Resolved words get written back; unresolved ones are left for the
	// next run.
	assert.Equal(t, map[uint]string{1: "a fruit"}, store.set)
}

func TestEnrichTranslationsProcessor_FallsThroughProviders(t *testing.T) {
	store := &fakeWordStore{blank: []entities.Word{{ID: 1, Text: "apple"}}}
	failing := &fakeDictClient{err: errors.New("unreachable")}
	working := &fakeDictClient{translations: map[string]string{"apple": "a fruit"}}

	processor := EnrichTranslationsProcessor(store, failing, working)
	require.NoError(t, processor(context.Background(), EnrichTranslationsTask{}))

	assert.Equal(t, "a fruit", store.set[1])
}

func TestEnrichTranslationsProcessor_StoreErrorPropagates(t *testing.T) {
	cause := errors.New("disk gone")
	store := &fakeWordStore{blankErr: cause}

	processor := EnrichTranslationsProcessor(store)
	err := processor(context.Background(), EnrichTranslationsTask{})
	assert.ErrorIs(t, err, cause)
}

func TestEnrichTranslationsProcessor_ContextCancellation(t *testing.T) {
	store := &fakeWordStore{blank: []entities.Word{
		{ID: 1, Text: "apple"},
		{ID: 2, Text: "pear"},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := EnrichTranslationsProcessor(store, &fakeDictClient{})
	err := processor(ctx, EnrichTranslationsTask{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.set)
}

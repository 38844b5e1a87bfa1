package tasks

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/zmx4/aelp/internal/dictionary"
	"github.com/zmx4/aelp/internal/entities"
)

// WordStore is the slice of the word repository translation enrichment
// needs.
type WordStore interface {
	Blank(limit int) ([]entities.Word, error)
	SetTranslation(id uint, translation string) error
}

// EnrichTranslationsTask fills in blank translations on user Word rows.
// Words created lazily from quiz mistakes carry no translation until
// this task resolves one through the dictionary chain.
type EnrichTranslationsTask struct{}

func (t EnrichTranslationsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_translations",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichTranslationsProcessor creates a processor that resolves every
// blank-translation word through the given providers, stopping early on
// context cancellation. Individual lookup failures skip the word; the
// next run picks it up again.
func EnrichTranslationsProcessor(store WordStore, clients ...dictionary.Client) backlite.QueueProcessor[EnrichTranslationsTask] {
	return func(ctx context.Context, task EnrichTranslationsTask) error {
		blank, err := store.Blank(0)
		if err != nil {
			return fmt.Errorf("load blank-translation words: %w", err)
		}

		var enriched, skipped int
		for _, word := range blank {
			select {
			case <-ctx.Done():
				log.Printf("[TASK] Context cancelled, enriched %d words, %d skipped", enriched, skipped)
				return ctx.Err()
			default:
			}

			translation := lookup(ctx, word.Text, clients)
			if translation == "" {
				skipped++
				continue
			}
			if err := store.SetTranslation(word.ID, translation); err != nil {
				return fmt.Errorf("set translation for word %d: %w", word.ID, err)
			}
			enriched++
		}

		log.Printf("[TASK] Translation enrichment done: %d enriched, %d skipped", enriched, skipped)
		return nil
	}
}

func lookup(ctx context.Context, word string, clients []dictionary.Client) string {
	for _, c := range clients {
		translation, err := c.Lookup(ctx, word)
		if err != nil {
			continue
		}
		if strings.TrimSpace(translation) != "" {
			return translation
		}
	}
	return ""
}

// NewEnrichTranslationsQueue builds the queue for registration.
func NewEnrichTranslationsQueue(store WordStore, clients ...dictionary.Client) backlite.Queue {
	return backlite.NewQueue(EnrichTranslationsProcessor(store, clients...))
}

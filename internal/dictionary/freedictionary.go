package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// FreeDictionaryClient implements Client using the Free Dictionary API.
// API docs: https://dictionaryapi.dev/
type FreeDictionaryClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewFreeDictionaryClient creates a new Free Dictionary API client.
func NewFreeDictionaryClient() *FreeDictionaryClient {
	return &FreeDictionaryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     "https://api.dictionaryapi.dev/api/v2/entries/en",
		rateLimiter: newRateLimiter(500 * time.Millisecond),
	}
}

func (c *FreeDictionaryClient) Name() string {
	return "freedictionary"
}

// Lookup fetches definitions for a word and flattens them into one
// translation text, one "part-of-speech. definition" line per meaning.
func (c *FreeDictionaryClient) Lookup(ctx context.Context, word string) (string, error) {
	word = strings.TrimSpace(strings.ToLower(word))
	if word == "" {
		return "", fmt.Errorf("empty word")
	}

	c.rateLimiter.wait()

	url := fmt.Sprintf("%s/%s", c.baseURL, word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "aelp/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch definition: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("word not found: %s", word)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var apiResponse []freeDictionaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(apiResponse) == 0 {
		return "", fmt.Errorf("empty response for word: %s", word)
	}

	return flattenTranslation(apiResponse[0]), nil
}

func flattenTranslation(resp freeDictionaryResponse) string {
	var lines []string
	for _, meaning := range resp.Meanings {
		for _, def := range meaning.Definitions {
			if def.Definition == "" {
				continue
			}
			if meaning.PartOfSpeech != "" {
				lines = append(lines, meaning.PartOfSpeech+". "+def.Definition)
			} else {
				lines = append(lines, def.Definition)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// Free Dictionary API response types

type freeDictionaryResponse struct {
	Word     string            `json:"word"`
	Meanings []freeDictMeaning `json:"meanings"`
}

type freeDictMeaning struct {
	PartOfSpeech string               `json:"partOfSpeech"`
	Definitions  []freeDictDefinition `json:"definitions"`
}

type freeDictDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

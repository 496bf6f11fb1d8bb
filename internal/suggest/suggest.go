// Package suggest proposes tags for newly catalogued items.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/marciomedrado/casa/internal/model"
)

// MaxSuggestions caps the number of tags returned per request.
const MaxSuggestions = 5

// Suggester proposes tags for an item from its name and description.
type Suggester interface {
	SuggestTags(ctx context.Context, name, description string) ([]string, error)
}

// keywordTags maps substrings of the item text to candidate tags.
// Deliberately small: it covers the categories a household catalog
// actually sees, and anything it misses the user types by hand.
var keywordTags = []struct {
	keyword string
	tags    []string
}{
	{"drill", []string{"tools", "power-tools"}},
	{"screwdriver", []string{"tools"}},
	{"hammer", []string{"tools"}},
	{"saw", []string{"tools"}},
	{"wrench", []string{"tools"}},
	{"cable", []string{"electronics", "cables"}},
	{"charger", []string{"electronics", "chargers"}},
	{"battery", []string{"electronics", "batteries"}},
	{"laptop", []string{"electronics", "computers"}},
	{"phone", []string{"electronics"}},
	{"book", []string{"books", "reading"}},
	{"magazine", []string{"reading"}},
	{"document", []string{"documents", "papers"}},
	{"passport", []string{"documents", "important"}},
	{"contract", []string{"documents"}},
	{"wine", []string{"beverages", "wine"}},
	{"glass", []string{"kitchen", "fragile"}},
	{"plate", []string{"kitchen"}},
	{"pan", []string{"kitchen", "cookware"}},
	{"shirt", []string{"clothing"}},
	{"jacket", []string{"clothing", "winter"}},
	{"shoe", []string{"clothing", "footwear"}},
	{"blanket", []string{"bedding"}},
	{"towel", []string{"bathroom", "linens"}},
	{"toy", []string{"toys", "kids"}},
	{"game", []string{"games"}},
	{"paint", []string{"diy", "paint"}},
	{"christmas", []string{"seasonal", "decorations"}},
	{"decoration", []string{"decorations"}},
	{"photo", []string{"photos", "memories"}},
}

// Keyword suggests tags by matching the item text against a fixed
// keyword table. It never fails and needs no network access.
type Keyword struct{}

func (Keyword) SuggestTags(_ context.Context, name, description string) ([]string, error) {
	text := strings.ToLower(name + " " + description)

	var tags []string
	for _, entry := range keywordTags {
		if !strings.Contains(text, entry.keyword) {
			continue
		}
		tags = append(tags, entry.tags...)
		if len(tags) >= MaxSuggestions {
			break
		}
	}

	tags = model.NormalizeTags(tags)
	if len(tags) > MaxSuggestions {
		tags = tags[:MaxSuggestions]
	}
	return tags, nil
}

// Remote delegates suggestions to an external HTTP service.
type Remote struct {
	URL    string
	Client *http.Client
}

// NewRemote returns a Remote with a bounded request timeout.
func NewRemote(url string) *Remote {
	return &Remote{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type remoteRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type remoteResponse struct {
	Tags []string `json:"tags"`
}

func (s *Remote) SuggestTags(ctx context.Context, name, description string) ([]string, error) {
	body, err := json.Marshal(remoteRequest{Name: name, Description: description})
	if err != nil {
		return nil, fmt.Errorf("encoding suggestion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building suggestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling suggestion service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion service returned %d", resp.StatusCode)
	}

	var parsed remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding suggestion response: %w", err)
	}

	tags := model.NormalizeTags(parsed.Tags)
	if len(tags) > MaxSuggestions {
		tags = tags[:MaxSuggestions]
	}
	return tags, nil
}

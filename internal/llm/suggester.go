// Package llm talks to OpenAI-compatible chat APIs to complete partial
// Australian addresses.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rezonia/au-invoice/internal/address"
	"github.com/rezonia/au-invoice/internal/model"
)

// DefaultSuggestionLimit is the number of addresses asked for per query
const DefaultSuggestionLimit = 5

// AddressSuggester implements address.Suggester on top of a chat model
type AddressSuggester struct {
	client ChatClient
	model  string
	limit  int
}

// SuggesterOption configures the suggester
type SuggesterOption func(*AddressSuggester)

// WithModel sets the model used for suggestions
func WithModel(model string) SuggesterOption {
	return func(s *AddressSuggester) {
		s.model = model
	}
}

// WithLimit sets the maximum number of suggestions
func WithLimit(n int) SuggesterOption {
	return func(s *AddressSuggester) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewAddressSuggester creates a suggester backed by client
func NewAddressSuggester(client ChatClient, opts ...SuggesterOption) *AddressSuggester {
	s := &AddressSuggester{
		client: client,
		limit:  DefaultSuggestionLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ address.Suggester = (*AddressSuggester)(nil)

// Suggest asks the model for addresses matching query
func (s *AddressSuggester) Suggest(ctx context.Context, query string) ([]model.Address, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.NewValidationError("query", query, "required", "address query is empty")
	}

	userPrompt := fmt.Sprintf(UserPromptAddressSuggest, s.limit, query)

	response, err := s.client.ChatText(ctx, s.model, SystemPromptAddressCompleter, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("address suggestion failed: %w", err)
	}

	return ParseSuggestions(response, s.limit)
}

// Place is one suggestion in the shape of a geocoder result
type Place struct {
	AddressComponents []address.Component `json:"address_components"`
}

// ParseSuggestions decodes a model reply into normalized Australian
// addresses. The reply lists places as component lists; entries outside
// Australia and duplicates are dropped.
func ParseSuggestions(response string, limit int) ([]model.Address, error) {
	places, err := decodePlaces(ExtractJSON(response))
	if err != nil {
		return nil, err
	}

	seen := make(map[model.Address]bool)
	out := make([]model.Address, 0, len(places))
	for _, components := range places {
		a := address.Normalize(address.FromComponents(components))
		if !address.IsAustralian(a) || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}

// decodePlaces accepts an array of places, a {"results": [...]} object or
// a bare array of component lists
func decodePlaces(raw string) ([][]address.Component, error) {
	var places []Place
	err := json.Unmarshal([]byte(raw), &places)
	if err != nil {
		var wrapped struct {
			Results []Place `json:"results"`
		}
		if werr := json.Unmarshal([]byte(raw), &wrapped); werr == nil && wrapped.Results != nil {
			places, err = wrapped.Results, nil
		}
	}
	if err == nil {
		lists := make([][]address.Component, len(places))
		for i, p := range places {
			lists[i] = p.AddressComponents
		}
		return lists, nil
	}

	var lists [][]address.Component
	if lerr := json.Unmarshal([]byte(raw), &lists); lerr != nil {
		return nil, model.NewParseError("suggestions", truncate(raw, 80), "invalid JSON in model response", err)
	}
	return lists, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// Package catalog normalizes upstream voice listings into one schema.
// Each adapter fills every ProviderVoiceRecord field, defaulting labels the
// upstream omits to empty strings, so callers never branch on provider
// identity. Listings are fetched fresh on every call: no retry, no cache.
package catalog

import (
	"context"
	"strings"

	"github.com/schollz/closestmatch"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/models"
)

// Lister is one provider's voice listing source.
type Lister interface {
	Provider() string
	ListVoices(ctx context.Context) ([]models.ProviderVoiceRecord, error)
}

// Catalog dispatches listing requests to registered provider adapters.
type Catalog struct {
	listers map[string]Lister
}

func New(listers ...Lister) *Catalog {
	c := &Catalog{listers: make(map[string]Lister)}
	for _, l := range listers {
		c.listers[l.Provider()] = l
	}
	return c
}

// Providers returns the registered provider names.
func (c *Catalog) Providers() []string {
	names := make([]string, 0, len(c.listers))
	for name := range c.listers {
		names = append(names, name)
	}
	return names
}

// ListVoices fetches the normalized listing for one provider.
func (c *Catalog) ListVoices(ctx context.Context, provider string) ([]models.ProviderVoiceRecord, error) {
	lister, ok := c.listers[provider]
	if !ok {
		return nil, apperr.Newf(apperr.KindNotFound, "unknown voice provider %q", provider)
	}
	return lister.ListVoices(ctx)
}

// searchResultLimit caps how many distinct names a fuzzy search returns.
const searchResultLimit = 5

// SearchVoices filters a listing by fuzzy name match, keeping at most
// searchResultLimit distinct names ranked by closeness. Records sharing a
// name are all kept. An empty query returns the listing unchanged.
func SearchVoices(records []models.ProviderVoiceRecord, query string) []models.ProviderVoiceRecord {
	if query == "" || len(records) == 0 {
		return records
	}

	names := make([]string, len(records))
	byName := make(map[string][]int, len(records))
	for i, r := range records {
		key := strings.ToLower(r.Name)
		names[i] = key
		byName[key] = append(byName[key], i)
	}

	cm := closestmatch.New(names, []int{2, 3})
	matches := cm.ClosestN(strings.ToLower(query), searchResultLimit)

	seen := make(map[string]bool, len(matches))
	out := make([]models.ProviderVoiceRecord, 0, len(matches))
	for _, name := range matches {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		for _, i := range byName[name] {
			out = append(out, records[i])
		}
	}
	return out
}

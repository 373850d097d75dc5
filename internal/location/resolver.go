package location

import "strings"

// Resolver turns free-form location input into canonical provider keys
// ("Airport:JFK", "Country:GB", "City:london_gb") using a shared Catalog.
type Resolver struct {
	catalog *Catalog
}

func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// ResolveToken resolves a single token. The check order is significant:
// tokens can collide across tables, so the most specific interpretation wins.
//
//  1. already-canonical tokens (containing ':') pass through unchanged
//  2. 3-letter airport codes
//  3. country codes
//  4. ambiguous city aliases ("NYC", "SF")
//  5. case-insensitive exact city-name scan
//
// The second return value is false when nothing matched.
func (r *Resolver) ResolveToken(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	if strings.Contains(token, ":") {
		return token, true
	}

	upper := strings.ToUpper(token)

	if len(upper) == 3 {
		if code, ok := r.catalog.Airport(upper); ok {
			return "Airport:" + code, true
		}
	}

	if slug, ok := r.catalog.Country(upper); ok {
		return "Country:" + slug, true
	}

	if slug, ok := r.catalog.Alias(upper); ok {
		return "City:" + slug, true
	}

	if slug, ok := r.catalog.CityByName(token); ok {
		return "City:" + slug, true
	}

	return "", false
}

// ResolveList resolves a comma-separated list of tokens, preserving input
// order. Unresolvable tokens are dropped silently rather than failing the
// whole request; an all-unresolvable input yields an empty slice, which the
// caller must treat as "no location resolved".
func (r *Resolver) ResolveList(s string) []string {
	parts := strings.Split(s, ",")
	resolved := make([]string, 0, len(parts))
	for _, part := range parts {
		key, ok := r.ResolveToken(part)
		if !ok {
			continue
		}
		resolved = append(resolved, key)
	}
	return resolved
}

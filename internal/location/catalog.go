package location

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Catalog holds the static mapping tables used to translate free-form
// location input into the provider's canonical keys. It is built once at
// startup and never mutated afterwards, so it is safe for concurrent reads.
type Catalog struct {
	airports  map[string]string // uppercase IATA code -> canonical code
	countries map[string]string // uppercase ISO code -> country slug
	cities    map[string]string // city name -> city slug
	aliases   map[string]string // uppercase ambiguous token -> city slug
}

type catalogFile struct {
	AirportMap       map[string]string `json:"AIRPORT_MAP"`
	CityAPIKeyMap    map[string]string `json:"CITY_API_KEY_MAP"`
	CountryMap       map[string]string `json:"COUNTRY_MAP"`
	AmbiguousCityMap map[string]string `json:"AMBIGUOUS_CITY_MAP"`
}

// Empty returns a catalog with no entries. Every lookup against it misses.
func Empty() *Catalog {
	return NewCatalog(nil, nil, nil, nil)
}

// NewCatalog builds a catalog from in-memory tables. Airport, country and
// alias keys are stored uppercased; city names keep their original casing and
// are matched case-insensitively on lookup.
func NewCatalog(airports, countries, cities, aliases map[string]string) *Catalog {
	c := &Catalog{
		airports:  make(map[string]string, len(airports)),
		countries: make(map[string]string, len(countries)),
		cities:    make(map[string]string, len(cities)),
		aliases:   make(map[string]string, len(aliases)),
	}
	for code, canonical := range airports {
		c.airports[strings.ToUpper(code)] = canonical
	}
	for code, slug := range countries {
		c.countries[strings.ToUpper(code)] = slug
	}
	for name, slug := range cities {
		c.cities[name] = slug
	}
	for token, slug := range aliases {
		c.aliases[strings.ToUpper(token)] = slug
	}
	return c
}

// Load reads the location dataset from path. On any failure it returns an
// empty, usable catalog together with the error: the caller decides whether
// to log and continue (location resolution then misses on every token) or to
// abort startup.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Empty(), fmt.Errorf("read location dataset: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Empty(), fmt.Errorf("parse location dataset: %w", err)
	}

	return NewCatalog(file.AirportMap, file.CountryMap, file.CityAPIKeyMap, file.AmbiguousCityMap), nil
}

// Airport looks up an uppercase 3-letter code.
func (c *Catalog) Airport(code string) (string, bool) {
	v, ok := c.airports[code]
	return v, ok
}

// Country looks up an uppercase ISO country code.
func (c *Catalog) Country(code string) (string, bool) {
	v, ok := c.countries[code]
	return v, ok
}

// Alias looks up an uppercase ambiguous city token ("NYC", "SF", ...).
func (c *Catalog) Alias(token string) (string, bool) {
	v, ok := c.aliases[token]
	return v, ok
}

// CityByName scans the city table for a case-insensitive exact name match.
func (c *Catalog) CityByName(name string) (string, bool) {
	for cityName, slug := range c.cities {
		if strings.EqualFold(cityName, name) {
			return slug, true
		}
	}
	return "", false
}

// Size reports the total number of entries across all four tables.
func (c *Catalog) Size() int {
	return len(c.airports) + len(c.countries) + len(c.cities) + len(c.aliases)
}

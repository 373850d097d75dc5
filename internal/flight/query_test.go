package flight

import (
	"bytes"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"flightgate/internal/location"
	"flightgate/pkg/logger"
)

func testBuilder(t *testing.T) *QueryBuilder {
	t.Helper()

	catalog := location.NewCatalog(
		map[string]string{"JFK": "JFK", "LHR": "LHR"},
		map[string]string{"GB": "GB"},
		map[string]string{"Dubrovnik": "dubrovnik_hr"},
		map[string]string{"NYC": "new_york_us"},
	)
	b := NewQueryBuilder(location.NewResolver(catalog), logger.NewWithWriter("development", &bytes.Buffer{}))
	b.now = func() time.Time {
		return time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	}
	return b
}

func defaultParams() SearchParams {
	return SearchParams{
		Source:      "JFK",
		Destination: "LHR",
		Currency:    "usd",
		Locale:      "en",
		Adults:      1,
		Handbags:    1,
		CabinClass:  "ECONOMY",
		SortBy:      "QUALITY",
		SortOrder:   "ASCENDING",

		ApplyMixedClasses:               true,
		AllowReturnFromDifferentCity:    true,
		AllowChangeInboundDestination:   true,
		AllowChangeInboundSource:        true,
		AllowDifferentStationConnection: true,
		EnableSelfTransfer:              true,
		AllowOvernightStopover:          true,
		EnableTrueHiddenCity:            true,
		EnableThrowAwayTicketing:        true,

		TransportTypes: "FLIGHT",
		Limit:          20,
	}
}

func TestBuildOneWayDefaultsDatesToToday(t *testing.T) {
	b := testBuilder(t)

	params := b.BuildOneWay(OneWayRequest{SearchParams: defaultParams()})

	assert.Equal(t, "15/07/2024", params.Get("departureDateStart"))
	assert.Equal(t, "15/07/2024", params.Get("departureDateEnd"))
}

func TestBuildOneWayEndDefaultsToStart(t *testing.T) {
	b := testBuilder(t)

	params := b.BuildOneWay(OneWayRequest{
		SearchParams:       defaultParams(),
		DepartureDateStart: "2024-08-01",
	})

	assert.Equal(t, "01/08/2024", params.Get("departureDateStart"))
	assert.Equal(t, "01/08/2024", params.Get("departureDateEnd"))
}

func TestBuildRoundTripReturnEndDefaultsToReturnStart(t *testing.T) {
	b := testBuilder(t)

	params := b.BuildRoundTrip(RoundTripRequest{
		SearchParams:                defaultParams(),
		OutboundDepartmentDateStart: "2024-08-01T00:00:00",
		InboundDepartureDateStart:   "2024-08-10T00:00:00",
	})

	assert.Equal(t, "01/08/2024", params.Get("departureDateStart"))
	assert.Equal(t, "10/08/2024", params.Get("returnDateStart"))
	assert.Equal(t, "10/08/2024", params.Get("returnDateEnd"))
}

func TestBuildRoundTripOmitsReturnWindowWhenAbsent(t *testing.T) {
	b := testBuilder(t)

	params := b.BuildRoundTrip(RoundTripRequest{SearchParams: defaultParams()})

	assert.False(t, params.Has("returnDateStart"))
	assert.False(t, params.Has("returnDateEnd"))
}

func TestBuildResolvesAndJoinsLocations(t *testing.T) {
	b := testBuilder(t)

	req := defaultParams()
	req.Source = "Country:GB"
	req.Destination = "City:dubrovnik_hr"
	params := b.BuildOneWay(OneWayRequest{SearchParams: req})

	assert.Equal(t, "Country:GB", params.Get("source"))
	assert.Equal(t, "City:dubrovnik_hr", params.Get("destination"))

	req.Source = "JFK,NYC"
	req.Destination = "Dubrovnik"
	params = b.BuildOneWay(OneWayRequest{SearchParams: req})

	assert.Equal(t, "Airport:JFK,City:new_york_us", params.Get("source"))
	assert.Equal(t, "City:dubrovnik_hr", params.Get("destination"))
}

func TestBuildOmitsUnresolvableSide(t *testing.T) {
	b := testBuilder(t)

	req := defaultParams()
	req.Source = "atlantis"
	params := b.BuildOneWay(OneWayRequest{SearchParams: req})

	assert.False(t, params.Has("source"), "an unresolvable side must be omitted, not sent empty")
	assert.Equal(t, "Airport:LHR", params.Get("destination"))
}

func TestBuildNeverEmitsPriceStart(t *testing.T) {
	b := testBuilder(t)

	priceStart := 100
	priceEnd := 1000
	req := defaultParams()
	req.PriceStart = &priceStart
	req.PriceEnd = &priceEnd
	params := b.BuildOneWay(OneWayRequest{SearchParams: req})

	assert.False(t, params.Has("priceStart"))
	assert.Equal(t, "1000", params.Get("priceEnd"))
}

func TestBuildSkipsZeroPriceEnd(t *testing.T) {
	b := testBuilder(t)

	zero := 0
	req := defaultParams()
	req.PriceEnd = &zero
	params := b.BuildOneWay(OneWayRequest{SearchParams: req})

	assert.False(t, params.Has("priceEnd"))
}

func TestBuildIncludesZeroMaxStops(t *testing.T) {
	b := testBuilder(t)

	zero := 0
	req := defaultParams()
	req.MaxStopsCount = &zero
	params := b.BuildOneWay(OneWayRequest{SearchParams: req})

	assert.Equal(t, "0", params.Get("maxStopsCount"))

	params = b.BuildOneWay(OneWayRequest{SearchParams: defaultParams()})
	assert.False(t, params.Has("maxStopsCount"))
}

func TestBuildScalarRename(t *testing.T) {
	b := testBuilder(t)

	params := b.BuildOneWay(OneWayRequest{SearchParams: defaultParams()})

	expected := url.Values{}
	expected.Set("cabinClass", "ECONOMY")
	expected.Set("sortBy", "QUALITY")
	expected.Set("sortOrder", "ASCENDING")
	expected.Set("transportTypes", "FLIGHT")
	for key, want := range expected {
		assert.Equal(t, want, params[key], "parameter %s", key)
	}

	assert.Equal(t, "true", params.Get("applyMixedClasses"))
	assert.Equal(t, "true", params.Get("enableThrowAwayTicketing"))
	assert.Equal(t, "1", params.Get("adults"))
	assert.Equal(t, "20", params.Get("limit"))
	assert.False(t, params.Has("outbound"))
	assert.False(t, params.Has("contentProviders"))
}

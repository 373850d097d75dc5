package flight

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"flightgate/internal/location"
	"flightgate/pkg/logger"
)

// QueryBuilder translates a validated search request into the outbound
// query-parameter set the provider expects: camelCase keys, canonical
// location keys joined with commas, dates in DD/MM/YYYY.
type QueryBuilder struct {
	resolver *location.Resolver
	logger   logger.Client
	now      func() time.Time
}

func NewQueryBuilder(resolver *location.Resolver, logger logger.Client) *QueryBuilder {
	return &QueryBuilder{
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// BuildOneWay derives the departure window from the request, defaulting the
// start to today and the end to the start.
func (b *QueryBuilder) BuildOneWay(req OneWayRequest) url.Values {
	params := b.buildCommon(req.SearchParams)

	start := b.normalizeOrToday(req.DepartureDateStart)
	params.Set("departureDateStart", start)

	if end := b.normalize(req.DepartureDateEnd); end != "" {
		params.Set("departureDateEnd", end)
	} else {
		params.Set("departureDateEnd", start)
	}

	return params
}

// BuildRoundTrip derives the outbound window the same way as one-way and
// includes the return window only when the request carries inbound dates.
// returnDateEnd defaults to returnDateStart when only the start is given.
func (b *QueryBuilder) BuildRoundTrip(req RoundTripRequest) url.Values {
	params := b.buildCommon(req.SearchParams)

	start := b.normalizeOrToday(req.OutboundDepartmentDateStart)
	params.Set("departureDateStart", start)

	if end := b.normalize(req.OutboundDepartmentDateEnd); end != "" {
		params.Set("departureDateEnd", end)
	} else {
		params.Set("departureDateEnd", start)
	}

	returnStart := b.normalize(req.InboundDepartureDateStart)
	if returnStart != "" {
		params.Set("returnDateStart", returnStart)
	}

	if returnEnd := b.normalize(req.InboundDepartureDateEnd); returnEnd != "" {
		params.Set("returnDateEnd", returnEnd)
	} else if returnStart != "" {
		params.Set("returnDateEnd", returnStart)
	}

	return params
}

func (b *QueryBuilder) buildCommon(req SearchParams) url.Values {
	params := url.Values{}

	// A side that resolves to nothing is omitted entirely; the provider
	// rejects empty location parameters. priceStart is accepted by the
	// request schema but never forwarded upstream.
	if source := b.resolver.ResolveList(req.Source); len(source) > 0 {
		params.Set("source", strings.Join(source, ","))
	} else {
		b.logger.Warn("no source location resolved", logger.Field{Key: "input", Value: req.Source})
	}
	if destination := b.resolver.ResolveList(req.Destination); len(destination) > 0 {
		params.Set("destination", strings.Join(destination, ","))
	} else {
		b.logger.Warn("no destination location resolved", logger.Field{Key: "input", Value: req.Destination})
	}

	params.Set("currency", req.Currency)
	params.Set("locale", req.Locale)
	params.Set("adults", strconv.Itoa(req.Adults))
	params.Set("children", strconv.Itoa(req.Children))
	params.Set("infants", strconv.Itoa(req.Infants))
	params.Set("handbags", strconv.Itoa(req.Handbags))
	params.Set("holdbags", strconv.Itoa(req.Holdbags))
	params.Set("cabinClass", req.CabinClass)
	params.Set("sortBy", req.SortBy)
	params.Set("sortOrder", req.SortOrder)

	params.Set("applyMixedClasses", strconv.FormatBool(req.ApplyMixedClasses))
	params.Set("allowReturnFromDifferentCity", strconv.FormatBool(req.AllowReturnFromDifferentCity))
	params.Set("allowChangeInboundDestination", strconv.FormatBool(req.AllowChangeInboundDestination))
	params.Set("allowChangeInboundSource", strconv.FormatBool(req.AllowChangeInboundSource))
	params.Set("allowDifferentStationConnection", strconv.FormatBool(req.AllowDifferentStationConnection))
	params.Set("enableSelfTransfer", strconv.FormatBool(req.EnableSelfTransfer))
	params.Set("allowOvernightStopover", strconv.FormatBool(req.AllowOvernightStopover))
	params.Set("enableTrueHiddenCity", strconv.FormatBool(req.EnableTrueHiddenCity))
	params.Set("enableThrowAwayTicketing", strconv.FormatBool(req.EnableThrowAwayTicketing))

	if req.PriceEnd != nil && *req.PriceEnd != 0 {
		params.Set("priceEnd", strconv.Itoa(*req.PriceEnd))
	}
	if req.MaxStopsCount != nil {
		params.Set("maxStopsCount", strconv.Itoa(*req.MaxStopsCount))
	}
	if req.Outbound != "" {
		params.Set("outbound", req.Outbound)
	}
	params.Set("transportTypes", req.TransportTypes)
	if req.ContentProviders != "" {
		params.Set("contentProviders", req.ContentProviders)
	}
	params.Set("limit", strconv.Itoa(req.Limit))

	return params
}

// normalize returns "" for absent input and the fallback-normalized value
// otherwise. A string that defeats every known layout is forwarded unchanged;
// the provider gets to reject it.
func (b *QueryBuilder) normalize(raw string) string {
	if raw == "" {
		return ""
	}
	normalized, ok := normalizeDate(raw)
	if !ok {
		b.logger.Warn("unparseable date forwarded as-is", logger.Field{Key: "input", Value: raw})
	}
	return normalized
}

func (b *QueryBuilder) normalizeOrToday(raw string) string {
	if normalized := b.normalize(raw); normalized != "" {
		return normalized
	}
	return b.now().Format(wireDateFormat)
}

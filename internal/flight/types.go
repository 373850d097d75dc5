package flight

import "fmt"

type ErrorCode string

const (
	ErrorCodeValidation          ErrorCode = "VALIDATION"
	ErrorCodeTimeout             ErrorCode = "TIMEOUT"
	ErrorCodeUpstreamUnreachable ErrorCode = "UPSTREAM_UNREACHABLE"
	ErrorCodeInternalFailure     ErrorCode = "INTERNAL_FAILURE"
)

// ServiceError is the only error type that crosses the gateway boundary.
// Status carries an HTTP-like classification: 408 for upstream timeouts,
// 503 for connection failures, 500 for anything unclassified.
type ServiceError struct {
	Status  int
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// SearchParams carries the fields shared by both trip types. Binding
// defaults mirror the provider's documented defaults; the nine routing
// policy flags all default to permissive.
type SearchParams struct {
	Source      string `form:"source" binding:"required"`
	Destination string `form:"destination" binding:"required"`
	Currency    string `form:"currency,default=usd"`
	Locale      string `form:"locale,default=en"`
	Adults      int    `form:"adults,default=1" binding:"gte=1,lte=9"`
	Children    int    `form:"children,default=0" binding:"gte=0,lte=9"`
	Infants     int    `form:"infants,default=0" binding:"gte=0,lte=9"`
	Handbags    int    `form:"handbags,default=1" binding:"gte=0,lte=5"`
	Holdbags    int    `form:"holdbags,default=0" binding:"gte=0,lte=5"`
	CabinClass  string `form:"cabin_class,default=ECONOMY"`
	SortBy      string `form:"sort_by,default=QUALITY"`
	SortOrder   string `form:"sort_order,default=ASCENDING"`

	ApplyMixedClasses               bool `form:"apply_mixed_classes,default=true"`
	AllowReturnFromDifferentCity    bool `form:"allow_return_from_different_city,default=true"`
	AllowChangeInboundDestination   bool `form:"allow_change_inbound_destination,default=true"`
	AllowChangeInboundSource        bool `form:"allow_change_inbound_source,default=true"`
	AllowDifferentStationConnection bool `form:"allow_different_station_connection,default=true"`
	EnableSelfTransfer              bool `form:"enable_self_transfer,default=true"`
	AllowOvernightStopover          bool `form:"allow_overnight_stopover,default=true"`
	EnableTrueHiddenCity            bool `form:"enable_true_hidden_city,default=true"`
	EnableThrowAwayTicketing        bool `form:"enable_throw_away_ticketing,default=true"`

	PriceStart       *int   `form:"price_start" binding:"omitempty,gte=0"`
	PriceEnd         *int   `form:"price_end" binding:"omitempty,gte=0"`
	MaxStopsCount    *int   `form:"max_stops_count" binding:"omitempty,gte=0,lte=2"`
	Outbound         string `form:"outbound"`
	TransportTypes   string `form:"transport_types,default=FLIGHT"`
	ContentProviders string `form:"content_providers"`
	Limit            int    `form:"limit,default=20" binding:"gte=1,lte=100"`
}

// OneWayRequest is a one-way search. Date fields are free-form strings;
// normalization to the provider's wire format happens in the query builder.
type OneWayRequest struct {
	SearchParams
	DepartureDateStart string `form:"departure_date_start"`
	DepartureDateEnd   string `form:"departure_date_end"`
}

// RoundTripRequest carries separate outbound and inbound date windows.
// "Department" in the outbound field names matches the provider's parameter
// spelling and is kept as-is.
type RoundTripRequest struct {
	SearchParams
	OutboundDepartmentDateStart string `form:"outbound_department_date_start"`
	OutboundDepartmentDateEnd   string `form:"outbound_department_date_end"`
	InboundDepartureDateStart   string `form:"inbound_departure_date_start"`
	InboundDepartureDateEnd     string `form:"inbound_departure_date_end"`
}

package flight

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"flightgate/pkg/idgen"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{
		service: s,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/flights/search/one-way", h.SearchOneWayHandler)
	router.GET("/flights/search/round-trip", h.SearchRoundTripHandler)
	router.GET("/health", healthHandler)
}

// SearchIDMiddleware tags every request with a generated search ID, exposed
// in the response headers and available to handlers for log correlation.
func SearchIDMiddleware(gen idgen.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strconv.FormatInt(gen.GenerateID(), 10)
		c.Set("search_id", id)
		c.Header("X-Search-ID", id)
		c.Next()
	}
}

var baseParams = []string{
	"source", "destination", "currency", "locale",
	"adults", "children", "infants", "handbags", "holdbags",
	"cabin_class", "sort_by", "sort_order",
	"apply_mixed_classes", "allow_return_from_different_city",
	"allow_change_inbound_destination", "allow_change_inbound_source",
	"allow_different_station_connection", "enable_self_transfer",
	"allow_overnight_stopover", "enable_true_hidden_city",
	"enable_throw_away_ticketing",
	"price_start", "price_end", "max_stops_count",
	"outbound", "transport_types", "content_providers", "limit",
}

var (
	oneWayParams = allowedSet(append([]string{
		"departure_date_start", "departure_date_end",
	}, baseParams...))

	roundTripParams = allowedSet(append([]string{
		"outbound_department_date_start", "outbound_department_date_end",
		"inbound_departure_date_start", "inbound_departure_date_end",
	}, baseParams...))
)

func allowedSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (h *Handler) SearchOneWayHandler(c *gin.Context) {
	if !rejectUnknownParams(c, oneWayParams) {
		return
	}

	var req OneWayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters: " + err.Error(),
			"code":  ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.SearchOneWay(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", response)
}

func (h *Handler) SearchRoundTripHandler(c *gin.Context) {
	if !rejectUnknownParams(c, roundTripParams) {
		return
	}

	var req RoundTripRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters: " + err.Error(),
			"code":  ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.SearchRoundTrip(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", response)
}

// rejectUnknownParams enforces the strict request schema: any query parameter
// outside the declared set fails the request before binding.
func rejectUnknownParams(c *gin.Context, allowed map[string]struct{}) bool {
	for name := range c.Request.URL.Query() {
		if _, ok := allowed[name]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown query parameter: " + name,
				"code":  ErrorCodeValidation,
			})
			return false
		}
	}
	return true
}

func sendError(c *gin.Context, err error) {
	var svcErr *ServiceError

	if errors.As(err, &svcErr) {
		c.JSON(svcErr.Status, gin.H{
			"error": svcErr.Message,
			"code":  svcErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal Server Error",
		"code":  ErrorCodeInternalFailure,
	})
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

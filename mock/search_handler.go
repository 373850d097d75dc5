package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

type Itinerary struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Departure   string  `json:"departure"`
	Arrival     string  `json:"arrival"`
	Carrier     string  `json:"carrier"`
	Price       Price   `json:"price"`
	Duration    int     `json:"duration_minutes"`
	Stops       int     `json:"stops"`
	Quality     float64 `json:"quality"`
}

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Envelope struct {
	Data     []Itinerary    `json:"data"`
	Metadata map[string]any `json:"metadata"`
}

var carriers = []string{"Lufthansa", "United Airlines", "Air France", "KLM", "Ryanair", "Croatia Airlines"}

func OneWaySearchHandler(w http.ResponseWriter, r *http.Request) {
	serveSearch(w, r, false)
}

func RoundTripSearchHandler(w http.ResponseWriter, r *http.Request) {
	serveSearch(w, r, true)
}

func serveSearch(w http.ResponseWriter, r *http.Request, roundTrip bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.Header.Get("x-rapidapi-key") == "" {
		http.Error(w, `{"message": "missing api key"}`, http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	source := q.Get("source")
	destination := q.Get("destination")
	currency := strings.ToUpper(q.Get("currency"))
	if currency == "" {
		currency = "USD"
	}

	count := 3 + rand.Intn(5)
	data := make([]Itinerary, 0, count)
	for i := 0; i < count; i++ {
		dep := time.Now().Add(time.Duration(24+rand.Intn(72)) * time.Hour).Truncate(time.Hour)
		dur := 90 + rand.Intn(600)
		data = append(data, Itinerary{
			ID:          fmt.Sprintf("itin-%d-%d", time.Now().UnixNano(), i),
			Source:      source,
			Destination: destination,
			Departure:   dep.Format(time.RFC3339),
			Arrival:     dep.Add(time.Duration(dur) * time.Minute).Format(time.RFC3339),
			Carrier:     carriers[rand.Intn(len(carriers))],
			Price: Price{
				Amount:   float64(40 + rand.Intn(900)),
				Currency: currency,
			},
			Duration: dur,
			Stops:    rand.Intn(3),
			Quality:  500 + rand.Float64()*300,
		})
	}

	envelope := Envelope{
		Data: data,
		Metadata: map[string]any{
			"roundTrip":     roundTrip,
			"resultCount":   len(data),
			"departureDate": q.Get("departureDateStart"),
			"returnDate":    q.Get("returnDateStart"),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

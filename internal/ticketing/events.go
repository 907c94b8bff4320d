// Package ticketing provides the event catalog, seat maps and the shopping
// cart for the ticket-buying side of the app.
package ticketing

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Event is one entry in the catalog. The catalog is a fixed demo set plus
// optionally generated filler; events are never created through the API.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	City      string    `json:"city"`
	Venue     string    `json:"venue"`
	Date      time.Time `json:"date"`
	Image     string    `json:"image"`
	FromPrice float64   `json:"from_price"`
	Rating    float64   `json:"rating"`
}

// MockEvents returns the built-in demo catalog.
func MockEvents() []Event {
	return []Event{
		{
			ID: "evt_001", Title: "Aurora Nights Tour", Category: "Concert",
			City: "Los Angeles", Venue: "Emberglen Arena",
			Date:      time.Date(2025, 9, 12, 19, 30, 0, 0, time.UTC),
			FromPrice: 49, Rating: 4.7,
		},
		{
			ID: "evt_002", Title: "San Fernando Phoenix vs. Bay City Waves", Category: "Sports",
			City: "San Francisco", Venue: "Harbor Dome",
			Date:      time.Date(2025, 10, 5, 17, 0, 0, 0, time.UTC),
			FromPrice: 35, Rating: 4.4,
		},
		{
			ID: "evt_003", Title: "The Hollow Crown of Emberglen (Live)", Category: "Theater",
			City: "Los Angeles", Venue: "Royal Stage",
			Date:      time.Date(2025, 9, 28, 20, 0, 0, 0, time.UTC),
			FromPrice: 59, Rating: 4.9,
		},
	}
}

var categories = []string{"Concert", "Sports", "Theater", "Comedy", "Festival"}

// RandomEvents generates n filler events. The same seed yields the same
// catalog, which keeps demo deployments stable across restarts.
func RandomEvents(n int, seed uint64) []Event {
	if n <= 0 {
		return nil
	}
	f := gofakeit.New(int64(seed))
	out := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Event{
			ID:        fmt.Sprintf("evt_%03d", 100+i),
			Title:     f.Sentence(3),
			Category:  categories[f.Number(0, len(categories)-1)],
			City:      f.City(),
			Venue:     f.Company() + " Hall",
			Date:      f.DateRange(time.Now(), time.Now().AddDate(0, 6, 0)),
			FromPrice: float64(f.Number(25, 150)),
			Rating:    float64(f.Number(30, 50)) / 10,
		})
	}
	return out
}

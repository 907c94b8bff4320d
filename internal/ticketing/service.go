package ticketing

import (
	"context"

	"ticketx/internal/cache"
	"ticketx/internal/models"
)

// Service ties the catalog, seat maps and cart together.
type Service struct {
	events []Event
	cart   *Cart
}

// NewService builds a Service over the given catalog.
func NewService(events []Event) *Service {
	return &Service{
		events: events,
		cart:   NewCart(),
	}
}

// Events returns the catalog.
func (s *Service) Events() []Event {
	return s.events
}

// EventByID returns the event, or a not-found error.
func (s *Service) EventByID(id string) (*Event, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			return &s.events[i], nil
		}
	}
	return nil, models.NewNotFoundError("Event", id)
}

// Seats returns the event's seat map. Generation is deterministic per
// event, so the Redis layer is a pure speedup; a cache miss regenerates the
// identical map.
func (s *Service) Seats(ctx context.Context, eventID string) ([]Seat, error) {
	if _, err := s.EventByID(eventID); err != nil {
		return nil, err
	}
	var seats []Seat
	err := cache.Aside(ctx, cache.EventSeatsKey(eventID), &seats, cache.EventSeatsTTL, func() error {
		seats = GenerateSeats(SeatSeed(eventID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seats, nil
}

// AddToCart puts the seat in the shared cart. Unknown events, unknown seats
// and unavailable seats are rejected.
func (s *Service) AddToCart(ctx context.Context, eventID, seatID string) error {
	event, err := s.EventByID(eventID)
	if err != nil {
		return err
	}
	seats, err := s.Seats(ctx, eventID)
	if err != nil {
		return err
	}
	for _, seat := range seats {
		if seat.ID != seatID {
			continue
		}
		if !seat.Available {
			return models.NewValidationError("Seat is not available")
		}
		s.cart.Add(CartItem{
			EventID: eventID,
			SeatID:  seatID,
			Title:   event.Title,
			Price:   seat.Price,
		})
		return nil
	}
	return models.NewNotFoundError("Seat", seatID)
}

// CartItems returns the cart contents.
func (s *Service) CartItems() []CartItem {
	return s.cart.Items()
}

// CartTotals returns the priced cart summary.
func (s *Service) CartTotals() Totals {
	return s.cart.CalcTotals()
}

// ClearCart empties the cart.
func (s *Service) ClearCart() {
	s.cart.Clear()
}

// SelectedSeatIDs returns the seats currently held for the event.
func (s *Service) SelectedSeatIDs(eventID string) map[string]bool {
	return s.cart.SelectedIDs(eventID)
}

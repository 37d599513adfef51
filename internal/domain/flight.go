package domain

import "time"

type Flight struct {
	ID        int64
	RouteID   int64
	Route     *Route
	Airplane  *Airplane
	Crew      []Crew
	Departure time.Time
	Arrival   time.Time
	// TakenSeats is filled only for flight detail reads.
	TakenSeats []SeatRef
}

// ValidateWindow reports ErrInvalidFlightWindow unless departure precedes arrival.
func (f *Flight) ValidateWindow() error {
	if !f.Departure.Before(f.Arrival) {
		return ErrInvalidFlightWindow
	}
	return nil
}

// FlightSummary is the list projection of a flight.
type FlightSummary struct {
	ID               int64     `json:"id"`
	Route            string    `json:"route"`
	Departure        time.Time `json:"departure"`
	Arrival          time.Time `json:"arrival"`
	AirplaneName     string    `json:"airplane"`
	TicketsAvailable int       `json:"tickets_available"`
}

type FlightFilter struct {
	Source        string
	Destination   string
	DepartureDate *time.Time
}

type SeatRef struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type NewFlight struct {
	RouteID    int64     `json:"route_id" validate:"required,gt=0"`
	AirplaneID int64     `json:"airplane_id" validate:"required,gt=0"`
	CrewIDs    []int64   `json:"crew_ids" validate:"dive,gt=0"`
	Departure  time.Time `json:"departure" validate:"required"`
	Arrival    time.Time `json:"arrival" validate:"required"`
}

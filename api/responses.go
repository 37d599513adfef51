package api

import (
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
)

type cityResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"city_name"`
	Country string `json:"country"`
}

type airportResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"airport_name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type airplaneResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"airplane_name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	TotalSeats int    `json:"total_seats"`
	Type       string `json:"airplane_type"`
}

type routeResponse struct {
	ID          int64           `json:"id"`
	Source      airportResponse `json:"source"`
	Destination airportResponse `json:"destination"`
	Distance    int             `json:"distance"`
	FullRoute   string          `json:"full_route"`
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type flightDetailResponse struct {
	ID         int64            `json:"id"`
	Route      routeResponse    `json:"route"`
	Airplane   airplaneResponse `json:"airplane"`
	Crew       []crewResponse   `json:"crew"`
	Departure  time.Time        `json:"departure"`
	Arrival    time.Time        `json:"arrival"`
	TakenSeats []domain.SeatRef `json:"taken_seats"`
}

func toCityResponse(c domain.City) cityResponse {
	return cityResponse{ID: c.ID, Name: c.Name, Country: c.Country.Name}
}

func toAirportResponse(a domain.Airport) airportResponse {
	return airportResponse{ID: a.ID, Name: a.Name, City: a.CityName, Country: a.CountryName}
}

func toAirplaneResponse(a domain.Airplane) airplaneResponse {
	return airplaneResponse{
		ID:         a.ID,
		Name:       a.Name,
		Rows:       a.Rows,
		SeatsInRow: a.SeatsInRow,
		TotalSeats: a.TotalSeats(),
		Type:       a.Type.Name,
	}
}

func toRouteResponse(r domain.Route) routeResponse {
	return routeResponse{
		ID:          r.ID,
		Source:      toAirportResponse(r.Source),
		Destination: toAirportResponse(r.Destination),
		Distance:    r.Distance,
		FullRoute:   r.FullRoute(),
	}
}

func toCrewResponse(c domain.Crew) crewResponse {
	return crewResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()}
}

func toFlightDetailResponse(f *domain.Flight) flightDetailResponse {
	resp := flightDetailResponse{
		ID:         f.ID,
		Departure:  f.Departure,
		Arrival:    f.Arrival,
		Crew:       make([]crewResponse, 0, len(f.Crew)),
		TakenSeats: f.TakenSeats,
	}
	if f.Route != nil {
		resp.Route = toRouteResponse(*f.Route)
	}
	if f.Airplane != nil {
		resp.Airplane = toAirplaneResponse(*f.Airplane)
	}
	for _, c := range f.Crew {
		resp.Crew = append(resp.Crew, toCrewResponse(c))
	}
	if resp.TakenSeats == nil {
		resp.TakenSeats = []domain.SeatRef{}
	}
	return resp
}

func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

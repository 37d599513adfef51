package domain

type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"country_name"`
}

type City struct {
	ID      int64
	Name    string
	Country Country
}

type Airport struct {
	ID          int64
	Name        string
	CityName    string
	CountryName string
}

type Route struct {
	ID          int64
	Source      Airport
	Destination Airport
	Distance    int
}

// FullRoute renders the route as "Source - Destination".
func (r Route) FullRoute() string {
	return r.Source.Name + " - " + r.Destination.Name
}

type Crew struct {
	ID        int64
	FirstName string
	LastName  string
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

type CityFilter struct {
	Country string
}

type AirportFilter struct {
	City    string
	Country string
}

type RouteFilter struct {
	Source      string
	Destination string
	DistanceMin *int
	DistanceMax *int
}

type CrewFilter struct {
	FirstName string
	LastName  string
}

type NewCity struct {
	Name        string `json:"city_name" validate:"required,max=100"`
	CountryName string `json:"country" validate:"required,max=100"`
}

type NewAirport struct {
	Name   string `json:"airport_name" validate:"required,max=100"`
	CityID int64  `json:"city_id" validate:"required,gt=0"`
}

type NewRoute struct {
	SourceID      int64 `json:"source_id" validate:"required,gt=0"`
	DestinationID int64 `json:"destination_id" validate:"required,gt=0,nefield=SourceID"`
	Distance      int   `json:"distance" validate:"required,gt=0"`
}

type NewCrew struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

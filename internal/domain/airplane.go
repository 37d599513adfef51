package domain

type AirplaneType struct {
	ID   int64  `json:"id"`
	Name string `json:"type_name"`
}

type Airplane struct {
	ID         int64
	Name       string
	Rows       int
	SeatsInRow int
	Type       AirplaneType
}

func (a Airplane) TotalSeats() int {
	return a.Rows * a.SeatsInRow
}

// SeatMap is the rows x seats-per-row grid a flight's tickets are checked against.
type SeatMap struct {
	FlightID   int64
	AirplaneID int64
	Rows       int
	SeatsInRow int
}

func (m SeatMap) TotalSeats() int {
	return m.Rows * m.SeatsInRow
}

type AirplaneFilter struct {
	Name string
	Type string
}

type NewAirplane struct {
	Name       string `json:"airplane_name" validate:"required,max=100"`
	Rows       int    `json:"rows" validate:"required,gt=0"`
	SeatsInRow int    `json:"seats_in_row" validate:"required,gt=0"`
	TypeName   string `json:"airplane_type" validate:"required,max=100"`
}

type AirplaneLayout struct {
	Rows       int `json:"rows" validate:"required,gt=0"`
	SeatsInRow int `json:"seats_in_row" validate:"required,gt=0"`
}

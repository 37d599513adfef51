package domain

import "fmt"

const (
	SeatField = "seat"
	RowField  = "row"
)

// SeatOutOfRangeError is returned when a requested seat coordinate falls
// outside an airplane's seat map. Field is SeatField or RowField.
type SeatOutOfRangeError struct {
	Field string
	Max   int
}

func (e *SeatOutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be in the range [1, %d]", e.Field, e.Max)
}

// ValidateSeat checks seatNumber against [1, totalSeats] and then seatRow
// against [1, numRows]. Only the first failing check is reported.
// numRows is the airplane's row count, not its seats per row.
func ValidateSeat(seatNumber, totalSeats, seatRow, numRows int) error {
	if seatNumber < 1 || seatNumber > totalSeats {
		return &SeatOutOfRangeError{Field: SeatField, Max: totalSeats}
	}
	if seatRow < 1 || seatRow > numRows {
		return &SeatOutOfRangeError{Field: RowField, Max: numRows}
	}
	return nil
}

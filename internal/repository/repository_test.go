package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	store := NewStore(pool)

	assert.NotNil(t, store.Users())
	assert.NotNil(t, store.Countries())
	assert.NotNil(t, store.Cities())
	assert.NotNil(t, store.Airports())
	assert.NotNil(t, store.AirplaneTypes())
	assert.NotNil(t, store.Airplanes())
	assert.NotNil(t, store.Routes())
	assert.NotNil(t, store.Crews())
	assert.NotNil(t, store.Flights())
	assert.NotNil(t, store.Orders())
	assert.NotNil(t, store.Tickets())
}

func TestTranslateTicketError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "seat constraint",
			err:  &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: ticketSeatConstraint},
			want: domain.ErrSeatAlreadyTaken,
		},
		{
			name: "unique without constraint name",
			err:  &pgconn.PgError{Code: codeUniqueViolation},
			want: domain.ErrSeatAlreadyTaken,
		},
		{
			name: "wrapped unique",
			err:  fmt.Errorf("exec: %w", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: ticketSeatConstraint}),
			want: domain.ErrSeatAlreadyTaken,
		},
		{
			name: "missing flight",
			err:  &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "tickets_flight_id_fkey"},
			want: domain.ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateTicketError(tt.err), tt.want)
		})
	}
}

func TestTranslateTicketError_Other(t *testing.T) {
	cause := errors.New("connection reset")
	err := translateTicketError(cause)

	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrSeatAlreadyTaken)

	other := translateTicketError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "tickets_pkey"})
	assert.NotErrorIs(t, other, domain.ErrSeatAlreadyTaken)
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(pgx.ErrNoRows), domain.ErrNotFound)

	cause := errors.New("boom")
	assert.Equal(t, cause, notFound(cause))
}

func TestBuildFlightListQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		sqlStr, args, err := buildFlightListQuery(domain.FlightFilter{}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sqlStr, "a.rows * a.seats_in_row - COUNT(t.id)")
		assert.Contains(t, sqlStr, "ORDER BY f.departure, f.id")
		assert.NotContains(t, sqlStr, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("all filters", func(t *testing.T) {
		day := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
		sqlStr, args, err := buildFlightListQuery(domain.FlightFilter{
			Source:        "Heathrow",
			Destination:   "JFK",
			DepartureDate: &day,
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sqlStr, "src.name ILIKE $1")
		assert.Contains(t, sqlStr, "dst.name ILIKE $2")
		assert.Contains(t, sqlStr, "f.departure >= $3")
		assert.Contains(t, sqlStr, "f.departure < $4")
		require.Len(t, args, 4)
		assert.Equal(t, "%Heathrow%", args[0])
		assert.Equal(t, "%JFK%", args[1])
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), args[2])
		assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), args[3])
	})
}

func TestBuildOrderListQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		sqlStr, args, err := buildOrderListQuery(7, domain.OrderFilter{}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sqlStr, "o.user_id = $1")
		assert.Contains(t, sqlStr, "ORDER BY o.created_at DESC, o.id DESC")
		assert.Contains(t, sqlStr, "LIMIT 10")
		assert.Contains(t, sqlStr, "OFFSET 0")
		assert.Equal(t, []any{int64(7)}, args)
	})

	t.Run("paged and filtered", func(t *testing.T) {
		sqlStr, args, err := buildOrderListQuery(7, domain.OrderFilter{
			Source:      "Heathrow",
			Destination: "JFK",
			Page:        3,
			PageSize:    500,
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sqlStr, "LIMIT 100")
		assert.Contains(t, sqlStr, "OFFSET 200")
		assert.Contains(t, sqlStr, "r.source_id")
		assert.Contains(t, sqlStr, "r.destination_id")
		assert.Contains(t, sqlStr, "ap.name ILIKE $2")
		assert.Contains(t, sqlStr, "ap.name ILIKE $3")
		assert.Equal(t, []any{int64(7), "%Heathrow%", "%JFK%"}, args)
	})
}

func TestBuildRouteListQuery(t *testing.T) {
	lo, hi := 100, 900
	sqlStr, args, err := buildRouteListQuery(domain.RouteFilter{
		Source:      "Heathrow",
		DistanceMin: &lo,
		DistanceMax: &hi,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "src.name ILIKE $1")
	assert.Contains(t, sqlStr, "r.distance >= $2")
	assert.Contains(t, sqlStr, "r.distance <= $3")
	assert.NotContains(t, sqlStr, "dst.name ILIKE")
	assert.Equal(t, []any{"%Heathrow%", 100, 900}, args)
}

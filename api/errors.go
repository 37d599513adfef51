package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps service errors to HTTP responses. Validation failures are
// rendered as field-scoped messages; failures tied to one ticket of an order
// also carry its zero-based index under "ticket".
func writeError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		loggerFrom(c).Error("request failed", zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}

func errorResponse(err error) (int, gin.H) {
	body := gin.H{}
	var te *domain.TicketError
	if errors.As(err, &te) {
		body["ticket"] = te.Index
	}

	var (
		verr     *domain.ValidationError
		rangeErr *domain.SeatOutOfRangeError
	)
	switch {
	case errors.As(err, &verr):
		for field, msg := range verr.Fields {
			body[field] = msg
		}
		return http.StatusBadRequest, body
	case errors.As(err, &rangeErr):
		body[rangeErr.Field] = rangeErr.Error()
		return http.StatusBadRequest, body
	case errors.Is(err, domain.ErrSeatAlreadyTaken):
		body[domain.SeatField] = domain.ErrSeatAlreadyTaken.Error()
		return http.StatusBadRequest, body
	case errors.Is(err, domain.ErrInvalidFlightWindow),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, domain.ErrUnknownAirport):
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, gin.H{"error": "not found"}
	case errors.Is(err, domain.ErrRouteAlreadyExists),
		errors.Is(err, domain.ErrAirplaneInUse),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, gin.H{"error": err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, gin.H{"error": err.Error()}
	}
	return http.StatusInternalServerError, gin.H{"error": "internal server error"}
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

package api

import (
	"net/http"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

// Register mounts reads on router and writes on staff.
func (h *FlightHandler) Register(router, staff *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	staff.POST("", h.create)
	staff.DELETE("/:id", h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	departure, err := queryDate(c, "departure_date")
	if err != nil {
		writeError(c, err)
		return
	}

	list, err := h.service.List(c.Request.Context(), domain.FlightFilter{
		Source:        c.Query("source"),
		Destination:   c.Query("destination"),
		DepartureDate: departure,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightDetailResponse(flight))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req domain.NewFlight
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	flight, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightDetailResponse(flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/service/reference"
	"github.com/gin-gonic/gin"
)

type ReferenceHandler struct {
	service reference.ReferenceUseCase
}

func NewReferenceHandler(service reference.ReferenceUseCase) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

// Register mounts reads on router and writes on staff. Both groups share
// the same prefix.
func (h *ReferenceHandler) Register(router, staff *gin.RouterGroup) {
	router.GET("/countries", h.listCountries)
	router.GET("/cities", h.listCities)
	router.GET("/airports", h.listAirports)
	router.GET("/airplanes", h.listAirplanes)
	router.GET("/routes", h.listRoutes)
	router.GET("/crews", h.listCrews)

	staff.POST("/cities", h.createCity)
	staff.POST("/airports", h.createAirport)
	staff.POST("/airplanes", h.createAirplane)
	staff.PATCH("/airplanes/:id/layout", h.updateLayout)
	staff.POST("/routes", h.createRoute)
	staff.POST("/crews", h.createCrew)
}

func (h *ReferenceHandler) listCountries(c *gin.Context) {
	countries, err := h.service.ListCountries(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (h *ReferenceHandler) listCities(c *gin.Context) {
	cities, err := h.service.ListCities(c.Request.Context(), domain.CityFilter{Country: c.Query("country")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(cities, toCityResponse))
}

func (h *ReferenceHandler) createCity(c *gin.Context) {
	var req domain.NewCity
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	city, err := h.service.CreateCity(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCityResponse(*city))
}

func (h *ReferenceHandler) listAirports(c *gin.Context) {
	airports, err := h.service.ListAirports(c.Request.Context(), domain.AirportFilter{
		City:    c.Query("city"),
		Country: c.Query("country"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(airports, toAirportResponse))
}

func (h *ReferenceHandler) createAirport(c *gin.Context) {
	var req domain.NewAirport
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	airport, err := h.service.CreateAirport(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAirportResponse(*airport))
}

func (h *ReferenceHandler) listAirplanes(c *gin.Context) {
	airplanes, err := h.service.ListAirplanes(c.Request.Context(), domain.AirplaneFilter{
		Name: c.Query("airplane_name"),
		Type: c.Query("airplane_type"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(airplanes, toAirplaneResponse))
}

func (h *ReferenceHandler) createAirplane(c *gin.Context) {
	var req domain.NewAirplane
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	airplane, err := h.service.CreateAirplane(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAirplaneResponse(*airplane))
}

func (h *ReferenceHandler) updateLayout(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req domain.AirplaneLayout
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	airplane, err := h.service.UpdateAirplaneLayout(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAirplaneResponse(*airplane))
}

func (h *ReferenceHandler) listRoutes(c *gin.Context) {
	distanceMin, err := queryInt(c, "distance_min")
	if err != nil {
		writeError(c, err)
		return
	}
	distanceMax, err := queryInt(c, "distance_max")
	if err != nil {
		writeError(c, err)
		return
	}

	routes, err := h.service.ListRoutes(c.Request.Context(), domain.RouteFilter{
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
		DistanceMin: distanceMin,
		DistanceMax: distanceMax,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(routes, toRouteResponse))
}

func (h *ReferenceHandler) createRoute(c *gin.Context) {
	var req domain.NewRoute
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	route, err := h.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRouteResponse(*route))
}

func (h *ReferenceHandler) listCrews(c *gin.Context) {
	crews, err := h.service.ListCrews(c.Request.Context(), domain.CrewFilter{
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(crews, toCrewResponse))
}

func (h *ReferenceHandler) createCrew(c *gin.Context) {
	var req domain.NewCrew
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	crew, err := h.service.CreateCrew(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCrewResponse(*crew))
}

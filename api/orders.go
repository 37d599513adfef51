package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type OrderHandler struct {
	service orders.OrderUseCase
}

type createOrderRequest struct {
	Tickets []domain.TicketRequest `json:"tickets"`
}

type ticketResponse struct {
	ID         int64                 `json:"id"`
	FlightID   int64                 `json:"flight_id"`
	SeatRow    int                   `json:"seat_row"`
	SeatNumber int                   `json:"seat_number"`
	Flight     *domain.FlightSummary `json:"flight,omitempty"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []ticketResponse `json:"tickets"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: make([]ticketResponse, 0, len(o.Tickets))}
	for _, t := range o.Tickets {
		resp.Tickets = append(resp.Tickets, ticketResponse{
			ID:         t.ID,
			FlightID:   t.FlightID,
			SeatRow:    t.SeatRow,
			SeatNumber: t.SeatNumber,
			Flight:     t.Flight,
		})
	}
	return resp
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.delete)
}

// create accepts either {"tickets": [...]} or a bare list of tickets.
func (h *OrderHandler) create(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		if err := c.ShouldBindBodyWith(&req.Tickets, binding.JSON); err != nil {
			badRequest(c, "invalid request body")
			return
		}
	}

	order, err := h.service.CreateOrder(c.Request.Context(), principal.UserID, req.Tickets)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) list(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	created, err := queryDate(c, "created_date")
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := queryInt(c, "page")
	if err != nil {
		writeError(c, err)
		return
	}
	pageSize, err := queryInt(c, "page_size")
	if err != nil {
		writeError(c, err)
		return
	}

	filter := domain.OrderFilter{
		CreatedDate: created,
		Source:      c.Query("source"),
		Destination: c.Query("destination"),
	}
	if page != nil {
		filter.Page = *page
	}
	if pageSize != nil {
		filter.PageSize = *pageSize
	}
	filter.Normalize()

	list, err := h.service.ListOrders(c.Request.Context(), principal.UserID, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	results := make([]orderResponse, 0, len(list))
	for i := range list {
		results = append(results, toOrderResponse(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"page":      filter.Page,
		"page_size": filter.PageSize,
		"results":   results,
	})
}

func (h *OrderHandler) get(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), principal.UserID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) delete(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), principal.UserID, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/policy"
	"github.com/Domenick1991/digitalairlines/internal/query"
	"github.com/Domenick1991/digitalairlines/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	DepartAirport            string    `json:"departAirport" form:"departAirport"`
	DestAirport              string    `json:"destAirport" form:"destAirport"`
	FlightDate               string    `json:"flightDate" form:"flightDate"`
	EconomyAvailableTickets  textValue `json:"economyAvailableTickets" form:"economyAvailableTickets"`
	EconomyTicketCost        textValue `json:"economyTicketCost" form:"economyTicketCost"`
	BusinessAvailableTickets textValue `json:"businessAvailableTickets" form:"businessAvailableTickets"`
	BusinessTicketCost       textValue `json:"businessTicketCost" form:"businessTicketCost"`
}

// Costs are plain JSON numbers; a quoted value fails to bind.
type updateCostsRequest struct {
	BusinessTicketCost *float64 `json:"businessTicketCost"`
	EconomyTicketCost  *float64 `json:"economyTicketCost"`
}

type flightSummaryResponse struct {
	ID            int64  `json:"id"`
	DepartAirport string `json:"departAirport"`
	DestAirport   string `json:"destAirport"`
	FlightDate    string `json:"flightDate"`
}

type flightResponse struct {
	ID                       int64   `json:"id"`
	DepartAirport            string  `json:"departAirport"`
	DestAirport              string  `json:"destAirport"`
	FlightDate               string  `json:"flightDate"`
	EconomyAvailableTickets  int     `json:"economyAvailableTickets"`
	EconomyTicketCost        float64 `json:"economyTicketCost"`
	BusinessAvailableTickets int     `json:"businessAvailableTickets"`
	BusinessTicketCost       float64 `json:"businessTicketCost"`
}

type flightDetailResponse struct {
	flightResponse
	Bookings []domain.FlightPassenger `json:"bookings"`
}

type deleteFlightResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/new", h.form)
	router.POST("/new", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.updateCosts)
	router.DELETE("/:id", h.delete)
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:                       f.ID,
		DepartAirport:            f.DepartAirport,
		DestAirport:              f.DestAirport,
		FlightDate:               f.FlightDate.Format(domain.DateLayout),
		EconomyAvailableTickets:  f.EconomyAvailable,
		EconomyTicketCost:        f.EconomyCost,
		BusinessAvailableTickets: f.BusinessAvailable,
		BusinessTicketCost:       f.BusinessCost,
	}
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func (h *FlightHandler) list(c *gin.Context) {
	found, err := h.service.Search(c.Request.Context(), callerFrom(c), query.FromValues(c.Request.URL.Query()))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]flightSummaryResponse, 0, len(found))
	for _, f := range found {
		resp = append(resp, flightSummaryResponse{
			ID:            f.ID,
			DepartAirport: f.DepartAirport,
			DestAirport:   f.DestAirport,
			FlightDate:    formatDate(f.FlightDate),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	if !authorize(c, policy.ViewFlight) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.service.Get(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if detail.Bookings == nil {
		c.JSON(http.StatusOK, toFlightResponse(detail.Flight))
		return
	}
	c.JSON(http.StatusOK, flightDetailResponse{flightResponse: toFlightResponse(detail.Flight), Bookings: detail.Bookings})
}

// form serves the HTML form to admins only.
func (h *FlightHandler) form(c *gin.Context) {
	if authorize(c, policy.CreateFlight) {
		html(c, flightForm)
	}
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if !authorize(c, policy.CreateFlight) || !bind(c, &req) {
		return
	}

	flight, err := h.service.Create(c.Request.Context(), callerFrom(c), flights.CreateFlightInput{
		DepartAirport:     req.DepartAirport,
		DestAirport:       req.DestAirport,
		FlightDate:        req.FlightDate,
		EconomyAvailable:  req.EconomyAvailableTickets.String(),
		EconomyCost:       req.EconomyTicketCost.String(),
		BusinessAvailable: req.BusinessAvailableTickets.String(),
		BusinessCost:      req.BusinessTicketCost.String(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) updateCosts(c *gin.Context) {
	if !authorize(c, policy.UpdateFlight) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Bad json content. Ticket costs must be numbers")
		return
	}

	flight, err := h.service.UpdateCosts(c.Request.Context(), callerFrom(c), id, flights.UpdateCostsInput{
		BusinessCost: req.BusinessTicketCost,
		EconomyCost:  req.EconomyTicketCost,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	if !authorize(c, policy.DeleteFlight) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	outcome, err := h.service.Delete(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !outcome.Deleted {
		c.JSON(http.StatusOK, deleteFlightResponse{Status: "refused", Reason: outcome.Reason})
		return
	}
	c.JSON(http.StatusOK, deleteFlightResponse{Status: "deleted"})
}

package api

import (
	"net/http"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/policy"
	"github.com/Domenick1991/digitalairlines/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FirstName  string    `json:"firstName" form:"firstName"`
	LastName   string    `json:"lastName" form:"lastName"`
	PassportNo textValue `json:"passportNo" form:"passportNo"`
	BirthDate  string    `json:"birthDate" form:"birthDate"`
	Email      string    `json:"email" form:"email"`
	TicketType string    `json:"ticketType" form:"ticketType"`
}

type bookingResponse struct {
	ID            int64   `json:"id"`
	FlightID      int64   `json:"flightId"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	PassportNo    string  `json:"passportNo"`
	BirthDate     string  `json:"birthDate"`
	Email         string  `json:"email"`
	TicketType    string  `json:"ticketType"`
	DepartAirport string  `json:"departAirport"`
	DestAirport   string  `json:"destAirport"`
	FlightDate    string  `json:"flightDate"`
	TicketCost    float64 `json:"ticketCost"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.listMine)
	router.GET("/new/:flight_id", h.form)
	router.POST("/new/:flight_id", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		FlightID:      b.FlightID,
		FirstName:     b.Traveller.FirstName,
		LastName:      b.Traveller.LastName,
		PassportNo:    b.Traveller.PassportNo,
		BirthDate:     formatDate(b.Traveller.BirthDate),
		Email:         b.Email(),
		TicketType:    string(b.TicketType),
		DepartAirport: b.DepartAirport,
		DestAirport:   b.DestAirport,
		FlightDate:    formatDate(b.FlightDate),
		TicketCost:    b.TicketCost,
	}
}

func (h *BookingHandler) form(c *gin.Context) {
	if !authorize(c, policy.CreateBooking) {
		return
	}
	if _, ok := pathID(c, "flight_id"); ok {
		html(c, bookingForm)
	}
}

func (h *BookingHandler) create(c *gin.Context) {
	if !authorize(c, policy.CreateBooking) {
		return
	}
	flightID, ok := pathID(c, "flight_id")
	if !ok {
		return
	}
	var req createBookingRequest
	if !bind(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), callerFrom(c), flightID, booking.CreateBookingInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		PassportNo: req.PassportNo.String(),
		BirthDate:  req.BirthDate,
		Email:      req.Email,
		TicketType: req.TicketType,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) listMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), callerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]bookingResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toBookingResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	if !authorize(c, policy.ViewBooking) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	found, err := h.service.Get(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	if !authorize(c, policy.CancelBooking) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.service.Cancel(c.Request.Context(), callerFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Booking was deleted successfully!"})
}

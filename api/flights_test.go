package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/query"
	"github.com/Domenick1991/digitalairlines/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var june30 = time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)

func flightRouter(caller domain.Caller, service flights.FlightUseCase) *gin.Engine {
	return asCaller(caller, "/flights", NewFlightHandler(service).Register)
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := flightRouter(testUser, mockService)

	mockService.On("Search", mock.Anything, testUser, mock.MatchedBy(func(raw query.RawFilter) bool {
		return raw.FlightDate != nil && *raw.FlightDate == "2023-6-30" && raw.DepartAirport == nil
	})).Return([]domain.FlightSummary{{ID: 1, DepartAirport: "ATH", DestAirport: "BCN", FlightDate: june30}}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights?flightDate=2023-6-30", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []flightSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []flightSummaryResponse{{ID: 1, DepartAirport: "ATH", DestAirport: "BCN", FlightDate: "2023-06-30"}}, resp)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_InvalidFilter(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := flightRouter(testUser, mockService)
	mockService.On("Search", mock.Anything, testUser, mock.Anything).
		Return(nil, domain.NewValidationError("", "the query parameter is not valid"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights?departAirport=ATH", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "the query parameter is not valid")
}

func TestFlightHandler_get(t *testing.T) {
	flight := &domain.Flight{ID: 7, DepartAirport: "ATH", DestAirport: "BCN", FlightDate: june30, EconomyAvailable: 25, EconomyCost: 75}

	t.Run("user", func(t *testing.T) {
		mockService := &MockFlightUseCase{}
		mockService.On("Get", mock.Anything, testUser, int64(7)).Return(&flights.FlightDetail{Flight: flight}, nil)

		w := httptest.NewRecorder()
		flightRouter(testUser, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights/7", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "bookings")
		assert.Contains(t, w.Body.String(), `"economyAvailableTickets":25`)
	})

	t.Run("admin", func(t *testing.T) {
		mockService := &MockFlightUseCase{}
		mockService.On("Get", mock.Anything, testAdmin, int64(7)).Return(&flights.FlightDetail{
			Flight:   flight,
			Bookings: []domain.FlightPassenger{{Name: "Ann", LastName: "Lee", TicketType: domain.TicketEconomy}},
		}, nil)

		w := httptest.NewRecorder()
		flightRouter(testAdmin, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights/7", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp flightDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.ID)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("bad id", func(t *testing.T) {
		w := httptest.NewRecorder()
		flightRouter(testUser, &MockFlightUseCase{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := &MockFlightUseCase{}
		mockService.On("Get", mock.Anything, testUser, int64(9)).Return(nil, domain.ErrNotFound)

		w := httptest.NewRecorder()
		flightRouter(testUser, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights/9", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFlightHandler_create_Form(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := flightRouter(testAdmin, mockService)

	form := url.Values{
		"departAirport":            {"ATH"},
		"destAirport":              {"BCN"},
		"flightDate":               {"2023-06-30"},
		"economyAvailableTickets":  {"25"},
		"economyTicketCost":        {"75"},
		"businessAvailableTickets": {"50"},
		"businessTicketCost":       {"150"},
	}
	expected := flights.CreateFlightInput{
		DepartAirport: "ATH", DestAirport: "BCN", FlightDate: "2023-06-30",
		EconomyAvailable: "25", EconomyCost: "75", BusinessAvailable: "50", BusinessCost: "150",
	}
	mockService.On("Create", mock.Anything, testAdmin, expected).Return(&domain.Flight{ID: 3, FlightDate: june30}, nil)

	req := httptest.NewRequest(http.MethodPost, "/flights/new", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_create_JSONNumbers(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := flightRouter(testAdmin, mockService)

	mockService.On("Create", mock.Anything, testAdmin, mock.MatchedBy(func(in flights.CreateFlightInput) bool {
		return in.EconomyAvailable == "25" && in.BusinessCost == "150.5"
	})).Return(&domain.Flight{ID: 3, FlightDate: june30}, nil)

	body := `{"departAirport":"ATH","destAirport":"BCN","flightDate":"2023-6-30",
		"economyAvailableTickets":25,"economyTicketCost":75,"businessAvailableTickets":"50","businessTicketCost":150.5}`
	req := httptest.NewRequest(http.MethodPost, "/flights/new", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFlightHandler_create_UserForbiddenBeforeBody(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := flightRouter(testUser, mockService)

	req := httptest.NewRequest(http.MethodPost, "/flights/new", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightHandler_form(t *testing.T) {
	w := httptest.NewRecorder()
	flightRouter(testAdmin, &MockFlightUseCase{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights/new", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>New Flight</h1>")

	w = httptest.NewRecorder()
	flightRouter(testUser, &MockFlightUseCase{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights/new", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFlightHandler_updateCosts(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := flightRouter(testAdmin, mockService)

	business, economy := 200.0, 90.0
	mockService.On("UpdateCosts", mock.Anything, testAdmin, int64(1), flights.UpdateCostsInput{BusinessCost: &business, EconomyCost: &economy}).
		Return(&domain.Flight{ID: 1, BusinessCost: 200, EconomyCost: 90, FlightDate: june30}, nil)

	body, _ := json.Marshal(map[string]float64{"businessTicketCost": 200, "economyTicketCost": 90})
	req := httptest.NewRequest(http.MethodPut, "/flights/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"businessTicketCost":200`)

	req = httptest.NewRequest(http.MethodPut, "/flights/1", strings.NewReader(`{"businessTicketCost":"200","economyTicketCost":90}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNumberOfCalls(t, "UpdateCosts", 1)
}

func TestFlightHandler_delete(t *testing.T) {
	mockService := &MockFlightUseCase{}
	router := flightRouter(testAdmin, mockService)

	mockService.On("Delete", mock.Anything, testAdmin, int64(1)).Return(flights.DeleteOutcome{Reason: "there are bookings for this flight"}, nil)
	mockService.On("Delete", mock.Anything, testAdmin, int64(2)).Return(flights.DeleteOutcome{Deleted: true}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/flights/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"refused","reason":"there are bookings for this flight"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/flights/2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, w.Body.String())
}

func TestFlightHandler_delete_RoleCheckedBeforeID(t *testing.T) {
	mockService := &MockFlightUseCase{}

	w := httptest.NewRecorder()
	flightRouter(testUser, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/flights/abc", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	flightRouter(testAdmin, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/flights/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

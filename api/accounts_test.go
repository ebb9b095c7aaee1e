package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/domain"
	"github.com/Domenick1991/digitalairlines/internal/service/accounts"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func accountRouter(caller domain.Caller, service accounts.AccountUseCase) *gin.Engine {
	return asCaller(caller, "", NewAccountHandler(service, "session", 5*time.Minute).Register)
}

func TestAccountHandler_register(t *testing.T) {
	mockService := &MockAccountUseCase{}
	router := accountRouter(domain.Caller{}, mockService)

	form := url.Values{
		"username":   {"user1"},
		"email":      {"gp@gmail.com"},
		"password":   {"123"},
		"fullName":   {"George Papadopoulos"},
		"birthDate":  {"2002-01-01"},
		"country":    {"Greece"},
		"passportNo": {"98765"},
	}
	mockService.On("Register", mock.Anything, accounts.RegisterInput{
		Username: "user1", Email: "gp@gmail.com", Password: "123", FullName: "George Papadopoulos",
		BirthDate: "2002-01-01", Country: "Greece", PassportNo: "98765",
	}).Return(&domain.User{ID: 1, Email: "gp@gmail.com"}, nil).Once()
	mockService.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateUser)

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post()
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "gp@gmail.com was added to the system")

	w = post()
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAccountHandler_loginSetsCookie(t *testing.T) {
	mockService := &MockAccountUseCase{}
	router := accountRouter(domain.Caller{}, mockService)
	mockService.On("Login", mock.Anything, "gp@gmail.com", "123").
		Return(&accounts.LoginResult{User: &domain.User{Username: "user1"}, SessionID: "sid", Token: "jwt"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"gp@gmail.com","password":"123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Welcome","token":"jwt"}`, w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, "sid", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 300, cookies[0].MaxAge)
}

func TestAccountHandler_loginRejected(t *testing.T) {
	mockService := &MockAccountUseCase{}
	router := accountRouter(domain.Caller{}, mockService)
	mockService.On("Login", mock.Anything, "gp@gmail.com", "bad").Return(nil, domain.ErrUnauthenticated)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=gp%40gmail.com&password=bad"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAccountHandler_logout(t *testing.T) {
	mockService := &MockAccountUseCase{}
	router := accountRouter(domain.Caller{}, mockService)
	mockService.On("Logout", mock.Anything, "sid").Return(true, nil)
	mockService.On("Logout", mock.Anything, "").Return(false, nil)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "sid"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "You logged out successfully!")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You are already logged out!")
}

func TestAccountHandler_deleteAccount(t *testing.T) {
	mockService := &MockAccountUseCase{}
	mockService.On("DeleteAccount", mock.Anything, testUser, "sid").Return(nil)
	mockService.On("DeleteAccount", mock.Anything, testAdmin, "").Return(domain.ErrForbidden)

	req := httptest.NewRequest(http.MethodDelete, "/user/delete", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "sid"})
	w := httptest.NewRecorder()
	accountRouter(testUser, mockService).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	accountRouter(testAdmin, mockService).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/user/delete", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAccountHandler_forms(t *testing.T) {
	router := accountRouter(domain.Caller{}, &MockAccountUseCase{})
	for path, marker := range map[string]string{"/register": "<h1>Register</h1>", "/login": "name=password"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), marker)
	}
}

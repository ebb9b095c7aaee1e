package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/digitalairlines/internal/service/accounts"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	service    accounts.AccountUseCase
	cookieName string
	sessionTTL time.Duration
}

type registerRequest struct {
	Username   string    `json:"username" form:"username"`
	Email      string    `json:"email" form:"email"`
	Password   string    `json:"password" form:"password"`
	FullName   string    `json:"fullName" form:"fullName"`
	BirthDate  string    `json:"birthDate" form:"birthDate"`
	Country    string    `json:"country" form:"country"`
	PassportNo textValue `json:"passportNo" form:"passportNo"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func NewAccountHandler(service accounts.AccountUseCase, cookieName string, sessionTTL time.Duration) *AccountHandler {
	return &AccountHandler{service: service, cookieName: cookieName, sessionTTL: sessionTTL}
}

func (h *AccountHandler) Register(router *gin.RouterGroup) {
	router.GET("/register", func(c *gin.Context) { html(c, registerForm) })
	router.POST("/register", h.register)
	router.GET("/login", func(c *gin.Context) { html(c, loginForm) })
	router.POST("/login", h.login)
	router.GET("/logout", h.logout)
	router.DELETE("/user/delete", h.deleteAccount)
}

func (h *AccountHandler) register(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), accounts.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		BirthDate:  req.BirthDate,
		Country:    req.Country,
		PassportNo: req.PassportNo.String(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, messageResponse{Message: user.Email + " was added to the system"})
}

func (h *AccountHandler) login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	if result.SessionID != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookieName, result.SessionID, int(h.sessionTTL.Seconds()), "/", "", false, true)
	}
	c.JSON(http.StatusOK, loginResponse{Message: "Welcome", Token: result.Token})
}

func (h *AccountHandler) logout(c *gin.Context) {
	sessionID, _ := c.Cookie(h.cookieName)
	existed, err := h.service.Logout(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	if !existed {
		c.JSON(http.StatusOK, messageResponse{Message: "You are already logged out!"})
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "You logged out successfully!"})
}

func (h *AccountHandler) deleteAccount(c *gin.Context) {
	sessionID, _ := c.Cookie(h.cookieName)
	if err := h.service.DeleteAccount(c.Request.Context(), callerFrom(c), sessionID); err != nil {
		writeError(c, err)
		return
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, messageResponse{Message: "Was deleted"})
}

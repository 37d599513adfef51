package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service auth.AuthUseCase
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, IsStaff: u.IsStaff, CreatedAt: u.CreatedAt}
}

func NewUserHandler(service auth.AuthUseCase) *UserHandler {
	return &UserHandler{service: service}
}

// Register mounts the public endpoints on public and /me on authed.
func (h *UserHandler) Register(public, authed *gin.RouterGroup) {
	public.POST("/register", h.register)
	public.POST("/login", h.login)
	authed.GET("/me", h.me)
}

func (h *UserHandler) register(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), creds)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	token, err := h.service.Login(c.Request.Context(), creds)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *UserHandler) me(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}
	user, err := h.service.Me(c.Request.Context(), principal.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

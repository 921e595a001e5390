package controller

import (
	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/middleware"
	"CoinVestAPI/internal/model"
	"CoinVestAPI/internal/service"
	"encoding/json"
	"log/slog"
	"net/http"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register godoc
// @Summary      Register
// @Description  Create a new account and return a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "Register Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.AuthResponse}
// @Failure      400  {object}  helper.ResponseError
// @Failure      409  {object}  helper.ResponseError
// @Router       /api/auth/register [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	resp, err := c.authService.Register(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// Login godoc
// @Summary      Login
// @Description  Exchange credentials for a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Login Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.AuthResponse}
// @Failure      401  {object}  helper.ResponseError
// @Router       /api/auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	resp, err := c.authService.Login(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// Me godoc
// @Summary      Current User
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  helper.ResponseSuccess{data=model.UserDTO}
// @Failure      401  {object}  helper.ResponseError
// @Router       /api/me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userContext, ok := r.Context().Value(middleware.UserContextKey).(*model.UserDTO)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	helper.WriteSuccess(w, userContext)
}

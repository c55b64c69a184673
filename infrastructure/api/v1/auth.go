package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/application/service"
	"github.com/inkwell-shop/storefront/infrastructure/api/middleware"
	"github.com/inkwell-shop/storefront/infrastructure/api/v1/dto"
)

// AuthRouter handles account endpoints.
type AuthRouter struct {
	client *storefront.Client
	logger *slog.Logger
}

// NewAuthRouter creates a new AuthRouter.
func NewAuthRouter(client *storefront.Client) *AuthRouter {
	return &AuthRouter{client: client, logger: client.Logger()}
}

// Routes returns the chi router for account endpoints.
func (r *AuthRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", r.Signup)
	router.Post("/login", r.Login)
	router.Get("/me", r.Me)
	router.Post("/password-reset/request", r.RequestReset)
	router.Post("/password-reset/confirm", r.ConfirmReset)

	return router
}

// Signup handles POST /api/auth/signup.
//
//	@Summary		Create an account
//	@Description	Register a customer or seller account. Email is unique per user type.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.SignupRequest	true	"New account"
//	@Success		201		{object}	dto.CreatedResponse
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		409		{object}	middleware.ErrorResponse
//	@Failure		500		{object}	middleware.ErrorResponse
//	@Router			/auth/signup [post]
func (r *AuthRouter) Signup(w http.ResponseWriter, req *http.Request) {
	var body dto.SignupRequest
	if err := decodeJSON(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	user, err := r.client.Auth.Signup(req.Context(), service.SignupParams{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		UserType: body.UserType,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.CreatedResponse{Message: "User created", ID: user.ID()})
}

// Login handles POST /api/auth/login.
//
//	@Summary		Log in
//	@Description	Check credentials and issue a bearer token when JWT_SECRET is set
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.LoginRequest	true	"Credentials"
//	@Success		200		{object}	dto.LoginResponse
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		401		{object}	middleware.ErrorResponse
//	@Failure		500		{object}	middleware.ErrorResponse
//	@Router			/auth/login [post]
func (r *AuthRouter) Login(w http.ResponseWriter, req *http.Request) {
	var body dto.LoginRequest
	if err := decodeJSON(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	result, err := r.client.Auth.Login(req.Context(), service.LoginParams{
		Email:    body.Email,
		Password: body.Password,
		UserType: body.UserType,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		UserID:  result.User.ID(),
		Name:    result.User.Name(),
		Token:   result.Token,
	})
}

// Me handles GET /api/auth/me.
//
//	@Summary		Current account
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	dto.ProfileResponse
//	@Failure		401	{object}	middleware.ErrorResponse
//	@Failure		500	{object}	middleware.ErrorResponse
//	@Security		BearerAuth
//	@Router			/auth/me [get]
func (r *AuthRouter) Me(w http.ResponseWriter, req *http.Request) {
	user, err := r.client.Auth.Me(req.Context(), bearerToken(req))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewProfileResponse(user))
}

// RequestReset handles POST /api/auth/password-reset/request. The reply is
// the same whether or not the account exists.
//
//	@Summary		Request a reset code
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.ResetRequest	true	"Account"
//	@Success		202		{object}	dto.MessageResponse
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		500		{object}	middleware.ErrorResponse
//	@Router			/auth/password-reset/request [post]
func (r *AuthRouter) RequestReset(w http.ResponseWriter, req *http.Request) {
	var body dto.ResetRequest
	if err := decodeJSON(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Auth.RequestReset(req.Context(), body.Email, body.UserType); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, dto.MessageResponse{
		Message: "If the account exists, a reset code has been sent",
	})
}

// ConfirmReset handles POST /api/auth/password-reset/confirm.
//
//	@Summary		Set a new password with a reset code
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.ResetConfirmRequest	true	"Code and new password"
//	@Success		200		{object}	dto.MessageResponse
//	@Failure		400		{object}	middleware.ErrorResponse
//	@Failure		401		{object}	middleware.ErrorResponse
//	@Failure		500		{object}	middleware.ErrorResponse
//	@Router			/auth/password-reset/confirm [post]
func (r *AuthRouter) ConfirmReset(w http.ResponseWriter, req *http.Request) {
	var body dto.ResetConfirmRequest
	if err := decodeJSON(w, req, &body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	err := r.client.Auth.ConfirmReset(req.Context(), service.ResetConfirmParams{
		Email:       body.Email,
		UserType:    body.UserType,
		Code:        body.Code,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}

func bearerToken(req *http.Request) string {
	header := req.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

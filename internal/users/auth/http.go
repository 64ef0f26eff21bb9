// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/constants"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/middleware"
	requestutil "github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/request"
	"github.com/daalagelerua/holbertonschool-portfolio-project/internal/platform/respond"
)

// # Definitions & Constructors

// CookieOptions controls the session cookie written on login.
type CookieOptions struct {
	Name string
	// Secure restricts the cookie to HTTPS; enabled in production.
	Secure bool
}

// Handler implements account-related HTTP endpoints.
type Handler struct {
	authService *Service
	cookie      CookieOptions
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, cookie CookieOptions) *Handler {
	return &Handler{authService: service, cookie: cookie}
}

// Routes returns a [chi.Router] configured with account routes.
//
// # Endpoints
//   - POST /register : Creates an account and signs it in.
//   - POST /login    : Authenticates and returns a token.
//   - POST /logout   : Clears the session cookie.
//   - GET  /profile  : The caller's account.
//   - PUT  /profile  : Partial update of the caller's account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/profile", handler.profile)
		r.Put("/profile", handler.updateProfile)
	})

	return router
}

// # Payloads

type registerRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	DefaultOriginCountry string `json:"defaultOriginCountry"`
	Language             string `json:"language"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	FirstName            *string `json:"firstName"`
	LastName             *string `json:"lastName"`
	DefaultOriginCountry *string `json:"defaultOriginCountry"`
	Language             *string `json:"language"`
	CurrentPassword      string  `json:"currentPassword"`
	NewPassword          string  `json:"newPassword"`
}

// accountView is a user with its favorite count. The password hash never
// leaves the process.
type accountView struct {
	*User
	FavoriteCount int `json:"favoriteCount"`
}

type tokenView struct {
	Value     string    `json:"value"`
	ExpiresIn int64     `json:"expiresIn"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sessionResponse struct {
	User  accountView `json:"user"`
	Token tokenView   `json:"token"`
}

func newSessionResponse(session *Session) sessionResponse {
	return sessionResponse{
		User: accountView{User: session.User, FavoriteCount: session.FavoriteCount},
		Token: tokenView{
			Value:     session.Token,
			ExpiresIn: int64(session.ExpiresIn / time.Second),
			ExpiresAt: session.ExpiresAt,
		},
	}
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Creates the account, then signs the new user in by setting the
session cookie. The token is also returned in the body for API clients.

Response:
  - 201: sessionResponse
  - 400: MISSING_FIELDS, INVALID_EMAIL, PASSWORD_TOO_SHORT, NAME_TOO_SHORT
  - 409: EMAIL_ALREADY_EXISTS
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.OpenSession(request.Context(), user)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session.Token, session.ExpiresIn)
	respond.Created(writer, newSessionResponse(session))
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Response:
  - 200: sessionResponse
  - 400: MISSING_CREDENTIALS
  - 401: INVALID_CREDENTIALS
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session.Token, session.ExpiresIn)
	respond.OK(writer, newSessionResponse(session))
}

/*
Logout clears the session cookie.

POST /api/v1/auth/logout

Description: Tokens are stateless, so a copied token stays valid until it
expires. Logging out only removes the cookie from the browser.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.setSessionCookie(writer, "", -1)
	respond.OK(writer, map[string]string{
		constants.FieldMessage: "Logged out",
	})
}

// GET /api/v1/auth/profile
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.authService.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"user": accountView{User: profile.User, FavoriteCount: profile.FavoriteCount},
	})
}

// PUT /api/v1/auth/profile
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.authService.UpdateProfile(request.Context(), userID, UpdateProfileInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"user": accountView{User: profile.User, FavoriteCount: profile.FavoriteCount},
	})
}

// setSessionCookie writes the httpOnly session cookie. A negative maxAge
// deletes it.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, value string, maxAge time.Duration) {
	seconds := int(maxAge / time.Second)
	if maxAge < 0 {
		seconds = -1
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     handler.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   seconds,
		Secure:   handler.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

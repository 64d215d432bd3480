package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"docuverify/internal/api/middleware"
	"docuverify/internal/app/service"
	"docuverify/internal/common"

	"github.com/go-chi/chi/v5"
)

// CredentialCookieName is the cookie carrying the signed credential token.
const CredentialCookieName = "token"

type AuthHandler struct {
	authService  *service.AuthService
	cookieMaxAge time.Duration
	cookieSecure bool
}

func NewAuthHandler(authService *service.AuthService, cookieMaxAge time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	r.Group(func(auth chi.Router) {
		auth.Use(middleware.Authenticator)
		auth.Get("/profile", h.profile)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithKind(w, common.KindMissingFields, "Invalid request payload")
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithKind(w, common.KindMissingFields, "Invalid request payload")
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}

	// The token travels only in an httpOnly, same-site cookie; page scripts
	// never see it.
	http.SetCookie(w, &http.Cookie{
		Name:     CredentialCookieName,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})

	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    result.User,
	})
}

// logout clears the credential cookie. Safe to call with no cookie present.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CredentialCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithKind(w, common.KindMissingToken, "Authentication token missing")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, principal)
}

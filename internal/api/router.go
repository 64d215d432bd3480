package api

import (
	"net/http"
	"time"

	"docuverify/internal/api/handler"
	"docuverify/internal/app/service"
	"docuverify/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

// tokenFromCookie extracts the credential token from its httpOnly cookie.
// jwtauth's built-in cookie extractor is hardwired to a cookie named "jwt".
func tokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(handler.CredentialCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func NewRouter(
	tokens *security.TokenIssuer,
	authService *service.AuthService,
	requestService *service.RequestService,
	uploadService *service.UploadService,
	uploadMaxBytes int64,
	cookieSecure bool,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the token (cookie first, Authorization header as fallback)
	// and puts claims in context. Authorization happens per route group.
	r.Use(jwtauth.Verify(tokens.Auth(), tokenFromCookie, jwtauth.TokenFromHeader))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(authService, tokens.Expiry(), cookieSecure)
	authHandler.RegisterRoutes(r)

	requestHandler := handler.NewRequestHandler(requestService)
	requestHandler.RegisterRoutes(r)

	uploadHandler := handler.NewUploadHandler(uploadService, uploadMaxBytes)
	uploadHandler.RegisterRoutes(r)

	return r
}

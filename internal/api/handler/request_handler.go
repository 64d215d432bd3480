package handler

import (
	"encoding/json"
	"net/http"

	"docuverify/internal/api/middleware"
	"docuverify/internal/app/service"
	"docuverify/internal/common"
	"docuverify/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type RequestHandler struct {
	requestService *service.RequestService
}

func NewRequestHandler(requestService *service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// RegisterRoutes wires the citizen and admin surfaces. Admin routes carry a
// server-side role guard; hiding buttons in a frontend is not enforcement.
func (h *RequestHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(citizen chi.Router) {
		citizen.Use(middleware.Authenticator)
		citizen.Use(middleware.RequireRole(model.RoleCitizen))
		citizen.Post("/submit-request", h.submit)
		citizen.Get("/my-requests", h.myRequests)
	})

	r.Group(func(admin1 chi.Router) {
		admin1.Use(middleware.Authenticator)
		admin1.Use(middleware.RequireRole(model.RoleAdminTier1))
		admin1.Get("/admin1/requests", h.tier1Queue)
		admin1.Post("/admin1/request/{id}/approve", h.tier1Approve)
		admin1.Post("/admin1/request/{id}/reject", h.tier1Reject)
	})

	r.Group(func(admin2 chi.Router) {
		admin2.Use(middleware.Authenticator)
		admin2.Use(middleware.RequireRole(model.RoleAdminTier2))
		admin2.Get("/admin2/requests", h.tier2Queue)
		admin2.Post("/admin2/request/{id}/approve", h.tier2Approve)
		admin2.Post("/admin2/request/{id}/reject", h.tier2Reject)
	})
}

func principalOr401(w http.ResponseWriter, r *http.Request) (model.Principal, bool) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		common.RespondWithKind(w, common.KindMissingToken, "Authentication token missing")
	}
	return principal, ok
}

func (h *RequestHandler) submit(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr401(w, r)
	if !ok {
		return
	}

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithKind(w, common.KindMissingFields, "Missing documentUrl or comment")
		return
	}

	request, err := h.requestService.Submit(r.Context(), principal, req)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, request)
}

func (h *RequestHandler) myRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr401(w, r)
	if !ok {
		return
	}

	requests, err := h.requestService.MyRequests(r.Context(), principal)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) tier1Queue(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr401(w, r)
	if !ok {
		return
	}

	requests, err := h.requestService.Tier1Queue(r.Context(), principal)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) tier1Approve(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr401(w, r)
	if !ok {
		return
	}

	request, err := h.requestService.Tier1Approve(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, request)
}

func (h *RequestHandler) tier1Reject(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr401(w, r)
	if !ok {
		return
	}

	var body struct {
		RejectionMessage string `json:"rejectionMessage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		common.RespondWithKind(w, common.KindMissingFields, "A rejection reason is required")
		return
	}

	request, err := h.requestService.Tier1Reject(r.Context(), principal, chi.URLParam(r, "id"), body.RejectionMessage)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, request)
}

func (h *RequestHandler) tier2Queue(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr401(w, r)
	if !ok {
		return
	}

	requests, err := h.requestService.Tier2Queue(r.Context(), principal)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) tier2Approve(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr401(w, r)
	if !ok {
		return
	}

	if _, err := h.requestService.Tier2Approve(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Request approved by Admin2",
	})
}

func (h *RequestHandler) tier2Reject(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr401(w, r)
	if !ok {
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		common.RespondWithKind(w, common.KindMissingFields, "A rejection reason is required")
		return
	}

	if _, err := h.requestService.Tier2Reject(r.Context(), principal, chi.URLParam(r, "id"), body.Message); err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Request rejected by Admin2",
	})
}

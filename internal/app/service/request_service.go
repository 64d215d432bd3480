package service

import (
	"context"
	"strings"
	"time"

	"docuverify/internal/common"
	"docuverify/internal/domain/model"
	"docuverify/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestService is the request lifecycle engine. It owns the state machine
//
//	Submitted -> Tier1Approved -> Tier2Approved
//	Submitted -> Rejected
//	Tier1Approved -> Rejected
//
// and gates every transition on the acting principal's role. Transitions are
// applied as conditional updates keyed by (id, expected status), so under
// concurrent actors exactly one wins and the loser observes
// INVALID_STATE_TRANSITION.
type RequestService struct {
	requestRepo repository.RequestRepository
	events      EventPublisher
	log         zerolog.Logger
}

func NewRequestService(requestRepo repository.RequestRepository, events EventPublisher, baseLogger zerolog.Logger) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		events:      events,
		log:         baseLogger.With().Str("component", "request_service").Logger(),
	}
}

type SubmitRequest struct {
	DocumentURL string `json:"documentUrl"`
	Comment     string `json:"comment"`
}

func requireRole(p model.Principal, role model.Role) error {
	if p.Role != role {
		return common.E(common.KindForbidden, "You do not have permission to perform this action.")
	}
	return nil
}

// Submit creates a request in status Submitted on behalf of a citizen.
func (s *RequestService) Submit(ctx context.Context, p model.Principal, req SubmitRequest) (*model.VerificationRequest, error) {
	if err := requireRole(p, model.RoleCitizen); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.DocumentURL) == "" || strings.TrimSpace(req.Comment) == "" {
		return nil, common.E(common.KindMissingFields, "Missing documentUrl or comment")
	}

	request := &model.VerificationRequest{
		ID:          uuid.NewString(),
		SubmitterID: p.ID,
		DocumentURL: req.DocumentURL,
		Comment:     req.Comment,
		Status:      model.StatusSubmitted,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, common.Errorf("failed to create request: %w", err)
	}

	s.log.Info().Str("request_id", request.ID).Str("submitter_id", p.ID).Msg("request submitted")
	s.publish(ctx, request, p.ID)
	return request, nil
}

// MyRequests lists the citizen's own requests. No order is guaranteed.
func (s *RequestService) MyRequests(ctx context.Context, p model.Principal) ([]model.VerificationRequest, error) {
	if err := requireRole(p, model.RoleCitizen); err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.FindBySubmitter(ctx, p.ID)
	if err != nil {
		return nil, common.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// Tier1Queue is the tier-1 work list: requests currently in Submitted. A
// request that advances disappears from this view.
func (s *RequestService) Tier1Queue(ctx context.Context, p model.Principal) ([]model.VerificationRequest, error) {
	if err := requireRole(p, model.RoleAdminTier1); err != nil {
		return nil, err
	}
	return s.findByStatus(ctx, model.StatusSubmitted)
}

// Tier2Queue is the tier-2 work list: requests currently in Tier1Approved.
func (s *RequestService) Tier2Queue(ctx context.Context, p model.Principal) ([]model.VerificationRequest, error) {
	if err := requireRole(p, model.RoleAdminTier2); err != nil {
		return nil, err
	}
	return s.findByStatus(ctx, model.StatusTier1Approved)
}

func (s *RequestService) findByStatus(ctx context.Context, status model.RequestStatus) ([]model.VerificationRequest, error) {
	requests, err := s.requestRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, common.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// Tier1Approve moves Submitted -> Tier1Approved and clears any rejection
// reason.
func (s *RequestService) Tier1Approve(ctx context.Context, p model.Principal, id string) (*model.VerificationRequest, error) {
	if err := requireRole(p, model.RoleAdminTier1); err != nil {
		return nil, err
	}
	return s.transition(ctx, p, id, repository.StatusMutation{
		Expected:    model.StatusSubmitted,
		Next:        model.StatusTier1Approved,
		ClearReason: true,
	})
}

// Tier1Reject moves Submitted -> Rejected with a mandatory reason.
func (s *RequestService) Tier1Reject(ctx context.Context, p model.Principal, id, reason string) (*model.VerificationRequest, error) {
	if err := requireRole(p, model.RoleAdminTier1); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, common.E(common.KindMissingFields, "A rejection reason is required")
	}
	return s.transition(ctx, p, id, repository.StatusMutation{
		Expected: model.StatusSubmitted,
		Next:     model.StatusRejected,
		Reason:   &reason,
	})
}

// Tier2Approve moves Tier1Approved -> Tier2Approved. The rejection reason is
// left untouched.
func (s *RequestService) Tier2Approve(ctx context.Context, p model.Principal, id string) (*model.VerificationRequest, error) {
	if err := requireRole(p, model.RoleAdminTier2); err != nil {
		return nil, err
	}
	return s.transition(ctx, p, id, repository.StatusMutation{
		Expected: model.StatusTier1Approved,
		Next:     model.StatusTier2Approved,
	})
}

// Tier2Reject moves Tier1Approved -> Rejected, overwriting any earlier
// reason with this one.
func (s *RequestService) Tier2Reject(ctx context.Context, p model.Principal, id, reason string) (*model.VerificationRequest, error) {
	if err := requireRole(p, model.RoleAdminTier2); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, common.E(common.KindMissingFields, "A rejection reason is required")
	}
	return s.transition(ctx, p, id, repository.StatusMutation{
		Expected: model.StatusTier1Approved,
		Next:     model.StatusRejected,
		Reason:   &reason,
	})
}

func (s *RequestService) transition(ctx context.Context, p model.Principal, id string, m repository.StatusMutation) (*model.VerificationRequest, error) {
	request, err := s.requestRepo.UpdateStatusIfCurrent(ctx, id, m)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("request_id", request.ID).
		Str("actor_id", p.ID).
		Str("from", string(m.Expected)).
		Str("to", string(m.Next)).
		Msg("request transitioned")
	s.publish(ctx, request, p.ID)
	return request, nil
}

func (s *RequestService) publish(ctx context.Context, request *model.VerificationRequest, actorID string) {
	s.events.Publish(ctx, model.DecisionEvent{
		ID:          uuid.NewString(),
		RequestID:   request.ID,
		SubmitterID: request.SubmitterID,
		Status:      request.Status,
		Reason:      request.RejectionReason,
		ActorID:     actorID,
		OccurredAt:  time.Now(),
	})
}

package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"docuverify/internal/common"
	"docuverify/internal/domain/model"
)

// InMemoryRequestRepository implements RequestRepository over a map. The
// conditional update runs under the write lock, which gives the same
// exactly-one-winner guarantee the postgres implementation gets from its
// conditional UPDATE.
type InMemoryRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]*model.VerificationRequest
}

func NewInMemoryRequestRepository() *InMemoryRequestRepository {
	return &InMemoryRequestRepository{
		requests: make(map[string]*model.VerificationRequest),
	}
}

func (r *InMemoryRequestRepository) Create(ctx context.Context, req *model.VerificationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	stored := *req
	r.requests[req.ID] = &stored
	return nil
}

func (r *InMemoryRequestRepository) FindByID(ctx context.Context, id string) (*model.VerificationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, common.E(common.KindNotFound, "Request not found")
	}
	copied := *req
	return &copied, nil
}

func (r *InMemoryRequestRepository) FindBySubmitter(ctx context.Context, submitterID string) ([]model.VerificationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []model.VerificationRequest{}
	for _, req := range r.requests {
		if req.SubmitterID == submitterID {
			result = append(result, *req)
		}
	}
	return result, nil
}

func (r *InMemoryRequestRepository) FindByStatus(ctx context.Context, status model.RequestStatus) ([]model.VerificationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []model.VerificationRequest{}
	for _, req := range r.requests {
		if req.Status == status {
			result = append(result, *req)
		}
	}
	return result, nil
}

func (r *InMemoryRequestRepository) UpdateStatusIfCurrent(ctx context.Context, id string, m StatusMutation) (*model.VerificationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, common.E(common.KindNotFound, "Request not found")
	}
	if req.Status != m.Expected {
		return nil, common.E(common.KindInvalidTransition,
			fmt.Sprintf("request is no longer in status %q", m.Expected))
	}

	req.Status = m.Next
	switch {
	case m.Reason != nil:
		reason := *m.Reason
		req.RejectionReason = &reason
	case m.ClearReason:
		req.RejectionReason = nil
	}

	copied := *req
	return &copied, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docuverify/internal/common"
	"docuverify/internal/domain/model"
)

// StatusMutation is a guarded status change. The repository applies it as a
// single conditional update keyed by (id, Expected): if the row's current
// status no longer matches, the mutation fails and nothing is written.
type StatusMutation struct {
	Expected model.RequestStatus
	Next     model.RequestStatus

	// Reason, when non-nil, is written to rejection_reason. ClearReason
	// nulls it instead. With neither set the column is left untouched.
	Reason      *string
	ClearReason bool
}

type RequestRepository interface {
	Create(ctx context.Context, req *model.VerificationRequest) error
	FindByID(ctx context.Context, id string) (*model.VerificationRequest, error)
	FindBySubmitter(ctx context.Context, submitterID string) ([]model.VerificationRequest, error)
	FindByStatus(ctx context.Context, status model.RequestStatus) ([]model.VerificationRequest, error)

	// UpdateStatusIfCurrent atomically applies m and returns the updated
	// request. It fails NOT_FOUND when id does not exist and
	// INVALID_STATE_TRANSITION when the current status is not m.Expected.
	UpdateStatusIfCurrent(ctx context.Context, id string, m StatusMutation) (*model.VerificationRequest, error)
}

type pgRequestRepository struct {
	db *sql.DB
}

func NewPgRequestRepository(db *sql.DB) RequestRepository {
	return &pgRequestRepository{db: db}
}

const requestColumns = `id, submitter_id, document_url, comment, status, rejection_reason, created_at`

func scanRequest(row interface{ Scan(...any) error }) (*model.VerificationRequest, error) {
	req := &model.VerificationRequest{}
	err := row.Scan(
		&req.ID, &req.SubmitterID, &req.DocumentURL, &req.Comment,
		&req.Status, &req.RejectionReason, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *pgRequestRepository) Create(ctx context.Context, req *model.VerificationRequest) error {
	query := `INSERT INTO verification_requests (id, submitter_id, document_url, comment, status)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		req.ID, req.SubmitterID, req.DocumentURL, req.Comment, req.Status,
	).Scan(&req.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgRequestRepository.Create: %w", err)
	}
	return nil
}

func (r *pgRequestRepository) FindByID(ctx context.Context, id string) (*model.VerificationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM verification_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.E(common.KindNotFound, "Request not found")
		}
		return nil, fmt.Errorf("pgRequestRepository.FindByID: %w", err)
	}
	return req, nil
}

func (r *pgRequestRepository) FindBySubmitter(ctx context.Context, submitterID string) ([]model.VerificationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM verification_requests WHERE submitter_id = $1`
	return r.queryRequests(ctx, query, submitterID)
}

func (r *pgRequestRepository) FindByStatus(ctx context.Context, status model.RequestStatus) ([]model.VerificationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM verification_requests WHERE status = $1`
	return r.queryRequests(ctx, query, status)
}

func (r *pgRequestRepository) queryRequests(ctx context.Context, query string, arg any) ([]model.VerificationRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("pgRequestRepository.queryRequests: %w", err)
	}
	defer rows.Close()

	requests := []model.VerificationRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("pgRequestRepository.queryRequests scan: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgRequestRepository.queryRequests rows: %w", err)
	}
	return requests, nil
}

func (r *pgRequestRepository) UpdateStatusIfCurrent(ctx context.Context, id string, m StatusMutation) (*model.VerificationRequest, error) {
	var query string
	args := []any{id, m.Expected, m.Next}

	switch {
	case m.Reason != nil:
		query = `UPDATE verification_requests SET status = $3, rejection_reason = $4
		         WHERE id = $1 AND status = $2 RETURNING ` + requestColumns
		args = append(args, *m.Reason)
	case m.ClearReason:
		query = `UPDATE verification_requests SET status = $3, rejection_reason = NULL
		         WHERE id = $1 AND status = $2 RETURNING ` + requestColumns
	default:
		query = `UPDATE verification_requests SET status = $3
		         WHERE id = $1 AND status = $2 RETURNING ` + requestColumns
	}

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pgRequestRepository.UpdateStatusIfCurrent: %w", err)
	}

	// No row matched (id, expected status): distinguish a missing request
	// from a lost conditional-update race.
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, common.E(common.KindInvalidTransition,
		fmt.Sprintf("request is no longer in status %q", m.Expected))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

// Project listing states the backend serves as dedicated collections.
const (
	ProjectsActive    = "active"
	ProjectsCompleted = "completed"
	ProjectsPending   = "pending"
)

// ErrUnknownProjectState is returned for a listing state the backend does
// not serve.
var ErrUnknownProjectState = errors.New("unknown project state")

// ProjectService adds status changes and cancellation to project CRUD.
type ProjectService struct {
	*ResourceService
}

var _ ports.ProjectService = (*ProjectService)(nil)

func NewProjectService(gateway ports.Gateway) *ProjectService {
	return &ProjectService{ResourceService: NewResourceService(gateway, PathProjects)}
}

// UpdateStatus patches a project's status.
func (s *ProjectService) UpdateStatus(ctx context.Context, id, status string) (domain.Record, error) {
	var out domain.Record
	body := map[string]string{"status": status}
	if err := s.do(ctx, http.MethodPatch, s.item(id)+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel records a cancellation with its reason and the reviewing operator.
func (s *ProjectService) Cancel(ctx context.Context, id, reason, cancelledBy string) (domain.Record, error) {
	var out domain.Record
	body := map[string]string{"reason": reason, "cancelledBy": cancelledBy}
	if err := s.do(ctx, http.MethodPost, s.item(id)+"/cancel", nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByState lists active, completed or pending projects.
func (s *ProjectService) ListByState(ctx context.Context, state string) ([]domain.Record, error) {
	switch state {
	case ProjectsActive, ProjectsCompleted, ProjectsPending:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProjectState, state)
	}
	var out []domain.Record
	if err := s.do(ctx, http.MethodGet, s.base+"/"+state, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BidService adds bid review to bid CRUD.
type BidService struct {
	*ResourceService
}

var _ ports.BidService = (*BidService)(nil)

func NewBidService(gateway ports.Gateway) *BidService {
	return &BidService{ResourceService: NewResourceService(gateway, PathBids)}
}

func (s *BidService) Accept(ctx context.Context, id, reviewedBy string) (domain.Record, error) {
	return s.review(ctx, id, "accept", reviewedBy)
}

func (s *BidService) Reject(ctx context.Context, id, reviewedBy string) (domain.Record, error) {
	return s.review(ctx, id, "reject", reviewedBy)
}

func (s *BidService) review(ctx context.Context, id, action, reviewedBy string) (domain.Record, error) {
	var out domain.Record
	body := map[string]string{"reviewedBy": reviewedBy}
	if err := s.do(ctx, http.MethodPost, s.item(id)+"/"+action, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByProject lists the bids placed on one project.
func (s *BidService) ListByProject(ctx context.Context, projectID string) ([]domain.Record, error) {
	var out []domain.Record
	if err := s.do(ctx, http.MethodGet, s.base+"/project/"+url.PathEscape(projectID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

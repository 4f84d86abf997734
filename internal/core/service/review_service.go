package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

type reviewService struct {
	gateway ports.Gateway
}

// NewReviewService returns the verification and suspension queues.
func NewReviewService(gateway ports.Gateway) ports.ReviewService {
	return &reviewService{gateway: gateway}
}

func (s *reviewService) VerificationRequests(ctx context.Context) ([]domain.Record, error) {
	return s.list(ctx, PathVerification+"/requests")
}

func (s *reviewService) ApproveVerification(ctx context.Context, id string) (domain.Record, error) {
	return s.post(ctx, PathVerification+"/"+url.PathEscape(id)+"/approve", nil)
}

func (s *reviewService) RejectVerification(ctx context.Context, id, reason string) (domain.Record, error) {
	return s.post(ctx, PathVerification+"/"+url.PathEscape(id)+"/reject", map[string]string{"reason": reason})
}

func (s *reviewService) SuspendedAccounts(ctx context.Context) ([]domain.Record, error) {
	return s.list(ctx, PathSuspension+"/accounts")
}

func (s *reviewService) Suspend(ctx context.Context, id, reason string) (domain.Record, error) {
	return s.post(ctx, PathSuspension+"/"+url.PathEscape(id)+"/suspend", map[string]string{"reason": reason})
}

func (s *reviewService) Unsuspend(ctx context.Context, id string) (domain.Record, error) {
	return s.post(ctx, PathSuspension+"/"+url.PathEscape(id)+"/unsuspend", nil)
}

func (s *reviewService) list(ctx context.Context, path string) ([]domain.Record, error) {
	var out []domain.Record
	if err := s.gateway.Do(ctx, ports.Request{Method: http.MethodGet, Path: path}, &out); err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return out, nil
}

func (s *reviewService) post(ctx context.Context, path string, body any) (domain.Record, error) {
	var out domain.Record
	if err := s.gateway.Do(ctx, ports.Request{Method: http.MethodPost, Path: path, Body: body}, &out); err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	return out, nil
}

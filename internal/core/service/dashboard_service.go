package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

const defaultRecentLimit = 5

type dashboardService struct {
	gateway ports.Gateway
}

// NewDashboardService returns the landing view's data source.
func NewDashboardService(gateway ports.Gateway) ports.DashboardService {
	return &dashboardService{gateway: gateway}
}

// Overview loads stats, recent users and recent projects concurrently. Any
// failure fails the whole overview.
func (s *dashboardService) Overview(ctx context.Context, limit int) (*ports.DashboardOverview, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	params := url.Values{"limit": {strconv.Itoa(limit)}}

	var out ports.DashboardOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.get(gctx, PathDashboard+"/stats", nil, &out.Stats)
	})
	g.Go(func() error {
		return s.get(gctx, PathDashboard+"/recent-users", params, &out.RecentUsers)
	})
	g.Go(func() error {
		return s.get(gctx, PathDashboard+"/recent-projects", params, &out.RecentProjects)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if out.Stats == nil {
		out.Stats = domain.Record{}
	}
	return &out, nil
}

func (s *dashboardService) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := s.gateway.Do(ctx, ports.Request{Method: http.MethodGet, Path: path, Query: query}, out); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return nil
}

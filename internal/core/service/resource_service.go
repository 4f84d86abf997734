package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
)

// Backend collection paths.
const (
	PathUsers        = "/users"
	PathClients      = "/clients"
	PathContractors  = "/contractors"
	PathLaborers     = "/laborers"
	PathProjects     = "/projects"
	PathBids         = "/bids"
	PathVerification = "/verification"
	PathSuspension   = "/suspension"
	PathDashboard    = "/dashboard"
)

// ResourceService forwards CRUD calls for one backend collection.
type ResourceService struct {
	gateway ports.Gateway
	base    string
}

var _ ports.ResourceService = (*ResourceService)(nil)

// NewResourceService binds the CRUD surface to the collection at base.
func NewResourceService(gateway ports.Gateway, base string) *ResourceService {
	return &ResourceService{gateway: gateway, base: base}
}

func (s *ResourceService) List(ctx context.Context, params url.Values) ([]domain.Record, error) {
	var out []domain.Record
	if err := s.do(ctx, http.MethodGet, s.base, params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (domain.Record, error) {
	var out domain.Record
	if err := s.do(ctx, http.MethodGet, s.item(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ResourceService) Create(ctx context.Context, body domain.Record) (domain.Record, error) {
	var out domain.Record
	if err := s.do(ctx, http.MethodPost, s.base, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ResourceService) Update(ctx context.Context, id string, body domain.Record) (domain.Record, error) {
	var out domain.Record
	if err := s.do(ctx, http.MethodPut, s.item(id), nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, s.item(id), nil, nil, nil)
}

// Search runs the collection's free-text search (users only on the
// current backend).
func (s *ResourceService) Search(ctx context.Context, query string) ([]domain.Record, error) {
	var out []domain.Record
	params := url.Values{"q": {query}}
	if err := s.do(ctx, http.MethodGet, s.base+"/search", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Related fetches a sub-resource of one item, such as a contractor's stats
// or a client's projects. The payload is returned undecoded.
func (s *ResourceService) Related(ctx context.Context, id, sub string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.do(ctx, http.MethodGet, s.item(id)+"/"+sub, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ResourceService) item(id string) string {
	return s.base + "/" + url.PathEscape(id)
}

func (s *ResourceService) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	err := s.gateway.Do(ctx, ports.Request{Method: method, Path: path, Query: query, Body: body}, out)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

package ports

import (
	"context"
	"net/url"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

// ResourceService is the CRUD surface shared by every directory resource
// (users, clients, contractors, laborers, projects, bids).
type ResourceService interface {
	List(ctx context.Context, params url.Values) ([]domain.Record, error)
	Get(ctx context.Context, id string) (domain.Record, error)
	Create(ctx context.Context, body domain.Record) (domain.Record, error)
	Update(ctx context.Context, id string, body domain.Record) (domain.Record, error)
	Delete(ctx context.Context, id string) error
}

// ProjectService adds the project lifecycle calls to the CRUD surface.
type ProjectService interface {
	ResourceService
	UpdateStatus(ctx context.Context, id, status string) (domain.Record, error)
	Cancel(ctx context.Context, id, reason, cancelledBy string) (domain.Record, error)
	ListByState(ctx context.Context, state string) ([]domain.Record, error)
}

// BidService adds bid review calls to the CRUD surface.
type BidService interface {
	ResourceService
	Accept(ctx context.Context, id, reviewedBy string) (domain.Record, error)
	Reject(ctx context.Context, id, reviewedBy string) (domain.Record, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Record, error)
}

// ReviewService covers pending verification and suspension cases.
type ReviewService interface {
	VerificationRequests(ctx context.Context) ([]domain.Record, error)
	ApproveVerification(ctx context.Context, id string) (domain.Record, error)
	RejectVerification(ctx context.Context, id, reason string) (domain.Record, error)
	SuspendedAccounts(ctx context.Context) ([]domain.Record, error)
	Suspend(ctx context.Context, id, reason string) (domain.Record, error)
	Unsuspend(ctx context.Context, id string) (domain.Record, error)
}

// DashboardOverview is the landing view's aggregate.
type DashboardOverview struct {
	Stats          domain.Record   `json:"stats"`
	RecentUsers    []domain.Record `json:"recent_users"`
	RecentProjects []domain.Record `json:"recent_projects"`
}

// DashboardService feeds the landing view.
type DashboardService interface {
	Overview(ctx context.Context, limit int) (*DashboardOverview, error)
}

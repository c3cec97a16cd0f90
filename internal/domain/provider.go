package domain

import "time"

// Provider represents a technician who performs services
// Providers are managed by the admin CRUD; the scheduling engine only reads them
type Provider struct {
	ID       int64
	Name     string
	IsActive bool

	// Free-text skill tags, e.g. "сантехника", "электрика"
	Specialization []string

	// Explicit set of services the provider is qualified for
	// Authoritative over Specialization when non-empty
	AssignedServiceIDs []int64

	AverageRating      float64 // 0-5
	TotalJobsCompleted int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAssignedService returns true if the service is in the explicit assignment set
func (p *Provider) HasAssignedService(serviceID int64) bool {
	for _, id := range p.AssignedServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// IsUnrestricted returns true when the provider declares neither explicit
// assignments nor specialization tags and is treated as qualified for everything
func (p *Provider) IsUnrestricted() bool {
	return len(p.AssignedServiceIDs) == 0 && len(p.Specialization) == 0
}

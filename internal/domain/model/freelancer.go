package model

// DefaultRating is the average rating a freelancer starts with.
const DefaultRating = 5.0

// ServiceChange is a pending category change recorded by change_service and
// applied at the next monthly boundary.
type ServiceChange struct {
	Service string
	Price   int
}

// Freelancer is a service provider. All fields are mutated exclusively by
// the matching orchestrator.
type Freelancer struct {
	FreelancerID string
	Service      string
	Price        int
	Skills       SkillVector

	AverageRating    float64
	CompletedJobs    int
	CancelledJobs    int
	MonthlyCompleted int
	MonthlyCancelled int

	Available bool
	Burnout   bool

	// CurrentCustomer references the assigned customer, or nil when idle.
	CurrentCustomer *Customer

	// CompositeScore is the last computed heap priority.
	CompositeScore int

	// Pending holds a queued category change, or nil.
	Pending *ServiceChange
}

var _ User = (*Freelancer)(nil)

// NewFreelancer creates a freelancer with default performance metrics.
func NewFreelancer(id, service string, price int, skills SkillVector) *Freelancer {
	return &Freelancer{
		FreelancerID:  id,
		Service:       service,
		Price:         price,
		Skills:        skills,
		AverageRating: DefaultRating,
		Available:     true,
	}
}

// ID returns the freelancer's unique key.
func (f *Freelancer) ID() string {
	return f.FreelancerID
}

// Priority returns the composite score used as heap priority.
func (f *Freelancer) Priority() int {
	return f.CompositeScore
}

// Assigned reports whether the freelancer has an active job.
func (f *Freelancer) Assigned() bool {
	return f.CurrentCustomer != nil
}

// Package service implements the matching orchestrator: it owns both entity
// stores and one indexed priority queue per service category, and it is the
// sole writer of queue membership. A freelancer sits in its category queue
// exactly while it is available and registered.
package service

import (
	"context"

	"github.com/AlperenUlu/gigmatch/internal/adapters/repository"
	"github.com/AlperenUlu/gigmatch/internal/domain/model"
	"github.com/AlperenUlu/gigmatch/internal/domain/scoring"
	"github.com/AlperenUlu/gigmatch/pkg/logger"
	"github.com/AlperenUlu/gigmatch/pkg/metrics"
)

// Lifecycle thresholds.
const (
	banThreshold       = 5 // monthly cancellations that trigger a permanent ban
	burnoutThreshold   = 5 // monthly completions that trigger burnout
	burnoutRecoveryMax = 2 // monthly completions at or below which burnout clears
	cancelSkillPenalty = 3 // skill points lost on a freelancer-side cancellation

	minRating = 0
	maxRating = 5

	upgradeRatingMin  = 4 // ratings at or above this upgrade skills
	topSkillUpgrade   = 2
	minorSkillUpgrade = 1

	defaultUserTableCapacity     = 200017
	defaultPositionTableCapacity = 50077
	defaultBlacklistCapacity     = 97
	defaultHeapCapacity          = 10000
)

// Candidate is one row of a match listing.
type Candidate struct {
	FreelancerID string
	Composite    int
	Price        int
	Rating       float64
}

// MatchResult is the outcome of a successful match query: the eligible
// candidates in rank order and the auto-hired first candidate.
type MatchResult struct {
	Service    string
	Candidates []Candidate
	HiredID    string
}

// CancelOutcome reports a freelancer-side cancellation: the affected
// customer and whether the cancellation crossed the ban threshold.
type CancelOutcome struct {
	CustomerID string
	Banned     bool
}

// FreelancerInfo is a read-only snapshot for display.
type FreelancerInfo struct {
	FreelancerID string
	Service      string
	Price        int
	Rating       float64
	Completed    int
	Cancelled    int
	Skills       model.SkillVector
	Available    bool
	Burnout      bool
}

// CustomerInfo is a read-only snapshot for display.
type CustomerInfo struct {
	CustomerID       string
	TotalSpending    int
	Tier             string
	BlacklistedCount int
	TotalEmployments int
}

// Service is the matching orchestrator.
type Service struct {
	customers   *repository.KeyedStore[*model.Customer]
	freelancers *repository.KeyedStore[*model.Freelancer]
	queues      map[string]*repository.IndexedMaxHeap[*model.Freelancer]

	// pending holds freelancer IDs with queued service changes, applied in
	// FIFO order at the monthly boundary.
	pending []string

	userTableCapacity     int
	positionTableCapacity int
	blacklistCapacity     int
	heapCapacity          int

	logger logger.Logger
}

// New constructs an orchestrator with one queue per catalog service.
func New(opts ...Option) *Service {
	s := &Service{
		userTableCapacity:     defaultUserTableCapacity,
		positionTableCapacity: defaultPositionTableCapacity,
		blacklistCapacity:     defaultBlacklistCapacity,
		heapCapacity:          defaultHeapCapacity,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.customers = repository.NewKeyedStore[*model.Customer](
		repository.WithCapacity(s.userTableCapacity),
	)
	s.freelancers = repository.NewKeyedStore[*model.Freelancer](
		repository.WithCapacity(s.userTableCapacity),
	)

	s.queues = make(map[string]*repository.IndexedMaxHeap[*model.Freelancer])
	for _, svc := range model.Services() {
		s.queues[svc.Name] = repository.NewIndexedMaxHeap[*model.Freelancer](
			repository.WithHeapCapacity(s.heapCapacity),
			repository.WithIndexCapacity(s.positionTableCapacity),
		)
	}

	return s
}

// RegisterCustomer creates a customer. The key must be unique across both
// entity namespaces.
func (s *Service) RegisterCustomer(ctx context.Context, customerID string) error {
	if s.idTaken(customerID) {
		return ErrDuplicateID
	}

	s.customers.Put(customerID, model.NewCustomer(customerID, s.blacklistCapacity))
	metrics.UpdateCustomersTotal(s.customers.Size())
	s.logger.Debug(ctx, "customer registered", logger.String("customer", customerID))
	return nil
}

// RegisterFreelancer creates a freelancer, computes its initial composite
// score and inserts it into its category queue.
func (s *Service) RegisterFreelancer(ctx context.Context, freelancerID, serviceName string, price int, skills model.SkillVector) error {
	if s.idTaken(freelancerID) {
		return ErrDuplicateID
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	if !skills.InRange() {
		return ErrInvalidSkills
	}
	svc, ok := model.ServiceByName(serviceName)
	if !ok {
		return ErrUnknownService
	}

	f := model.NewFreelancer(freelancerID, serviceName, price, skills)
	f.CompositeScore = scoring.Compute(scoringInput(f), svc.Required)

	s.freelancers.Put(freelancerID, f)
	s.queues[serviceName].Insert(f)

	metrics.UpdateFreelancersTotal(s.freelancers.Size())
	metrics.UpdateQueueDepth(serviceName, s.queues[serviceName].Size())
	s.logger.Debug(ctx, "freelancer registered",
		logger.String("freelancer", freelancerID),
		logger.String("service", serviceName),
		logger.Int("score", f.CompositeScore),
	)
	return nil
}

// Blacklist adds a freelancer to the customer's private blacklist. Queue
// membership is untouched; blacklisting is filtered at match-query time.
func (s *Service) Blacklist(ctx context.Context, customerID, freelancerID string) error {
	f, ok := s.freelancers.Get(freelancerID)
	if !ok {
		return ErrFreelancerNotFound
	}
	c, ok := s.customers.Get(customerID)
	if !ok {
		return ErrCustomerNotFound
	}
	if c.Blacklist.Contains(freelancerID) {
		return ErrAlreadyBlacklisted
	}

	c.Blacklist.Put(freelancerID, f)
	return nil
}

// Unblacklist removes a freelancer from the customer's blacklist.
func (s *Service) Unblacklist(ctx context.Context, customerID, freelancerID string) error {
	if !s.freelancers.Contains(freelancerID) {
		return ErrFreelancerNotFound
	}
	c, ok := s.customers.Get(customerID)
	if !ok {
		return ErrCustomerNotFound
	}
	if !c.Blacklist.Contains(freelancerID) {
		return ErrNotBlacklisted
	}

	c.Blacklist.Remove(freelancerID)
	return nil
}

// Employ hires a specific freelancer directly. Returns the service the
// freelancer was hired for.
func (s *Service) Employ(ctx context.Context, customerID, freelancerID string) (string, error) {
	f, ok := s.freelancers.Get(freelancerID)
	if !ok {
		return "", ErrFreelancerNotFound
	}
	c, ok := s.customers.Get(customerID)
	if !ok {
		return "", ErrCustomerNotFound
	}
	if c.Blacklist.Contains(freelancerID) {
		return "", ErrBlacklisted
	}
	if !f.Available {
		return "", ErrUnavailable
	}

	s.assign(f, c)
	metrics.RecordJobMatched()
	metrics.UpdateQueueDepth(f.Service, s.queues[f.Service].Size())
	s.logger.Debug(ctx, "freelancer employed",
		logger.String("customer", customerID),
		logger.String("freelancer", freelancerID),
	)
	return f.Service, nil
}

// RequestJob lists up to candidateCount eligible freelancers for a service
// in rank order and auto-hires the best one. Candidates blacklisted by the
// requester are skipped but buffered, and everything except the hired
// freelancer is reinserted, so the queue is unchanged apart from the hire.
func (s *Service) RequestJob(ctx context.Context, customerID, serviceName string, candidateCount int) (MatchResult, error) {
	if _, ok := model.ServiceByName(serviceName); !ok {
		return MatchResult{}, ErrUnknownService
	}
	c, ok := s.customers.Get(customerID)
	if !ok {
		return MatchResult{}, ErrCustomerNotFound
	}

	queue := s.queues[serviceName]
	if queue.Size() == 0 {
		return MatchResult{}, ErrNoFreelancers
	}

	result := MatchResult{Service: serviceName}
	var buffered []*model.Freelancer
	var best *model.Freelancer

	for len(result.Candidates) < candidateCount && queue.Size() > 0 {
		cand, _ := queue.ExtractMax()
		buffered = append(buffered, cand)

		if c.Blacklist.Contains(cand.ID()) {
			continue
		}

		result.Candidates = append(result.Candidates, Candidate{
			FreelancerID: cand.ID(),
			Composite:    cand.CompositeScore,
			Price:        cand.Price,
			Rating:       cand.AverageRating,
		})
		if best == nil {
			best = cand
		}
	}

	if best == nil {
		// Restore the queue before reporting no match.
		for _, f := range buffered {
			queue.Insert(f)
		}
		return MatchResult{}, ErrNoFreelancers
	}

	best.Available = false
	best.CurrentCustomer = c
	c.TotalEmployments++

	// The hired freelancer stays out; everyone else goes back.
	for _, f := range buffered {
		if f != best {
			queue.Insert(f)
		}
	}

	result.HiredID = best.ID()
	metrics.RecordJobMatched()
	metrics.UpdateQueueDepth(serviceName, queue.Size())
	s.logger.Debug(ctx, "job matched",
		logger.String("customer", customerID),
		logger.String("freelancer", best.ID()),
		logger.Int("candidates", len(result.Candidates)),
	)
	return result, nil
}

// CompleteAndRate finishes the freelancer's active job with a rating in
// [0,5]. High ratings upgrade the service's top-weighted skills, the
// customer pays the loyalty-discounted price, and the freelancer is
// rescored and requeued. Returns the paying customer's ID.
func (s *Service) CompleteAndRate(ctx context.Context, freelancerID string, rating int) (string, error) {
	f, ok := s.freelancers.Get(freelancerID)
	if !ok {
		return "", ErrFreelancerNotFound
	}
	if !f.Assigned() {
		return "", ErrNoActiveJob
	}
	if rating < minRating || rating > maxRating {
		return "", ErrInvalidRating
	}

	cust := f.CurrentCustomer

	if rating >= upgradeRatingMin {
		svc, _ := model.ServiceByName(f.Service)
		s.upgradeSkills(f, svc.Required)
	}

	// Weighted-incremental average over all rated events, counting the
	// completion being recorded.
	history := f.CompletedJobs + f.CancelledJobs
	f.AverageRating = (f.AverageRating*float64(history+1) + float64(rating)) / float64(history+2)
	f.CompletedJobs++
	f.MonthlyCompleted++

	f.Available = true
	f.CurrentCustomer = nil

	payment := int(float64(f.Price) * (1.0 - cust.Discount()))
	cust.TotalSpending += payment

	s.reposition(f)
	metrics.RecordJobCompleted()
	s.logger.Debug(ctx, "job completed",
		logger.String("freelancer", freelancerID),
		logger.String("customer", cust.ID()),
		logger.Int("rating", rating),
		logger.Int("payment", payment),
	)
	return cust.ID(), nil
}

// CancelByCustomer cancels the active job between the customer and the
// freelancer. The freelancer is requeued with an unchanged score; the
// customer's cancellation counter feeds the next loyalty recomputation.
func (s *Service) CancelByCustomer(ctx context.Context, customerID, freelancerID string) error {
	f, ok := s.freelancers.Get(freelancerID)
	if !ok {
		return ErrFreelancerNotFound
	}
	c, ok := s.customers.Get(customerID)
	if !ok {
		return ErrCustomerNotFound
	}
	if !f.Assigned() || f.CurrentCustomer.ID() != customerID {
		return ErrNoActiveJob
	}

	f.CurrentCustomer = nil
	f.Available = true
	c.CancelledRequests++

	s.queues[f.Service].Insert(f)
	metrics.RecordJobCancelled("customer")
	metrics.UpdateQueueDepth(f.Service, s.queues[f.Service].Size())
	return nil
}

// CancelByFreelancer cancels the freelancer's active job. The fifth
// cancellation within one month permanently bans the freelancer; otherwise
// the cancellation counts as a zero-rating event, all skills drop, and the
// freelancer is rescored and requeued.
func (s *Service) CancelByFreelancer(ctx context.Context, freelancerID string) (CancelOutcome, error) {
	f, ok := s.freelancers.Get(freelancerID)
	if !ok {
		return CancelOutcome{}, ErrFreelancerNotFound
	}
	if !f.Assigned() {
		return CancelOutcome{}, ErrNoActiveJob
	}

	customerID := f.CurrentCustomer.ID()
	f.CancelledJobs++
	f.MonthlyCancelled++

	if f.MonthlyCancelled >= banThreshold {
		s.freelancers.Remove(freelancerID)
		// Assigned freelancers are queue-absent; the removal is a no-op
		// kept for the terminal transition's completeness.
		s.queues[f.Service].RemoveByKey(freelancerID)

		metrics.RecordBan()
		metrics.UpdateFreelancersTotal(s.freelancers.Size())
		s.logger.Info(ctx, "freelancer banned",
			logger.String("freelancer", freelancerID),
			logger.Int("monthlyCancellations", f.MonthlyCancelled),
		)
		return CancelOutcome{CustomerID: customerID, Banned: true}, nil
	}

	// The cancellation counts as a zero-rating event; the counters above
	// already include it.
	history := f.CompletedJobs + f.CancelledJobs
	f.AverageRating = (f.AverageRating * float64(history)) / float64(history+1)

	f.CurrentCustomer = nil
	f.Available = true

	for i := range f.Skills {
		f.Skills[i] = max(model.SkillMin, f.Skills[i]-cancelSkillPenalty)
	}

	s.reposition(f)
	metrics.RecordJobCancelled("freelancer")
	return CancelOutcome{CustomerID: customerID}, nil
}

// ChangeService queues a category change to be applied at the next monthly
// boundary. Returns the freelancer's current service.
func (s *Service) ChangeService(ctx context.Context, freelancerID, serviceName string, price int) (string, error) {
	if !s.freelancers.Contains(freelancerID) {
		return "", ErrFreelancerNotFound
	}
	if _, ok := model.ServiceByName(serviceName); !ok {
		return "", ErrUnknownService
	}
	if price <= 0 {
		return "", ErrInvalidPrice
	}

	f, _ := s.freelancers.Get(freelancerID)
	f.Pending = &model.ServiceChange{Service: serviceName, Price: price}
	s.pending = append(s.pending, freelancerID)

	s.logger.Debug(ctx, "service change queued",
		logger.String("freelancer", freelancerID),
		logger.String("from", f.Service),
		logger.String("to", serviceName),
	)
	return f.Service, nil
}

// UpdateSkills replaces the freelancer's skill vector and repositions it in
// its queue.
func (s *Service) UpdateSkills(ctx context.Context, freelancerID string, skills model.SkillVector) (string, error) {
	f, ok := s.freelancers.Get(freelancerID)
	if !ok {
		return "", ErrFreelancerNotFound
	}
	if !skills.InRange() {
		return "", ErrInvalidSkills
	}

	f.Skills = skills
	s.reposition(f)
	return f.Service, nil
}

// SimulateMonth advances the simulation one month: burnout transitions and
// monthly counter resets for every freelancer, loyalty recomputation for
// every customer, then the queued service changes. The burnout and loyalty
// passes run first so the changes rescore against fresh state.
func (s *Service) SimulateMonth(ctx context.Context) error {
	for _, f := range s.freelancers.Values() {
		if f.Burnout {
			if f.MonthlyCompleted <= burnoutRecoveryMax {
				f.Burnout = false
				s.reposition(f)
			}
		} else if f.MonthlyCompleted >= burnoutThreshold {
			f.Burnout = true
			s.reposition(f)
		}
		f.MonthlyCompleted = 0
		f.MonthlyCancelled = 0
	}

	// Loyalty is recomputed from cumulative totals, never drifted.
	for _, c := range s.customers.Values() {
		c.LoyaltyPoints = c.TotalSpending - model.CancellationPenalty*c.CancelledRequests
	}

	for _, freelancerID := range s.pending {
		f, ok := s.freelancers.Get(freelancerID)
		if !ok {
			continue // banned after queueing the change
		}
		change := f.Pending
		if change == nil {
			continue // duplicate queue entry, already applied
		}

		oldService := f.Service
		s.queues[oldService].RemoveByKey(freelancerID)

		f.Service = change.Service
		f.Price = change.Price
		f.Pending = nil

		svc, _ := model.ServiceByName(f.Service)
		f.CompositeScore = scoring.Compute(scoringInput(f), svc.Required)
		if f.Available {
			s.queues[f.Service].Insert(f)
		}

		metrics.UpdateQueueDepth(oldService, s.queues[oldService].Size())
		metrics.UpdateQueueDepth(f.Service, s.queues[f.Service].Size())
	}
	s.pending = s.pending[:0]

	s.logger.Debug(ctx, "month simulated",
		logger.Int("freelancers", s.freelancers.Size()),
		logger.Int("customers", s.customers.Size()),
	)
	return nil
}

// QueryFreelancer returns a display snapshot of a freelancer.
func (s *Service) QueryFreelancer(ctx context.Context, freelancerID string) (FreelancerInfo, error) {
	f, ok := s.freelancers.Get(freelancerID)
	if !ok {
		return FreelancerInfo{}, ErrFreelancerNotFound
	}
	return FreelancerInfo{
		FreelancerID: f.ID(),
		Service:      f.Service,
		Price:        f.Price,
		Rating:       f.AverageRating,
		Completed:    f.CompletedJobs,
		Cancelled:    f.CancelledJobs,
		Skills:       f.Skills,
		Available:    f.Available,
		Burnout:      f.Burnout,
	}, nil
}

// QueryCustomer returns a display snapshot of a customer.
func (s *Service) QueryCustomer(ctx context.Context, customerID string) (CustomerInfo, error) {
	c, ok := s.customers.Get(customerID)
	if !ok {
		return CustomerInfo{}, ErrCustomerNotFound
	}
	return CustomerInfo{
		CustomerID:       c.ID(),
		TotalSpending:    c.TotalSpending,
		Tier:             c.Tier(),
		BlacklistedCount: c.Blacklist.Size(),
		TotalEmployments: c.TotalEmployments,
	}, nil
}

// QueueDepth returns the number of available freelancers queued for a
// service, or 0 for an unknown service.
func (s *Service) QueueDepth(serviceName string) int {
	queue, ok := s.queues[serviceName]
	if !ok {
		return 0
	}
	return queue.Size()
}

// CustomerCount returns the number of registered customers.
func (s *Service) CustomerCount() int {
	return s.customers.Size()
}

// FreelancerCount returns the number of registered freelancers.
func (s *Service) FreelancerCount() int {
	return s.freelancers.Size()
}

// idTaken reports whether an ID exists in either entity namespace.
func (s *Service) idTaken(id string) bool {
	return s.customers.Contains(id) || s.freelancers.Contains(id)
}

// assign marks the freelancer hired by the customer and removes it from its
// queue, keeping the membership invariant.
func (s *Service) assign(f *model.Freelancer, c *model.Customer) {
	f.Available = false
	f.CurrentCustomer = c
	c.TotalEmployments++
	s.queues[f.Service].RemoveByKey(f.ID())
}

// upgradeSkills bumps the three most important skills for the service's
// required vector: +2 for the top, +1 for the next two, clamped at the cap.
func (s *Service) upgradeSkills(f *model.Freelancer, required model.SkillVector) {
	indices := scoring.UpgradeIndices(required)
	f.Skills[indices[0]] = min(model.SkillMax, f.Skills[indices[0]]+topSkillUpgrade)
	f.Skills[indices[1]] = min(model.SkillMax, f.Skills[indices[1]]+minorSkillUpgrade)
	f.Skills[indices[2]] = min(model.SkillMax, f.Skills[indices[2]]+minorSkillUpgrade)
}

// reposition removes the freelancer from its queue, recomputes its score
// from current state, and reinserts it only while it is available. The
// stored score is never changed while the freelancer is queued.
func (s *Service) reposition(f *model.Freelancer) {
	queue := s.queues[f.Service]
	queue.RemoveByKey(f.ID())

	svc, ok := model.ServiceByName(f.Service)
	if !ok {
		return
	}
	f.CompositeScore = scoring.Compute(scoringInput(f), svc.Required)

	if f.Available {
		queue.Insert(f)
	}
	metrics.UpdateQueueDepth(f.Service, queue.Size())
}

func scoringInput(f *model.Freelancer) scoring.Input {
	return scoring.Input{
		Skills:        f.Skills,
		AverageRating: f.AverageRating,
		Completed:     f.CompletedJobs,
		Cancelled:     f.CancelledJobs,
		Burnout:       f.Burnout,
	}
}

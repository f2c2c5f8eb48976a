package service

import "errors"

// Sentinel kinds for orchestration failures. Every operation validates its
// preconditions before touching any state, so a returned error implies no
// mutation happened.
var (
	ErrDuplicateID        = errors.New("id already registered")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrFreelancerNotFound = errors.New("freelancer not found")
	ErrUnknownService     = errors.New("unknown service")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidSkills      = errors.New("skill out of range")
	ErrInvalidRating      = errors.New("invalid rating")
	ErrUnavailable        = errors.New("freelancer unavailable")
	ErrBlacklisted        = errors.New("freelancer blacklisted by customer")
	ErrAlreadyBlacklisted = errors.New("freelancer already blacklisted")
	ErrNotBlacklisted     = errors.New("freelancer not blacklisted")
	ErrNoActiveJob        = errors.New("no active assignment")
	ErrNoFreelancers      = errors.New("no freelancers available")
)

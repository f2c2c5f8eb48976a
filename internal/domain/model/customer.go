package model

import (
	"github.com/AlperenUlu/gigmatch/internal/adapters/repository"
)

// Loyalty tier names, ordered by the points required to reach them.
const (
	TierBronze   = "BRONZE"
	TierSilver   = "SILVER"
	TierGold     = "GOLD"
	TierPlatinum = "PLATINUM"
)

// Loyalty point thresholds and the discounts they unlock.
const (
	silverThreshold   = 500
	goldThreshold     = 2000
	platinumThreshold = 5000

	silverDiscount   = 0.05
	goldDiscount     = 0.10
	platinumDiscount = 0.15
)

// CancellationPenalty is the loyalty point cost of one customer-initiated
// cancellation.
const CancellationPenalty = 250

// Customer is a client who hires freelancers. The blacklist holds non-owning
// references into the global freelancer store; entries for banned freelancers
// are left dangling and simply never match again.
type Customer struct {
	CustomerID string

	Blacklist *repository.KeyedStore[*Freelancer]

	TotalEmployments  int
	LoyaltyPoints     int
	TotalSpending     int
	CancelledRequests int
}

var _ User = (*Customer)(nil)

// NewCustomer creates a customer with an empty blacklist of the given
// bucket capacity.
func NewCustomer(id string, blacklistCapacity int) *Customer {
	return &Customer{
		CustomerID: id,
		Blacklist:  repository.NewKeyedStore[*Freelancer](repository.WithCapacity(blacklistCapacity)),
	}
}

// ID returns the customer's unique key.
func (c *Customer) ID() string {
	return c.CustomerID
}

// Tier returns the loyalty tier for the current points.
func (c *Customer) Tier() string {
	switch {
	case c.LoyaltyPoints >= platinumThreshold:
		return TierPlatinum
	case c.LoyaltyPoints >= goldThreshold:
		return TierGold
	case c.LoyaltyPoints >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// Discount returns the payment discount fraction for the current points.
func (c *Customer) Discount() float64 {
	switch {
	case c.LoyaltyPoints >= platinumThreshold:
		return platinumDiscount
	case c.LoyaltyPoints >= goldThreshold:
		return goldDiscount
	case c.LoyaltyPoints >= silverThreshold:
		return silverDiscount
	default:
		return 0
	}
}

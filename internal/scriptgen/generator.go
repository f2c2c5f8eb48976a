// Package scriptgen produces randomized command scripts for exercising the
// matching platform end to end. Generation is seeded, so a seed plus a
// config always yields the same script.
package scriptgen

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/AlperenUlu/gigmatch/internal/domain/model"
	"github.com/AlperenUlu/gigmatch/pkg/logger"
)

// Default generation parameters.
const (
	DefaultCustomers   = 50
	DefaultFreelancers = 200
	DefaultCommands    = 1000
	DefaultSeed        = 1
)

// Command mix weights out of 100. The remainder is monthly simulations.
const (
	weightRequestJob = 30
	weightComplete   = 25
	weightEmploy     = 10
	weightCancel     = 10
	weightQuery      = 10
	weightBlacklist  = 5
	weightChange     = 5
	weightUpdate     = 3
)

// Value ranges for generated entities.
const (
	priceMin   = 10
	priceRange = 490
	skillMin   = 30
	skillRange = 71

	maxCandidates = 5
)

// Config holds generation parameters for one script.
type Config struct {
	NumCustomers   int
	NumFreelancers int
	NumCommands    int
	Seed           int64
	OutputFile     string
}

// DefaultConfig returns a config with the default generation parameters.
func DefaultConfig() Config {
	return Config{
		NumCustomers:   DefaultCustomers,
		NumFreelancers: DefaultFreelancers,
		NumCommands:    DefaultCommands,
		Seed:           DefaultSeed,
	}
}

// Generator builds one command script. It tracks which freelancers the
// script has assigned so completions and cancellations mostly land on
// active jobs.
type Generator struct {
	cfg Config
	rng *rand.Rand

	customers   []string
	freelancers []string

	// assigned maps freelancer ID to the customer holding its active job.
	assigned map[string]string
}

// New creates a generator for the given config.
func New(cfg Config) *Generator {
	return &Generator{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		assigned: make(map[string]string),
	}
}

// Generate returns the full script: registrations first, then the randomized
// command mix.
func (g *Generator) Generate(ctx context.Context) []string {
	logger.Get().Info(ctx, "generating command script",
		logger.Int("customers", g.cfg.NumCustomers),
		logger.Int("freelancers", g.cfg.NumFreelancers),
		logger.Int("commands", g.cfg.NumCommands),
		logger.Any("seed", g.cfg.Seed),
	)

	lines := make([]string, 0, g.cfg.NumCustomers+g.cfg.NumFreelancers+g.cfg.NumCommands)

	for i := 0; i < g.cfg.NumCustomers; i++ {
		id := g.newID("cust")
		g.customers = append(g.customers, id)
		lines = append(lines, "register_customer "+id)
	}

	services := model.Services()
	for i := 0; i < g.cfg.NumFreelancers; i++ {
		id := g.newID("free")
		g.freelancers = append(g.freelancers, id)
		svc := services[g.rng.Intn(len(services))]
		lines = append(lines, fmt.Sprintf("register_freelancer %s %s %d %s",
			id, svc.Name, g.price(), g.skills()))
	}

	for i := 0; i < g.cfg.NumCommands; i++ {
		lines = append(lines, g.command())
	}
	return lines
}

func (g *Generator) command() string {
	services := model.Services()
	roll := g.rng.Intn(100)

	switch {
	case roll < weightRequestJob:
		svc := services[g.rng.Intn(len(services))]
		return fmt.Sprintf("request_job %s %s %d",
			g.pick(g.customers), svc.Name, 1+g.rng.Intn(maxCandidates))

	case roll < weightRequestJob+weightComplete:
		if id, ok := g.pickAssigned(); ok {
			delete(g.assigned, id)
			return fmt.Sprintf("complete_and_rate %s %d", id, g.rng.Intn(6))
		}
		return "simulate_month"

	case roll < weightRequestJob+weightComplete+weightEmploy:
		customer := g.pick(g.customers)
		id := g.pick(g.freelancers)
		if _, busy := g.assigned[id]; !busy {
			g.assigned[id] = customer
		}
		return fmt.Sprintf("employ_freelancer %s %s", customer, id)

	case roll < weightRequestJob+weightComplete+weightEmploy+weightCancel:
		if id, ok := g.pickAssigned(); ok {
			customer := g.assigned[id]
			delete(g.assigned, id)
			if g.rng.Intn(2) == 0 {
				return "cancel_by_freelancer " + id
			}
			return fmt.Sprintf("cancel_by_customer %s %s", customer, id)
		}
		return "simulate_month"

	case roll < weightRequestJob+weightComplete+weightEmploy+weightCancel+weightQuery:
		if g.rng.Intn(2) == 0 {
			return "query_freelancer " + g.pick(g.freelancers)
		}
		return "query_customer " + g.pick(g.customers)

	case roll < weightRequestJob+weightComplete+weightEmploy+weightCancel+weightQuery+weightBlacklist:
		if g.rng.Intn(3) == 0 {
			return fmt.Sprintf("unblacklist %s %s", g.pick(g.customers), g.pick(g.freelancers))
		}
		return fmt.Sprintf("blacklist %s %s", g.pick(g.customers), g.pick(g.freelancers))

	case roll < weightRequestJob+weightComplete+weightEmploy+weightCancel+weightQuery+weightBlacklist+weightChange:
		svc := services[g.rng.Intn(len(services))]
		return fmt.Sprintf("change_service %s %s %d", g.pick(g.freelancers), svc.Name, g.price())

	case roll < weightRequestJob+weightComplete+weightEmploy+weightCancel+weightQuery+weightBlacklist+weightChange+weightUpdate:
		return fmt.Sprintf("update_skill %s %s", g.pick(g.freelancers), g.skills())

	default:
		return "simulate_month"
	}
}

// newID derives a seeded uuid so the whole script is reproducible.
func (g *Generator) newID(prefix string) string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// The seeded source never fails to read.
		return fmt.Sprintf("%s-%d", prefix, g.rng.Int63())
	}
	return prefix + "-" + id.String()
}

func (g *Generator) pick(ids []string) string {
	return ids[g.rng.Intn(len(ids))]
}

func (g *Generator) pickAssigned() (string, bool) {
	if len(g.assigned) == 0 {
		return "", false
	}
	// Deterministic pick: lowest ID wins. Map iteration order would leak
	// into the script otherwise.
	best := ""
	for id := range g.assigned {
		if best == "" || id < best {
			best = id
		}
	}
	return best, true
}

func (g *Generator) price() int {
	return priceMin + g.rng.Intn(priceRange)
}

func (g *Generator) skills() string {
	parts := make([]string, model.SkillCount)
	for i := range parts {
		parts[i] = fmt.Sprintf("%d", skillMin+g.rng.Intn(skillRange))
	}
	return strings.Join(parts, " ")
}

// Package cli reads a command script line by line, dispatches each command
// to the orchestrator and renders the results in the platform's wire text.
// Malformed lines are reported in place and never abort the batch.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	service "github.com/AlperenUlu/gigmatch/internal/app"
	"github.com/AlperenUlu/gigmatch/internal/domain/model"
	"github.com/AlperenUlu/gigmatch/pkg/logger"
	"github.com/AlperenUlu/gigmatch/pkg/metrics"
)

// Runner executes command scripts against a single orchestrator.
type Runner struct {
	svc *service.Service
	log logger.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// NewRunner creates a runner bound to an orchestrator.
func NewRunner(svc *service.Service, opts ...Option) *Runner {
	r := &Runner{svc: svc}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get()
	}
	return r
}

// Run processes every non-empty line of in and writes one result block per
// command to out. Only I/O failures abort the run.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	w := bufio.NewWriter(out)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if _, err := w.WriteString(r.Execute(ctx, line) + "\n"); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return w.Flush()
}

// Execute runs a single command line and returns its rendered result.
func (r *Runner) Execute(ctx context.Context, line string) string {
	parts := strings.Fields(line)
	op := parts[0]

	start := time.Now()
	metrics.RecordCommand(op)

	result, err := r.dispatch(ctx, op, parts[1:])
	metrics.RecordCommandDuration(float64(time.Since(start).Milliseconds()))

	switch {
	case errors.Is(err, errUnknownCommand):
		return "Unknown command: " + op
	case errors.Is(err, errMalformed):
		metrics.RecordCommandFailure(op)
		r.log.Warn(ctx, "malformed command", logger.String("line", line))
		return "Error processing command: " + line
	case err != nil:
		metrics.RecordCommandFailure(op)
		r.log.Debug(ctx, "command rejected",
			logger.String("operation", op),
			logger.Error(err),
		)
		name := op
		var oe opError
		if errors.As(err, &oe) {
			name = oe.op
		}
		return "Some error occurred in " + name + "."
	}
	return result
}

// Internal dispatch signals. Operation failures surface as the service's
// sentinel errors and render as the per-operation error line.
var (
	errUnknownCommand = errors.New("unknown command")
	errMalformed      = errors.New("malformed command")
)

func (r *Runner) dispatch(ctx context.Context, op string, args []string) (string, error) {
	switch op {
	case "register_customer":
		if len(args) < 1 {
			return "", errMalformed
		}
		if err := r.svc.RegisterCustomer(ctx, args[0]); err != nil {
			return "", err
		}
		return "registered customer " + args[0], nil

	case "register_freelancer":
		if len(args) < 8 {
			return "", errMalformed
		}
		price, err := strconv.Atoi(args[2])
		if err != nil {
			return "", errMalformed
		}
		skills, err := parseSkills(args[3:8])
		if err != nil {
			return "", errMalformed
		}
		if err := r.svc.RegisterFreelancer(ctx, args[0], args[1], price, skills); err != nil {
			return "", err
		}
		return "registered freelancer " + args[0], nil

	case "request_job":
		if len(args) < 3 {
			return "", errMalformed
		}
		count, err := strconv.Atoi(args[2])
		if err != nil {
			return "", errMalformed
		}
		res, err := r.svc.RequestJob(ctx, args[0], args[1], count)
		if err == service.ErrNoFreelancers {
			return "no freelancers available", nil
		}
		if err != nil {
			return "", err
		}
		return formatMatch(args[0], res), nil

	case "employ_freelancer":
		if len(args) < 2 {
			return "", errMalformed
		}
		svcName, err := r.svc.Employ(ctx, args[0], args[1])
		if err != nil {
			return "", opError{"employ", err}
		}
		return args[0] + " employed " + args[1] + " for " + svcName, nil

	case "complete_and_rate":
		if len(args) < 2 {
			return "", errMalformed
		}
		rating, err := strconv.Atoi(args[1])
		if err != nil {
			return "", errMalformed
		}
		customerID, err := r.svc.CompleteAndRate(ctx, args[0], rating)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s completed job for %s with rating %d", args[0], customerID, rating), nil

	case "cancel_by_freelancer":
		if len(args) < 1 {
			return "", errMalformed
		}
		out, err := r.svc.CancelByFreelancer(ctx, args[0])
		if err != nil {
			return "", err
		}
		result := "cancelled by freelancer: " + args[0] + " cancelled " + out.CustomerID
		if out.Banned {
			result += "\nplatform banned freelancer: " + args[0]
		}
		return result, nil

	case "cancel_by_customer":
		if len(args) < 2 {
			return "", errMalformed
		}
		if err := r.svc.CancelByCustomer(ctx, args[0], args[1]); err != nil {
			return "", err
		}
		return "cancelled by customer: " + args[0] + " cancelled " + args[1], nil

	case "blacklist":
		if len(args) < 2 {
			return "", errMalformed
		}
		if err := r.svc.Blacklist(ctx, args[0], args[1]); err != nil {
			return "", err
		}
		return args[0] + " blacklisted " + args[1], nil

	case "unblacklist":
		if len(args) < 2 {
			return "", errMalformed
		}
		if err := r.svc.Unblacklist(ctx, args[0], args[1]); err != nil {
			return "", err
		}
		return args[0] + " unblacklisted " + args[1], nil

	case "change_service":
		if len(args) < 3 {
			return "", errMalformed
		}
		price, err := strconv.Atoi(args[2])
		if err != nil {
			return "", errMalformed
		}
		oldService, err := r.svc.ChangeService(ctx, args[0], args[1], price)
		if err != nil {
			return "", err
		}
		return "service change for " + args[0] + " queued from " + oldService + " to " + args[1], nil

	case "update_skill":
		if len(args) < 6 {
			return "", errMalformed
		}
		skills, err := parseSkills(args[1:6])
		if err != nil {
			return "", errMalformed
		}
		svcName, err := r.svc.UpdateSkills(ctx, args[0], skills)
		if err != nil {
			return "", err
		}
		return "updated skills of " + args[0] + " for " + svcName, nil

	case "simulate_month":
		if err := r.svc.SimulateMonth(ctx); err != nil {
			return "", err
		}
		return "month complete", nil

	case "query_freelancer":
		if len(args) < 1 {
			return "", errMalformed
		}
		info, err := r.svc.QueryFreelancer(ctx, args[0])
		if err != nil {
			return "", err
		}
		return formatFreelancer(info), nil

	case "query_customer":
		if len(args) < 1 {
			return "", errMalformed
		}
		info, err := r.svc.QueryCustomer(ctx, args[0])
		if err != nil {
			return "", err
		}
		return formatCustomer(info), nil
	}

	return "", errUnknownCommand
}

// opError renames the operation in the rendered error line when the wire
// name differs from the command token.
type opError struct {
	op  string
	err error
}

func (e opError) Error() string { return e.err.Error() }

func (e opError) Unwrap() error { return e.err }

func parseSkills(args []string) (model.SkillVector, error) {
	var skills model.SkillVector
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return skills, err
		}
		skills[i] = v
	}
	return skills, nil
}

func formatMatch(customerID string, res service.MatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "available freelancers for %s (top %d):", res.Service, len(res.Candidates))
	for _, c := range res.Candidates {
		fmt.Fprintf(&b, "\n%s - composite: %d, price: %d, rating: %.1f",
			c.FreelancerID, c.Composite, c.Price, c.Rating)
	}
	fmt.Fprintf(&b, "\nauto-employed best freelancer: %s for customer %s", res.HiredID, customerID)
	return b.String()
}

func formatFreelancer(info service.FreelancerInfo) string {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	return fmt.Sprintf("%s: %s, price: %d, rating: %.1f, completed: %d, cancelled: %d, skills: (%d,%d,%d,%d,%d), available: %s, burnout: %s",
		info.FreelancerID, info.Service, info.Price, info.Rating,
		info.Completed, info.Cancelled,
		info.Skills[0], info.Skills[1], info.Skills[2], info.Skills[3], info.Skills[4],
		yesNo(info.Available), yesNo(info.Burnout))
}

func formatCustomer(info service.CustomerInfo) string {
	return fmt.Sprintf("%s: total spent: $%d, loyalty tier: %s, blacklisted freelancer count: %d, total employment count: %d",
		info.CustomerID, info.TotalSpending, info.Tier,
		info.BlacklistedCount, info.TotalEmployments)
}

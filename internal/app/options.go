package service

import (
	"github.com/AlperenUlu/gigmatch/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithUserTableCapacity sets the bucket count of the global entity tables.
func WithUserTableCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.userTableCapacity = capacity
		}
	}
}

// WithPositionTableCapacity sets the bucket count of heap side indexes.
func WithPositionTableCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.positionTableCapacity = capacity
		}
	}
}

// WithBlacklistCapacity sets the bucket count of per-customer blacklists.
func WithBlacklistCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.blacklistCapacity = capacity
		}
	}
}

// WithHeapCapacity sets the initial slot count of each service queue.
func WithHeapCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.heapCapacity = capacity
		}
	}
}

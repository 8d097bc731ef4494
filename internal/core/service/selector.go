package service

import (
	"sync"

	"github.com/boardkit/member-system/internal/core/ports"
)

// Selector yields the active AuthService for this process. The choice is
// made once, on the first Select call, from a configuration flag read at
// construction time; it is never re-evaluated, so concurrent requests can
// never observe different modes within one process lifetime.
type Selector struct {
	dualEnabled bool
	standard    ports.AuthService
	dual        ports.AuthService

	once   sync.Once
	active ports.AuthService
}

func NewSelector(dualEnabled bool, standard, dual ports.AuthService) *Selector {
	return &Selector{dualEnabled: dualEnabled, standard: standard, dual: dual}
}

// Select returns the active service. Every call returns the same instance.
func (s *Selector) Select() ports.AuthService {
	s.once.Do(func() {
		if s.dualEnabled {
			s.active = s.dual
		} else {
			s.active = s.standard
		}
	})
	return s.active
}

// Reset clears the cached choice so the next Select decides again.
// Intended for use in tests only.
func (s *Selector) Reset() {
	s.once = sync.Once{}
	s.active = nil
}

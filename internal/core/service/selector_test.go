package service

import (
	"testing"

	"github.com/rs/zerolog"
)

func newSelectorForTest(dualEnabled bool) *Selector {
	members := newStubMemberRepo()
	legacy := newStubLegacyRepo()
	standard := NewStandardAuthService(members, nil, zerolog.Nop())
	dual := NewDualAuthService(members, legacy, nil, zerolog.Nop())
	return NewSelector(dualEnabled, standard, dual)
}

func TestSelector_StandardMode(t *testing.T) {
	s := newSelectorForTest(false)

	svc := s.Select()
	if svc.SupportsMigration() {
		t.Fatalf("standard mode must not support migration")
	}
}

func TestSelector_DualMode(t *testing.T) {
	s := newSelectorForTest(true)

	svc := s.Select()
	if !svc.SupportsMigration() {
		t.Fatalf("dual mode must support migration")
	}
}

func TestSelector_Cached(t *testing.T) {
	s := newSelectorForTest(true)

	first := s.Select()
	second := s.Select()
	if first != second {
		t.Fatalf("Select must return the same instance across calls")
	}

	// Flipping the flag after the first Select has no effect: the mode is
	// fixed for the process lifetime.
	s.dualEnabled = false
	if s.Select() != first {
		t.Fatalf("cached choice was re-evaluated")
	}

	s.Reset()
	if s.Select().SupportsMigration() {
		t.Fatalf("Reset must allow the next Select to decide again")
	}
}

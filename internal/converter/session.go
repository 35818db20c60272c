// Package converter holds the interactive conversion state and turns user
// actions into display values. Sessions are owned by a single caller and are
// never shared between goroutines.
package converter

import (
	"fmt"

	"unitconv.dev/internal/catalog"
	"unitconv.dev/internal/engine"
	"unitconv.dev/prefsdb"
)

// Session is the state of one conversion screen: the active category, the
// selected units and the last input text.
type Session struct {
	Category catalog.Category
	From     string
	To       string
	Input    string
}

func newSession(cat catalog.Category) *Session {
	from, to := cat.DefaultPair()
	return &Session{Category: cat, From: from, To: to}
}

func (s *Session) Pair() prefsdb.UnitPair {
	return prefsdb.UnitPair{From: s.From, To: s.To}
}

// applyPair selects a saved pair when both units still exist in the category.
func (s *Session) applyPair(pair prefsdb.UnitPair) bool {
	if !s.Category.HasUnit(pair.From) || !s.Category.HasUnit(pair.To) {
		return false
	}
	s.From, s.To = pair.From, pair.To
	return true
}

func (s *Session) setUnits(from, to string) error {
	if !s.Category.HasUnit(from) {
		return fmt.Errorf("%w %q in category %q", engine.ErrUnknownUnit, from, s.Category.ID)
	}
	if !s.Category.HasUnit(to) {
		return fmt.Errorf("%w %q in category %q", engine.ErrUnknownUnit, to, s.Category.ID)
	}
	s.From, s.To = from, to
	return nil
}

func (s *Session) swap() {
	s.From, s.To = s.To, s.From
}

package recovery

import "fmt"

// StrictStrategy implements a fail-fast recovery strategy.
type StrictStrategy struct{}

func NewStrictStrategy() *StrictStrategy {
	return &StrictStrategy{}
}

func (s *StrictStrategy) OnError(ctx Context, err error, location Location) Action {
	return ActionFail
}

// LenientStrategy drops the failing record and keeps decoding. Failures are
// accumulated up to Max entries (0 means unbounded).
type LenientStrategy struct {
	Errors  []error
	Max     int
	Dropped int
}

func NewLenientStrategy() *LenientStrategy {
	return &LenientStrategy{}
}

func (s *LenientStrategy) OnError(ctx Context, err error, location Location) Action {
	s.Dropped++
	if s.Max == 0 || len(s.Errors) < s.Max {
		s.Errors = append(s.Errors, fmt.Errorf("[%s] offset %d: %w", location.Component, location.ByteOffset, err))
	}
	return ActionSkip
}

// BudgetStrategy skips failing records until Budget failures have been seen,
// then fails the decode.
type BudgetStrategy struct {
	Budget int
	seen   int
}

func NewBudgetStrategy(budget int) *BudgetStrategy {
	return &BudgetStrategy{Budget: budget}
}

func (s *BudgetStrategy) OnError(ctx Context, err error, location Location) Action {
	s.seen++
	if s.seen > s.Budget {
		return ActionFail
	}
	return ActionSkip
}

package spreads

import (
	"errors"
	"fmt"
)

var (
	// ErrDataShape indicates the vendor JSON did not have the expected
	// event -> bookmaker -> market -> outcome nesting
	ErrDataShape = errors.New("unexpected odds data shape")

	// ErrOddRowCount indicates an odd number of team rows reached the ranker.
	// Every game contributes two teams, so this means an upstream assumption broke.
	ErrOddRowCount = errors.New("ranking requires an even number of team rows")
)

// ShapeError locates a data-shape violation in the vendor response
type ShapeError struct {
	EventID   string
	Bookmaker string
	Market    string
	Reason    string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: event %q bookmaker %q market %q: %s",
		ErrDataShape, e.EventID, e.Bookmaker, e.Market, e.Reason)
}

func (e *ShapeError) Unwrap() error {
	return ErrDataShape
}

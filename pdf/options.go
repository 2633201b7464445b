package pdf

import (
	"fmt"
	"strings"
)

// Position names where the overlay is anchored on a page.
// Top and bottom refer to PDF user space, where y grows upward from the bottom-left corner.
type Position int

const (
	PositionCenter Position = iota
	PositionTopLeft
	PositionTopRight
	PositionBottomLeft
	PositionBottomRight
)

var positionNames = map[Position]string{
	PositionCenter:      "center",
	PositionTopLeft:     "top-left",
	PositionTopRight:    "top-right",
	PositionBottomLeft:  "bottom-left",
	PositionBottomRight: "bottom-right",
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// Positions returns every position in display order.
func Positions() []Position {
	return []Position{PositionCenter, PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight}
}

// ParsePosition parses a position name such as "top-left". Matching is case-insensitive.
func ParsePosition(s string) (Position, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range positionNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown position %q", ErrInvalidOption, s)
}

// Scope selects which pages of a document receive the overlay.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeFirst
	ScopeLast
)

var scopeNames = map[Scope]string{
	ScopeAll:   "all",
	ScopeFirst: "first",
	ScopeLast:  "last",
}

func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// Scopes returns every scope in display order.
func Scopes() []Scope {
	return []Scope{ScopeAll, ScopeFirst, ScopeLast}
}

// ParseScope parses a scope name: "all", "first" or "last".
func ParseScope(s string) (Scope, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for sc, n := range scopeNames {
		if n == name {
			return sc, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown scope %q", ErrInvalidOption, s)
}

// Applies reports whether page i of a document with n pages is in scope.
func (s Scope) Applies(i, n int) bool {
	switch s {
	case ScopeAll:
		return true
	case ScopeFirst:
		return i == 0
	case ScopeLast:
		return i == n-1
	}
	return false
}

// Options controls how the overlay is drawn on a page.
type Options struct {
	ScalePercent   int
	OpacityPercent int
	Position       Position
	Scope          Scope
}

// DefaultOptions returns the options used when the caller sets nothing.
func DefaultOptions() Options {
	return Options{
		ScalePercent:   DefaultScalePercent,
		OpacityPercent: DefaultOpacityPercent,
		Position:       PositionCenter,
		Scope:          ScopeAll,
	}
}

// Validate checks every field against its allowed range.
func (o Options) Validate() error {
	if o.ScalePercent < MinScalePercent || o.ScalePercent > MaxScalePercent {
		return fmt.Errorf("%w: scale %d%% outside %d-%d", ErrInvalidOption, o.ScalePercent, MinScalePercent, MaxScalePercent)
	}
	if o.OpacityPercent < MinOpacityPercent || o.OpacityPercent > MaxOpacityPercent {
		return fmt.Errorf("%w: opacity %d%% outside %d-%d", ErrInvalidOption, o.OpacityPercent, MinOpacityPercent, MaxOpacityPercent)
	}
	if _, ok := positionNames[o.Position]; !ok {
		return fmt.Errorf("%w: unknown position %v", ErrInvalidOption, o.Position)
	}
	if _, ok := scopeNames[o.Scope]; !ok {
		return fmt.Errorf("%w: unknown scope %v", ErrInvalidOption, o.Scope)
	}
	return nil
}

package domain

import (
	"slices"
	"strings"
)

const (
	// NoModifiersMarker replaces the modifier list of a line without modifiers.
	NoModifiersMarker = "no modifiers"
	// EmptyOrderMarker is reported by get_order when nothing was ordered yet.
	EmptyOrderMarker = "(no order)"
)

// OrderLine is one drink of the order with its modifiers.
type OrderLine struct {
	Drink     string   `json:"drink"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// String renders the line as "drink (mod1, mod2)" or "drink (no modifiers)".
func (l OrderLine) String() string {
	mods := NoModifiersMarker
	if len(l.Modifiers) > 0 {
		mods = strings.Join(l.Modifiers, ", ")
	}
	return l.Drink + " (" + mods + ")"
}

// Equal compares two lines structurally. Nil and empty modifier lists are equal.
func (l OrderLine) Equal(other OrderLine) bool {
	return l.Drink == other.Drink && slices.Equal(l.Modifiers, other.Modifiers)
}

// Order is the sequence of lines in insertion order.
type Order []OrderLine

// String renders one line per entry. An empty order renders as "".
func (o Order) String() string {
	lines := make([]string, len(o))
	for i, l := range o {
		lines[i] = l.String()
	}
	return strings.Join(lines, "\n")
}

// Summary renders the order like String, or EmptyOrderMarker when empty.
func (o Order) Summary() string {
	if len(o) == 0 {
		return EmptyOrderMarker
	}
	return o.String()
}

// Equal compares two orders line by line.
func (o Order) Equal(other Order) bool {
	return slices.EqualFunc(o, other, OrderLine.Equal)
}

// Clone deep-copies the order so the copy can be mutated safely.
func (o Order) Clone() Order {
	if o == nil {
		return nil
	}
	out := make(Order, len(o))
	for i, l := range o {
		out[i] = OrderLine{Drink: l.Drink, Modifiers: slices.Clone(l.Modifiers)}
	}
	return out
}

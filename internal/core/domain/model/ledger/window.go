package ledger

import (
	"farmdesk/internal/core/domain/model/kernel"
	"farmdesk/internal/pkg/errs"
)

// Window restricts a ledger view to [From, To]. A zero bound is open.
// Balances shown inside a window are those of the full ledger.
type Window struct {
	From kernel.Date
	To   kernel.Date
}

// NewWindow validates that From is not after To.
func NewWindow(from, to kernel.Date) (Window, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return Window{}, errs.NewValueIsOutOfRangeError("startDate", from.String(), "", to.String())
	}
	return Window{From: from, To: to}, nil
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d kernel.Date) bool {
	if !w.From.IsZero() && d.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && d.After(w.To) {
		return false
	}
	return true
}

package importer

import (
	"fmt"
	"sync"

	"github.com/shazow/wifimport/wifi"
)

// BatchSize is the most suggestions handed to the Proposer per dispatch.
const BatchSize = 5

// DispatchState describes what a Dispatch call did.
type DispatchState int

const (
	// StateEmpty means the source produced no suggestions, so nothing was loaded.
	StateEmpty DispatchState = iota
	// StateBatch means a batch was handed to the Proposer.
	StateBatch
	// StateExhausted means every batch was already dispatched. The dispatcher
	// has reset itself and the next call loads the source again.
	StateExhausted
)

// Dispatch is the result of one Dispatcher.Dispatch call.
type Dispatch struct {
	State     DispatchState
	Batch     []wifi.Suggestion
	Remaining int
	// Errors are the row errors from the load that this dispatch belongs to.
	Errors []*RowError
}

// Summary is a one-line description of the dispatch for the user.
func (d Dispatch) Summary() string {
	switch d.State {
	case StateBatch:
		return fmt.Sprintf("Showing %d networks. %d remaining.", len(d.Batch), d.Remaining)
	case StateExhausted:
		return "All networks have been processed."
	default:
		if len(d.Errors) > 0 {
			return fmt.Sprintf("Found %d errors. Press 'e' for details.", len(d.Errors))
		}
		return "No networks found in CSV."
	}
}

// Dispatcher hands the suggestions of a source to a Proposer, BatchSize at a
// time. It loads the source on the first call and forgets it once every batch
// has been dispatched.
//
// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	importer *Importer
	proposer wifi.Proposer

	mu          sync.Mutex
	suggestions []wifi.Suggestion
	errors      []*RowError
	pos         int
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher(im *Importer, p wifi.Proposer) *Dispatcher {
	return &Dispatcher{
		importer: im,
		proposer: p,
	}
}

// Dispatch proposes the next batch. src is only read when nothing is loaded.
func (d *Dispatcher) Dispatch(src Source) Dispatch {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.suggestions) == 0 {
		suggestions, rowErrors := d.importer.Collect(src)
		d.errors = rowErrors
		if len(suggestions) == 0 {
			return Dispatch{State: StateEmpty, Errors: rowErrors}
		}
		d.suggestions = suggestions
		d.pos = 0
	}

	if d.pos >= len(d.suggestions) {
		result := Dispatch{State: StateExhausted, Errors: d.errors}
		d.reset()
		return result
	}

	end := min(d.pos+BatchSize, len(d.suggestions))
	batch := d.suggestions[d.pos:end:end]
	d.pos = end

	d.importer.logger.Debug("proposing networks", "count", len(batch), "remaining", len(d.suggestions)-d.pos)
	d.proposer.ProposeSuggestions(batch)

	return Dispatch{
		State:     StateBatch,
		Batch:     batch,
		Remaining: len(d.suggestions) - d.pos,
		Errors:    d.errors,
	}
}

// Loaded reports how many suggestions are loaded and how many were dispatched.
func (d *Dispatcher) Loaded() (total, dispatched int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.suggestions), d.pos
}

// Errors returns the row errors of the most recent load.
func (d *Dispatcher) Errors() []*RowError {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errors
}

// Reset discards the loaded suggestions so the next Dispatch reloads.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
	d.errors = nil
}

func (d *Dispatcher) reset() {
	d.suggestions = nil
	d.pos = 0
}

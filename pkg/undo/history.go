package undo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/observability"
)

// Action is a typed reversible operation, for edits that prefer a named
// struct over a pair of closures.
type Action interface {
	Do()
	Undo()
	Description() string
}

// FailurePolicy decides what happens when an undo or redo action panics.
type FailurePolicy int

const (
	// Swallow moves the entry anyway and logs the failure.
	Swallow FailurePolicy = iota
	// Preserve leaves the entry on its stack and returns an error.
	Preserve
)

func (p FailurePolicy) String() string {
	if p == Preserve {
		return "preserve"
	}
	return "swallow"
}

// ParseFailurePolicy parses "swallow" or "preserve" (case-insensitive).
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "swallow":
		return Swallow, nil
	case "preserve":
		return Preserve, nil
	}
	return Swallow, errors.New(errors.ErrCodeInvalidInput, "unknown undo failure policy %q (want swallow or preserve)", s)
}

// UnmarshalText implements encoding.TextUnmarshaler for config files.
func (p *FailurePolicy) UnmarshalText(text []byte) error {
	v, err := ParseFailurePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p FailurePolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

type entry struct {
	id          uint64
	description string
	do          func()
	undo        func()
}

// History is a pair of LIFO stacks of reversible entries. It is not safe for
// concurrent use; all edits happen on one goroutine.
type History struct {
	undo      []entry
	redo      []entry
	nextID    uint64
	max       int
	policy    FailurePolicy
	logger    *log.Logger
	listeners []func()
}

// Option configures a History.
type Option func(*History)

// WithMaxHistory caps the undo stack at n entries, evicting the oldest.
// Zero or negative means unbounded.
func WithMaxHistory(n int) Option {
	return func(h *History) { h.max = n }
}

// WithFailurePolicy sets how panicking actions are handled.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(h *History) { h.policy = p }
}

// WithLogger sets the logger for swallowed failures.
func WithLogger(l *log.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.logger = l
		}
	}
}

// New returns an empty history.
func New(opts ...Option) *History {
	h := &History{logger: log.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute runs do and records (do, undo) as one transaction.
func (h *History) Execute(do, undo func()) error {
	return h.ExecuteNamed("", do, undo)
}

// ExecuteNamed is Execute with a description shown in logs and menus.
//
// If do panics nothing is recorded, the redo stack is left alone and a
// TRANSACTION_FAILED error is returned.
func (h *History) ExecuteNamed(description string, do, undo func()) error {
	if do == nil {
		do = func() {}
	}
	if undo == nil {
		undo = func() {}
	}
	if err := run("execute", description, do); err != nil {
		h.fail("execute", description, err)
		return errors.Wrap(errors.ErrCodeTransactionFailed, err, "transaction not recorded")
	}

	h.nextID++
	h.undo = append(h.undo, entry{id: h.nextID, description: description, do: do, undo: undo})
	h.redo = nil
	if h.max > 0 && len(h.undo) > h.max {
		evict := len(h.undo) - h.max
		h.undo = append([]entry(nil), h.undo[evict:]...)
	}

	observability.History().OnExecute(description, len(h.undo))
	h.changed()
	return nil
}

// Push executes a typed action.
func (h *History) Push(a Action) error {
	return h.ExecuteNamed(a.Description(), a.Do, a.Undo)
}

// Undo reverts the most recent transaction. It is a no-op on an empty
// stack.
func (h *History) Undo() error {
	if len(h.undo) == 0 {
		return nil
	}
	e := h.undo[len(h.undo)-1]
	if err := run("undo", e.description, e.undo); err != nil {
		h.fail("undo", e.description, err)
		if h.policy == Preserve {
			return errors.Wrap(errors.ErrCodeTransactionFailed, err, "undo failed; history unchanged")
		}
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, e)

	observability.History().OnUndo(e.description, len(h.undo), len(h.redo))
	h.changed()
	return nil
}

// Redo re-applies the most recently undone transaction. It is a no-op on an
// empty stack.
func (h *History) Redo() error {
	if len(h.redo) == 0 {
		return nil
	}
	e := h.redo[len(h.redo)-1]
	if err := run("redo", e.description, e.do); err != nil {
		h.fail("redo", e.description, err)
		if h.policy == Preserve {
			return errors.Wrap(errors.ErrCodeTransactionFailed, err, "redo failed; history unchanged")
		}
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, e)

	observability.History().OnRedo(e.description, len(h.undo), len(h.redo))
	h.changed()
	return nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
func (h *History) UndoLen() int  { return len(h.undo) }
func (h *History) RedoLen() int  { return len(h.redo) }

// LastID identifies the transaction on top of the undo stack, or 0 when the
// stack is empty. IDs are never reused.
func (h *History) LastID() uint64 {
	if len(h.undo) == 0 {
		return 0
	}
	return h.undo[len(h.undo)-1].id
}

// Forget drops the transaction with the given id from either stack without
// running it. It reports whether an entry was removed.
func (h *History) Forget(id uint64) bool {
	if id == 0 {
		return false
	}
	for _, stack := range []*[]entry{&h.undo, &h.redo} {
		for i, e := range *stack {
			if e.id == id {
				*stack = append((*stack)[:i:i], (*stack)[i+1:]...)
				h.changed()
				return true
			}
		}
	}
	return false
}

// UndoDescription returns the description of the next transaction Undo
// would revert.
func (h *History) UndoDescription() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].description
}

// RedoDescription returns the description of the next transaction Redo
// would re-apply.
func (h *History) RedoDescription() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].description
}

// Clear drops both stacks.
func (h *History) Clear() {
	if len(h.undo) == 0 && len(h.redo) == 0 {
		return
	}
	h.undo, h.redo = nil, nil
	h.changed()
}

// OnChange registers fn to run after every change to either stack.
func (h *History) OnChange(fn func()) {
	if fn != nil {
		h.listeners = append(h.listeners, fn)
	}
}

func (h *History) changed() {
	for _, fn := range h.listeners {
		fn()
	}
}

func (h *History) fail(op, description string, err error) {
	h.logger.Warn("history action failed", "op", op, "transaction", description, "policy", h.policy, "err", err)
	observability.History().OnFailure(op, description, err)
}

func run(op, description string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &errors.TransactionError{Op: op, Description: description, Recovered: r}
		}
	}()
	fn()
	return nil
}

// String summarizes the stack depths for debugging.
func (h *History) String() string {
	return fmt.Sprintf("history(undo=%d redo=%d)", len(h.undo), len(h.redo))
}

// Package wizard implements the multi-step state machine shared by every
// money-moving flow: collect input, ask the backend to validate and
// quote, show the quote for explicit confirmation, execute, settle. Each
// concrete flow only supplies its field set and the three operations;
// the transitions live here once.
package wizard

import (
	"context"
	"fmt"

	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/model"
)

// Step is the wizard's position in the flow. Strictly forward-moving
// except the explicit Back from StepConfirm.
type Step int

const (
	StepInput Step = iota
	StepVerifying
	StepConfirm
	StepExecuting
	StepDone
)

// String returns the step name for logs and tests.
func (s Step) String() string {
	switch s {
	case StepInput:
		return "input"
	case StepVerifying:
		return "verifying"
	case StepConfirm:
		return "confirm"
	case StepExecuting:
		return "executing"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Fields holds the flow-specific draft input values, keyed by field key.
type Fields map[string]string

// Clone returns an independent copy of the fields.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// FieldSpec describes one input field of a flow.
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	CharLimit   int
	Secret      bool
}

// Flow supplies the concrete operation the wizard drives.
type Flow interface {
	// Title names the flow for display.
	Title() string
	// FieldSpecs declares the input fields in render order.
	FieldSpecs() []FieldSpec
	// Validate performs local format checks only; it must not touch the
	// network. Returned errors should be common.ValidationError.
	Validate(in Fields) error
	// Verify asks the backend to validate the input and produce the
	// authoritative quote.
	Verify(ctx context.Context, in Fields) (model.Quote, error)
	// Execute commits the operation previously quoted.
	Execute(ctx context.Context, in Fields, quote model.Quote) (model.Receipt, error)
}

// Fallback messages for failures without a structured backend message.
const (
	verifyFallback  = "No se pudieron verificar los datos. Intenta nuevamente."
	executeFallback = "No se pudo completar la operación. Intenta nuevamente."
)

// Machine is one wizard instance. It is not safe for concurrent use; all
// transitions happen on the UI event loop, with async completions handed
// back via Resolve* carrying the generation token they were issued.
type Machine struct {
	flow    Flow
	input   Fields
	quote   *model.Quote
	receipt *model.Receipt
	errMsg  string
	gen     uint64
	step    Step
}

// New creates a machine at StepInput with empty field values.
func New(flow Flow) *Machine {
	m := &Machine{flow: flow}
	m.resetInput()
	return m
}

func (m *Machine) resetInput() {
	m.input = make(Fields)
	for _, spec := range m.flow.FieldSpecs() {
		m.input[spec.Key] = ""
	}
}

// Flow returns the flow this machine drives.
func (m *Machine) Flow() Flow { return m.flow }

// Step returns the current step.
func (m *Machine) Step() Step { return m.step }

// Busy reports whether a network call is in flight. While busy, submit
// controls must stay disabled; the machine itself also refuses
// transitions, so a duplicate submit is impossible.
func (m *Machine) Busy() bool {
	return m.step == StepVerifying || m.step == StepExecuting
}

// Field returns the current draft value for a key.
func (m *Machine) Field(key string) string { return m.input[key] }

// SetField updates a draft value. Ignored outside StepInput.
func (m *Machine) SetField(key, value string) {
	if m.step != StepInput {
		return
	}
	m.input[key] = value
}

// Input returns a copy of the draft values.
func (m *Machine) Input() Fields { return m.input.Clone() }

// Quote returns the backend's quote, present only at StepConfirm and
// beyond. It is always a verbatim echo of the last successful verify.
func (m *Machine) Quote() *model.Quote { return m.quote }

// Receipt returns the terminal result, present only at StepDone.
func (m *Machine) Receipt() *model.Receipt { return m.receipt }

// ErrorMessage returns the inline error to render, or "".
func (m *Machine) ErrorMessage() string { return m.errMsg }

// Generation returns the token async completions must carry. Any
// completion with a stale token is discarded.
func (m *Machine) Generation() uint64 { return m.gen }

// Submit validates the draft locally and, on success, moves to
// StepVerifying. The returned generation must accompany ResolveVerify.
// A validation failure stays at StepInput with the message set and makes
// no network call.
func (m *Machine) Submit() (uint64, error) {
	if m.step != StepInput {
		return m.gen, fmt.Errorf("cannot submit from step %s", m.step)
	}
	if err := m.flow.Validate(m.input); err != nil {
		m.errMsg = common.Message(err, verifyFallback)
		return m.gen, err
	}
	m.errMsg = ""
	m.quote = nil
	m.gen++
	m.step = StepVerifying
	return m.gen, nil
}

// FillAndSubmit sets the given values and submits in one transition.
// This is the scan-to-input bridge: an input adapter (QR decode, pay
// link) feeds values into the same machine and triggers the same verify
// path as a manual submit.
func (m *Machine) FillAndSubmit(values Fields) (uint64, error) {
	if m.step != StepInput {
		return m.gen, fmt.Errorf("cannot submit from step %s", m.step)
	}
	for k, v := range values {
		m.input[k] = v
	}
	return m.Submit()
}

// ResolveVerify applies the outcome of the verify call. Stale
// generations (a Reset or re-submit happened meanwhile) are ignored. On
// failure the machine returns to StepInput with the backend's message
// and the entered values preserved.
func (m *Machine) ResolveVerify(gen uint64, quote model.Quote, err error) {
	if gen != m.gen || m.step != StepVerifying {
		return
	}
	if err != nil {
		m.errMsg = common.Message(err, verifyFallback)
		m.step = StepInput
		return
	}
	q := quote
	m.quote = &q
	m.step = StepConfirm
}

// Confirm accepts the quote and moves to StepExecuting. The returned
// generation must accompany ResolveExecute.
func (m *Machine) Confirm() (uint64, error) {
	if m.step != StepConfirm {
		return m.gen, fmt.Errorf("cannot confirm from step %s", m.step)
	}
	if m.quote == nil {
		return m.gen, fmt.Errorf("no quote to confirm")
	}
	m.gen++
	m.step = StepExecuting
	return m.gen, nil
}

// Back returns from StepConfirm to StepInput without discarding the
// entered values. The quote is dropped; a fresh verify is required.
func (m *Machine) Back() {
	if m.step != StepConfirm {
		return
	}
	m.quote = nil
	m.errMsg = ""
	m.step = StepInput
}

// ResolveExecute applies the outcome of the execute call. A failed
// execution is retryable from scratch: the machine returns to StepInput
// with the message set, input preserved and the quote discarded.
func (m *Machine) ResolveExecute(gen uint64, receipt model.Receipt, err error) {
	if gen != m.gen || m.step != StepExecuting {
		return
	}
	if err != nil {
		m.errMsg = common.Message(err, executeFallback)
		m.quote = nil
		m.step = StepInput
		return
	}
	r := receipt
	m.receipt = &r
	m.step = StepDone
}

// Reset returns the machine to StepInput defaults from any step, so a
// re-opened wizard never shows residual values. In-flight completions
// are invalidated.
func (m *Machine) Reset() {
	m.gen++
	m.quote = nil
	m.receipt = nil
	m.errMsg = ""
	m.step = StepInput
	m.resetInput()
}

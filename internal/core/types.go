package core

import (
	"context"

	"eino_agentic_chat/pkg"

	"github.com/cloudwego/eino/components/model"
)

// ModelFactory builds a model handle from credentials passed by value
type ModelFactory interface {
	NewChatModel(ctx context.Context, creds pkg.Credentials) (model.BaseChatModel, error)
}

// CycleState is the position of one request cycle in the gating state machine:
// Idle -> AwaitingMessage -> Validating -> {Failed, ReadyToDispatch}
type CycleState string

const (
	StateIdle            CycleState = "idle"
	StateAwaitingMessage CycleState = "awaiting_message"
	StateValidating      CycleState = "validating"
	StateFailed          CycleState = "failed"
	StateReadyToDispatch CycleState = "ready_to_dispatch"
)

// Terminal reports whether the cycle has finished
func (s CycleState) Terminal() bool {
	return s == StateFailed || s == StateReadyToDispatch
}

// Result is the outcome of one gating cycle
type Result struct {
	CycleID string
	State   CycleState
	// Usecase and Model are set only when State is StateReadyToDispatch.
	Usecase string
	Model   model.BaseChatModel
	Err     error
}

// Idle reports whether the cycle took no action
func (r Result) Idle() bool {
	return r.State == StateIdle || r.State == StateAwaitingMessage
}

// Ready reports whether the cycle reached ReadyToDispatch
func (r Result) Ready() bool {
	return r.State == StateReadyToDispatch
}

// Report is the JSON summary of a Result
type Report struct {
	CycleID   string `json:"cycle_id"`
	State     string `json:"state"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	Usecase   string `json:"usecase,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewReport summarizes a result without exposing credentials or error causes
func NewReport(selections pkg.Selections, result Result) Report {
	report := Report{
		CycleID: result.CycleID,
		State:   string(result.State),
		Usecase: result.Usecase,
	}
	if result.Ready() {
		report.Provider = selections.Provider()
		report.Model = selections.Model()
	}
	if result.Err != nil {
		report.ErrorKind = string(KindOf(result.Err))
		report.Error = result.Err.Error()
	}
	return report
}

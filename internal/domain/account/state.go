package account

// Status is the lifecycle state of an account. Transitions are driven by
// named actions against a fixed transition table; anything not in the table
// is rejected with a descriptive error rather than silently ignored.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusFrozen    Status = "FROZEN"
	StatusClosed    Status = "CLOSED"
)

// Action is a requested lifecycle transition
type Action string

const (
	ActionActivate Action = "ACTIVATE"
	ActionSuspend  Action = "SUSPEND"
	ActionFreeze   Action = "FREEZE"
	ActionUnfreeze Action = "UNFREEZE"
	ActionClose    Action = "CLOSE"
)

// ErrUnrecognizedAction indicates an action name outside the catalogue.
// Distinct from ErrInvalidTransition: the action itself does not exist.
type ErrUnrecognizedAction struct {
	Action Action
}

func (e ErrUnrecognizedAction) Error() string {
	return "unrecognized action: " + string(e.Action)
}

// ErrInvalidTransition indicates a known action that the current state does
// not accept. Closed accounts reject every action, including reactivation.
type ErrInvalidTransition struct {
	From   Status
	Action Action
}

func (e ErrInvalidTransition) Error() string {
	return "invalid transition: action " + string(e.Action) + " not allowed from state " + string(e.From)
}

var knownActions = map[Action]struct{}{
	ActionActivate: {},
	ActionSuspend:  {},
	ActionFreeze:   {},
	ActionUnfreeze: {},
	ActionClose:    {},
}

// transitions is the full state machine: current status x action -> next
// status. Closed has no outgoing edges and is therefore terminal.
var transitions = map[Status]map[Action]Status{
	StatusActive: {
		ActionSuspend: StatusSuspended,
		ActionFreeze:  StatusFrozen,
	},
	StatusSuspended: {
		ActionActivate: StatusActive,
		ActionFreeze:   StatusFrozen,
	},
	StatusFrozen: {
		ActionActivate: StatusActive,
		ActionUnfreeze: StatusActive,
		ActionClose:    StatusClosed,
	},
	StatusClosed: {},
}

// ChangeState applies a lifecycle action to the account, validating it
// against the transition table.
func (a *Account) ChangeState(action Action) error {
	if _, ok := knownActions[action]; !ok {
		return ErrUnrecognizedAction{Action: action}
	}

	next, ok := transitions[a.Status][action]
	if !ok {
		return ErrInvalidTransition{From: a.Status, Action: action}
	}

	a.Status = next
	return nil
}

// CanDeposit reports whether the status accepts incoming credits
func (s Status) CanDeposit() bool {
	return s == StatusActive || s == StatusSuspended
}

// CanWithdraw reports whether the status accepts withdrawals. Suspended
// accounts may still withdraw, subject to the suspended daily cap enforced
// by the validation chain.
func (s Status) CanWithdraw() bool {
	return s == StatusActive || s == StatusSuspended
}

// CanTransfer reports whether the status may originate transfers
func (s Status) CanTransfer() bool {
	return s == StatusActive
}

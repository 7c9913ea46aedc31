package account

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(t *testing.T, status Status) *Account {
	t.Helper()
	acc, err := New(TypeChecking, decimal.NewFromInt(1000), Contact{Name: "X"})
	require.NoError(t, err)
	acc.Status = status
	return acc
}

func TestAccount_ChangeState_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		action  Action
		want    Status
		wantErr bool
	}{
		{name: "active suspend", from: StatusActive, action: ActionSuspend, want: StatusSuspended},
		{name: "active freeze", from: StatusActive, action: ActionFreeze, want: StatusFrozen},
		{name: "active activate rejected", from: StatusActive, action: ActionActivate, wantErr: true},
		{name: "active close rejected", from: StatusActive, action: ActionClose, wantErr: true},
		{name: "suspended activate", from: StatusSuspended, action: ActionActivate, want: StatusActive},
		{name: "suspended freeze", from: StatusSuspended, action: ActionFreeze, want: StatusFrozen},
		{name: "suspended close rejected", from: StatusSuspended, action: ActionClose, wantErr: true},
		{name: "frozen activate", from: StatusFrozen, action: ActionActivate, want: StatusActive},
		{name: "frozen unfreeze", from: StatusFrozen, action: ActionUnfreeze, want: StatusActive},
		{name: "frozen close", from: StatusFrozen, action: ActionClose, want: StatusClosed},
		{name: "frozen suspend rejected", from: StatusFrozen, action: ActionSuspend, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := newTestAccount(t, tt.from)
			err := acc.ChangeState(tt.action)

			if tt.wantErr {
				require.Error(t, err)
				var invalid ErrInvalidTransition
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.from, invalid.From)
				assert.Equal(t, tt.action, invalid.Action)
				assert.Equal(t, tt.from, acc.Status, "status must not change on rejection")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, acc.Status)
		})
	}
}

func TestAccount_ChangeState_ClosedIsTerminal(t *testing.T) {
	for _, action := range []Action{ActionActivate, ActionSuspend, ActionFreeze, ActionUnfreeze, ActionClose} {
		t.Run(string(action), func(t *testing.T) {
			acc := newTestAccount(t, StatusClosed)
			err := acc.ChangeState(action)

			require.Error(t, err)
			var invalid ErrInvalidTransition
			assert.ErrorAs(t, err, &invalid)
			assert.Equal(t, StatusClosed, acc.Status)
		})
	}
}

func TestAccount_ChangeState_UnrecognizedAction(t *testing.T) {
	acc := newTestAccount(t, StatusActive)
	err := acc.ChangeState(Action("DESTROY"))

	require.Error(t, err)
	var unrecognized ErrUnrecognizedAction
	require.ErrorAs(t, err, &unrecognized)
	assert.Equal(t, Action("DESTROY"), unrecognized.Action)

	// An unknown action must not be reported as an invalid transition
	var invalid ErrInvalidTransition
	assert.False(t, errors.As(err, &invalid))
}

func TestStatus_Permissions(t *testing.T) {
	tests := []struct {
		status      Status
		canDeposit  bool
		canWithdraw bool
		canTransfer bool
	}{
		{StatusActive, true, true, true},
		{StatusSuspended, true, true, false},
		{StatusFrozen, false, false, false},
		{StatusClosed, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.canDeposit, tt.status.CanDeposit())
			assert.Equal(t, tt.canWithdraw, tt.status.CanWithdraw())
			assert.Equal(t, tt.canTransfer, tt.status.CanTransfer())
		})
	}
}

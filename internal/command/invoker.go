package command

import (
	"errors"
	"log/slog"
	"sync"
)

var (
	ErrNothingToUndo = errors.New("no executed command to undo")
	ErrNothingToRedo = errors.New("no undone command to redo")
)

// Invoker executes commands and keeps their history for undo/redo. The
// history is an append-only log with a cursor: entries before the cursor
// are executed, entries at and after it are undone and eligible for redo.
// Executing a new command truncates the undone tail, invalidating the redo
// branch.
type Invoker struct {
	logger *slog.Logger

	mu      sync.Mutex
	entries []Command
	cursor  int
}

// NewInvoker creates an invoker with an empty history
func NewInvoker(logger *slog.Logger) *Invoker {
	return &Invoker{logger: logger}
}

// Execute runs the command and records it on success
func (inv *Invoker) Execute(cmd Command) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.logger.Info("executing command", "command", cmd.Describe())
	if err := cmd.Execute(); err != nil {
		inv.logger.Warn("command failed", "command", cmd.Describe(), "error", err)
		return err
	}

	inv.entries = append(inv.entries[:inv.cursor], cmd)
	inv.cursor++
	return nil
}

// Undo reverses the most recently executed command. On failure the command
// stays on the executed side of the history.
func (inv *Invoker) Undo() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.cursor == 0 {
		return ErrNothingToUndo
	}

	cmd := inv.entries[inv.cursor-1]
	inv.logger.Info("undoing command", "command", cmd.Describe())
	if err := cmd.Undo(); err != nil {
		inv.logger.Warn("undo failed", "command", cmd.Describe(), "error", err)
		return err
	}

	inv.cursor--
	return nil
}

// Redo replays the most recently undone command. On failure it stays on
// the undone side of the history.
func (inv *Invoker) Redo() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.cursor == len(inv.entries) {
		return ErrNothingToRedo
	}

	cmd := inv.entries[inv.cursor]
	inv.logger.Info("redoing command", "command", cmd.Describe())
	if err := cmd.Execute(); err != nil {
		inv.logger.Warn("redo failed", "command", cmd.Describe(), "error", err)
		return err
	}

	inv.cursor++
	return nil
}

// History returns descriptions of the executed commands, oldest first
func (inv *Invoker) History() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	history := make([]string, inv.cursor)
	for i, cmd := range inv.entries[:inv.cursor] {
		history[i] = cmd.Describe()
	}
	return history
}

// UndoneCount returns how many commands are available for redo
func (inv *Invoker) UndoneCount() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.entries) - inv.cursor
}

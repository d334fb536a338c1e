package reminder

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DoneResult is the outcome of MarkDone.
type DoneResult int

const (
	FirstCompletion DoneResult = iota + 1
	AlreadyCompleted
)

func (r DoneResult) String() string {
	switch r {
	case FirstCompletion:
		return "first_completion"
	case AlreadyCompleted:
		return "already_completed"
	default:
		return "unknown"
	}
}

// UndoneResult is the outcome of MarkUndone.
type UndoneResult int

const (
	Reverted UndoneResult = iota + 1
	NoOp
)

func (r UndoneResult) String() string {
	switch r {
	case Reverted:
		return "reverted"
	case NoOp:
		return "noop"
	default:
		return "unknown"
	}
}

// Status reports whether this month's reading has been submitted.
type Status int

const (
	Pending Status = iota + 1
	Completed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// StateSnapshot is a point-in-time copy of State.
type StateSnapshot struct {
	TaskDone         bool
	RemindersEnabled bool
	UpdatedAt        time.Time
}

// State holds this month's completion and enablement flags.
//
// Every method takes the same mutex, so a reset racing a MarkDone can never
// leave TaskDone and RemindersEnabled both true. Methods never perform I/O;
// callers deliver messages after the method returns.
type State struct {
	mu     sync.Mutex
	window Window
	clock  clockwork.Clock

	taskDone         bool
	remindersEnabled bool
	updatedAt        time.Time
	lastReset        Snapshot
}

// NewState returns an open state: not done, reminders enabled.
func NewState(window Window, clock clockwork.Clock) *State {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &State{
		window:           window,
		clock:            clock,
		remindersEnabled: true,
	}
}

// Window returns the window the state evaluates against.
func (s *State) Window() Window {
	return s.window
}

// CheckAndReset reopens the month when today is the reset day. It reports
// whether a reset happened. Repeated calls on the same date after the first
// leave the state untouched.
func (s *State) CheckAndReset(today Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.window.IsResetDay(today.Day) || s.lastReset == today {
		return false
	}
	s.taskDone = false
	s.remindersEnabled = true
	s.lastReset = today
	s.touch()
	return true
}

// ShouldFire reports whether a reminder is due today.
func (s *State) ShouldFire(today Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.window.Contains(today.Day) && s.remindersEnabled && !s.taskDone
}

// MarkDone closes the month.
func (s *State) MarkDone() DoneResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taskDone {
		return AlreadyCompleted
	}
	s.taskDone = true
	s.remindersEnabled = false
	s.touch()
	return FirstCompletion
}

// MarkUndone reopens a closed month. On an open month it changes nothing,
// whatever RemindersEnabled is.
func (s *State) MarkUndone() UndoneResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.taskDone {
		return NoOp
	}
	s.taskDone = false
	s.remindersEnabled = true
	s.touch()
	return Reverted
}

// Status reads the completion flag.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taskDone {
		return Completed
	}
	return Pending
}

// Snapshot returns a copy of the current flags.
func (s *State) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StateSnapshot{
		TaskDone:         s.taskDone,
		RemindersEnabled: s.remindersEnabled,
		UpdatedAt:        s.updatedAt,
	}
}

// touch must be called with mu held.
func (s *State) touch() {
	s.updatedAt = s.clock.Now()
}

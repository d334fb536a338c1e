package reminder

// CallbackDone is the callback data of the "already done" button.
const CallbackDone = "done-button-clicked"

// Replies holds the text relayed back for each command outcome.
type Replies struct {
	DoneFirst       string
	DoneAlready     string
	Undone          string
	StatusCompleted string
	StatusPending   string
}

// Reply is what a command produced: the outcome for logs and metrics and the
// text to send back.
type Reply struct {
	Action  string
	Outcome string
	Text    string
}

// Action is one of DoneAction, UndoneAction or StatusAction.
type Action interface {
	Name() string
	apply(s *State, r Replies) Reply
}

// DoneAction marks this month's reading as submitted.
type DoneAction struct{}

func (DoneAction) Name() string { return "done" }

func (a DoneAction) apply(s *State, r Replies) Reply {
	res := s.MarkDone()
	text := r.DoneAlready
	if res == FirstCompletion {
		text = r.DoneFirst
	}
	return Reply{Action: a.Name(), Outcome: res.String(), Text: text}
}

// UndoneAction reopens the month.
type UndoneAction struct{}

func (UndoneAction) Name() string { return "undone" }

// The reply text does not depend on whether anything was reverted.
func (a UndoneAction) apply(s *State, r Replies) Reply {
	res := s.MarkUndone()
	return Reply{Action: a.Name(), Outcome: res.String(), Text: r.Undone}
}

// StatusAction reports the completion flag.
type StatusAction struct{}

func (StatusAction) Name() string { return "status" }

func (a StatusAction) apply(s *State, r Replies) Reply {
	st := s.Status()
	text := r.StatusPending
	if st == Completed {
		text = r.StatusCompleted
	}
	return Reply{Action: a.Name(), Outcome: st.String(), Text: text}
}

// ParseCallback maps inline button data to an action.
func ParseCallback(data string) (Action, bool) {
	switch data {
	case CallbackDone:
		return DoneAction{}, true
	default:
		return nil, false
	}
}

// Commands runs actions against a State.
type Commands struct {
	state   *State
	replies Replies
}

// NewCommands creates a command surface over state.
func NewCommands(state *State, replies Replies) *Commands {
	return &Commands{state: state, replies: replies}
}

// Execute applies action. The state lock is released before Execute returns,
// so sending the reply never blocks other commands or the triggers.
func (c *Commands) Execute(action Action) Reply {
	return action.apply(c.state, c.replies)
}

// State returns the underlying state.
func (c *Commands) State() *State {
	return c.state
}

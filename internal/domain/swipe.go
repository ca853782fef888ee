package domain

import (
	"math"
	"time"
)

const (
	// IntentThreshold is the horizontal displacement past which a drag shows
	// a save or discard intent.
	IntentThreshold = 50.0
	// CommitThreshold is the horizontal displacement past which releasing a
	// drag commits the card.
	CommitThreshold = 100.0
)

type GestureState int

const (
	GestureIdle GestureState = iota
	GestureDragging
	GestureCommitting
	GestureResetting
	GestureComplete
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureDragging:
		return "dragging"
	case GestureCommitting:
		return "committing"
	case GestureResetting:
		return "resetting"
	case GestureComplete:
		return "complete"
	default:
		return "unknown"
	}
}

type Intent int

const (
	IntentNeutral Intent = iota
	IntentSave
	IntentDiscard
)

func (i Intent) String() string {
	switch i {
	case IntentSave:
		return "save"
	case IntentDiscard:
		return "discard"
	default:
		return "neutral"
	}
}

func IntentFor(dx float64) Intent {
	switch {
	case dx > IntentThreshold:
		return IntentSave
	case dx < -IntentThreshold:
		return IntentDiscard
	default:
		return IntentNeutral
	}
}

type OutcomeKind int

const (
	OutcomeIgnored OutcomeKind = iota
	OutcomeDragStarted
	OutcomeDragMoved
	OutcomeAccepted
	OutcomeRejected
	OutcomeReset
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDragStarted:
		return "drag_started"
	case OutcomeDragMoved:
		return "drag_moved"
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeReset:
		return "reset"
	default:
		return "ignored"
	}
}

// Outcome describes what a single interaction did to the session.
// Transition is the gesture state the interaction passed through; for a
// release it is GestureCommitting or GestureResetting.
type Outcome struct {
	Kind       OutcomeKind
	Transition GestureState
	Intent     Intent
	Paper      Paper
	Index      int
}

func (o Outcome) Committed() bool {
	return o.Kind == OutcomeAccepted || o.Kind == OutcomeRejected
}

// SwipeSession walks a fixed queue of papers one card at a time. It is not
// safe for concurrent use.
type SwipeSession struct {
	queue    []Paper
	cursor   int
	accepted []Paper
	state    GestureState
	dx       float64
	dy       float64
	now      func() time.Time
}

func NewSwipeSession(papers []Paper, now func() time.Time) *SwipeSession {
	if now == nil {
		now = time.Now
	}

	session := &SwipeSession{
		queue: append([]Paper(nil), papers...),
		now:   now,
	}
	session.rest()

	return session
}

func (s *SwipeSession) State() GestureState {
	return s.state
}

func (s *SwipeSession) Cursor() int {
	return s.cursor
}

func (s *SwipeSession) Len() int {
	return len(s.queue)
}

func (s *SwipeSession) Progress() (int, int) {
	return s.cursor, len(s.queue)
}

func (s *SwipeSession) Complete() bool {
	return s.cursor == len(s.queue)
}

func (s *SwipeSession) Current() (Paper, bool) {
	if s.Complete() {
		return Paper{}, false
	}
	return s.queue[s.cursor], true
}

// Peek returns up to n papers starting at the cursor, for rendering the
// cards stacked behind the current one.
func (s *SwipeSession) Peek(n int) []Paper {
	if n <= 0 || s.Complete() {
		return nil
	}
	end := s.cursor + n
	if end > len(s.queue) {
		end = len(s.queue)
	}
	return append([]Paper(nil), s.queue[s.cursor:end]...)
}

func (s *SwipeSession) Accepted() []Paper {
	return append([]Paper(nil), s.accepted...)
}

func (s *SwipeSession) Displacement() (float64, float64) {
	return s.dx, s.dy
}

func (s *SwipeSession) Intent() Intent {
	if s.state != GestureDragging {
		return IntentNeutral
	}
	return IntentFor(s.dx)
}

func (s *SwipeSession) BeginDrag() Outcome {
	if s.state != GestureIdle {
		return s.ignored()
	}

	s.state = GestureDragging
	s.dx, s.dy = 0, 0

	return Outcome{Kind: OutcomeDragStarted, Transition: GestureDragging, Index: s.cursor}
}

// UpdateDrag sets the displacement of the current card from the drag origin.
func (s *SwipeSession) UpdateDrag(dx, dy float64) Outcome {
	if s.state != GestureDragging {
		return s.ignored()
	}

	s.dx, s.dy = dx, dy

	return Outcome{
		Kind:       OutcomeDragMoved,
		Transition: GestureDragging,
		Intent:     IntentFor(dx),
		Index:      s.cursor,
	}
}

func (s *SwipeSession) EndDrag() Outcome {
	if s.state != GestureDragging {
		return s.ignored()
	}

	dx := s.dx
	if math.Abs(dx) <= CommitThreshold {
		s.rest()
		return Outcome{Kind: OutcomeReset, Transition: GestureResetting, Index: s.cursor}
	}

	if dx > 0 {
		return s.commit(IntentSave)
	}
	return s.commit(IntentDiscard)
}

// Save commits the current card as kept, abandoning any drag in progress.
func (s *SwipeSession) Save() Outcome {
	if s.state == GestureComplete {
		return s.ignored()
	}
	return s.commit(IntentSave)
}

// Discard commits the current card as rejected, abandoning any drag in progress.
func (s *SwipeSession) Discard() Outcome {
	if s.state == GestureComplete {
		return s.ignored()
	}
	return s.commit(IntentDiscard)
}

func (s *SwipeSession) commit(intent Intent) Outcome {
	index := s.cursor
	paper := s.queue[index]

	kind := OutcomeRejected
	if intent == IntentSave {
		paper = paper.WithSavedAt(s.now())
		s.accepted = append(s.accepted, paper)
		kind = OutcomeAccepted
	}

	s.cursor++
	s.rest()

	return Outcome{
		Kind:       kind,
		Transition: GestureCommitting,
		Intent:     intent,
		Paper:      paper,
		Index:      index,
	}
}

func (s *SwipeSession) rest() {
	s.dx, s.dy = 0, 0
	if s.Complete() {
		s.state = GestureComplete
		return
	}
	s.state = GestureIdle
}

func (s *SwipeSession) ignored() Outcome {
	return Outcome{Kind: OutcomeIgnored, Transition: s.state, Index: s.cursor}
}

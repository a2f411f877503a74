package complaint

import (
	"errors"
	"log"
	"time"

	"govlens/backend/internal/models"
	"govlens/backend/internal/storage"
)

// TransitionPolicy decides whether a stage change is allowed. The default
// permits any-to-any transitions, including backwards moves and stage skips,
// so officers can correct mis-assignments; stricter policies can be swapped
// in without touching calling code.
type TransitionPolicy func(from, to models.Status) bool

// AllowAnyTransition is the default policy: every transition is legal.
func AllowAnyTransition(from, to models.Status) bool { return true }

// Engine enforces the complaint status pipeline and produces the append-only
// audit trail. It is the only component that mutates a complaint after
// creation.
type Engine struct {
	Store   *Store
	Storage storage.Storage
	Policy  TransitionPolicy
}

// NewEngine creates a lifecycle engine with the permissive default policy.
func NewEngine(store *Store, s storage.Storage) *Engine {
	return &Engine{Store: store, Storage: s, Policy: AllowAnyTransition}
}

// Transition appends a timeline event and advances the complaint status as a
// single atomic step, then commits through the store. Repeated calls append
// repeated events; the engine performs no deduplication, so callers must not
// double-invoke on duplicate user actions.
//
// The returned complaint is valid even when the error is a *PersistenceError:
// the in-memory state has moved, only the durable write failed.
func (e *Engine) Transition(id string, stage models.Status, officer, actionNote string) (models.Complaint, error) {
	c, err := e.Store.FindByID(id)
	if err != nil {
		return models.Complaint{}, err
	}

	if e.Policy != nil && !e.Policy(c.Status, stage) {
		return models.Complaint{}, ErrIllegalTransition
	}

	event := models.TimelineEvent{
		Stage:     stage,
		Timestamp: time.Now(),
		Officer:   officer,
		Action:    actionNote,
	}
	c.Timeline = append(c.Timeline, event)
	c.Status = stage

	if err := e.Store.Replace(id, c); err != nil {
		var perr *PersistenceError
		if errors.As(err, &perr) {
			e.afterTransition(c, event)
			return c, err
		}
		return models.Complaint{}, err
	}

	e.afterTransition(c, event)
	return c, nil
}

// afterTransition records the audit row and notifies feed subscribers.
// Neither is allowed to fail the transition itself.
func (e *Engine) afterTransition(c models.Complaint, event models.TimelineEvent) {
	audit := &models.TransitionAudit{
		ComplaintID: c.ID,
		Stage:       string(event.Stage),
		Officer:     event.Officer,
		Action:      event.Action,
	}
	if err := e.Storage.AppendTransitionAudit(audit); err != nil {
		log.Printf("WARNING: Audit row for %s not recorded: %v", c.ID, err)
	}

	update := models.StatusUpdate{
		ComplaintID: c.ID,
		Stage:       event.Stage,
		Officer:     event.Officer,
		Action:      event.Action,
		Timestamp:   event.Timestamp,
	}
	if err := e.Storage.PublishStatusUpdate(update); err != nil {
		log.Printf("WARNING: Status update for %s not published: %v", c.ID, err)
	}
}

// PendingStages returns the fixed pipeline minus the distinct stages already
// present in the timeline, in pipeline order. Display-only; no side effects.
func PendingStages(c models.Complaint) []models.Status {
	seen := make(map[models.Status]bool, len(c.Timeline))
	for _, event := range c.Timeline {
		seen[event.Stage] = true
	}

	var pending []models.Status
	for _, stage := range models.Pipeline {
		if !seen[stage] {
			pending = append(pending, stage)
		}
	}
	return pending
}

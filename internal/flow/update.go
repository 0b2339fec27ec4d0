package flow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jacksmith/storectl/internal/model"
	"go.uber.org/zap"
)

// UpdatePhase is the state of an UpdateFlow.
type UpdatePhase int

const (
	PhaseIdle UpdatePhase = iota
	PhaseFetching
	PhaseLoaded
	PhaseSubmitting
)

func (p UpdatePhase) String() string {
	switch p {
	case PhaseFetching:
		return "fetching"
	case PhaseLoaded:
		return "loaded"
	case PhaseSubmitting:
		return "submitting"
	}
	return "idle"
}

// UpdateState is a snapshot of an UpdateFlow.
type UpdateState struct {
	Phase    UpdatePhase
	ID       string
	Draft    model.Draft
	IDLocked bool
	Success  string
	Error    string
}

// UpdateFlow edits an existing store. The store must be fetched before it can
// be edited or submitted, and a successful fetch locks the id until Reset.
type UpdateFlow struct {
	client StoreClient
	logger *zap.Logger
	banner *Banner

	mu         sync.Mutex
	id         string
	draft      model.Draft
	fetched    bool
	fetching   bool
	submitting bool
	errMsg     string
	gen        uint64 // bumped by Reset so stale fetches are dropped
}

// NewUpdateFlow returns an update form in the Idle phase.
func NewUpdateFlow(client StoreClient, opts ...Option) *UpdateFlow {
	o := buildOptions(opts)
	return &UpdateFlow{
		client: client,
		logger: o.logger.Named("update"),
		banner: NewBanner(o.scheduler),
	}
}

// SetID sets the id to fetch. Fails with ErrIDLocked once fetched.
func (f *UpdateFlow) SetID(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fetched {
		return ErrIDLocked
	}
	f.id = id
	f.clearFeedbackLocked()
	return nil
}

// Set updates one editable field. Fields are only editable after a fetch.
func (f *UpdateFlow) Set(field model.Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.fetched {
		return ErrNotFetched
	}
	if err := f.draft.Set(field, value); err != nil {
		return err
	}
	f.clearFeedbackLocked()
	return nil
}

// Fetch loads the store for the current id and locks the id on success.
func (f *UpdateFlow) Fetch(ctx context.Context) (*model.Store, error) {
	f.mu.Lock()
	if f.fetched {
		f.mu.Unlock()
		return nil, ErrIDLocked
	}
	if f.fetching {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	id := f.id
	if strings.TrimSpace(id) == "" {
		f.errMsg = MsgEnterIDFirst
		f.mu.Unlock()
		return nil, ErrIDRequired
	}
	f.fetching = true
	f.errMsg = ""
	gen := f.gen
	f.mu.Unlock()

	f.logger.Debug("fetching store", zap.String("id", id))
	s, err := f.client.GetStore(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		f.logger.Debug("discarding fetch after reset", zap.String("id", id))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch store %s: %w", id, err)
		}
		return s, nil
	}
	f.fetching = false

	if err != nil {
		f.fetched = false
		f.errMsg = MsgNotFound
		return nil, fmt.Errorf("failed to fetch store %s: %w", id, err)
	}

	f.id = s.ID
	if f.id == "" {
		f.id = id
	}
	f.draft = s.Draft()
	f.fetched = true
	f.logger.Debug("store loaded", zap.String("id", f.id))
	return s, nil
}

// Submit sends the full record. It never calls the API unless a fetch for
// the current id has succeeded since the last Reset.
func (f *UpdateFlow) Submit(ctx context.Context) (*model.Store, error) {
	f.mu.Lock()
	if !f.fetched {
		f.errMsg = MsgFetchBeforeEdit
		f.mu.Unlock()
		return nil, ErrNotFetched
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	record := f.draft.WithID(f.id)
	if err := record.Validate(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.submitting = true
	f.errMsg = ""
	f.mu.Unlock()

	f.logger.Debug("updating store", zap.String("id", record.ID))
	updated, err := f.client.UpdateStore(ctx, record)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		f.errMsg = MsgUpdateFailed
		return nil, fmt.Errorf("failed to update store %s: %w", record.ID, err)
	}

	f.banner.Show(MsgUpdated, UpdateBannerDuration)
	return updated, nil
}

// Reset returns the flow to Idle, discarding the id, fields, feedback and the
// fetched guard. Not allowed while a submit is outstanding.
func (f *UpdateFlow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return ErrBusy
	}
	f.gen++
	f.id = ""
	f.draft = model.Draft{}
	f.fetched = false
	f.fetching = false
	f.clearFeedbackLocked()
	return nil
}

// Phase returns the current phase.
func (f *UpdateFlow) Phase() UpdatePhase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phaseLocked()
}

func (f *UpdateFlow) phaseLocked() UpdatePhase {
	switch {
	case f.submitting:
		return PhaseSubmitting
	case f.fetched:
		return PhaseLoaded
	case f.fetching:
		return PhaseFetching
	}
	return PhaseIdle
}

// State returns a snapshot of the form.
func (f *UpdateFlow) State() UpdateState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return UpdateState{
		Phase:    f.phaseLocked(),
		ID:       f.id,
		Draft:    f.draft,
		IDLocked: f.fetched,
		Success:  f.banner.Message(),
		Error:    f.errMsg,
	}
}

// Close cancels the pending banner timer.
func (f *UpdateFlow) Close() {
	f.banner.Clear()
}

func (f *UpdateFlow) clearFeedbackLocked() {
	f.errMsg = ""
	f.banner.Clear()
}

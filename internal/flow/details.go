package flow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jacksmith/storectl/internal/model"
	"go.uber.org/zap"
)

// DetailsState is a snapshot of a DetailsFlow.
type DetailsState struct {
	ID      string
	Store   *model.Store
	Loading bool
	Error   string
}

// DetailsFlow fetches and displays a single store.
//
// Fetches are not serialized. Whichever response arrives last replaces the
// displayed store, even if it belongs to an older request.
type DetailsFlow struct {
	client StoreClient
	logger *zap.Logger

	mu       sync.Mutex
	id       string
	store    *model.Store
	inFlight int
	errMsg   string
}

// NewDetailsFlow returns an empty details view.
func NewDetailsFlow(client StoreClient, opts ...Option) *DetailsFlow {
	o := buildOptions(opts)
	return &DetailsFlow{
		client: client,
		logger: o.logger.Named("details"),
	}
}

// SetID sets the id to fetch.
func (f *DetailsFlow) SetID(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = id
}

// Fetch reads the store for the current id.
func (f *DetailsFlow) Fetch(ctx context.Context) (*model.Store, error) {
	f.mu.Lock()
	id := f.id
	if strings.TrimSpace(id) == "" {
		f.errMsg = MsgEnterID
		f.mu.Unlock()
		return nil, ErrIDRequired
	}
	f.inFlight++
	f.errMsg = ""
	f.mu.Unlock()

	f.logger.Debug("fetching store", zap.String("id", id))
	s, err := f.client.GetStore(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--

	if err != nil {
		f.store = nil
		f.errMsg = MsgFetchDetailsFail
		return nil, fmt.Errorf("failed to fetch store %s: %w", id, err)
	}

	f.store = s
	f.errMsg = ""
	return s, nil
}

// State returns a snapshot of the view.
func (f *DetailsFlow) State() DetailsState {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := DetailsState{
		ID:      f.id,
		Loading: f.inFlight > 0,
		Error:   f.errMsg,
	}
	if f.store != nil {
		s := *f.store
		st.Store = &s
	}
	return st
}

// Close is a no-op; DetailsFlow holds no timers.
func (f *DetailsFlow) Close() {}

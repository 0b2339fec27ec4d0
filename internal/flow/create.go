package flow

import (
	"context"
	"fmt"
	"sync"

	"github.com/jacksmith/storectl/internal/model"
	"go.uber.org/zap"
)

// CreateState is a snapshot of a CreateFlow.
type CreateState struct {
	Draft   model.Draft
	Loading bool
	Success string // visible success banner, "" when hidden
	Alert   string // last blocking alert, "" when none
}

// CreateFlow collects a draft store and submits it.
type CreateFlow struct {
	client StoreClient
	logger *zap.Logger
	banner *Banner

	mu      sync.Mutex
	draft   model.Draft
	loading bool
	alert   string
}

// NewCreateFlow returns an empty create form.
func NewCreateFlow(client StoreClient, opts ...Option) *CreateFlow {
	o := buildOptions(opts)
	return &CreateFlow{
		client: client,
		logger: o.logger.Named("create"),
		banner: NewBanner(o.scheduler),
	}
}

// Set updates one draft field. Typing dismisses the success banner.
func (f *CreateFlow) Set(field model.Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.draft.Set(field, value); err != nil {
		return err
	}
	f.alert = ""
	f.banner.Clear()
	return nil
}

// Submit validates the draft and creates the store. On success the draft is
// cleared; on failure it is kept so the user can retry.
func (f *CreateFlow) Submit(ctx context.Context) (*model.Store, error) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	if err := f.draft.Validate(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	draft := f.draft
	f.loading = true
	f.alert = ""
	f.mu.Unlock()

	f.logger.Debug("submitting store", zap.String("store_name", draft.StoreName))
	created, err := f.client.CreateStore(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false

	if err != nil {
		f.logger.Debug("create failed", zap.Error(err))
		f.alert = MsgCreateFailed
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	f.draft = model.Draft{}
	f.banner.Show(MsgCreated, CreateBannerDuration)
	f.logger.Debug("store created", zap.String("id", created.ID))
	return created, nil
}

// State returns a snapshot of the form.
func (f *CreateFlow) State() CreateState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return CreateState{
		Draft:   f.draft,
		Loading: f.loading,
		Success: f.banner.Message(),
		Alert:   f.alert,
	}
}

// Close cancels the pending banner timer.
func (f *CreateFlow) Close() {
	f.banner.Clear()
}

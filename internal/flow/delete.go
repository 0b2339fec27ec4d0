package flow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jacksmith/storectl/internal/model"
	"go.uber.org/zap"
)

// DeleteState is a snapshot of a DeleteFlow.
type DeleteState struct {
	ID       string
	Preview  *model.Store
	Fetching bool
	Deleting bool
	Success  string
	Error    string
}

// DeleteFlow deletes a store behind a confirmation step. A previewed store
// requires typing DeleteToken; without a preview a yes/no answer suffices.
type DeleteFlow struct {
	client StoreClient
	logger *zap.Logger
	banner *Banner

	mu       sync.Mutex
	id       string
	preview  *model.Store
	fetching bool
	deleting bool
	errMsg   string
}

// NewDeleteFlow returns an idle delete form.
func NewDeleteFlow(client StoreClient, opts ...Option) *DeleteFlow {
	o := buildOptions(opts)
	return &DeleteFlow{
		client: client,
		logger: o.logger.Named("delete"),
		banner: NewBanner(o.scheduler),
	}
}

// SetID sets the target id, clearing feedback and any preview.
func (f *DeleteFlow) SetID(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = id
	f.preview = nil
	f.errMsg = ""
	f.banner.Clear()
}

// Preview fetches the target store without mutating anything.
func (f *DeleteFlow) Preview(ctx context.Context) (*model.Store, error) {
	f.mu.Lock()
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
	f.mu.Unlock()

	s, err := f.client.GetStore(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetching = false

	// The id changed while the preview was loading.
	if f.id != id {
		if err != nil {
			return nil, fmt.Errorf("failed to fetch store %s: %w", id, err)
		}
		return s, nil
	}

	if err != nil {
		f.preview = nil
		f.errMsg = MsgNotFound
		return nil, fmt.Errorf("failed to fetch store %s: %w", id, err)
	}
	f.preview = s
	return s, nil
}

// Delete asks c for confirmation and deletes the store. It returns false
// with a nil error when the user declines a yes/no confirmation.
func (f *DeleteFlow) Delete(ctx context.Context, c Confirmer) (bool, error) {
	f.mu.Lock()
	if f.deleting {
		f.mu.Unlock()
		return false, ErrBusy
	}
	id := f.id
	if strings.TrimSpace(id) == "" {
		f.errMsg = MsgEnterID
		f.mu.Unlock()
		return false, ErrIDRequired
	}
	var preview *model.Store
	if f.preview != nil {
		p := *f.preview
		preview = &p
	}
	f.mu.Unlock()

	req := confirmRequest(preview)
	answer, err := c.Confirm(ctx, req)
	if err != nil {
		f.logger.Debug("confirmation failed, treating as declined", zap.Error(err))
		answer = Declined()
	}

	if preview != nil {
		if answer.Kind != KindConfirmedWithToken || answer.Token != DeleteToken {
			f.mu.Lock()
			f.errMsg = MsgDeleteCancelled
			f.mu.Unlock()
			return false, ErrConfirmationMismatch
		}
	} else if answer.Kind != KindConfirmedBoolean {
		f.logger.Debug("deletion declined", zap.String("id", id))
		return false, nil
	}

	f.mu.Lock()
	if f.deleting {
		f.mu.Unlock()
		return false, ErrBusy
	}
	f.deleting = true
	f.errMsg = ""
	f.mu.Unlock()

	f.logger.Debug("deleting store", zap.String("id", id))
	err = f.client.DeleteStore(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleting = false

	if err != nil {
		f.errMsg = MsgDeleteFailed
		return false, fmt.Errorf("failed to delete store %s: %w", id, err)
	}

	f.id = ""
	f.preview = nil
	f.banner.Show(MsgDeleted, DeleteBannerDuration)
	return true, nil
}

func confirmRequest(preview *model.Store) ConfirmRequest {
	if preview == nil {
		return ConfirmRequest{
			Title:   "Delete store?",
			Message: "Are you sure you want to delete this store? This action cannot be undone.",
		}
	}
	return ConfirmRequest{
		Title: fmt.Sprintf("Delete %q?", preview.StoreName),
		Message: fmt.Sprintf("Are you absolutely sure you want to delete %q?\n\n"+
			"This action cannot be undone and will permanently remove:\n"+
			"  Store Name: %s\n  Address: %s\n  Manager: %s\n\n"+
			"Type %q to confirm:",
			preview.StoreName, preview.StoreName, preview.Address, preview.ManagerName, DeleteToken),
		RequireToken: true,
		Token:        DeleteToken,
	}
}

// State returns a snapshot of the form.
func (f *DeleteFlow) State() DeleteState {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := DeleteState{
		ID:       f.id,
		Fetching: f.fetching,
		Deleting: f.deleting,
		Success:  f.banner.Message(),
		Error:    f.errMsg,
	}
	if f.preview != nil {
		p := *f.preview
		st.Preview = &p
	}
	return st
}

// Close cancels the pending banner timer.
func (f *DeleteFlow) Close() {
	f.banner.Clear()
}

// Package flow implements the create, details, update and delete workflows
// as self-contained state containers. Each flow owns its transient state and
// talks to the store API only through StoreClient.
package flow

import (
	"context"
	"errors"

	"github.com/jacksmith/storectl/internal/model"
	"go.uber.org/zap"
)

// StoreClient defines the store API operations required by the flows.
// The concrete implementation is api.Client.
type StoreClient interface {
	CreateStore(ctx context.Context, d model.Draft) (*model.Store, error)
	GetStore(ctx context.Context, id string) (*model.Store, error)
	UpdateStore(ctx context.Context, s model.Store) (*model.Store, error)
	DeleteStore(ctx context.Context, id string) error
	ListStores(ctx context.Context) ([]model.Store, error)
}

var (
	// ErrBusy is returned when the same control already has a request in flight.
	ErrBusy = errors.New("request already in progress")

	// ErrIDRequired is returned when an operation needs a store ID and none was entered.
	ErrIDRequired = errors.New("store ID is required")

	// ErrIDLocked is returned when the ID is changed after a successful fetch.
	ErrIDLocked = errors.New("store ID is locked until reset")

	// ErrNotFetched is returned when editing or submitting before a successful fetch.
	ErrNotFetched = errors.New("store has not been fetched")

	// ErrConfirmationMismatch is returned when a typed confirmation does not match.
	ErrConfirmationMismatch = errors.New("confirmation token did not match")
)

// User-facing messages shown inline or as alerts.
const (
	MsgEnterIDFirst     = "Please enter a store ID first"
	MsgEnterID          = "Please enter a store ID"
	MsgNotFound         = "Store not found. Please check the ID and try again."
	MsgFetchDetailsFail = "Error fetching store details. Please try again."
	MsgFetchBeforeEdit  = "Please fetch the store details first before updating"
	MsgCreateFailed     = "Error creating store. Please try again."
	MsgUpdateFailed     = "Error updating store. Please try again."
	MsgDeleteFailed     = "Error deleting store. Please try again."
	MsgDeleteCancelled  = `Deletion cancelled. You must type "DELETE" to confirm.`

	MsgCreated = "Store created successfully! Ready to add another one?"
	MsgUpdated = "Store updated successfully! All changes have been saved."
	MsgDeleted = "Store deleted successfully! The store has been permanently removed."
)

// Option configures a flow.
type Option func(*options)

type options struct {
	logger    *zap.Logger
	scheduler Scheduler
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithScheduler sets the scheduler used for banner auto-dismiss.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:    zap.NewNop(),
		scheduler: realScheduler{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

package flow

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/jacksmith/storectl/internal/api"
	"github.com/jacksmith/storectl/internal/model"
)

// fakeClient is an in-memory StoreClient that counts calls. The hooks, when
// set, replace the matching call so tests can control ordering.
type fakeClient struct {
	mu     sync.Mutex
	stores map[string]model.Store
	nextID int
	fail   map[string]error
	calls  map[string]int

	getHook    func(ctx context.Context, id string) (*model.Store, error)
	updateHook func(ctx context.Context, s model.Store) (*model.Store, error)
	deleteHook func(ctx context.Context, id string) error
}

func newFakeClient(stores ...model.Store) *fakeClient {
	c := &fakeClient{
		stores: make(map[string]model.Store),
		nextID: 1,
		fail:   make(map[string]error),
		calls:  make(map[string]int),
	}
	for _, s := range stores {
		c.stores[s.ID] = s
	}
	return c
}

var errServer = errors.New("server exploded")

func (c *fakeClient) failOn(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail[op] = err
}

func (c *fakeClient) count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *fakeClient) record(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[op]++
	return c.fail[op]
}

func (c *fakeClient) CreateStore(ctx context.Context, d model.Draft) (*model.Store, error) {
	if err := c.record("create"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s := d.WithID(strconv.Itoa(c.nextID))
	c.nextID++
	c.stores[s.ID] = s
	return &s, nil
}

func (c *fakeClient) GetStore(ctx context.Context, id string) (*model.Store, error) {
	if err := c.record("get"); err != nil {
		return nil, err
	}
	if c.getHook != nil {
		return c.getHook(ctx, id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.stores[id]
	if !ok {
		return nil, &api.APIError{StatusCode: 404, ErrorCode: "not_found", Message: "Store not found with id: " + id}
	}
	return &s, nil
}

func (c *fakeClient) UpdateStore(ctx context.Context, s model.Store) (*model.Store, error) {
	if err := c.record("update"); err != nil {
		return nil, err
	}
	if c.updateHook != nil {
		return c.updateHook(ctx, s)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores[s.ID] = s
	return &s, nil
}

func (c *fakeClient) DeleteStore(ctx context.Context, id string) error {
	if err := c.record("delete"); err != nil {
		return err
	}
	if c.deleteHook != nil {
		return c.deleteHook(ctx, id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.stores, id)
	return nil
}

func (c *fakeClient) ListStores(ctx context.Context) ([]model.Store, error) {
	if err := c.record("list"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.Store
	for _, s := range c.stores {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeScheduler collects timers and fires them when advanced.
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *fakeScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward and runs every due timer.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// pending returns the number of timers that have neither fired nor stopped.
func (s *fakeScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// gate holds a hooked call open until released.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}), release: make(chan struct{})}
}

// wait signals that the call started and blocks until release is closed.
func (g *gate) wait() {
	close(g.started)
	<-g.release
}

func answer(c Confirmation) Confirmer {
	return ConfirmFunc(func(ctx context.Context, req ConfirmRequest) (Confirmation, error) {
		return c, nil
	})
}

package settings

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fermedirect/storefront-backend/pkg/logger"
	"github.com/fermedirect/storefront-backend/pkg/metrics"
	"github.com/fermedirect/storefront-backend/pkg/types"
)

// Snapshot is what theme subscribers receive: the theme plus the handful of
// presentation flags the storefront polls alongside it.
type Snapshot struct {
	Theme           types.Theme         `json:"theme"`
	LoadingScreen   types.LoadingScreen `json:"loading_screen"`
	MaintenanceMode bool                `json:"maintenance_mode"`
	AgeGateEnabled  bool                `json:"age_gate_enabled"`
}

// Controller is the single writer for theme state. One goroutine refreshes on
// a ticker; readers get the cached snapshot, and subscribers are notified only
// when the snapshot actually changed. This replaces the storefront's habit of
// every component polling settings on its own timer.
type Controller struct {
	settings Service
	interval time.Duration
	logg     *logger.Logger
	metrics  *metrics.ThemeRefreshMetrics

	mu          sync.RWMutex
	current     Snapshot
	subscribers map[int]chan Snapshot
	nextSubID   int

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

type ControllerParams struct {
	Settings Service
	Interval time.Duration
	Logger   *logger.Logger
	Metrics  *metrics.ThemeRefreshMetrics
}

func NewController(params ControllerParams) (*Controller, error) {
	if params.Settings == nil {
		return nil, errors.New("theme controller requires a settings service")
	}
	interval := params.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Controller{
		settings:    params.Settings,
		interval:    interval,
		logg:        params.Logger,
		metrics:     params.Metrics,
		subscribers: map[int]chan Snapshot{},
		done:        make(chan struct{}),
	}, nil
}

// Start primes the snapshot and launches the refresh loop. It returns once
// the first refresh attempt has completed, so callers observe a warm cache.
func (c *Controller) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.refreshOnce(runCtx, "startup")
	go c.run(runCtx)
}

func (c *Controller) run(ctx context.Context) {
	defer close(c.done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshOnce(ctx, "ticker")
		}
	}
}

// Refresh forces an immediate re-read, used after an admin settings write so
// subscribers do not wait out the ticker.
func (c *Controller) Refresh(ctx context.Context) {
	c.refreshOnce(ctx, "admin")
}

func (c *Controller) refreshOnce(ctx context.Context, source string) {
	started := time.Now()
	settings, err := c.settings.Current(ctx)
	c.metrics.ObserveDuration(source, time.Since(started))
	if err != nil {
		c.metrics.IncFailure(source)
		if c.logg != nil {
			c.logg.Error(ctx, "theme refresh failed", err)
		}
		return
	}
	c.metrics.IncSuccess(source)

	next := Snapshot{
		Theme:           settings.Theme,
		LoadingScreen:   settings.LoadingScreen,
		MaintenanceMode: settings.MaintenanceMode,
		AgeGateEnabled:  settings.AgeGateEnabled,
	}

	c.mu.Lock()
	changed := next != c.current
	c.current = next
	var targets []chan Snapshot
	if changed {
		targets = make([]chan Snapshot, 0, len(c.subscribers))
		for _, ch := range c.subscribers {
			targets = append(targets, ch)
		}
	}
	c.mu.Unlock()

	if !changed {
		return
	}
	c.metrics.IncChange(source)
	for _, ch := range targets {
		// Drop-on-full: a slow subscriber misses intermediate states but
		// always converges on the latest published snapshot.
		select {
		case ch <- next:
		default:
		}
	}
}

// Current returns the cached snapshot without touching the database.
func (c *Controller) Current() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Subscribe registers a change listener. The returned function removes the
// subscription and closes the channel.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	ch := make(chan Snapshot, 1)
	c.subscribers[id] = ch
	c.mu.Unlock()

	unsubscribe := func() {
		c.mu.Lock()
		if existing, ok := c.subscribers[id]; ok {
			delete(c.subscribers, id)
			close(existing)
		}
		c.mu.Unlock()
	}
	return ch, unsubscribe
}

// Close stops the refresh loop and waits for it to exit.
func (c *Controller) Close() {
	c.once.Do(func() {
		if c.cancel != nil {
			c.cancel()
			<-c.done
		}
	})
}

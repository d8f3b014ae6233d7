package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cursorbar/cursorbar/internal/statestore"
	"github.com/cursorbar/cursorbar/internal/usage"
)

// State classifies the outcome of the last refresh.
type State int

const (
	StateIdle      State = iota // before the first refresh completes
	StateSignedOut              // no usable credential; a normal outcome
	StateError                  // fetch or parse failure
	StateOK
)

// Snapshot is the last-known usage. Each refresh replaces it wholesale;
// overlapping refreshes are last-write-wins.
type Snapshot struct {
	State     State
	Report    usage.Report
	Profile   statestore.Profile
	Err       error
	FetchedAt time.Time
}

// Fetcher abstracts the usage client.
type Fetcher interface {
	Fetch(ctx context.Context, cred statestore.Credential) (usage.Report, error)
}

// CredentialSource reads the session credential fresh for one refresh.
// A nil credential means not signed in.
type CredentialSource func(ctx context.Context) (*statestore.Credential, statestore.Profile)

// DefaultCredentialSource reads the editor's state DB, falling back to a
// browser session cookie when the DB has no token.
func DefaultCredentialSource(paths []string) CredentialSource {
	return func(ctx context.Context) (*statestore.Credential, statestore.Profile) {
		if cred, profile := statestore.ReadCredential(paths); cred != nil {
			return cred, profile
		}
		if cred := statestore.BrowserCredential(ctx); cred != nil {
			return cred, statestore.Profile{}
		}
		return nil, statestore.Profile{}
	}
}

const (
	minInterval  = 10 * time.Second
	fetchTimeout = 15 * time.Second
)

// Monitor owns the refresh lifecycle: one immediate refresh on Start, then a
// repeating tick, plus manually requested refreshes sharing the same cycle.
type Monitor struct {
	fetcher     Fetcher
	credentials CredentialSource
	interval    time.Duration

	mu       sync.RWMutex
	snapshot Snapshot
	onUpdate func(Snapshot)

	stopOnce sync.Once
	stop     chan struct{}
	kick     chan struct{}

	watcher *stateWatcher
}

// New builds a Monitor. Intervals below the 10 second floor are clamped.
func New(fetcher Fetcher, credentials CredentialSource, interval time.Duration) *Monitor {
	if interval < minInterval {
		interval = minInterval
	}
	return &Monitor{
		fetcher:     fetcher,
		credentials: credentials,
		interval:    interval,
		stop:        make(chan struct{}),
		kick:        make(chan struct{}, 1),
	}
}

// OnUpdate registers the callback invoked after every published snapshot.
func (m *Monitor) OnUpdate(fn func(Snapshot)) {
	m.mu.Lock()
	m.onUpdate = fn
	m.mu.Unlock()
}

// Snapshot returns the last published snapshot.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Start performs one immediate refresh, then refreshes on every tick until
// Dispose or context cancellation.
func (m *Monitor) Start(ctx context.Context) {
	go m.loop(ctx)
}

func (m *Monitor) loop(ctx context.Context) {
	m.Refresh(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stop:
			return
		case <-ticker.C:
			m.Refresh(ctx)
		case <-m.kick:
			m.Refresh(ctx)
		}
	}
}

// RequestRefresh schedules a refresh outside the tick cadence without
// blocking. Coalesces when one is already pending.
func (m *Monitor) RequestRefresh() {
	select {
	case m.kick <- struct{}{}:
	default:
	}
}

// Refresh runs one full credential → fetch → publish cycle and returns the
// published snapshot. All failures are converted to snapshot states here;
// nothing propagates.
func (m *Monitor) Refresh(ctx context.Context) Snapshot {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	snap := Snapshot{FetchedAt: time.Now()}

	cred, profile := m.credentials(fetchCtx)
	if cred == nil {
		snap.State = StateSignedOut
		return m.publish(snap)
	}
	snap.Profile = profile

	report, err := m.fetcher.Fetch(fetchCtx, *cred)
	if err != nil {
		snap.State = StateError
		snap.Err = err
		log.Printf("[monitor] refresh failed: %v", err)
		return m.publish(snap)
	}

	snap.State = StateOK
	snap.Report = report
	return m.publish(snap)
}

func (m *Monitor) publish(snap Snapshot) Snapshot {
	m.mu.Lock()
	m.snapshot = snap
	fn := m.onUpdate
	m.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return snap
}

// Dispose stops the refresh loop and the state DB watcher. Safe to call
// more than once.
func (m *Monitor) Dispose() {
	m.stopOnce.Do(func() { close(m.stop) })
	if m.watcher != nil {
		m.watcher.close()
	}
}

package proc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/leeineian/ghost/sys"
	"golang.org/x/time/rate"
)

const (
	DefaultDeleteDelay = 500 * time.Millisecond
	DefaultInterval    = 30 * time.Second

	deleteTimeout = 10 * time.Second
)

var ErrInvalidInterval = errors.New("ping interval must be positive")

// SessionStore is the durable side of the manager.
type SessionStore interface {
	Replace(session sys.TrollSession) error
	Remove(userID snowflake.ID) error
	Clear() error
	Active(now time.Time) []sys.TrollSession
	Prune(now time.Time) (int, error)
}

// HistoryRecorder receives events raised by the manager itself, such as expiry.
type HistoryRecorder interface {
	LogTrollEvent(ctx context.Context, ev sys.TrollEvent) error
}

type Options struct {
	// DeleteDelay is how long a ping stays visible before it is deleted.
	DeleteDelay time.Duration
	// Limiter is shared by every session and throttles outgoing pings.
	Limiter *rate.Limiter
	History HistoryRecorder
	Now     func() time.Time
}

func (o *Options) defaults() {
	if o.DeleteDelay <= 0 {
		o.DeleteDelay = DefaultDeleteDelay
	}
	if o.Limiter == nil {
		o.Limiter = rate.NewLimiter(rate.Limit(5), 5)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

type trollTimer struct {
	record sys.TrollSession
	avg    time.Duration
	cancel context.CancelFunc

	// fireMu is held for the whole of a fire; cancelling then locking it
	// guarantees no post happens afterwards.
	fireMu sync.Mutex
}

// TrollManager owns one ghost-ping timer per target user.
type TrollManager struct {
	ctx      context.Context
	platform Platform
	store    SessionStore
	opts     Options

	opMu   sync.Mutex
	mu     sync.Mutex
	timers map[snowflake.ID]*trollTimer

	pending sync.WaitGroup
}

func NewTrollManager(ctx context.Context, platform Platform, store SessionStore, opts Options) *TrollManager {
	opts.defaults()
	return &TrollManager{
		ctx:      ctx,
		platform: platform,
		store:    store,
		opts:     opts,
		timers:   make(map[snowflake.ID]*trollTimer),
	}
}

// Start begins trolling target for duration, replacing any session it already has.
func (m *TrollManager) Start(target snowflake.ID, duration, avg time.Duration) (sys.TrollSession, error) {
	if duration <= 0 {
		return sys.TrollSession{}, sys.ErrInvalidDuration
	}
	if avg <= 0 {
		return sys.TrollSession{}, ErrInvalidInterval
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	record := sys.TrollSession{UserID: target, EndTime: m.opts.Now().Add(duration).UnixMilli()}
	m.halt(target)
	if err := m.store.Replace(record); err != nil {
		return sys.TrollSession{}, fmt.Errorf("save troll session: %w", err)
	}
	m.launch(record, avg)

	sys.LogTroll(sys.MsgTrollStarted, target, record.End().Format(time.DateTime), avg)
	return record, nil
}

// Stop cancels target's timer and deletes its record. It reports whether a timer was running.
func (m *TrollManager) Stop(target snowflake.ID) (bool, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	wasRunning := m.halt(target)
	if err := m.store.Remove(target); err != nil {
		return wasRunning, fmt.Errorf("remove troll session: %w", err)
	}
	if wasRunning {
		sys.LogTroll(sys.MsgTrollStopped, target)
	}
	return wasRunning, nil
}

// StopAll cancels every timer and empties the store.
func (m *TrollManager) StopAll() (int, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	n := m.haltAll()
	if err := m.store.Clear(); err != nil {
		return n, fmt.Errorf("clear troll sessions: %w", err)
	}
	sys.LogTroll(sys.MsgTrollStoppedAll, n)
	return n, nil
}

func (m *TrollManager) Running(target snowflake.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.timers[target]
	return ok
}

// Active lists the unexpired sessions, soonest ending first.
func (m *TrollManager) Active() []sys.TrollSession {
	sessions := m.store.Active(m.opts.Now())
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].EndTime < sessions[j].EndTime
	})
	return sessions
}

// Resume drops expired records and relaunches timers for the rest using avg as their interval.
func (m *TrollManager) Resume(avg time.Duration) (int, error) {
	if avg <= 0 {
		return 0, ErrInvalidInterval
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	now := m.opts.Now()
	pruned, err := m.store.Prune(now)
	if err != nil {
		return 0, fmt.Errorf("prune troll sessions: %w", err)
	}
	if pruned > 0 {
		sys.LogTroll(sys.MsgTrollPruned, pruned)
	}

	resumed := 0
	for _, record := range m.store.Active(now) {
		if m.Running(record.UserID) {
			continue
		}
		m.launch(record, avg)
		resumed++
	}
	sys.LogTroll(sys.MsgTrollResumed, resumed)
	return resumed, nil
}

// Shutdown cancels all timers but keeps their records, then waits for scheduled deletions.
func (m *TrollManager) Shutdown() {
	sys.LogTroll(sys.MsgTrollManagerShutdown)

	m.opMu.Lock()
	m.haltAll()
	m.opMu.Unlock()

	m.pending.Wait()
}

func (m *TrollManager) launch(record sys.TrollSession, avg time.Duration) {
	ctx, cancel := context.WithCancel(m.ctx)
	t := &trollTimer{record: record, avg: avg, cancel: cancel}

	m.mu.Lock()
	m.timers[record.UserID] = t
	m.mu.Unlock()

	rng := rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(record.UserID)))
	go m.run(ctx, t, rng)
}

// halt must be called with opMu held.
func (m *TrollManager) halt(target snowflake.ID) bool {
	m.mu.Lock()
	t, ok := m.timers[target]
	delete(m.timers, target)
	m.mu.Unlock()

	if ok {
		t.stop()
	}
	return ok
}

func (m *TrollManager) haltAll() int {
	m.mu.Lock()
	timers := m.timers
	m.timers = make(map[snowflake.ID]*trollTimer)
	m.mu.Unlock()

	for _, t := range timers {
		t.stop()
	}
	return len(timers)
}

func (t *trollTimer) stop() {
	t.cancel()
	t.fireMu.Lock()
	//nolint:staticcheck // empty critical section waits out an in-flight fire
	t.fireMu.Unlock()
}

func (m *TrollManager) run(ctx context.Context, t *trollTimer, rng *rand.Rand) {
	for {
		timer := time.NewTimer(jitter(rng, t.avg))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if !t.record.ActiveAt(m.opts.Now()) {
			m.expire(t)
			return
		}
		m.fire(ctx, t, rng)
	}
}

func (m *TrollManager) fire(ctx context.Context, t *trollTimer, rng *rand.Rand) {
	t.fireMu.Lock()
	defer t.fireMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	target := t.record.UserID
	channels := m.platform.PostableChannels(ctx)
	if len(channels) == 0 {
		sys.LogDebug(sys.MsgTrollNoChannels, target)
		return
	}
	channelID := channels[rng.Intn(len(channels))]

	if err := m.opts.Limiter.Wait(ctx); err != nil {
		return
	}

	messageID, err := m.platform.SendMention(ctx, channelID, target)
	if err != nil {
		sys.LogTroll(sys.MsgTrollSendFail, target, channelID, err)
		return
	}
	m.scheduleDelete(channelID, messageID)
}

// scheduleDelete removes a ping after DeleteDelay even if its session was stopped in the meantime.
func (m *TrollManager) scheduleDelete(channelID, messageID snowflake.ID) {
	m.pending.Add(1)
	time.AfterFunc(m.opts.DeleteDelay, func() {
		defer m.pending.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(m.ctx), deleteTimeout)
		defer cancel()
		if err := m.platform.DeleteMessage(ctx, channelID, messageID); err != nil {
			sys.LogTroll(sys.MsgTrollDeleteFail, messageID, channelID, err)
		}
	})
}

func (m *TrollManager) expire(t *trollTimer) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	target := t.record.UserID
	m.mu.Lock()
	current, ok := m.timers[target]
	m.mu.Unlock()
	if !ok || current != t {
		// replaced or stopped while the last tick was pending
		return
	}

	if err := m.store.Remove(target); err != nil {
		sys.LogTroll(sys.MsgTrollStoreFail, target, err)
	}
	if m.opts.History != nil {
		ev := sys.TrollEvent{TargetID: target, Action: sys.TrollActionExpire}
		if err := m.opts.History.LogTrollEvent(context.WithoutCancel(m.ctx), ev); err != nil {
			sys.LogTroll(sys.MsgTrollHistoryFail, err)
		}
	}

	m.mu.Lock()
	delete(m.timers, target)
	m.mu.Unlock()
	t.cancel()
	sys.LogTroll(sys.MsgTrollExpired, target)
}

// jitter draws uniformly from [avg-avg/2, avg+avg/2].
func jitter(rng *rand.Rand, avg time.Duration) time.Duration {
	half := avg / 2
	return avg - half + time.Duration(rng.Int63n(int64(2*half)+1))
}

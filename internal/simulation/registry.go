// ABOUTME: Process-wide registry of live room simulations and their control surface
// ABOUTME: Enforces at most one running scheduler per room id

package simulation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/baranbingol1/agent-nebula/internal/llm"
	"github.com/baranbingol1/agent-nebula/internal/store"
)

// ErrAlreadyRunning is returned by Start when the room has a live scheduler.
var ErrAlreadyRunning = errors.New("simulation already running")

// ErrNotRunning is returned by control operations that require a live,
// non-completed scheduler.
var ErrNotRunning = errors.New("simulation not running")

// Defaults for the scheduler's timing knobs.
const (
	DefaultTurnDelay         = time.Second
	DefaultGenerationTimeout = 60 * time.Second
)

// Options configures a Registry.
type Options struct {
	// TurnDelay is the fixed pacing delay between turns.
	TurnDelay time.Duration

	// GenerationTimeout bounds each generation call. A timed-out call is
	// treated as a generation failure, not a fatal error.
	GenerationTimeout time.Duration
}

// Status describes a room's scheduler state.
type Status struct {
	Running bool `json:"running"`
	Paused  bool `json:"paused"`
}

// Registry owns every live Runner and is the only entry point for lifecycle
// operations. It must be explicitly constructed and held by the service; its
// lifetime is the process lifetime.
type Registry struct {
	mu      sync.Mutex
	runners map[string]*Runner

	store  store.Store
	gen    llm.Generator
	hub    *Hub
	logger *slog.Logger
	opts   Options
}

// NewRegistry creates a registry. Pass nil logger for default.
func NewRegistry(st store.Store, gen llm.Generator, hub *Hub, opts Options, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TurnDelay <= 0 {
		opts.TurnDelay = DefaultTurnDelay
	}
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = DefaultGenerationTimeout
	}
	return &Registry{
		runners: make(map[string]*Runner),
		store:   st,
		gen:     gen,
		hub:     hub,
		logger:  logger.With("component", "registry"),
		opts:    opts,
	}
}

// Start launches a room's scheduler. Returns ErrAlreadyRunning if a live,
// non-completed scheduler exists for the room. Room existence and a non-empty
// participant list are the caller's preconditions.
func (reg *Registry) Start(roomID string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if r, ok := reg.runners[roomID]; ok && !r.Done() {
		return ErrAlreadyRunning
	}

	r := newRunner(roomID, reg.store, reg.gen, reg.hub, reg.opts.TurnDelay, reg.opts.GenerationTimeout, reg.logger)
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	reg.runners[roomID] = r

	go r.Run(ctx)

	reg.logger.Info("simulation started", "room_id", roomID)
	return nil
}

// Pause closes the room's pause gate and broadcasts the paused status.
// Pausing an already-paused room succeeds and re-broadcasts.
func (reg *Registry) Pause(ctx context.Context, roomID string) error {
	r, err := reg.live(roomID)
	if err != nil {
		return err
	}

	r.gate.Close()
	if err := reg.store.SetRoomStatus(ctx, roomID, store.RoomStatusPaused); err != nil {
		return err
	}
	r.broadcastStatus(store.RoomStatusPaused)

	reg.logger.Info("simulation paused", "room_id", roomID)
	return nil
}

// Resume reopens the room's pause gate; the loop continues exactly where it
// left off.
func (reg *Registry) Resume(ctx context.Context, roomID string) error {
	r, err := reg.live(roomID)
	if err != nil {
		return err
	}

	r.gate.Open()
	if err := reg.store.SetRoomStatus(ctx, roomID, store.RoomStatusRunning); err != nil {
		return err
	}
	r.broadcastStatus(store.RoomStatusRunning)

	reg.logger.Info("simulation resumed", "room_id", roomID)
	return nil
}

// Stop terminates a room's scheduler: sets the stop flag, forces the pause
// gate open so a paused loop can observe it, cancels the loop's context,
// waits for termination and removes the registry entry. Returns ErrNotRunning
// if no entry exists for the room.
func (reg *Registry) Stop(roomID string) error {
	reg.mu.Lock()
	r, ok := reg.runners[roomID]
	reg.mu.Unlock()
	if !ok {
		return ErrNotRunning
	}

	r.stopped.Set()
	r.gate.Open()
	r.cancel()
	<-r.done

	reg.mu.Lock()
	// Guard against a racing Start having replaced the entry.
	if cur, ok := reg.runners[roomID]; ok && cur == r {
		delete(reg.runners, roomID)
	}
	reg.mu.Unlock()

	reg.logger.Info("simulation stopped", "room_id", roomID)
	return nil
}

// Inject enqueues out-of-band content for the room's loop. The message is
// consumed before the next speaker selection and never consumes a turn.
// Returns immediately; does not wait for the message to be processed.
func (reg *Registry) Inject(roomID, content string) error {
	r, err := reg.live(roomID)
	if err != nil {
		return err
	}
	r.queue.Push(content)
	return nil
}

// GetStatus reports whether a room's scheduler is live and whether it is
// paused. ok is false when no registry entry exists, which is a valid "not
// running" answer rather than an error.
func (reg *Registry) GetStatus(roomID string) (Status, bool) {
	reg.mu.Lock()
	r, ok := reg.runners[roomID]
	reg.mu.Unlock()
	if !ok {
		return Status{}, false
	}
	return Status{
		Running: !r.Done(),
		Paused:  r.gate.IsClosed(),
	}, true
}

// Shutdown stops every live simulation. Used during process shutdown.
func (reg *Registry) Shutdown() {
	reg.mu.Lock()
	roomIDs := make([]string, 0, len(reg.runners))
	for roomID := range reg.runners {
		roomIDs = append(roomIDs, roomID)
	}
	reg.mu.Unlock()

	for _, roomID := range roomIDs {
		if err := reg.Stop(roomID); err != nil && !errors.Is(err, ErrNotRunning) {
			reg.logger.Error("stopping simulation during shutdown", "room_id", roomID, "error", err)
		}
	}
}

// live returns the room's runner if it exists and has not completed.
func (reg *Registry) live(roomID string) (*Runner, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.runners[roomID]
	if !ok || r.Done() {
		return nil, ErrNotRunning
	}
	return r, nil
}

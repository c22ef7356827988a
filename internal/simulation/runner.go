// ABOUTME: Per-room turn scheduler driving the simulation loop
// ABOUTME: Selects speakers by turn order, generates content, persists and broadcasts

package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/baranbingol1/agent-nebula/internal/llm"
	"github.com/baranbingol1/agent-nebula/internal/store"
)

// finalizeTimeout bounds the persistence writes performed after the loop
// exits. A fresh context is used because the loop's context may already be
// cancelled by stop.
const finalizeTimeout = 5 * time.Second

// errorMarkerLimit caps the length of the failure description substituted
// when a generation call fails.
const errorMarkerLimit = 200

// Runner drives one room's turn loop. It is created and owned by the
// Registry; at most one live Runner exists per room.
type Runner struct {
	roomID string
	store  store.Store
	gen    llm.Generator
	hub    *Hub
	logger *slog.Logger

	turnDelay  time.Duration
	genTimeout time.Duration

	gate    *pauseGate
	queue   *injectQueue
	stopped stopFlag
	cancel  context.CancelFunc
	done    chan struct{}

	// turn counters mirrored for control-operation broadcasts
	turnIndex atomic.Int64
	maxTurns  atomic.Int64
}

func newRunner(roomID string, st store.Store, gen llm.Generator, hub *Hub, turnDelay, genTimeout time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		roomID:     roomID,
		store:      st,
		gen:        gen,
		hub:        hub,
		logger:     logger.With("component", "runner", "room_id", roomID),
		turnDelay:  turnDelay,
		genTimeout: genTimeout,
		gate:       newPauseGate(),
		queue:      newInjectQueue(),
		done:       make(chan struct{}),
	}
}

// Done reports whether the runner's loop has terminated.
func (r *Runner) Done() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Run executes the turn loop until the turn budget is exhausted, the stop
// flag is observed, or a fatal error occurs. It always performs a terminal
// persistence write and status broadcast before returning.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)

	err := r.loop(ctx)
	switch {
	case err == nil:
		status := store.RoomStatusIdle
		if r.stopped.IsSet() {
			status = store.RoomStatusStopped
		}
		r.finalize(status)
	case errors.Is(err, context.Canceled) || r.stopped.IsSet():
		// Cancellation mid-generation or mid-sleep still terminates cleanly.
		r.finalize(store.RoomStatusStopped)
	default:
		r.fail(err)
	}
}

func (r *Runner) loop(ctx context.Context) error {
	room, err := r.store.GetRoom(ctx, r.roomID)
	if err != nil {
		return fmt.Errorf("loading room: %w", err)
	}

	participants := room.Participants
	if len(participants) == 0 {
		// Callers reject starting an empty room; reaching this is a
		// precondition violation.
		return fmt.Errorf("room has no participants")
	}

	r.turnIndex.Store(int64(room.CurrentTurnIndex))
	r.maxTurns.Store(int64(room.MaxTurns))

	if err := r.store.SetRoomStatus(ctx, r.roomID, store.RoomStatusRunning); err != nil {
		return fmt.Errorf("marking room running: %w", err)
	}
	r.broadcastStatus(store.RoomStatusRunning)

	for !r.stopped.IsSet() && r.turn() < room.MaxTurns {
		// Pause suspension point. Stop forces the gate open, so re-check
		// the flag as soon as we're through.
		if err := r.gate.Wait(ctx); err != nil {
			return err
		}
		if r.stopped.IsSet() {
			break
		}

		if err := r.drainInjections(ctx); err != nil {
			return err
		}

		speaker := participants[r.turn()%len(participants)]
		agent, err := r.store.GetAgent(ctx, speaker.AgentID)
		if err != nil {
			return fmt.Errorf("loading agent %s: %w", speaker.AgentID, err)
		}

		r.hub.Publish(r.roomID, TypingEvent(agent.ID, agent.Name))

		content := r.generate(ctx, agent)
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := &store.Message{
			ID:         uuid.New().String(),
			RoomID:     r.roomID,
			AgentID:    &agent.ID,
			Role:       store.RoleAssistant,
			Content:    content,
			TurnNumber: r.turn(),
			CreatedAt:  time.Now().UTC(),
			AgentName:  agent.Name,
		}
		if err := r.store.SaveMessage(ctx, msg); err != nil {
			return fmt.Errorf("saving message: %w", err)
		}

		r.turnIndex.Add(1)
		if err := r.store.SetRoomTurn(ctx, r.roomID, store.RoomStatusRunning, r.turn()); err != nil {
			return fmt.Errorf("advancing turn index: %w", err)
		}

		r.hub.Publish(r.roomID, MessageEvent(msg))
		r.broadcastStatus(store.RoomStatusRunning)

		// Inter-turn pacing; bounds the request rate to the generator.
		if r.stopped.IsSet() || r.turn() >= room.MaxTurns {
			continue
		}
		select {
		case <-time.After(r.turnDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// drainInjections persists and broadcasts every queued injection before the
// next speaker is selected, so injected content appears in that speaker's
// context. Injections never consume a turn.
func (r *Runner) drainInjections(ctx context.Context) error {
	for _, content := range r.queue.Drain() {
		msg := &store.Message{
			ID:         uuid.New().String(),
			RoomID:     r.roomID,
			AgentID:    nil,
			Role:       store.RoleUser,
			Content:    content,
			TurnNumber: r.turn(),
			CreatedAt:  time.Now().UTC(),
			AgentName:  "User",
		}
		if err := r.store.SaveMessage(ctx, msg); err != nil {
			return fmt.Errorf("saving injected message: %w", err)
		}
		r.hub.Publish(r.roomID, MessageEvent(msg))
	}
	return nil
}

// generate produces the speaker's turn content. Generation failures are
// recovered locally: a bounded error marker is substituted and the loop
// continues as if generation succeeded.
func (r *Runner) generate(ctx context.Context, agent *store.Agent) string {
	messages, _, err := r.store.ListMessages(ctx, r.roomID, 0, 0)
	if err != nil {
		// History load failures fall into the generation-failure class:
		// the turn degrades, the simulation survives.
		r.logger.Error("loading history failed", "error", err)
		return errorMarker(err)
	}
	history := llm.BuildHistory(messages, agent.ID)

	genCtx, cancel := context.WithTimeout(ctx, r.genTimeout)
	defer cancel()

	content, err := r.gen.Generate(genCtx, agent, history)
	if err != nil {
		r.logger.Error("generation failed", "agent", agent.Name, "error", err)
		return errorMarker(err)
	}
	return content
}

func (r *Runner) finalize(status string) {
	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()

	if err := r.store.SetRoomTurn(ctx, r.roomID, status, r.turn()); err != nil {
		r.logger.Error("persisting terminal status failed", "status", status, "error", err)
	}
	r.broadcastStatus(status)
	r.logger.Info("simulation ended", "status", status, "turns", r.turn())
}

func (r *Runner) fail(err error) {
	r.logger.Error("simulation failed", "error", err)

	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()

	if serr := r.store.SetRoomStatus(ctx, r.roomID, store.RoomStatusIdle); serr != nil {
		r.logger.Error("persisting failed status", "error", serr)
	}
	r.hub.Publish(r.roomID, ErrorEvent(err.Error()))
}

func (r *Runner) broadcastStatus(status string) {
	r.hub.Publish(r.roomID, StatusEvent(status, r.turn(), int(r.maxTurns.Load())))
}

func (r *Runner) turn() int {
	return int(r.turnIndex.Load())
}

// errorMarker renders a generation failure as message content, truncated so
// a pathological error can't flood the conversation.
func errorMarker(err error) string {
	s := err.Error()
	if len(s) > errorMarkerLimit {
		s = s[:errorMarkerLimit]
	}
	return "[Error: " + s + "]"
}

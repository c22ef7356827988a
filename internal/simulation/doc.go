// Package simulation contains the runtime that drives multi-agent rooms.
//
// # Components
//
//   - Registry: process-wide map of room id to live Runner; the only entry
//     point for lifecycle operations (start/pause/resume/stop/inject/status).
//     At most one live Runner exists per room.
//   - Runner: the per-room turn loop. Selects the next speaker by turn order,
//     requests generated content, persists results, advances the turn index
//     and publishes events.
//   - Hub: best-effort fan-out of events to any number of room observers.
//   - Pause gate / stop flag / injection queue: the per-room concurrency
//     primitives the loop cooperates with.
//
// # Loop semantics
//
// Each iteration: wait on the pause gate, re-check the stop flag, drain all
// injected messages (role=user, no agent reference, tagged with the upcoming
// turn index), select participants[turn mod N], broadcast typing, generate,
// persist the assistant message, advance the index, broadcast message and
// status, then sleep the inter-turn delay.
//
// Generation failures are recovered locally with an error-marker message;
// persistence failures are fatal to the room only. Stop always produces a
// terminal "stopped" broadcast, even when the loop is interrupted mid-call.
package simulation

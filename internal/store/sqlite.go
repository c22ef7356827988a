// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides agent/room/message persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS agents (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			system_prompt TEXT NOT NULL,
			model TEXT NOT NULL,
			avatar_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'idle',
			current_turn_index INTEGER NOT NULL DEFAULT 0,
			max_turns INTEGER NOT NULL DEFAULT 20,
			created_at DATETIME NOT NULL,

			CHECK (status IN ('idle', 'running', 'paused', 'stopped'))
		);

		CREATE TABLE IF NOT EXISTS room_agents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room_id TEXT NOT NULL,
			agent_id TEXT NOT NULL,
			turn_order INTEGER NOT NULL,

			FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE,
			FOREIGN KEY (agent_id) REFERENCES agents(id) ON DELETE CASCADE,
			UNIQUE (room_id, agent_id),
			UNIQUE (room_id, turn_order)
		);

		CREATE INDEX IF NOT EXISTS idx_room_agents_room
			ON room_agents(room_id, turn_order);

		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			room_id TEXT NOT NULL,
			agent_id TEXT,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			turn_number INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,

			FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE,
			FOREIGN KEY (agent_id) REFERENCES agents(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_messages_room_created
			ON messages(room_id, created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// isConstraintViolation checks if the error is a SQLite UNIQUE constraint violation
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}

// CreateAgent inserts a new agent.
func (s *SQLiteStore) CreateAgent(ctx context.Context, agent *Agent) error {
	query := `
		INSERT INTO agents (id, name, system_prompt, model, avatar_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		agent.ID,
		agent.Name,
		agent.SystemPrompt,
		agent.Model,
		agent.AvatarID,
		agent.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting agent: %w", err)
	}

	s.logger.Debug("created agent", "id", agent.ID, "name", agent.Name)
	return nil
}

// GetAgent retrieves an agent by ID.
// Returns ErrNotFound if the agent doesn't exist.
func (s *SQLiteStore) GetAgent(ctx context.Context, id string) (*Agent, error) {
	query := `
		SELECT id, name, system_prompt, model, avatar_id, created_at
		FROM agents
		WHERE id = ?
	`

	agent, err := scanAgent(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying agent: %w", err)
	}
	return agent, nil
}

// ListAgents returns all agents ordered by creation time, newest first.
func (s *SQLiteStore) ListAgents(ctx context.Context) ([]*Agent, error) {
	query := `
		SELECT id, name, system_prompt, model, avatar_id, created_at
		FROM agents
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying agents: %w", err)
	}
	defer rows.Close()

	var agents []*Agent
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning agent: %w", err)
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

// UpdateAgent updates an existing agent.
// Returns ErrNotFound if the agent doesn't exist.
func (s *SQLiteStore) UpdateAgent(ctx context.Context, agent *Agent) error {
	query := `
		UPDATE agents
		SET name = ?, system_prompt = ?, model = ?, avatar_id = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		agent.Name,
		agent.SystemPrompt,
		agent.Model,
		agent.AvatarID,
		agent.ID,
	)
	if err != nil {
		return fmt.Errorf("updating agent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAgent removes an agent. Room assignments are deleted and each
// affected room's remaining turn orders are renumbered so they stay a
// contiguous zero-based sequence. Messages keep a NULL agent reference.
func (s *SQLiteStore) DeleteAgent(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT DISTINCT room_id FROM room_agents WHERE agent_id = ?`, id)
	if err != nil {
		return fmt.Errorf("querying affected rooms: %w", err)
	}
	var roomIDs []string
	for rows.Next() {
		var roomID string
		if err := rows.Scan(&roomID); err != nil {
			rows.Close()
			return fmt.Errorf("scanning room id: %w", err)
		}
		roomIDs = append(roomIDs, roomID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating affected rooms: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	for _, roomID := range roomIDs {
		if err := renumberParticipants(ctx, tx, roomID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.Debug("deleted agent", "id", id, "rooms_renumbered", len(roomIDs))
	return nil
}

// CreateRoom inserts a new room.
func (s *SQLiteStore) CreateRoom(ctx context.Context, room *Room) error {
	query := `
		INSERT INTO rooms (id, name, description, status, current_turn_index, max_turns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.Description,
		room.Status,
		room.CurrentTurnIndex,
		room.MaxTurns,
		room.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting room: %w", err)
	}

	s.logger.Debug("created room", "id", room.ID, "name", room.Name)
	return nil
}

// GetRoom retrieves a room by ID with its participants ordered by turn order.
// Returns ErrNotFound if the room doesn't exist.
func (s *SQLiteStore) GetRoom(ctx context.Context, id string) (*Room, error) {
	query := `
		SELECT id, name, description, status, current_turn_index, max_turns, created_at
		FROM rooms
		WHERE id = ?
	`

	room, err := scanRoom(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying room: %w", err)
	}

	room.Participants, err = s.roomParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	return room, nil
}

// ListRooms returns all rooms with participants, newest first.
func (s *SQLiteStore) ListRooms(ctx context.Context) ([]*Room, error) {
	query := `
		SELECT id, name, description, status, current_turn_index, max_turns, created_at
		FROM rooms
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, room := range rooms {
		room.Participants, err = s.roomParticipants(ctx, room.ID)
		if err != nil {
			return nil, err
		}
	}
	return rooms, nil
}

// UpdateRoom updates a room's mutable fields.
// Returns ErrNotFound if the room doesn't exist.
func (s *SQLiteStore) UpdateRoom(ctx context.Context, room *Room) error {
	query := `
		UPDATE rooms
		SET name = ?, description = ?, status = ?, current_turn_index = ?, max_turns = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		room.Name,
		room.Description,
		room.Status,
		room.CurrentTurnIndex,
		room.MaxTurns,
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("updating room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRoom removes a room along with its assignments and messages.
func (s *SQLiteStore) DeleteRoom(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted room", "id", id)
	return nil
}

// AddParticipant assigns an agent to a room with the next free turn order.
// Returns ErrDuplicateParticipant if the agent is already in the room and
// ErrNotFound if either the room or the agent doesn't exist.
func (s *SQLiteStore) AddParticipant(ctx context.Context, roomID, agentID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := entityExists(ctx, tx, "rooms", roomID); err != nil {
		return err
	}
	if err := entityExists(ctx, tx, "agents", agentID); err != nil {
		return err
	}

	var nextOrder int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(turn_order), -1) + 1 FROM room_agents WHERE room_id = ?`,
		roomID,
	).Scan(&nextOrder)
	if err != nil {
		return fmt.Errorf("querying next turn order: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO room_agents (room_id, agent_id, turn_order) VALUES (?, ?, ?)`,
		roomID, agentID, nextOrder,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrDuplicateParticipant
		}
		return fmt.Errorf("inserting participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.Debug("added participant", "room_id", roomID, "agent_id", agentID, "turn_order", nextOrder)
	return nil
}

// RemoveParticipant removes an agent from a room and closes the turn-order
// gap so the remaining orders stay contiguous.
// Returns ErrNotFound if the agent is not assigned to the room.
func (s *SQLiteStore) RemoveParticipant(ctx context.Context, roomID, agentID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM room_agents WHERE room_id = ? AND agent_id = ?`,
		roomID, agentID,
	)
	if err != nil {
		return fmt.Errorf("deleting participant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := renumberParticipants(ctx, tx, roomID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.Debug("removed participant", "room_id", roomID, "agent_id", agentID)
	return nil
}

// ReorderParticipants rewrites a room's turn orders to match the given agent
// ID sequence. The sequence must be a permutation of the room's current
// assignments; otherwise ErrNotFound is returned.
func (s *SQLiteStore) ReorderParticipants(ctx context.Context, roomID string, agentIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT agent_id FROM room_agents WHERE room_id = ?`, roomID)
	if err != nil {
		return fmt.Errorf("querying participants: %w", err)
	}
	existing := make(map[string]bool)
	for rows.Next() {
		var agentID string
		if err := rows.Scan(&agentID); err != nil {
			rows.Close()
			return fmt.Errorf("scanning participant: %w", err)
		}
		existing[agentID] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating participants: %w", err)
	}

	if len(agentIDs) != len(existing) {
		return ErrNotFound
	}
	for _, agentID := range agentIDs {
		if !existing[agentID] {
			return ErrNotFound
		}
	}

	// Two-phase renumber: move everything out of the way first so the
	// UNIQUE(room_id, turn_order) constraint never trips mid-update.
	if _, err := tx.ExecContext(ctx,
		`UPDATE room_agents SET turn_order = turn_order + 1000 WHERE room_id = ?`,
		roomID,
	); err != nil {
		return fmt.Errorf("offsetting turn orders: %w", err)
	}
	for i, agentID := range agentIDs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE room_agents SET turn_order = ? WHERE room_id = ? AND agent_id = ?`,
			i, roomID, agentID,
		); err != nil {
			return fmt.Errorf("setting turn order: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.Debug("reordered participants", "room_id", roomID, "count", len(agentIDs))
	return nil
}

// SaveMessage inserts a message.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *Message) error {
	query := `
		INSERT INTO messages (id, room_id, agent_id, role, content, turn_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		msg.ID,
		msg.RoomID,
		msg.AgentID,
		msg.Role,
		msg.Content,
		msg.TurnNumber,
		msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}

	s.logger.Debug("saved message", "id", msg.ID, "room_id", msg.RoomID, "role", msg.Role)
	return nil
}

// ListMessages returns a page of a room's messages in creation order along
// with the total message count for the room. limit <= 0 means no limit.
func (s *SQLiteStore) ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*Message, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE room_id = ?`, roomID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting messages: %w", err)
	}

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := `
		SELECT m.id, m.room_id, m.agent_id, m.role, m.content, m.turn_number, m.created_at,
		       COALESCE(a.name, '')
		FROM messages m
		LEFT JOIN agents a ON a.id = m.agent_id
		WHERE m.room_id = ?
		ORDER BY m.created_at ASC, m.rowid ASC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, roomID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var msg Message
		var agentID sql.NullString
		var createdAtStr string

		err := rows.Scan(
			&msg.ID,
			&msg.RoomID,
			&agentID,
			&msg.Role,
			&msg.Content,
			&msg.TurnNumber,
			&createdAtStr,
			&msg.AgentName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning message: %w", err)
		}

		if agentID.Valid {
			msg.AgentID = &agentID.String
		}
		msg.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
		if err != nil {
			return nil, 0, fmt.Errorf("parsing created_at: %w", err)
		}

		messages = append(messages, &msg)
	}
	return messages, total, rows.Err()
}

// SetRoomStatus updates only a room's status.
// Returns ErrNotFound if the room doesn't exist.
func (s *SQLiteStore) SetRoomStatus(ctx context.Context, roomID, status string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE rooms SET status = ? WHERE id = ?`, status, roomID)
	if err != nil {
		return fmt.Errorf("updating room status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRoomTurn updates a room's status and current turn index together.
// Returns ErrNotFound if the room doesn't exist.
func (s *SQLiteStore) SetRoomTurn(ctx context.Context, roomID string, status string, turnIndex int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE rooms SET status = ?, current_turn_index = ? WHERE id = ?`,
		status, turnIndex, roomID)
	if err != nil {
		return fmt.Errorf("updating room turn: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// roomParticipants loads a room's assignments ordered by turn order.
func (s *SQLiteStore) roomParticipants(ctx context.Context, roomID string) ([]Participant, error) {
	query := `
		SELECT ra.agent_id, a.name, ra.turn_order
		FROM room_agents ra
		JOIN agents a ON a.id = ra.agent_id
		WHERE ra.room_id = ?
		ORDER BY ra.turn_order ASC
	`

	rows, err := s.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("querying participants: %w", err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.AgentID, &p.AgentName, &p.TurnOrder); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// renumberParticipants rewrites a room's turn orders as 0..N-1 preserving the
// current relative order. Runs inside the caller's transaction.
func renumberParticipants(ctx context.Context, tx *sql.Tx, roomID string) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT agent_id FROM room_agents WHERE room_id = ? ORDER BY turn_order ASC`,
		roomID,
	)
	if err != nil {
		return fmt.Errorf("querying participants for renumber: %w", err)
	}
	var agentIDs []string
	for rows.Next() {
		var agentID string
		if err := rows.Scan(&agentID); err != nil {
			rows.Close()
			return fmt.Errorf("scanning participant: %w", err)
		}
		agentIDs = append(agentIDs, agentID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating participants: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE room_agents SET turn_order = turn_order + 1000 WHERE room_id = ?`,
		roomID,
	); err != nil {
		return fmt.Errorf("offsetting turn orders: %w", err)
	}
	for i, agentID := range agentIDs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE room_agents SET turn_order = ? WHERE room_id = ? AND agent_id = ?`,
			i, roomID, agentID,
		); err != nil {
			return fmt.Errorf("renumbering turn order: %w", err)
		}
	}
	return nil
}

// entityExists checks a row exists in the given table, returning ErrNotFound
// if it doesn't. Table name must be a trusted constant.
func entityExists(ctx context.Context, tx *sql.Tx, table, id string) error {
	var one int
	err := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT 1 FROM %s WHERE id = ?`, table), id,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking %s existence: %w", table, err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanAgent(row scanner) (*Agent, error) {
	var agent Agent
	var createdAtStr string

	err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.SystemPrompt,
		&agent.Model,
		&agent.AvatarID,
		&createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	agent.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &agent, nil
}

func scanRoom(row scanner) (*Room, error) {
	var room Room
	var createdAtStr string

	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.Status,
		&room.CurrentTurnIndex,
		&room.MaxTurns,
		&createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	room.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &room, nil
}

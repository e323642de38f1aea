// Package relay implements the room relay core: connection registration,
// message routing with authority checks, room state mutation, and fan-out
// to room members. The server holds no game logic; it coordinates room
// membership, host designation, and a small set of shared ordered facts.
package relay

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noahzinx22/nextbot-multiplayer-server/internal/game/ident"
	"github.com/noahzinx22/nextbot-multiplayer-server/internal/game/room"
	"github.com/noahzinx22/nextbot-multiplayer-server/internal/game/session"
)

// Relay owns the room and session registries and serializes every
// mutation-plus-broadcast sequence under one event mutex, so no two handlers
// interleave a read-modify-write on the same room.
type Relay struct {
	mu       sync.Mutex
	logger   *zap.Logger
	gen      *ident.Generator
	sessions *session.Manager
	rooms    *room.Registry
	now      func() time.Time
}

// New creates a Relay with empty registries.
//
// Precondition: logger and gen must be non-nil.
func New(logger *zap.Logger, gen *ident.Generator) *Relay {
	return &Relay{
		logger:   logger,
		gen:      gen,
		sessions: session.NewManager(),
		rooms:    room.NewRegistry(gen),
		now:      time.Now,
	}
}

// Register assigns a connection id to conn, records the session, and sends
// the hello envelope. Called once per connection before any client message.
//
// Postcondition: Returns a registered Session with a unique id.
func (r *Relay) Register(conn session.Sender) *session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sess *session.Session
	for {
		s, err := r.sessions.Add(r.gen.ConnectionID(), conn)
		if err == nil {
			sess = s
			break
		}
		// An id collision is possible in principle; draw again.
	}

	r.logger.Info("connection registered", zap.String("conn", sess.ID))
	r.send(sess, helloMsg{Type: "hello", ID: sess.ID})
	return sess
}

// Disconnect tears down a session after its transport closes: leave the
// current room (electing a new host if needed), then drop the session.
func (r *Relay) Disconnect(sess *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeFromRoom(sess)
	if err := r.sessions.Remove(sess.ID); err != nil {
		r.logger.Debug("disconnect for unknown session", zap.String("conn", sess.ID))
		return
	}
	r.logger.Info("connection closed", zap.String("conn", sess.ID))
}

// HandleMessage routes one raw inbound message from sess. Malformed
// payloads, unknown types, and unauthorized mutations are dropped without a
// reply; the only error envelope the relay emits is join_room's
// "room not found".
func (r *Relay) HandleMessage(sess *session.Session, data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		r.logger.Debug("dropping malformed message",
			zap.String("conn", sess.ID),
			zap.Error(err),
		)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions.Get(sess.ID); !ok {
		// Already disconnected.
		return
	}

	switch msg.Type {
	case typeCreateRoom:
		r.handleCreateRoom(sess)
	case typeJoinRoom:
		r.handleJoinRoom(sess, msg)
	case typeRoomConfig:
		r.handleRoomConfig(sess, msg)
	case typeStartGame:
		r.handleStartGame(sess)
	case typeLeaveRoom:
		r.handleLeaveRoom(sess)
	case typeState:
		r.handleState(sess, msg)
	case typeBotsState:
		r.handleBotsState(sess, msg)
	case typeCollectItem:
		r.handleCollectItem(sess, msg)
	case typeResetCollectibles:
		r.handleResetCollectibles(sess)
	case typePing:
		r.handlePing(sess)
	default:
		r.logger.Debug("dropping unknown message type",
			zap.String("conn", sess.ID),
			zap.String("msg_type", msg.Type),
		)
	}
}

// RoomCount returns the number of active rooms.
func (r *Relay) RoomCount() int {
	return r.rooms.Count()
}

// SessionCount returns the number of live connections.
func (r *Relay) SessionCount() int {
	return r.sessions.Count()
}

// roomOf resolves the sender's current room. Returns nil when the session
// has no room or the reference is stale; callers drop the message.
func (r *Relay) roomOf(sess *session.Session) *room.Room {
	if !sess.InRoom() {
		return nil
	}
	rm, ok := r.rooms.Get(sess.RoomCode)
	if !ok {
		return nil
	}
	return rm
}

// removeFromRoom takes sess out of its room, electing a replacement host and
// destroying the room if it empties. Shared by leave_room and Disconnect.
// Caller holds the event mutex.
func (r *Relay) removeFromRoom(sess *session.Session) {
	if !sess.InRoom() {
		return
	}
	code := sess.RoomCode

	rm, ok := r.rooms.Get(code)
	if !ok {
		sess.ClearRoom()
		return
	}

	wasHost, empty := rm.Leave(sess.ID)
	sess.ClearRoom()

	if empty {
		r.rooms.Destroy(code)
		r.logger.Info("room destroyed", zap.String("room", code))
		return
	}

	if wasHost {
		newHostID := rm.ElectHost()
		if hostSess, ok := r.sessions.Get(newHostID); ok {
			hostSess.IsHost = true
		}
		r.logger.Info("host migrated",
			zap.String("room", code),
			zap.String("host", newHostID),
		)
		r.broadcast(rm, hostChangedMsg{Type: "host_changed", HostID: rm.HostID, Config: rm.Config}, "")
	}

	r.broadcast(rm, playerLeftMsg{Type: "player_left", ID: sess.ID}, "")
	r.broadcast(rm, roomPlayersMsg{Type: "room_players", Players: rm.Players(), HostID: rm.HostID}, "")
}

// send delivers one envelope to a single session, fire-and-forget.
func (r *Relay) send(sess *session.Session, msg any) {
	if !sess.Conn.IsOpen() {
		return
	}
	if err := sess.Conn.Send(msg); err != nil {
		r.logger.Debug("unicast delivery failed",
			zap.String("conn", sess.ID),
			zap.Error(err),
		)
	}
}

// broadcast delivers one envelope to every open member of rm, skipping
// except when non-empty. A failed delivery never aborts the rest and never
// surfaces to the triggering handler.
func (r *Relay) broadcast(rm *room.Room, msg any, except string) {
	for _, id := range rm.Players() {
		if id == except {
			continue
		}
		sess, ok := r.sessions.Get(id)
		if !ok || !sess.Conn.IsOpen() {
			continue
		}
		if err := sess.Conn.Send(msg); err != nil {
			r.logger.Debug("broadcast delivery failed",
				zap.String("room", rm.Code),
				zap.String("conn", id),
				zap.Error(err),
			)
		}
	}
}

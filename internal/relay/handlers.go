package relay

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/noahzinx22/nextbot-multiplayer-server/internal/game/session"
)

// All handlers run with the event mutex held and are total: every
// (state, message) pair either mutates state and emits envelopes or is
// dropped; nothing escapes to the transport as a failure.

func (r *Relay) handleCreateRoom(sess *session.Session) {
	if sess.InRoom() {
		return
	}

	rm := r.rooms.Create(sess.ID)
	sess.RoomCode = rm.Code
	sess.IsHost = true

	r.logger.Info("room created",
		zap.String("room", rm.Code),
		zap.String("host", sess.ID),
	)

	r.send(sess, roomCreatedMsg{
		Type:         "room_created",
		Code:         rm.Code,
		Seed:         rm.Seed,
		ID:           sess.ID,
		HostID:       rm.HostID,
		IsHost:       true,
		Config:       rm.Config,
		StartSeq:     rm.StartSeq,
		CollectTaken: rm.Collect.Taken(),
		CollectCount: rm.Collect.Count(),
		CollectSeed:  rm.Collect.Seed(),
	})
	r.broadcast(rm, roomPlayersMsg{Type: "room_players", Players: rm.Players(), HostID: rm.HostID}, "")
}

func (r *Relay) handleJoinRoom(sess *session.Session, msg clientMessage) {
	if sess.InRoom() {
		return
	}

	// Codes are case-insensitive for clients.
	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	rm, ok := r.rooms.Get(code)
	if !ok {
		r.send(sess, errorMsg{Type: "error", Error: errRoomNotFound})
		return
	}

	rm.Join(sess.ID)
	sess.RoomCode = code
	sess.IsHost = rm.HostID == sess.ID

	r.logger.Info("player joined",
		zap.String("room", code),
		zap.String("conn", sess.ID),
		zap.Int("members", rm.Size()),
	)

	r.send(sess, joinedMsg{
		Type:         "joined",
		Code:         code,
		Seed:         rm.Seed,
		ID:           sess.ID,
		Players:      rm.Players(),
		HostID:       rm.HostID,
		StartSeq:     rm.StartSeq,
		Bots:         rm.Bots,
		Config:       rm.Config,
		CollectTaken: rm.Collect.Taken(),
		CollectCount: rm.Collect.Count(),
		CollectSeed:  rm.Collect.Seed(),
	})

	r.broadcast(rm, playerJoinedMsg{Type: "player_joined", ID: sess.ID}, sess.ID)
	r.broadcast(rm, roomPlayersMsg{Type: "room_players", Players: rm.Players(), HostID: rm.HostID}, "")

	// Catch the joiner up on sticky facts right away.
	if rm.Bots != nil {
		r.send(sess, botsStateMsg{Type: "bots_state", Bots: rm.Bots, HostID: rm.HostID})
	}
	r.send(sess, roomConfigMsg{Type: "room_config", Config: rm.Config, HostID: rm.HostID})
}

func (r *Relay) handleRoomConfig(sess *session.Session, msg clientMessage) {
	rm := r.roomOf(sess)
	if rm == nil {
		return
	}
	if !rm.SetConfig(sess.ID, msg.Config) {
		return
	}

	r.logger.Info("room config changed",
		zap.String("room", rm.Code),
		zap.Int("difficulty", rm.Config.Difficulty),
		zap.Bool("noah_enabled", rm.Config.NoahEnabled),
	)

	// The host already applied the config locally; skip it.
	r.broadcast(rm, roomConfigMsg{Type: "room_config", Config: rm.Config, HostID: rm.HostID}, sess.ID)
}

func (r *Relay) handleStartGame(sess *session.Session) {
	rm := r.roomOf(sess)
	if rm == nil {
		return
	}
	seq, ok := rm.StartGame(sess.ID)
	if !ok {
		return
	}

	r.logger.Info("game started",
		zap.String("room", rm.Code),
		zap.Int("seq", seq),
	)

	r.broadcast(rm, startGameMsg{
		Type:       "start_game",
		Seq:        seq,
		HostID:     rm.HostID,
		ServerTime: r.now().UnixMilli(),
		DelayMs:    startDelayMs,
	}, "")
}

func (r *Relay) handleLeaveRoom(sess *session.Session) {
	r.removeFromRoom(sess)
}

func (r *Relay) handleState(sess *session.Session, msg clientMessage) {
	rm := r.roomOf(sess)
	if rm == nil {
		return
	}
	state := nullable(msg.State)
	rm.SetState(sess.ID, state)
	r.broadcast(rm, stateMsg{Type: "state", ID: sess.ID, State: state}, sess.ID)
}

func (r *Relay) handleBotsState(sess *session.Session, msg clientMessage) {
	rm := r.roomOf(sess)
	if rm == nil {
		return
	}
	if !rm.SetBots(sess.ID, nullable(msg.Bots)) {
		return
	}
	r.broadcast(rm, botsStateMsg{Type: "bots_state", Bots: rm.Bots, HostID: rm.HostID}, sess.ID)
}

func (r *Relay) handleCollectItem(sess *session.Session, msg clientMessage) {
	rm := r.roomOf(sess)
	if rm == nil {
		return
	}
	// Idempotent: duplicates still confirm the current count to everyone,
	// sender included.
	count, _ := rm.Collect.Collect(msg.Item)
	r.broadcast(rm, collectTakenMsg{Type: "collect_taken", ID: msg.Item, Count: count}, "")
}

func (r *Relay) handleResetCollectibles(sess *session.Session) {
	rm := r.roomOf(sess)
	if rm == nil {
		return
	}
	// Any member can reset: any player's death triggers a world reset.
	seed := rm.Collect.Reset()

	r.logger.Info("collectibles reset",
		zap.String("room", rm.Code),
		zap.Uint32("seq", rm.Collect.Seq()),
	)

	r.broadcast(rm, collectResetMsg{Type: "collect_reset", Seed: seed}, "")
}

func (r *Relay) handlePing(sess *session.Session) {
	r.send(sess, pongMsg{Type: "pong", T: r.now().UnixMilli()})
}

// nullable normalizes an absent blob to JSON null so stored and relayed
// state are identical.
func nullable(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

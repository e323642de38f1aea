package relay

import (
	"encoding/json"

	"github.com/noahzinx22/nextbot-multiplayer-server/internal/game/room"
)

// Inbound message types. Unknown types are dropped without a reply so newer
// clients keep working against older relays.
const (
	typeCreateRoom        = "create_room"
	typeJoinRoom          = "join_room"
	typeRoomConfig        = "room_config"
	typeStartGame         = "start_game"
	typeLeaveRoom         = "leave_room"
	typeState             = "state"
	typeBotsState         = "bots_state"
	typeCollectItem       = "collect_item"
	typeResetCollectibles = "reset_collectibles"
	typePing              = "ping"
)

// errRoomNotFound is the only machine-readable error code the relay emits.
const errRoomNotFound = "room not found"

// startDelayMs is the fixed countdown lead-in carried on start_game so
// clients begin in sync.
const startDelayMs = 250

// clientMessage is the inbound envelope. Fields beyond Type are populated
// per message type; the server never inspects the opaque blobs.
type clientMessage struct {
	Type   string          `json:"type"`
	Code   string          `json:"code,omitempty"`
	State  json.RawMessage `json:"state,omitempty"`
	Bots   json.RawMessage `json:"bots,omitempty"`
	Config map[string]any  `json:"config,omitempty"`
	Item   string          `json:"id,omitempty"`
}

// Outbound envelopes. Each carries its own type discriminator so the
// transport stays a dumb JSON pipe.

type helloMsg struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type errorMsg struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type roomCreatedMsg struct {
	Type         string          `json:"type"`
	Code         string          `json:"code"`
	Seed         uint32          `json:"seed"`
	ID           string          `json:"id"`
	HostID       string          `json:"hostId"`
	IsHost       bool            `json:"isHost"`
	Config       room.GameConfig `json:"config"`
	StartSeq     int             `json:"startSeq"`
	CollectTaken []string        `json:"collectTaken"`
	CollectCount int             `json:"collectCount"`
	CollectSeed  uint32          `json:"collectSeed"`
}

type joinedMsg struct {
	Type         string          `json:"type"`
	Code         string          `json:"code"`
	Seed         uint32          `json:"seed"`
	ID           string          `json:"id"`
	Players      []string        `json:"players"`
	HostID       string          `json:"hostId"`
	StartSeq     int             `json:"startSeq"`
	Bots         json.RawMessage `json:"bots"`
	Config       room.GameConfig `json:"config"`
	CollectTaken []string        `json:"collectTaken"`
	CollectCount int             `json:"collectCount"`
	CollectSeed  uint32          `json:"collectSeed"`
}

type roomPlayersMsg struct {
	Type    string   `json:"type"`
	Players []string `json:"players"`
	HostID  string   `json:"hostId"`
}

type playerJoinedMsg struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type playerLeftMsg struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type hostChangedMsg struct {
	Type   string          `json:"type"`
	HostID string          `json:"hostId"`
	Config room.GameConfig `json:"config"`
}

type roomConfigMsg struct {
	Type   string          `json:"type"`
	Config room.GameConfig `json:"config"`
	HostID string          `json:"hostId"`
}

type startGameMsg struct {
	Type       string `json:"type"`
	Seq        int    `json:"seq"`
	HostID     string `json:"hostId"`
	ServerTime int64  `json:"serverTime"`
	DelayMs    int    `json:"delayMs"`
}

type stateMsg struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	State json.RawMessage `json:"state"`
}

type botsStateMsg struct {
	Type   string          `json:"type"`
	Bots   json.RawMessage `json:"bots"`
	HostID string          `json:"hostId"`
}

type collectTakenMsg struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Count int    `json:"count"`
}

type collectResetMsg struct {
	Type string `json:"type"`
	Seed uint32 `json:"seed"`
}

type pongMsg struct {
	Type string `json:"type"`
	T    int64  `json:"t"`
}

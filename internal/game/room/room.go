// Package room holds the authoritative state of one multiplayer session:
// membership, host designation, shared seed, game options, bot state, start
// sequencing, and collectible pickups.
package room

import "encoding/json"

// Room is the mutable state of one active session.
//
// Rooms are not self-locking: the relay serializes every mutation and its
// following broadcast under a single event mutex (or a single-threaded test).
//
// Invariant: the player-state keys are exactly the member ids, in join order.
// Invariant: HostID names a current member whenever the room is non-empty.
type Room struct {
	// Code is the human-enterable room identifier, unique among active rooms.
	Code string
	// Seed is the 32-bit world seed shared with every joiner.
	Seed uint32
	// HostID is the connection id with authority over config, bots, and start.
	HostID string
	// Config holds the recognized game options.
	Config GameConfig
	// Bots is the host's last authoritative bot-state blob, or nil.
	Bots json.RawMessage
	// StartSeq counts host-issued start signals; 0 means no game has started.
	StartSeq int
	// Collect tracks collectible pickups and the derived respawn seed.
	Collect *Collectibles

	order  []string
	states map[string]json.RawMessage
}

// New creates a room with the given code and seed, default config, empty
// collectibles, and hostID as the sole member with a null player state.
func New(code string, seed uint32, hostID string) *Room {
	r := &Room{
		Code:    code,
		Seed:    seed,
		HostID:  hostID,
		Config:  DefaultConfig(),
		Collect: NewCollectibles(seed),
		states:  make(map[string]json.RawMessage),
	}
	r.Join(hostID)
	return r
}

// Join adds id to the roster with a null player state. The host designation
// is unchanged. Joining twice is a no-op.
func (r *Room) Join(id string) {
	if _, present := r.states[id]; present {
		return
	}
	r.order = append(r.order, id)
	r.states[id] = nil
}

// Leave removes id from the roster and its player state.
//
// Postcondition: wasHost reports whether id was the host (the caller must
// elect a replacement unless empty is true); empty reports whether the room
// has no members left and must be destroyed.
func (r *Room) Leave(id string) (wasHost, empty bool) {
	if _, present := r.states[id]; !present {
		return false, len(r.states) == 0
	}
	delete(r.states, id)
	for i, member := range r.order {
		if member == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return id == r.HostID, len(r.states) == 0
}

// Has reports whether id is a current member.
func (r *Room) Has(id string) bool {
	_, present := r.states[id]
	return present
}

// Players returns the roster as connection ids in join order.
//
// Postcondition: The returned slice is a copy.
func (r *Room) Players() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Size returns the number of members.
func (r *Room) Size() int {
	return len(r.states)
}

// SetState overwrites id's last-known player state blob. The blob is opaque
// to the server. Silently a no-op when id is not a member.
func (r *Room) SetState(id string, state json.RawMessage) {
	if _, present := r.states[id]; !present {
		return
	}
	r.states[id] = state
}

// State returns id's last-known player state blob, nil until first reported.
func (r *Room) State(id string) json.RawMessage {
	return r.states[id]
}

// SetConfig merges recognized keys from patch into the room config. Host
// only: any other sender is silently ignored.
//
// Postcondition: Returns true iff the patch was applied.
func (r *Room) SetConfig(id string, patch map[string]any) bool {
	if id != r.HostID {
		return false
	}
	r.Config = r.Config.merge(patch)
	return true
}

// SetBots replaces the authoritative bot-state blob wholesale. Host only:
// any other sender is silently ignored.
//
// Postcondition: Returns true iff the blob was applied.
func (r *Room) SetBots(id string, bots json.RawMessage) bool {
	if id != r.HostID {
		return false
	}
	r.Bots = bots
	return true
}

// StartGame increments the start sequence. Host only: any other sender is
// silently ignored.
//
// Postcondition: On success, returns the new sequence value and true; the
// sequence is strictly greater than every previously returned value.
func (r *Room) StartGame(id string) (seq int, ok bool) {
	if id != r.HostID {
		return 0, false
	}
	r.StartSeq++
	return r.StartSeq, true
}

// ElectHost designates the first remaining member (in join order) as host.
//
// Precondition: The previous host has already left the roster.
// Postcondition: Returns the new host id, or "" if the room is empty.
func (r *Room) ElectHost() string {
	if len(r.order) == 0 {
		r.HostID = ""
		return ""
	}
	r.HostID = r.order[0]
	return r.HostID
}

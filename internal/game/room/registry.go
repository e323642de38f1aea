package room

import (
	"sync"

	"github.com/noahzinx22/nextbot-multiplayer-server/internal/game/ident"
)

// Registry owns the mapping of room code to Room.
// The map itself is safe for concurrent use; the Rooms it hands out are
// relay-serialized (see Room).
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	gen   *ident.Generator
}

// NewRegistry creates an empty Registry drawing codes and seeds from gen.
//
// Precondition: gen must be non-nil.
func NewRegistry(gen *ident.Generator) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		gen:   gen,
	}
}

// Create allocates a fresh room with a code unique among active rooms, a
// fresh seed, default config, and hostID as sole member.
//
// Postcondition: The returned room is registered under its code.
func (reg *Registry) Create(hostID string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var code string
	for {
		code = reg.gen.RoomCode()
		if _, taken := reg.rooms[code]; !taken {
			break
		}
	}

	r := New(code, reg.gen.Seed(), hostID)
	reg.rooms[code] = r
	return r
}

// Get returns the room registered under code.
//
// Postcondition: Returns (room, true) if found, or (nil, false) otherwise.
// Callers must treat a miss as a user-facing condition, not a fault.
func (reg *Registry) Get(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[code]
	return r, ok
}

// Destroy removes the room registered under code. No history is retained;
// the code becomes available for reuse. Destroying an unknown code is a
// no-op.
func (reg *Registry) Destroy(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

// Count returns the number of active rooms.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

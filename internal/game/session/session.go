// Package session provides connection session tracking for the relay.
package session

// Sender is the transport capability a session exposes to the relay: a
// best-effort, fire-and-forget envelope writer. Implementations must be
// safe for concurrent use.
type Sender interface {
	// Send writes one outbound envelope. Failures are the caller's to
	// ignore; a returned error never implies the message may be retried.
	Send(v any) error
	// IsOpen reports whether the transport can still accept writes.
	IsOpen() bool
}

// Session tracks one live connection's relay-side metadata.
//
// Invariant: IsHost is false whenever RoomCode is empty.
type Session struct {
	// ID is the opaque connection id, assigned at connect time and stable
	// for the connection's lifetime.
	ID string
	// RoomCode is the code of the joined room, or "" when not in a room.
	RoomCode string
	// IsHost is true iff this connection is the current host of its room.
	IsHost bool
	// Conn is the transport used to push envelopes to the client.
	Conn Sender
}

// InRoom reports whether the session has an active room.
func (s *Session) InRoom() bool {
	return s.RoomCode != ""
}

// ClearRoom resets the session's room fields after a leave or disconnect.
//
// Postcondition: RoomCode is "" and IsHost is false.
func (s *Session) ClearRoom() {
	s.RoomCode = ""
	s.IsHost = false
}

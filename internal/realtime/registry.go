package realtime

import (
	"sort"
	"sync"

	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
)

// roomEntry records one connection inside a room along with its join order
type roomEntry struct {
	viewer model.Viewer
	seq    uint64
}

// RoomRegistry is the process-wide mapping from auction id to the set of
// connections currently viewing it. All access to the underlying maps goes
// through these four operations; no other component may reach inside.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]map[string]roomEntry // auctionID -> connID -> entry
	seq   uint64
}

// NewRoomRegistry creates an empty registry
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]map[string]roomEntry),
	}
}

// Join inserts a connection into an auction's presence set, creating the room
// if absent, and returns the deduplicated active viewer list after the join.
func (r *RoomRegistry) Join(auctionID, connID string, v model.Viewer) []model.Viewer {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[auctionID]
	if !ok {
		room = make(map[string]roomEntry)
		r.rooms[auctionID] = room
	}
	r.seq++
	room[connID] = roomEntry{viewer: v, seq: r.seq}

	return activeUsersLocked(room)
}

// Leave removes a connection from a room. Removing the last connection
// removes the room itself. Leaving a room the connection is not in is a no-op.
func (r *RoomRegistry) Leave(auctionID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[auctionID]
	if !ok {
		return
	}
	delete(room, connID)
	if len(room) == 0 {
		delete(r.rooms, auctionID)
	}
}

// ActiveUsers returns the room's viewers deduplicated by user id, ordered by
// first join
func (r *RoomRegistry) ActiveUsers(auctionID string) []model.Viewer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[auctionID]
	if !ok {
		return []model.Viewer{}
	}
	return activeUsersLocked(room)
}

// CleanupConnection removes a connection from every room it belongs to and
// returns the auction ids it was removed from. A connection only ever joins
// one room at a time, so the result holds at most one id.
func (r *RoomRegistry) CleanupConnection(connID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	affected := make([]string, 0, 1)
	for auctionID, room := range r.rooms {
		if _, ok := room[connID]; !ok {
			continue
		}
		delete(room, connID)
		affected = append(affected, auctionID)
		if len(room) == 0 {
			delete(r.rooms, auctionID)
		}
	}
	return affected
}

// Connections returns the connection ids currently in a room
func (r *RoomRegistry) Connections(auctionID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[auctionID]
	if !ok {
		return nil
	}
	conns := make([]string, 0, len(room))
	for connID := range room {
		conns = append(conns, connID)
	}
	return conns
}

// RoomCount returns the number of live rooms, for observability
func (r *RoomRegistry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// activeUsersLocked deduplicates a room by user id, keeping each user's
// earliest join position for a stable presence order
func activeUsersLocked(room map[string]roomEntry) []model.Viewer {
	type first struct {
		viewer model.Viewer
		seq    uint64
	}
	byUser := make(map[string]first, len(room))
	for _, e := range room {
		f, ok := byUser[e.viewer.UserID]
		if !ok || e.seq < f.seq {
			byUser[e.viewer.UserID] = first{viewer: e.viewer, seq: e.seq}
		}
	}

	firsts := make([]first, 0, len(byUser))
	for _, f := range byUser {
		firsts = append(firsts, f)
	}
	sort.Slice(firsts, func(i, j int) bool { return firsts[i].seq < firsts[j].seq })

	viewers := make([]model.Viewer, len(firsts))
	for i, f := range firsts {
		viewers[i] = f.viewer
	}
	return viewers
}

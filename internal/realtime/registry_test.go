package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
)

func viewer(userID string) model.Viewer {
	return model.Viewer{UserID: userID, UserName: userID + " name"}
}

// Test Join and ActiveUsers deduplication
func TestRoomRegistry_JoinAndActiveUsers(t *testing.T) {
	t.Parallel()

	r := NewRoomRegistry()

	active := r.Join("a1", "c1", viewer("u1"))
	require.Len(t, active, 1)
	require.Equal(t, "u1", active[0].UserID)

	active = r.Join("a1", "c2", viewer("u2"))
	require.Len(t, active, 2)

	// same user, second tab: still counted once
	active = r.Join("a1", "c3", viewer("u1"))
	require.Len(t, active, 2)

	// presence order is stable by first join
	require.Equal(t, "u1", active[0].UserID)
	require.Equal(t, "u2", active[1].UserID)

	require.Len(t, r.Connections("a1"), 3)
	require.Empty(t, r.ActiveUsers("other"), "unknown room reads as empty")
}

// Multi-tab semantics: closing one tab keeps the user present, closing the
// last removes them, and an empty room disappears from the registry
func TestRoomRegistry_MultiTabLifecycle(t *testing.T) {
	t.Parallel()

	r := NewRoomRegistry()
	r.Join("a1", "tab1", viewer("u1"))
	r.Join("a1", "tab2", viewer("u1"))
	r.Join("a1", "c3", viewer("u2"))

	r.Leave("a1", "tab1")
	active := r.ActiveUsers("a1")
	require.Len(t, active, 2, "user stays present while one tab remains")

	r.Leave("a1", "tab2")
	active = r.ActiveUsers("a1")
	require.Len(t, active, 1)
	require.Equal(t, "u2", active[0].UserID)

	r.Leave("a1", "c3")
	require.Equal(t, 0, r.RoomCount(), "empty room is removed from the registry")
}

// Leave is idempotent and ignores unknown rooms and connections
func TestRoomRegistry_LeaveIdempotent(t *testing.T) {
	t.Parallel()

	r := NewRoomRegistry()
	r.Join("a1", "c1", viewer("u1"))

	r.Leave("a1", "ghost")
	r.Leave("nope", "c1")
	require.Len(t, r.ActiveUsers("a1"), 1)

	r.Leave("a1", "c1")
	r.Leave("a1", "c1")
	require.Equal(t, 0, r.RoomCount())
}

// CleanupConnection removes the connection wherever it is and reports the
// affected rooms
func TestRoomRegistry_CleanupConnection(t *testing.T) {
	t.Parallel()

	r := NewRoomRegistry()
	r.Join("a1", "c1", viewer("u1"))
	r.Join("a1", "c2", viewer("u2"))
	r.Join("a2", "c3", viewer("u3"))

	affected := r.CleanupConnection("c1")
	require.Equal(t, []string{"a1"}, affected)
	require.Len(t, r.ActiveUsers("a1"), 1)

	require.Empty(t, r.CleanupConnection("ghost"))

	affected = r.CleanupConnection("c3")
	require.Equal(t, []string{"a2"}, affected)
	require.Equal(t, 1, r.RoomCount(), "a2 emptied and was removed")
}

// Concurrent joins and leaves across rooms must not corrupt the registry
func TestRoomRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRoomRegistry()
	const workers = 24

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			room := fmt.Sprintf("a%d", i%3)
			connID := fmt.Sprintf("c%d", i)
			r.Join(room, connID, viewer(fmt.Sprintf("u%d", i%6)))
			r.ActiveUsers(room)
			if i%2 == 0 {
				r.Leave(room, connID)
			} else {
				r.CleanupConnection(connID)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 0, r.RoomCount())
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := New(map[Namespace]time.Duration{
		NamespaceTeam:   ttl,
		NamespacePlayer: ttl,
	})
	s.now = func() time.Time { return now }
	return s, &now
}

func TestStore_GetSetWithinTTL(t *testing.T) {
	s, _ := newTestStore(5 * time.Minute)

	_, ok := s.Get(NamespaceTeam, "9517508")
	require.False(t, ok)

	s.Set(NamespaceTeam, "9517508", "team-a")
	v, ok := s.Get(NamespaceTeam, "9517508")
	require.True(t, ok)
	require.Equal(t, "team-a", v)
}

func TestStore_ExpiredEntryIsMissButKept(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)

	s.Set(NamespaceTeam, "1", "v1")
	*now = now.Add(6 * time.Minute)

	_, ok := s.Get(NamespaceTeam, "1")
	require.False(t, ok, "expired entry must read as a miss")

	// The stale entry stays available for explicit fallback.
	v, stale, ok := s.GetStale(NamespaceTeam, "1")
	require.True(t, ok)
	require.True(t, stale)
	require.Equal(t, "v1", v)
}

func TestStore_SetOverwritesAndResetsTTL(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)

	s.Set(NamespaceTeam, "1", "old")
	*now = now.Add(4 * time.Minute)
	s.Set(NamespaceTeam, "1", "new")
	*now = now.Add(4 * time.Minute)

	v, ok := s.Get(NamespaceTeam, "1")
	require.True(t, ok, "entry rewritten 4 minutes ago must still be fresh")
	require.Equal(t, "new", v)
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	s, _ := newTestStore(5 * time.Minute)

	s.Set(NamespaceTeam, "7", "team")
	s.Set(NamespacePlayer, "7", "player")

	v, ok := s.Get(NamespaceTeam, "7")
	require.True(t, ok)
	require.Equal(t, "team", v)

	v, ok = s.Get(NamespacePlayer, "7")
	require.True(t, ok)
	require.Equal(t, "player", v)
}

func TestStore_Invalidate(t *testing.T) {
	s, _ := newTestStore(5 * time.Minute)

	s.Set(NamespaceTeam, "1", "v")
	s.Invalidate(NamespaceTeam, "1")

	_, ok := s.Get(NamespaceTeam, "1")
	require.False(t, ok)
	_, _, ok = s.GetStale(NamespaceTeam, "1")
	require.False(t, ok)
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	s, now := newTestStore(5 * time.Minute)

	// Namespace without a configured TTL.
	s.Set(NamespaceHeroes, "all", "catalog")
	*now = now.Add(1000 * time.Hour)

	v, ok := s.Get(NamespaceHeroes, "all")
	require.True(t, ok)
	require.Equal(t, "catalog", v)
}

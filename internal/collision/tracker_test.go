package collision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker_Track(t *testing.T) {
	t.Run("assigns sequential labels", func(t *testing.T) {
		tr := NewTracker(3)
		for i, name := range []string{"Rice", "Maize", "Chickpea"} {
			label, err := tr.Track(name, uint64(i+100))
			require.NoError(t, err)
			require.Equal(t, i, label)
		}
		require.Equal(t, 3, tr.Count())
		require.Equal(t, []string{"Rice", "Maize", "Chickpea"}, tr.Names())
		require.False(t, tr.HasCollision())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		tr := NewTracker(1)
		_, err := tr.Track("", 1)
		require.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		tr := NewTracker(2)
		_, err := tr.Track("Rice", 1)
		require.NoError(t, err)
		_, err = tr.Track("Rice", 1)
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("rejects duplicate after collision", func(t *testing.T) {
		tr := NewTracker(3)
		_, _ = tr.Track("Rice", 1)
		_, _ = tr.Track("Maize", 1)
		require.True(t, tr.HasCollision())

		_, err := tr.Track("Rice", 2)
		require.ErrorIs(t, err, ErrDuplicateName)
	})
}

func TestTracker_Lookup(t *testing.T) {
	t.Run("without collision", func(t *testing.T) {
		tr := NewTracker(2)
		_, _ = tr.Track("Rice", 10)
		_, _ = tr.Track("Maize", 20)

		label, ok := tr.Lookup("Maize", 20)
		require.True(t, ok)
		require.Equal(t, 1, label)

		_, ok = tr.Lookup("Cotton", 30)
		require.False(t, ok)

		_, ok = tr.Lookup("Cotton", 20)
		require.False(t, ok, "hash hit with different name must miss")
	})

	t.Run("with collision", func(t *testing.T) {
		tr := NewTracker(2)
		_, _ = tr.Track("Rice", 7)
		_, _ = tr.Track("Maize", 7)

		label, ok := tr.Lookup("Maize", 7)
		require.True(t, ok)
		require.Equal(t, 1, label)

		label, ok = tr.Lookup("Rice", 7)
		require.True(t, ok)
		require.Zero(t, label)
	})
}

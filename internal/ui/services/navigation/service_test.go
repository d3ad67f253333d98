package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCyclesBackToStart(t *testing.T) {
	for count := 2; count <= 5; count++ {
		for start := 0; start < count; start++ {
			s := NewService()
			s.Reset(count, start)
			for i := 0; i < count; i++ {
				_, moved := s.Navigate(DirectionNext)
				require.True(t, moved)
			}
			assert.Equal(t, start, s.GetCursor(), "count=%d start=%d", count, start)
		}
	}
}

func TestPrevIsInverseOfNext(t *testing.T) {
	s := NewService()
	s.Reset(4, 2)
	for i := 0; i < 7; i++ {
		before := s.GetCursor()
		s.Navigate(DirectionNext)
		s.Navigate(DirectionPrev)
		assert.Equal(t, before, s.GetCursor())
		s.Navigate(DirectionNext)
	}
}

func TestScenarioCSequence(t *testing.T) {
	s := NewService()
	s.Reset(3, 0)

	var seq []int
	for i := 0; i < 3; i++ {
		ev, moved := s.Navigate(DirectionNext)
		require.True(t, moved)
		seq = append(seq, ev.NewIndex)
	}
	assert.Equal(t, []int{1, 2, 0}, seq)
}

func TestPrevWrapsFromFirstAndUnset(t *testing.T) {
	s := NewService()
	s.Reset(3, 0)
	ev, moved := s.Navigate(DirectionPrev)
	require.True(t, moved)
	assert.Equal(t, CursorMovedEvent{OldIndex: 0, NewIndex: 2}, ev)

	s.Reset(3, NoCursor)
	assert.Equal(t, 2, s.Peek(DirectionPrev))
	assert.Equal(t, 0, s.Peek(DirectionNext))
}

func TestNavigateIsNoOpWithOneOrNoMatches(t *testing.T) {
	s := NewService()
	_, moved := s.Navigate(DirectionNext)
	assert.False(t, moved)
	assert.Equal(t, NoCursor, s.GetCursor())

	s.Reset(1, 0)
	_, moved = s.Navigate(DirectionPrev)
	assert.False(t, moved)
	assert.Equal(t, 0, s.GetCursor())
}

func TestResetRejectsOutOfRangeCursor(t *testing.T) {
	s := NewService()
	s.Reset(2, 5)
	assert.Equal(t, NoCursor, s.GetCursor())
	assert.Equal(t, 2, s.GetCount())

	s.Clear()
	assert.Equal(t, 0, s.GetCount())
	assert.Equal(t, NoCursor, s.Peek(DirectionNext))
}

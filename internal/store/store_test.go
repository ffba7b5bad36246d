package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viewmarks/extension/pkg/core"
)

func TestNew(t *testing.T) {
	s := New()

	require.NotNil(t, s)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Slots())
	assert.False(t, s.ConsumeChanged())
}

func TestSave_InsertAndOverwrite(t *testing.T) {
	s := New()
	s.Save(3, core.NewViewpoint(6, 5, 4, 3, 2, 1))
	s.Save(4, core.NewViewpoint(5, 6, 4, 2, 1, 3))
	require.True(t, s.ConsumeChanged())

	s.Save(3, core.NewViewpoint(1, 2, 3, 4, 5, 6))

	assert.True(t, s.ConsumeChanged())
	assert.Equal(t, 2, s.Len())

	vp, ok := s.Get(3)
	require.True(t, ok)
	assert.Equal(t, core.NewViewpoint(1, 2, 3, 4, 5, 6), vp)

	vp, ok = s.Get(4)
	require.True(t, ok)
	assert.Equal(t, core.NewViewpoint(5, 6, 4, 2, 1, 3), vp, "other slots must not change")
}

func TestGet_Absent(t *testing.T) {
	s := New()

	_, ok := s.Get(7)
	assert.False(t, ok)
	assert.False(t, s.Has(7))
}

func TestClear(t *testing.T) {
	s := New()
	s.Save(1, core.Viewpoint{})
	s.ConsumeChanged()

	assert.False(t, s.Clear(2))
	assert.False(t, s.ConsumeChanged(), "clearing an empty slot is not a change")

	assert.True(t, s.Clear(1))
	assert.True(t, s.ConsumeChanged())
	assert.False(t, s.Has(1))
}

func TestClearAll(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.ClearAll())
	assert.False(t, s.ConsumeChanged())

	s.Save(1, core.Viewpoint{})
	s.Save(2, core.Viewpoint{})
	s.ConsumeChanged()

	assert.Equal(t, 2, s.ClearAll())
	assert.True(t, s.ConsumeChanged())
	assert.Equal(t, 0, s.Len())
}

func TestReplace(t *testing.T) {
	s := New()
	s.Save(0, core.NewViewpoint(3, 2, 1, 6, 5, 4))
	s.Save(4, core.NewViewpoint(1, 2, 3, 4, 5, 6))
	s.ConsumeChanged()

	loaded := core.ShortcutMap{
		0: core.NewViewpoint(1, 2, 3, 4, 5, 6),
		5: core.NewViewpoint(6, 5, 4, 3, 2, 1),
	}
	s.Replace(loaded)

	assert.False(t, s.ConsumeChanged(), "loading is not a change")
	assert.Equal(t, []int{0, 5}, s.Slots())
	assert.Equal(t, loaded, s.Snapshot())

	loaded[9] = core.Viewpoint{}
	assert.False(t, s.Has(9), "store must not alias the loaded map")
}

func TestReplace_DropsPendingChange(t *testing.T) {
	s := New()
	s.Save(9, core.NewViewpoint(9, 9, 9, 9, 9, 9))

	s.Replace(core.ShortcutMap{})

	assert.False(t, s.ConsumeChanged(), "save before a load must not survive it")
	assert.False(t, s.Has(9))

	s.Save(1, core.Viewpoint{})
	assert.True(t, s.ConsumeChanged())
}

func TestSnapshot_IsCopy(t *testing.T) {
	s := New()
	s.Save(1, core.NewViewpoint(1, 1, 1, 1, 1, 1))

	snap := s.Snapshot()
	snap[1] = core.Viewpoint{}
	delete(snap, 1)

	vp, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, core.NewViewpoint(1, 1, 1, 1, 1, 1), vp)
}

func TestConsumeChanged_Resets(t *testing.T) {
	s := New()
	s.Save(1, core.Viewpoint{})

	assert.True(t, s.ConsumeChanged())
	assert.False(t, s.ConsumeChanged())
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreNotes(t *testing.T) {
	ls := NewLocalStore()
	res, err := ls.CreateNote(context.Background(), "Voice Note - 2025-03-10 09:30", "gate code is 4821")
	require.NoError(t, err)
	assert.Equal(t, "created", res.Action)
	assert.NotEmpty(t, res.ID)

	res2, err := ls.CreateNote(context.Background(), "Another", "x")
	require.NoError(t, err)
	assert.NotEqual(t, res.ID, res2.ID)
}

func TestLocalStoreListAppend(t *testing.T) {
	ls := NewLocalStore()
	ctx := context.Background()

	res, err := ls.SaveList(ctx, "Shopping List - 2025-03-10", []string{"egg", "milk"}, true)
	require.NoError(t, err)
	assert.Equal(t, "created", res.Action)

	res2, err := ls.SaveList(ctx, "Shopping List - 2025-03-10", []string{"bread"}, true)
	require.NoError(t, err)
	assert.Equal(t, "appended", res2.Action)
	assert.Equal(t, res.ID, res2.ID)

	lists := ls.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, []string{"egg", "milk", "bread"}, lists[0].Items)
}

func TestLocalStoreListReplace(t *testing.T) {
	ls := NewLocalStore()
	ctx := context.Background()

	first, err := ls.SaveList(ctx, "Todo List - 2025-03-10", []string{"taxes"}, true)
	require.NoError(t, err)

	// appendToExisting=false makes a fresh list under the same title.
	second, err := ls.SaveList(ctx, "Todo List - 2025-03-10", []string{"laundry"}, false)
	require.NoError(t, err)
	assert.Equal(t, "created", second.Action)
	assert.NotEqual(t, first.ID, second.ID)
}

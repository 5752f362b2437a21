package audit

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_FillsDefaults(t *testing.T) {
	store := NewInMemory()
	recorder := NewRecorder(store, slog.Default())

	recorder.Record(context.Background(), Event{
		Actor:  "admin@example.com",
		Action: ActionLoginSucceeded,
	})

	events, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotZero(t, events[0].ID)
	assert.False(t, events[0].CreatedAt.IsZero())
	assert.Equal(t, ActionLoginSucceeded, events[0].Action)
}

func TestInMemory_ListNewestFirstWithLimit(t *testing.T) {
	store := NewInMemory()
	ctx := context.Background()

	for _, actor := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(ctx, Event{Actor: actor}))
	}

	events, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "c", events[0].Actor)
	assert.Equal(t, "b", events[1].Actor)
}

func TestDeviceSummary(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{
			name: "desktop chrome",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want: "Chrome on Mac OS X",
		},
		{
			name: "empty",
			ua:   "",
			want: "unknown device",
		},
		{
			name: "whitespace",
			ua:   "   ",
			want: "unknown device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeviceSummary(tt.ua))
		})
	}
}

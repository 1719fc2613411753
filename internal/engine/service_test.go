package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"deepstore-server/internal/core/tag"
	"deepstore-server/internal/domain"
	"deepstore-server/internal/infrastructure/storage"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_StorageRoundTrip(t *testing.T) {
	s, err := NewService(testConfig(), nil)
	require.NoError(t, err)
	startService(t, s)

	logs := s.Hub.Register("observer")

	resp := send(t, s, "alice", "INIT", nil)
	require.Equal(t, "RESULT", resp.Type)
	agent := resp.Data.(api.AgentView)
	assert.Equal(t, 8, agent.X)
	require.GreaterOrEqual(t, len(agent.Inventory), 3)

	// Стартовый набор: [unit, unit, cobblestone, iron, dye]
	resp = send(t, s, "alice", "PLACE", api.PlacePayload{X: 9, Y: 8, Slot: 0})
	require.Equal(t, "RESULT", resp.Type, resp.Logs)

	// После установки слоты сдвинулись: [unit, cobblestone, ...]
	resp = send(t, s, "alice", "DEPOSIT", api.DepositPayload{X: 9, Y: 8, Slot: 1})
	require.Equal(t, "RESULT", resp.Type, resp.Logs)
	assert.Equal(t, uint64(64), resp.Data.(api.UnitView).Amount)

	resp = send(t, s, "alice", "BREAK", api.PositionPayload{X: 9, Y: 8})
	require.Equal(t, "RESULT", resp.Type, resp.Logs)
	dropped := resp.Data.([]api.GroundItemView)
	require.Len(t, dropped, 1)
	assert.Equal(t, []string{"commodity: Cobblestone", "amount: 64"}, dropped[0].Stack.Tooltip)

	units, err := s.Query(context.Background(), func() any { return s.UnitViews() })
	require.NoError(t, err)
	assert.Empty(t, units)

	select {
	case msg := <-logs:
		assert.Equal(t, "LOG", msg.Type)
	case <-time.After(time.Second):
		t.Fatal("observer got no log broadcast")
	}
}

func TestService_Errors(t *testing.T) {
	s, err := NewService(testConfig(), nil)
	require.NoError(t, err)
	startService(t, s)

	resp := send(t, s, "ghost", "BREAK", api.PositionPayload{X: 1, Y: 1})
	assert.Equal(t, "ERROR", resp.Type)

	_, err = s.ProcessCommand(context.Background(), api.ClientCommand{Token: "ghost", Action: "FLY"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	send(t, s, "bob", "INIT", nil)
	resp = send(t, s, "bob", "WITHDRAW", api.WithdrawPayload{X: 1, Y: 1, Count: -1})
	assert.Equal(t, "ERROR", resp.Type)
	require.Len(t, resp.Logs, 1)
	assert.Contains(t, resp.Logs[0].Text, "validation failed")
}

func TestService_SubmitAfterStop(t *testing.T) {
	s, err := NewService(testConfig(), nil)
	require.NoError(t, err)
	stop := startService(t, s)
	require.NoError(t, stop())

	_, err = s.Submit(context.Background(), domain.InternalCommand{Action: domain.ActionInit, Token: "late"})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestService_SubmitRespectsContext(t *testing.T) {
	s, err := NewService(testConfig(), nil)
	require.NoError(t, err)
	// Цикл не запущен: команда никогда не будет обработана.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = s.Submit(ctx, domain.InternalCommand{Action: domain.ActionInit, Token: "x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestService_TicksAdvanceWorld(t *testing.T) {
	cfg := testConfig()
	cfg.TickInterval = time.Millisecond
	s, err := NewService(cfg, nil)
	require.NoError(t, err)
	startService(t, s)

	assert.Eventually(t, func() bool {
		tick, err := s.Query(context.Background(), func() any { return s.World.Tick })
		return err == nil && tick.(int) > 3
	}, time.Second, 5*time.Millisecond)
}

func TestService_PersistsUnitsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.db")
	store, err := storage.Open(path)
	require.NoError(t, err)
	defer store.Close()

	first, err := NewService(testConfig(), store)
	require.NoError(t, err)
	require.NoError(t, first.Load(context.Background()))
	stop := startService(t, first)

	send(t, first, "alice", "INIT", nil)
	send(t, first, "alice", "PLACE", api.PlacePayload{X: 7, Y: 8, Slot: 0})
	resp := send(t, first, "alice", "DEPOSIT", api.DepositPayload{X: 7, Y: 8, Slot: 3, Count: 10})
	require.Equal(t, "RESULT", resp.Type, resp.Logs)
	send(t, first, "alice", "PLACE", api.PlacePayload{X: 9, Y: 8, Slot: 0})
	require.NoError(t, stop(), "stopping saves the world")

	second, err := NewService(testConfig(), store)
	require.NoError(t, err)
	require.NoError(t, second.Load(context.Background()))

	full := second.World.UnitAt(domain.Position{X: 7, Y: 8})
	require.NotNil(t, full)
	d, ok := full.Descriptor()
	require.True(t, ok)
	assert.Equal(t, "core:dye", d.ID)
	assert.Equal(t, int32(4), d.Variant)
	assert.Equal(t, uint64(10), full.Quantity())

	empty := second.World.UnitAt(domain.Position{X: 9, Y: 8})
	require.NotNil(t, empty)
	assert.True(t, empty.IsEmpty())
}

func TestService_RestoreKeepsUnknownCommodity(t *testing.T) {
	s, err := NewService(testConfig(), nil)
	require.NoError(t, err)

	raw := tag.Compound{
		systems.KeyAmount: int64(5),
		systems.KeyItem:   "othermod:gizmo",
		systems.KeyMeta:   int64(0),
	}
	pos := domain.Position{X: 3, Y: 3}
	s.restore(storage.WorldRecord{
		Blocks: map[domain.Position]string{pos: domain.UnitBlockID},
		Units:  []storage.UnitRecord{{Pos: pos, Snapshot: raw}},
	})

	unit := s.World.UnitAt(pos)
	require.NotNil(t, unit)
	assert.Equal(t, uint64(5), unit.Quantity())

	views := s.UnitViews()
	require.Len(t, views, 1)
	assert.Empty(t, views[0].Commodity)
	assert.Equal(t, []string{"amount: 5"}, views[0].Tooltip)

	rec := s.Record()
	require.Len(t, rec.Units, 1)
	assert.True(t, raw.Equal(rec.Units[0].Snapshot))
}

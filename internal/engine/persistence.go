package engine

import (
	"context"
	"fmt"

	"deepstore-server/internal/domain"
	"deepstore-server/internal/infrastructure/storage"
	"deepstore-server/internal/systems"
	"deepstore-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Record снимает сохраняемое состояние мира. Хранилища пишутся
// переносным снимком, как при ломании блока.
func (s *Service) Record() storage.WorldRecord {
	rec := storage.WorldRecord{
		Tick:   s.World.Tick,
		Blocks: make(map[domain.Position]string, len(s.World.Blocks)),
		Fluids: make(map[domain.Position]string, len(s.World.Fluids)),
	}
	for pos, id := range s.World.Blocks {
		rec.Blocks[pos] = id
	}
	for pos, substance := range s.World.Fluids {
		rec.Fluids[pos] = substance
	}
	for _, pos := range s.World.UnitPositions() {
		rec.Units = append(rec.Units, storage.UnitRecord{
			Pos:      pos,
			Snapshot: systems.EncodeUnit(s.World.UnitAt(pos)),
		})
	}
	return rec
}

// Save пишет мир в хранилище. Вызывать только из потока симуляции.
func (s *Service) Save(ctx context.Context) error {
	if s.Store == nil {
		return nil
	}
	rec := s.Record()
	if err := s.Store.SaveWorld(ctx, rec); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"tick":      rec.Tick,
		"units":     len(rec.Units),
	}).Info("World saved")
	return nil
}

// Load восстанавливает мир из хранилища. Вызывается до Run.
func (s *Service) Load(ctx context.Context) error {
	if s.Store == nil {
		return nil
	}
	rec, err := s.Store.LoadWorld(ctx)
	if err != nil {
		return fmt.Errorf("load world: %w", err)
	}
	s.restore(rec)
	return nil
}

// restore ставит блоки заново. Хранилища проходят обычную установку
// со снимком, поэтому битые снимки читаются так же мягко.
func (s *Service) restore(rec storage.WorldRecord) {
	log := logger.Log.WithField("component", "engine")

	w := buildInitialWorld(s.Config)
	w.Tick = rec.Tick
	for pos, substance := range rec.Fluids {
		if err := w.SetFluid(pos, substance); err != nil {
			log.WithError(err).WithField("pos", pos).Warn("Skipping saved fluid")
		}
	}

	snapshots := make(map[domain.Position]domain.ItemStack, len(rec.Units))
	for _, u := range rec.Units {
		stack := domain.NewUnitItem()
		stack.Tag = u.Snapshot
		snapshots[u.Pos] = stack
	}

	for _, pos := range storage.SortedPositions(rec.Blocks) {
		id := rec.Blocks[pos]
		stack := domain.ItemStack{Item: id, Count: 1}
		var hooks systems.BlockHooks
		if domain.CanonicalID(id) == domain.UnitBlockID {
			hooks = s.Lifecycle
			if snap, ok := snapshots[pos]; ok {
				stack = snap
			} else {
				stack = domain.NewUnitItem()
			}
		}
		if err := systems.PlaceBlock(w, pos, stack, hooks); err != nil {
			log.WithError(err).WithField("pos", pos).Warn("Skipping saved block")
		}
	}

	// Агенты живут только пока запущен процесс.
	for id, a := range s.World.Agents {
		w.Agents[id] = a
	}
	s.World = w

	log.WithFields(logrus.Fields{
		"tick":   rec.Tick,
		"blocks": len(w.Blocks),
		"units":  len(w.Units),
	}).Info("World restored")
}

package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"path/filepath"
	"sort"
	"strings"

	"deepstore-server/internal/core/tag"
	"deepstore-server/internal/domain"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// UnitRecord - сохраненное хранилище: клетка и его переносной снимок.
// Snapshot == nil - хранилище было пустым.
type UnitRecord struct {
	Pos      domain.Position
	Snapshot tag.Compound
}

// WorldRecord - все, что переживает перезапуск.
type WorldRecord struct {
	Tick   int
	Blocks map[domain.Position]string
	Fluids map[domain.Position]string
	Units  []UnitRecord
}

// Store хранит мир в SQLite. Хранилища пишутся тем же снимком, что и
// переносной предмет, поэтому загрузка идет через обычную установку блока.
type Store struct {
	sqlDB *sql.DB
}

// Open открывает файл базы и создает таблицы. ":memory:" - база в памяти.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, eris.New("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "open sqlite db")
	}
	// Одна база в памяти живет ровно одно соединение.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, eris.Wrap(err, "ping sqlite db")
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, eris.Wrap(err, "apply schema")
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveWorld заменяет сохранение целиком в одной транзакции.
func (s *Store) SaveWorld(ctx context.Context, rec WorldRecord) (err error) {
	if s == nil || s.sqlDB == nil {
		return eris.New("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "begin tx")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"blocks", "units", "fluids"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return eris.Wrapf(err, "clear %s", table)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO world_meta (key, value) VALUES ('tick', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, rec.Tick); err != nil {
		return eris.Wrap(err, "save tick")
	}

	for pos, id := range rec.Blocks {
		if _, err = tx.ExecContext(ctx, `INSERT INTO blocks (x, y, block_id) VALUES (?, ?, ?)`, pos.X, pos.Y, id); err != nil {
			return eris.Wrapf(err, "save block at %d,%d", pos.X, pos.Y)
		}
	}
	for pos, substance := range rec.Fluids {
		if _, err = tx.ExecContext(ctx, `INSERT INTO fluids (x, y, substance) VALUES (?, ?, ?)`, pos.X, pos.Y, substance); err != nil {
			return eris.Wrapf(err, "save fluid at %d,%d", pos.X, pos.Y)
		}
	}
	for _, u := range rec.Units {
		var blob []byte
		if len(u.Snapshot) > 0 {
			if blob, err = EncodeCompound(u.Snapshot); err != nil {
				return eris.Wrapf(err, "encode unit at %d,%d", u.Pos.X, u.Pos.Y)
			}
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO units (x, y, snapshot) VALUES (?, ?, ?)`, u.Pos.X, u.Pos.Y, blob); err != nil {
			return eris.Wrapf(err, "save unit at %d,%d", u.Pos.X, u.Pos.Y)
		}
	}

	if err = tx.Commit(); err != nil {
		return eris.Wrap(err, "commit")
	}
	return nil
}

// LoadWorld читает сохранение. Пустая база дает пустой WorldRecord.
func (s *Store) LoadWorld(ctx context.Context) (WorldRecord, error) {
	rec := WorldRecord{
		Blocks: make(map[domain.Position]string),
		Fluids: make(map[domain.Position]string),
	}
	if s == nil || s.sqlDB == nil {
		return rec, eris.New("storage is not configured")
	}

	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM world_meta WHERE key = 'tick'`).Scan(&rec.Tick)
	if err != nil && !eris.Is(err, sql.ErrNoRows) {
		return rec, eris.Wrap(err, "load tick")
	}

	if err := s.loadCells(ctx, `SELECT x, y, block_id FROM blocks`, rec.Blocks); err != nil {
		return rec, eris.Wrap(err, "load blocks")
	}
	if err := s.loadCells(ctx, `SELECT x, y, substance FROM fluids`, rec.Fluids); err != nil {
		return rec, eris.Wrap(err, "load fluids")
	}

	units, err := s.LoadUnits(ctx)
	if err != nil {
		return rec, err
	}
	rec.Units = units
	return rec, nil
}

// LoadUnits читает только хранилища, по порядку клеток.
func (s *Store) LoadUnits(ctx context.Context) ([]UnitRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT x, y, snapshot FROM units ORDER BY y, x`)
	if err != nil {
		return nil, eris.Wrap(err, "query units")
	}
	defer rows.Close()

	var out []UnitRecord
	for rows.Next() {
		var (
			u    UnitRecord
			blob []byte
		)
		if err := rows.Scan(&u.Pos.X, &u.Pos.Y, &blob); err != nil {
			return nil, eris.Wrap(err, "scan unit")
		}
		if len(blob) > 0 {
			if u.Snapshot, err = DecodeCompound(blob); err != nil {
				return nil, eris.Wrapf(err, "decode unit at %d,%d", u.Pos.X, u.Pos.Y)
			}
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "iterate units")
	}
	return out, nil
}

func (s *Store) loadCells(ctx context.Context, query string, into map[domain.Position]string) error {
	rows, err := s.sqlDB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pos domain.Position
			val string
		)
		if err := rows.Scan(&pos.X, &pos.Y, &val); err != nil {
			return err
		}
		into[pos] = val
	}
	return rows.Err()
}

// SortedPositions - ключи карты клеток по порядку (сначала Y, потом X).
func SortedPositions(cells map[domain.Position]string) []domain.Position {
	out := make([]domain.Position, 0, len(cells))
	for p := range cells {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

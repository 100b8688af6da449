package store

import (
	"context"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequencer hands out one increasing number shared by every event table,
// so LLM calls, answers and session markers interleave in the order they
// happened. The counter is a single row in the event_sequence table.
type sequencer struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

func newSequencer(ctx context.Context, drv *entsql.Driver) (*sequencer, error) {
	query, args := builder().Insert(eventSequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("seed event sequence: %w", err)
	}
	return &sequencer{drv: drv}, nil
}

// Next returns the current value and advances the counter.
func (s *sequencer) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return 0, err
	}
	seq, err := advance(ctx, tx)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	return seq, tx.Commit()
}

func advance(ctx context.Context, tx dialect.Tx) (int64, error) {
	query, args := builder().Select("next_val").
		From(entsql.Table(eventSequenceTable)).
		Where(entsql.EQ("id", 1)).
		Query()
	rows := &entsql.Rows{}
	if err := tx.Query(ctx, query, args, rows); err != nil {
		return 0, err
	}
	var seq int64
	if rows.Next() {
		if err := rows.Scan(&seq); err != nil {
			rows.Close()
			return 0, err
		}
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}
	if seq == 0 {
		return 0, fmt.Errorf("event sequence row missing")
	}

	query, args = builder().Update(eventSequenceTable).
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return 0, err
	}
	return seq, nil
}

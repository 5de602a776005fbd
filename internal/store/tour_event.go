package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const tourTable = "tour_events"

var tourColumns = []string{
	"id", "sequence", "timestamp", "tour_id", "action", "slide_index", "slide_kind",
}

func (r *eventRepo) AppendTourEvent(ctx context.Context, data TourEventData) error {
	if data.TourID == "" {
		return fmt.Errorf("tour event: empty tour id")
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tourTable).
		Columns(tourColumns[1:]...).
		Values(seqNum, formatTime(time.Now()), data.TourID, data.Action, data.SlideIndex, data.SlideKind).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save tour event: %w", err)
	}
	return nil
}

func (r *eventRepo) TourEvents(ctx context.Context, tourID string) ([]TourEvent, error) {
	query, args := builder().Select(tourColumns...).
		From(entsql.Table(tourTable)).
		Where(entsql.EQ("tour_id", tourID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tour events: %w", err)
	}
	defer rows.Close()

	var events []TourEvent
	for rows.Next() {
		var (
			e  TourEvent
			ts string
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.TourID, &e.Action, &e.SlideIndex, &e.SlideKind); err != nil {
			return nil, fmt.Errorf("scan tour event: %w", err)
		}
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) RecentTours(ctx context.Context, limit int) ([]TourSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `SELECT tour_id,
			MIN(timestamp),
			MAX(timestamp),
			COUNT(*),
			SUM(CASE WHEN action = ? THEN 1 ELSE 0 END),
			MAX(slide_index),
			MAX(CASE WHEN action = ? THEN 1 ELSE 0 END)
		FROM tour_events
		GROUP BY tour_id
		ORDER BY MAX(sequence) DESC
		LIMIT ?`, TourInteract, TourFinish, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent tours: %w", err)
	}
	defer rows.Close()

	var out []TourSummary
	for rows.Next() {
		var (
			s           TourSummary
			first, last string
			finished    int
		)
		if err := rows.Scan(&s.TourID, &first, &last, &s.Events, &s.Interactions, &s.FurthestSlide, &finished); err != nil {
			return nil, fmt.Errorf("scan tour summary: %w", err)
		}
		if s.StartedAt, err = parseTime(first); err != nil {
			return nil, err
		}
		if s.LastEventAt, err = parseTime(last); err != nil {
			return nil, err
		}
		s.Finished = finished != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/worship-roster/pkg/db"
)

// GetRosterAssignments retrieves the roster assignment records for a date
func (d *DB) GetRosterAssignments(ctx context.Context, date string) ([]db.RosterAssignment, error) {
	day, err := toDate("get roster assignments", date)
	if err != nil {
		return nil, err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.pool.Query(ctx, `
		SELECT id, date, phone_number, skill_id
		FROM roster_assignment
		WHERE date = $1
		ORDER BY skill_id, phone_number
	`, day)
	if err != nil {
		return nil, readErr("get roster assignments", err)
	}

	assignments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.RosterAssignment, error) {
		var a db.RosterAssignment
		var date time.Time
		if err := row.Scan(&a.ID, &date, &a.PhoneNumber, &a.SkillID); err != nil {
			return a, err
		}
		a.Date = fromDate(date)
		return a, nil
	})
	if err != nil {
		return nil, readErr("get roster assignments", err)
	}
	return assignments, nil
}

// ReplaceRosterAssignments deletes every assignment for a date and inserts the given set in one transaction
func (d *DB) ReplaceRosterAssignments(ctx context.Context, date string, assignments []db.RosterAssignment) error {
	day, err := toDate("replace roster assignments", date)
	if err != nil {
		return err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	err = pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM roster_assignment WHERE date = $1`, day); err != nil {
			return err
		}

		for _, a := range assignments {
			if _, err := tx.Exec(ctx, `
				INSERT INTO roster_assignment (id, date, phone_number, skill_id)
				VALUES ($1, $2, $3, $4)
			`, a.ID, day, a.PhoneNumber, a.SkillID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return writeErr("replace roster assignments", err)
	}
	return nil
}

// IsPublished reports whether the roster for a date is visible to non-admins
func (d *DB) IsPublished(ctx context.Context, date string) (bool, error) {
	day, err := toDate("is published", date)
	if err != nil {
		return false, err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	var published bool
	err = d.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM roster_published WHERE date = $1)
	`, day).Scan(&published)
	if err != nil {
		return false, readErr("is published", err)
	}
	return published, nil
}

// SetPublished adds or removes the published marker for a date. Both directions are idempotent.
func (d *DB) SetPublished(ctx context.Context, date string, published bool) error {
	day, err := toDate("set published", date)
	if err != nil {
		return err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	if published {
		_, err = d.pool.Exec(ctx, `
			INSERT INTO roster_published (date) VALUES ($1)
			ON CONFLICT (date) DO NOTHING
		`, day)
	} else {
		_, err = d.pool.Exec(ctx, `DELETE FROM roster_published WHERE date = $1`, day)
	}
	if err != nil {
		return writeErr("set published", err)
	}
	return nil
}

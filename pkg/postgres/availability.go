package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/worship-roster/pkg/db"
)

func scanAvailability(row pgx.CollectableRow) (db.Availability, error) {
	var a db.Availability
	var date time.Time
	if err := row.Scan(&a.ID, &date, &a.PhoneNumber, &a.SkillID); err != nil {
		return a, err
	}
	a.Date = fromDate(date)
	return a, nil
}

// GetAvailabilityForDate retrieves every availability record for a date
func (d *DB) GetAvailabilityForDate(ctx context.Context, date string) ([]db.Availability, error) {
	day, err := toDate("get availability for date", date)
	if err != nil {
		return nil, err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.pool.Query(ctx, `
		SELECT id, date, phone_number, skill_id
		FROM availability
		WHERE date = $1
		ORDER BY skill_id, phone_number
	`, day)
	if err != nil {
		return nil, readErr("get availability for date", err)
	}

	availability, err := pgx.CollectRows(rows, scanAvailability)
	if err != nil {
		return nil, readErr("get availability for date", err)
	}
	return availability, nil
}

// GetMemberAvailability retrieves a member's availability records for the given dates
func (d *DB) GetMemberAvailability(ctx context.Context, phoneNumber string, dates []string) ([]db.Availability, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	days := make([]time.Time, len(dates))
	for i, date := range dates {
		day, err := toDate("get member availability", date)
		if err != nil {
			return nil, err
		}
		days[i] = day
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.pool.Query(ctx, `
		SELECT id, date, phone_number, skill_id
		FROM availability
		WHERE phone_number = $1 AND date = ANY($2)
		ORDER BY date, skill_id
	`, phoneNumber, days)
	if err != nil {
		return nil, readErr("get member availability", err)
	}

	availability, err := pgx.CollectRows(rows, scanAvailability)
	if err != nil {
		return nil, readErr("get member availability", err)
	}
	return availability, nil
}

// ReplaceMemberAvailability replaces every availability record a member has for a date in one transaction.
// An empty rows slice withdraws the member for that date and also removes their comment.
func (d *DB) ReplaceMemberAvailability(ctx context.Context, date, phoneNumber string, rows []db.Availability) error {
	day, err := toDate("replace member availability", date)
	if err != nil {
		return err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	err = pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM availability WHERE date = $1 AND phone_number = $2
		`, day, phoneNumber); err != nil {
			return err
		}

		if len(rows) == 0 {
			_, err := tx.Exec(ctx, `
				DELETE FROM availability_comment WHERE date = $1 AND phone_number = $2
			`, day, phoneNumber)
			return err
		}

		for _, a := range rows {
			if _, err := tx.Exec(ctx, `
				INSERT INTO availability (id, date, phone_number, skill_id)
				VALUES ($1, $2, $3, $4)
			`, a.ID, day, a.PhoneNumber, a.SkillID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return writeErr("replace member availability", err)
	}
	return nil
}

// InsertAvailability inserts a single availability record
func (d *DB) InsertAvailability(ctx context.Context, row db.Availability) error {
	day, err := toDate("insert availability", row.Date)
	if err != nil {
		return err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	_, err = d.pool.Exec(ctx, `
		INSERT INTO availability (id, date, phone_number, skill_id)
		VALUES ($1, $2, $3, $4)
	`, row.ID, day, row.PhoneNumber, row.SkillID)
	if err != nil {
		return writeErr("insert availability", err)
	}
	return nil
}

// DeleteAvailability removes the availability record for one skill on a date.
// Deleting a record that doesn't exist is not an error.
func (d *DB) DeleteAvailability(ctx context.Context, date, phoneNumber string, skillID int) error {
	day, err := toDate("delete availability", date)
	if err != nil {
		return err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	_, err = d.pool.Exec(ctx, `
		DELETE FROM availability
		WHERE date = $1 AND phone_number = $2 AND skill_id = $3
	`, day, phoneNumber, skillID)
	if err != nil {
		return writeErr("delete availability", err)
	}
	return nil
}

// GetAvailabilityComment retrieves a member's comment for a date. Returns a NotFound error if none exists.
func (d *DB) GetAvailabilityComment(ctx context.Context, date, phoneNumber string) (*db.AvailabilityComment, error) {
	day, err := toDate("get availability comment", date)
	if err != nil {
		return nil, err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	c := db.AvailabilityComment{Date: date}
	err = d.pool.QueryRow(ctx, `
		SELECT phone_number, comment
		FROM availability_comment
		WHERE date = $1 AND phone_number = $2
	`, day, phoneNumber).Scan(&c.PhoneNumber, &c.Comment)
	if err != nil {
		return nil, readErr("get availability comment", err)
	}
	return &c, nil
}

// UpsertAvailabilityComment sets a member's comment for a date
func (d *DB) UpsertAvailabilityComment(ctx context.Context, comment db.AvailabilityComment) error {
	day, err := toDate("upsert availability comment", comment.Date)
	if err != nil {
		return err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	_, err = d.pool.Exec(ctx, `
		INSERT INTO availability_comment (date, phone_number, comment)
		VALUES ($1, $2, $3)
		ON CONFLICT (date, phone_number) DO UPDATE SET comment = EXCLUDED.comment
	`, day, comment.PhoneNumber, comment.Comment)
	if err != nil {
		return writeErr("upsert availability comment", err)
	}
	return nil
}

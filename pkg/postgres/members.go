package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/worship-roster/pkg/db"
)

// GetMember retrieves a single member record. Returns a NotFound error if the member doesn't exist.
func (d *DB) GetMember(ctx context.Context, phoneNumber string) (*db.Member, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	var m db.Member
	err := d.pool.QueryRow(ctx, `
		SELECT phone_number, user_name, is_admin
		FROM member
		WHERE phone_number = $1
	`, phoneNumber).Scan(&m.PhoneNumber, &m.UserName, &m.IsAdmin)
	if err != nil {
		return nil, readErr("get member", err)
	}
	return &m, nil
}

// GetMembers retrieves the member records for the given phone numbers in a single query
func (d *DB) GetMembers(ctx context.Context, phoneNumbers []string) ([]db.Member, error) {
	if len(phoneNumbers) == 0 {
		return nil, nil
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.pool.Query(ctx, `
		SELECT phone_number, user_name, is_admin
		FROM member
		WHERE phone_number = ANY($1)
		ORDER BY phone_number
	`, phoneNumbers)
	if err != nil {
		return nil, readErr("get members", err)
	}

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Member, error) {
		var m db.Member
		err := row.Scan(&m.PhoneNumber, &m.UserName, &m.IsAdmin)
		return m, err
	})
	if err != nil {
		return nil, readErr("get members", err)
	}
	return members, nil
}

// GetCredential retrieves the credential for a phone number. Returns a NotFound error if none exists.
func (d *DB) GetCredential(ctx context.Context, phoneNumber string) (*db.Credential, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	var c db.Credential
	err := d.pool.QueryRow(ctx, `
		SELECT phone_number, pin
		FROM credential
		WHERE phone_number = $1
	`, phoneNumber).Scan(&c.PhoneNumber, &c.PIN)
	if err != nil {
		return nil, readErr("get credential", err)
	}
	return &c, nil
}

// InsertMember creates the member record and its credential in one transaction.
// Returns a Conflict error if the phone number is already registered.
func (d *DB) InsertMember(ctx context.Context, member db.Member, credential db.Credential) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	err := pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO member (phone_number, user_name, is_admin)
			VALUES ($1, $2, $3)
		`, member.PhoneNumber, member.UserName, member.IsAdmin); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO credential (phone_number, pin)
			VALUES ($1, $2)
		`, credential.PhoneNumber, credential.PIN)
		return err
	})
	if err != nil {
		return writeErr("insert member", err)
	}
	return nil
}

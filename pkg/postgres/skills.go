package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/worship-roster/pkg/db"
)

// GetSkills retrieves the skill reference list ordered by area then name
func (d *DB) GetSkills(ctx context.Context) ([]db.Skill, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.pool.Query(ctx, `
		SELECT id, skill_name, area
		FROM skill
		ORDER BY area, skill_name, id
	`)
	if err != nil {
		return nil, readErr("get skills", err)
	}

	skills, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Skill, error) {
		var s db.Skill
		err := row.Scan(&s.ID, &s.SkillName, &s.Area)
		return s, err
	})
	if err != nil {
		return nil, readErr("get skills", err)
	}
	return skills, nil
}

// GetProfileSkills retrieves the skills currently held by a member
func (d *DB) GetProfileSkills(ctx context.Context, phoneNumber string) ([]db.ProfileSkill, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.pool.Query(ctx, `
		SELECT phone_number, skill_id
		FROM profile_skill
		WHERE phone_number = $1
		ORDER BY skill_id
	`, phoneNumber)
	if err != nil {
		return nil, readErr("get profile skills", err)
	}

	skills, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.ProfileSkill, error) {
		var ps db.ProfileSkill
		err := row.Scan(&ps.PhoneNumber, &ps.SkillID)
		return ps, err
	})
	if err != nil {
		return nil, readErr("get profile skills", err)
	}
	return skills, nil
}

// ReplaceProfile updates the member's name and replaces all of their profile skills in one transaction
func (d *DB) ReplaceProfile(ctx context.Context, phoneNumber, userName string, skills []db.ProfileSkill) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	err := pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE member SET user_name = $2 WHERE phone_number = $1
		`, phoneNumber, userName); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM profile_skill WHERE phone_number = $1
		`, phoneNumber); err != nil {
			return err
		}

		for _, s := range skills {
			if _, err := tx.Exec(ctx, `
				INSERT INTO profile_skill (phone_number, skill_id)
				VALUES ($1, $2)
			`, s.PhoneNumber, s.SkillID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return writeErr("replace profile", err)
	}
	return nil
}

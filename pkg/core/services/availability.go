package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/worship-roster/pkg/core/model"
	"github.com/jakechorley/worship-roster/pkg/db"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

// AvailabilityServiceStore defines the database operations needed to manage availability
type AvailabilityServiceStore interface {
	db.AvailabilityStore
	MemberReader
	GetProfileSkills(ctx context.Context, phoneNumber string) ([]db.ProfileSkill, error)
}

// GetAvailability returns whether a member is available on a date, the skills recorded and their comment
func GetAvailability(
	ctx context.Context,
	store AvailabilityServiceStore,
	logger *zap.Logger,
	session model.Session,
	member string,
	date string,
) (*model.Availability, error) {
	if err := validateDate("get availability", date); err != nil {
		return nil, err
	}
	if err := authorizeMember(ctx, store, session, member, "get availability"); err != nil {
		return nil, err
	}

	logger.Debug("Fetching availability", zap.String("phone_number", member), zap.String("date", date))

	return loadAvailability(ctx, store, member, date)
}

// SetAvailable declares or withdraws a member's availability for a date.
// Declaring records one row per skill on the member's profile at this moment, replacing any
// rows already recorded for the date. Withdrawing removes every row and the comment.
func SetAvailable(
	ctx context.Context,
	store AvailabilityServiceStore,
	logger *zap.Logger,
	session model.Session,
	member string,
	date string,
	available bool,
) (*model.Availability, error) {
	if err := validateDate("set available", date); err != nil {
		return nil, err
	}
	if err := authorizeMember(ctx, store, session, member, "set available"); err != nil {
		return nil, err
	}

	if !available {
		logger.Debug("Withdrawing availability", zap.String("phone_number", member), zap.String("date", date))

		if err := store.ReplaceMemberAvailability(ctx, date, member, nil); err != nil {
			return nil, fmt.Errorf("failed to remove availability: %w", err)
		}

		logger.Info("Availability removed", zap.String("phone_number", member), zap.String("date", date))
		return &model.Availability{Date: date, ActiveSkillIDs: []int{}}, nil
	}

	logger.Debug("Fetching profile skills", zap.String("phone_number", member))
	profileSkills, err := store.GetProfileSkills(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile skills: %w", err)
	}
	if len(profileSkills) == 0 {
		return nil, errs.Validation("set available", "add skills to your profile before declaring availability")
	}

	rows := make([]db.Availability, len(profileSkills))
	for i, ps := range profileSkills {
		rows[i] = db.Availability{
			ID:          uuid.New().String(),
			Date:        date,
			PhoneNumber: member,
			SkillID:     ps.SkillID,
		}
	}

	if err := store.ReplaceMemberAvailability(ctx, date, member, rows); err != nil {
		return nil, fmt.Errorf("failed to record availability: %w", err)
	}

	logger.Info("Availability added",
		zap.String("phone_number", member),
		zap.String("date", date),
		zap.Int("skill_count", len(rows)))

	return loadAvailability(ctx, store, member, date)
}

// ToggleSkillForDate removes the member's row for one skill on a date if present, otherwise adds it.
// Rows for other skills are left untouched. Only skills on the member's profile can be added.
func ToggleSkillForDate(
	ctx context.Context,
	store AvailabilityServiceStore,
	logger *zap.Logger,
	session model.Session,
	member string,
	date string,
	skillID int,
) (*model.Availability, error) {
	if err := validateDate("toggle skill", date); err != nil {
		return nil, err
	}
	if err := authorizeMember(ctx, store, session, member, "toggle skill"); err != nil {
		return nil, err
	}

	current, err := loadAvailability(ctx, store, member, date)
	if err != nil {
		return nil, err
	}

	if slices.Contains(current.ActiveSkillIDs, skillID) {
		// Removing the last skill withdraws availability, comment included
		if len(current.ActiveSkillIDs) == 1 {
			if err := store.ReplaceMemberAvailability(ctx, date, member, nil); err != nil {
				return nil, fmt.Errorf("failed to remove availability: %w", err)
			}
			logger.Info("Availability removed",
				zap.String("phone_number", member), zap.String("date", date), zap.Int("skill_id", skillID))
			return &model.Availability{Date: date, ActiveSkillIDs: []int{}}, nil
		}

		if err := store.DeleteAvailability(ctx, date, member, skillID); err != nil {
			return nil, fmt.Errorf("failed to remove skill availability: %w", err)
		}
		logger.Info("Skill availability removed",
			zap.String("phone_number", member), zap.String("date", date), zap.Int("skill_id", skillID))
		return loadAvailability(ctx, store, member, date)
	}

	profileSkills, err := store.GetProfileSkills(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile skills: %w", err)
	}
	if !slices.ContainsFunc(profileSkills, func(ps db.ProfileSkill) bool { return ps.SkillID == skillID }) {
		return nil, errs.Validation("toggle skill", fmt.Sprintf("skill %d is not on your profile", skillID))
	}

	row := db.Availability{
		ID:          uuid.New().String(),
		Date:        date,
		PhoneNumber: member,
		SkillID:     skillID,
	}
	if err := store.InsertAvailability(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to add skill availability: %w", err)
	}

	logger.Info("Skill availability added",
		zap.String("phone_number", member), zap.String("date", date), zap.Int("skill_id", skillID))

	return loadAvailability(ctx, store, member, date)
}

// SetComment sets the member's single comment for a date. The member must be available on that date.
func SetComment(
	ctx context.Context,
	store AvailabilityServiceStore,
	logger *zap.Logger,
	session model.Session,
	member string,
	date string,
	text string,
) (*model.Availability, error) {
	if err := validateDate("set comment", date); err != nil {
		return nil, err
	}
	if err := authorizeMember(ctx, store, session, member, "set comment"); err != nil {
		return nil, err
	}

	current, err := loadAvailability(ctx, store, member, date)
	if err != nil {
		return nil, err
	}
	if !current.Available {
		return nil, errs.Validation("set comment", fmt.Sprintf("declare availability for %s before commenting", date))
	}

	comment := db.AvailabilityComment{Date: date, PhoneNumber: member, Comment: text}
	if err := store.UpsertAvailabilityComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	logger.Info("Comment updated", zap.String("phone_number", member), zap.String("date", date))

	current.Comment = text
	return current, nil
}

// ListAvailability returns the member's availability for each of the given dates, in the same order.
// Comments are not loaded.
func ListAvailability(
	ctx context.Context,
	store AvailabilityServiceStore,
	logger *zap.Logger,
	session model.Session,
	member string,
	dates []string,
) ([]model.Availability, error) {
	for _, date := range dates {
		if err := validateDate("list availability", date); err != nil {
			return nil, err
		}
	}
	if err := authorizeMember(ctx, store, session, member, "list availability"); err != nil {
		return nil, err
	}

	logger.Debug("Fetching availability for dates", zap.String("phone_number", member), zap.Int("date_count", len(dates)))

	rows, err := store.GetMemberAvailability(ctx, member, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	skillsByDate := make(map[string][]int)
	for _, row := range rows {
		skillsByDate[row.Date] = append(skillsByDate[row.Date], row.SkillID)
	}

	result := make([]model.Availability, len(dates))
	for i, date := range dates {
		skills := uniqueSortedInts(skillsByDate[date])
		result[i] = model.Availability{
			Date:           date,
			Available:      len(skills) > 0,
			ActiveSkillIDs: skills,
		}
	}
	return result, nil
}

// loadAvailability reads the member's rows and comment for one date
func loadAvailability(ctx context.Context, store AvailabilityServiceStore, member, date string) (*model.Availability, error) {
	rows, err := store.GetMemberAvailability(ctx, member, []string{date})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	skillIDs := make([]int, 0, len(rows))
	for _, row := range rows {
		skillIDs = append(skillIDs, row.SkillID)
	}

	result := &model.Availability{
		Date:           date,
		Available:      len(rows) > 0,
		ActiveSkillIDs: uniqueSortedInts(skillIDs),
	}
	if !result.Available {
		return result, nil
	}

	comment, err := store.GetAvailabilityComment(ctx, date, member)
	switch {
	case errs.IsNotFound(err):
	case err != nil:
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	default:
		result.Comment = comment.Comment
	}

	return result, nil
}

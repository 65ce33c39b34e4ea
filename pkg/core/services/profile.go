package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/worship-roster/pkg/core/model"
	"github.com/jakechorley/worship-roster/pkg/db"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

// ProfileServiceStore defines the database operations needed to read and save profiles
type ProfileServiceStore interface {
	db.SkillStore
	MemberReader
}

// SkillLister is the reference data lookup for skills
type SkillLister interface {
	GetSkills(ctx context.Context) ([]db.Skill, error)
}

// GetProfile returns a member's display name and skills.
// A member without a profile record yet gets an empty profile rather than an error.
func GetProfile(
	ctx context.Context,
	store ProfileServiceStore,
	logger *zap.Logger,
	session model.Session,
	member string,
) (*model.Profile, error) {
	if err := authorizeMember(ctx, store, session, member, "get profile"); err != nil {
		return nil, err
	}

	logger.Debug("Fetching profile", zap.String("phone_number", member))

	return loadProfile(ctx, store, member)
}

// SaveProfile sets a member's display name and replaces their skills with skillIDs
func SaveProfile(
	ctx context.Context,
	store ProfileServiceStore,
	logger *zap.Logger,
	session model.Session,
	member string,
	displayName string,
	skillIDs []int,
) (*model.Profile, error) {
	if err := authorizeMember(ctx, store, session, member, "save profile"); err != nil {
		return nil, err
	}

	skills, err := store.GetSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	known := make(map[int]bool, len(skills))
	for _, s := range skills {
		known[s.ID] = true
	}

	ids := uniqueSortedInts(skillIDs)
	rows := make([]db.ProfileSkill, 0, len(ids))
	for _, id := range ids {
		if !known[id] {
			return nil, errs.Validation("save profile", fmt.Sprintf("unknown skill %d", id))
		}
		rows = append(rows, db.ProfileSkill{PhoneNumber: member, SkillID: id})
	}

	displayName = strings.TrimSpace(displayName)

	logger.Debug("Saving profile",
		zap.String("phone_number", member),
		zap.String("user_name", displayName),
		zap.Ints("skill_ids", ids))

	if err := store.ReplaceProfile(ctx, member, displayName, rows); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	logger.Info("Profile saved", zap.String("phone_number", member), zap.Int("skill_count", len(rows)))

	return loadProfile(ctx, store, member)
}

// ListSkills returns the skill reference list
func ListSkills(ctx context.Context, store SkillLister, logger *zap.Logger) ([]model.Skill, error) {
	logger.Debug("Fetching skills")

	rows, err := store.GetSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}

	skills := make([]model.Skill, len(rows))
	for i, s := range rows {
		skills[i] = model.Skill{ID: s.ID, Name: s.SkillName, Area: s.Area}
	}
	return skills, nil
}

func loadProfile(ctx context.Context, store ProfileServiceStore, member string) (*model.Profile, error) {
	profile := &model.Profile{PhoneNumber: member, SkillIDs: []int{}}

	m, err := store.GetMember(ctx, member)
	switch {
	case errs.IsNotFound(err):
	case err != nil:
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	default:
		profile.DisplayName = m.UserName
		profile.IsAdmin = m.IsAdmin
	}

	profileSkills, err := store.GetProfileSkills(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile skills: %w", err)
	}
	ids := make([]int, len(profileSkills))
	for i, ps := range profileSkills {
		ids[i] = ps.SkillID
	}
	profile.SkillIDs = uniqueSortedInts(ids)

	return profile, nil
}

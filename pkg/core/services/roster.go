package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/worship-roster/pkg/core/model"
	"github.com/jakechorley/worship-roster/pkg/db"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

// RosterServiceStore defines the database operations needed to view and edit a roster
type RosterServiceStore interface {
	db.RosterStore
	MemberReader
	GetMembers(ctx context.Context, phoneNumbers []string) ([]db.Member, error)
	GetSkills(ctx context.Context) ([]db.Skill, error)
	GetAvailabilityForDate(ctx context.Context, date string) ([]db.Availability, error)
}

// LoadRosterView assembles the roster for a date as seen by the requester.
// Candidate pools (who is available per skill) are always returned; assignments are only
// returned when the date is published or the requester is an admin.
func LoadRosterView(
	ctx context.Context,
	store RosterServiceStore,
	logger *zap.Logger,
	requester model.Session,
	date string,
) (*model.RosterView, error) {
	if err := validateDate("load roster", date); err != nil {
		return nil, err
	}

	logger.Debug("Loading roster view", zap.String("date", date), zap.String("requester", requester.PhoneNumber))

	var (
		isAdmin      bool
		isPublished  bool
		availability []db.Availability
		skills       []db.Skill
	)

	// Independent reads
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		isAdmin, err = lookupAdmin(gctx, store, requester.PhoneNumber)
		return err
	})
	g.Go(func() error {
		var err error
		isPublished, err = store.IsPublished(gctx, date)
		if err != nil {
			return fmt.Errorf("failed to check published status: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		availability, err = store.GetAvailabilityForDate(gctx, date)
		if err != nil {
			return fmt.Errorf("failed to fetch availability: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		skills, err = store.GetSkills(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch skills: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &model.RosterView{
		Date:        date,
		IsPublished: isPublished,
		IsAdmin:     isAdmin,
		SkillGroups: groupBySkill(availability, func(a db.Availability) (int, string) { return a.SkillID, a.PhoneNumber }),
		Assignments: map[int][]string{},
		SkillNames:  make(map[int]string, len(skills)),
		MemberNames: map[string]string{},
	}
	for _, s := range skills {
		view.SkillNames[s.ID] = s.SkillName
	}

	// Assignments stay hidden from non-admins until the date is published
	if isPublished || isAdmin {
		assignments, err := store.GetRosterAssignments(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch roster assignments: %w", err)
		}
		view.Assignments = groupBySkill(assignments, func(a db.RosterAssignment) (int, string) { return a.SkillID, a.PhoneNumber })
	} else {
		logger.Debug("Roster not published, hiding assignments", zap.String("date", date))
	}

	phones := memberPhoneNumbers(view.SkillGroups, view.Assignments)
	if len(phones) > 0 {
		members, err := store.GetMembers(ctx, phones)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch member names: %w", err)
		}
		for _, m := range members {
			view.MemberNames[m.PhoneNumber] = m.UserName
		}
	}

	logger.Debug("Roster view loaded",
		zap.String("date", date),
		zap.Bool("is_published", isPublished),
		zap.Bool("is_admin", isAdmin),
		zap.Int("skill_groups", len(view.SkillGroups)),
		zap.Int("assigned_skills", len(view.Assignments)))

	return view, nil
}

// SaveAssignments replaces the whole roster for a date with the given assignments. Admin only.
func SaveAssignments(
	ctx context.Context,
	store RosterServiceStore,
	logger *zap.Logger,
	session model.Session,
	date string,
	assignments []model.Assignment,
) error {
	if err := validateDate("save roster", date); err != nil {
		return err
	}
	for _, a := range assignments {
		if a.PhoneNumber == "" {
			return errs.Validation("save roster", "every assignment needs a phone number")
		}
	}
	if err := requireAdmin(ctx, store, session, "save roster"); err != nil {
		return err
	}
	if err := checkAssignmentRefs(ctx, store, assignments); err != nil {
		return err
	}

	type key struct {
		phone   string
		skillID int
	}
	seen := make(map[key]bool, len(assignments))
	rows := make([]db.RosterAssignment, 0, len(assignments))
	for _, a := range assignments {
		k := key{a.PhoneNumber, a.SkillID}
		if seen[k] {
			continue
		}
		seen[k] = true
		rows = append(rows, db.RosterAssignment{
			ID:          uuid.New().String(),
			Date:        date,
			PhoneNumber: a.PhoneNumber,
			SkillID:     a.SkillID,
		})
	}

	logger.Debug("Saving roster", zap.String("date", date), zap.Int("assignment_count", len(rows)))

	if err := store.ReplaceRosterAssignments(ctx, date, rows); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	logger.Info("Roster saved",
		zap.String("date", date),
		zap.String("admin", session.PhoneNumber),
		zap.Int("assignment_count", len(rows)))
	return nil
}

// SetPublished publishes or unpublishes the roster for a date. Admin only, idempotent.
func SetPublished(
	ctx context.Context,
	store RosterServiceStore,
	logger *zap.Logger,
	session model.Session,
	date string,
	published bool,
) error {
	if err := validateDate("set published", date); err != nil {
		return err
	}
	if err := requireAdmin(ctx, store, session, "set published"); err != nil {
		return err
	}

	if err := store.SetPublished(ctx, date, published); err != nil {
		if published {
			return fmt.Errorf("failed to publish roster: %w", err)
		}
		return fmt.Errorf("failed to unpublish roster: %w", err)
	}

	logger.Info("Roster publish state changed",
		zap.String("date", date),
		zap.Bool("published", published),
		zap.String("admin", session.PhoneNumber))
	return nil
}

// checkAssignmentRefs rejects assignments naming a skill or member that doesn't exist
func checkAssignmentRefs(ctx context.Context, store RosterServiceStore, assignments []model.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	skills, err := store.GetSkills(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch skills: %w", err)
	}
	knownSkills := make(map[int]bool, len(skills))
	for _, s := range skills {
		knownSkills[s.ID] = true
	}

	phones := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if !knownSkills[a.SkillID] {
			return errs.Validation("save roster", fmt.Sprintf("unknown skill %d", a.SkillID))
		}
		phones = append(phones, a.PhoneNumber)
	}

	members, err := store.GetMembers(ctx, phones)
	if err != nil {
		return fmt.Errorf("failed to fetch members: %w", err)
	}
	knownMembers := make(map[string]bool, len(members))
	for _, m := range members {
		knownMembers[m.PhoneNumber] = true
	}
	for _, a := range assignments {
		if !knownMembers[a.PhoneNumber] {
			return errs.Validation("save roster", fmt.Sprintf("no member with phone number %s", a.PhoneNumber))
		}
	}
	return nil
}

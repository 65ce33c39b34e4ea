package db

import "context"

// MemberStore defines the interface for member and credential database operations
type MemberStore interface {
	GetMember(ctx context.Context, phoneNumber string) (*Member, error)
	GetMembers(ctx context.Context, phoneNumbers []string) ([]Member, error)
	GetCredential(ctx context.Context, phoneNumber string) (*Credential, error)
	InsertMember(ctx context.Context, member Member, credential Credential) error
}

// SkillStore defines the interface for skill and profile skill database operations
type SkillStore interface {
	GetSkills(ctx context.Context) ([]Skill, error)
	GetProfileSkills(ctx context.Context, phoneNumber string) ([]ProfileSkill, error)
	ReplaceProfile(ctx context.Context, phoneNumber, userName string, skills []ProfileSkill) error
}

// AvailabilityStore defines the interface for availability database operations
type AvailabilityStore interface {
	GetAvailabilityForDate(ctx context.Context, date string) ([]Availability, error)
	GetMemberAvailability(ctx context.Context, phoneNumber string, dates []string) ([]Availability, error)
	ReplaceMemberAvailability(ctx context.Context, date, phoneNumber string, rows []Availability) error
	InsertAvailability(ctx context.Context, row Availability) error
	DeleteAvailability(ctx context.Context, date, phoneNumber string, skillID int) error
	GetAvailabilityComment(ctx context.Context, date, phoneNumber string) (*AvailabilityComment, error)
	UpsertAvailabilityComment(ctx context.Context, comment AvailabilityComment) error
}

// RosterStore defines the interface for roster assignment and publish database operations
type RosterStore interface {
	GetRosterAssignments(ctx context.Context, date string) ([]RosterAssignment, error)
	ReplaceRosterAssignments(ctx context.Context, date string, assignments []RosterAssignment) error
	IsPublished(ctx context.Context, date string) (bool, error)
	SetPublished(ctx context.Context, date string, published bool) error
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	MemberStore
	SkillStore
	AvailabilityStore
	RosterStore
}

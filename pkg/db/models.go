package db

// Member represents a database member record, keyed by phone number
type Member struct {
	PhoneNumber string
	UserName    string
	IsAdmin     bool
}

// Credential represents a database credential record
type Credential struct {
	PhoneNumber string
	PIN         string
}

// Skill represents a database skill reference record
type Skill struct {
	ID        int
	SkillName string
	Area      string
}

// ProfileSkill represents a database member-skill association
type ProfileSkill struct {
	PhoneNumber string
	SkillID     int
}

// Availability represents a database availability record for one skill on one date
type Availability struct {
	ID          string
	Date        string
	PhoneNumber string
	SkillID     int
}

// AvailabilityComment represents the single comment a member leaves for a date
type AvailabilityComment struct {
	Date        string
	PhoneNumber string
	Comment     string
}

// RosterAssignment represents a database roster assignment record
type RosterAssignment struct {
	ID          string
	Date        string
	PhoneNumber string
	SkillID     int
}

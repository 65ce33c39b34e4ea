package model

// Session identifies the member making a request.
// IsAdmin reflects the member record at login and is only used for display;
// admin-only operations re-read the member record.
type Session struct {
	PhoneNumber string
	IsAdmin     bool
}

// Skill is a role a member can be rostered to
type Skill struct {
	ID   int
	Name string
	Area string
}

// Profile holds a member's display name and skills
type Profile struct {
	PhoneNumber string
	DisplayName string
	IsAdmin     bool
	SkillIDs    []int // sorted
}

// Availability is a member's declared availability for a single date
type Availability struct {
	Date           string
	Available      bool
	ActiveSkillIDs []int // sorted
	Comment        string
}

// Assignment places a member in a skill slot
type Assignment struct {
	PhoneNumber string
	SkillID     int
}

// RosterView is everything needed to display or edit the roster for a date
type RosterView struct {
	Date        string
	IsPublished bool
	IsAdmin     bool
	SkillGroups map[int][]string // skill id -> available member phone numbers
	Assignments map[int][]string // skill id -> assigned member phone numbers
	SkillNames  map[int]string
	MemberNames map[string]string
}

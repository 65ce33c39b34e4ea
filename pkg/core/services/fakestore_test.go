package services

import (
	"context"
	"sort"
	"sync"

	"github.com/jakechorley/worship-roster/pkg/db"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

// fakeStore is an in-memory db.Database.
// errs maps a method name to the error that method should return.
type fakeStore struct {
	mu sync.Mutex

	members      map[string]db.Member
	credentials  map[string]db.Credential
	skills       []db.Skill
	profile      map[string][]int
	availability []db.Availability
	comments     map[string]string // date|phone -> comment
	roster       map[string][]db.RosterAssignment
	published    map[string]bool

	errs  map[string]error
	calls map[string]int
}

var _ db.Database = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:     map[string]db.Member{},
		credentials: map[string]db.Credential{},
		skills: []db.Skill{
			{ID: 1, SkillName: "Vocals", Area: "Band"},
			{ID: 2, SkillName: "Keys", Area: "Band"},
			{ID: 3, SkillName: "Sound", Area: "Tech"},
		},
		profile:   map[string][]int{},
		comments:  map[string]string{},
		roster:    map[string][]db.RosterAssignment{},
		published: map[string]bool{},
		errs:      map[string]error{},
		calls:     map[string]int{},
	}
}

// addMember seeds a member with credentials and profile skills
func (f *fakeStore) addMember(phone, name string, isAdmin bool, skillIDs ...int) {
	f.members[phone] = db.Member{PhoneNumber: phone, UserName: name, IsAdmin: isAdmin}
	f.credentials[phone] = db.Credential{PhoneNumber: phone, PIN: "1234"}
	f.profile[phone] = skillIDs
}

func (f *fakeStore) enter(method string) error {
	f.mu.Lock()
	f.calls[method]++
	return f.errs[method]
}

func commentKey(date, phone string) string { return date + "|" + phone }

func (f *fakeStore) GetMember(ctx context.Context, phoneNumber string) (*db.Member, error) {
	defer f.mu.Unlock()
	if err := f.enter("GetMember"); err != nil {
		return nil, err
	}
	m, ok := f.members[phoneNumber]
	if !ok {
		return nil, errs.NotFound("get member", "member not found")
	}
	return &m, nil
}

func (f *fakeStore) GetMembers(ctx context.Context, phoneNumbers []string) ([]db.Member, error) {
	defer f.mu.Unlock()
	if err := f.enter("GetMembers"); err != nil {
		return nil, err
	}
	var result []db.Member
	for _, p := range phoneNumbers {
		if m, ok := f.members[p]; ok {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeStore) GetCredential(ctx context.Context, phoneNumber string) (*db.Credential, error) {
	defer f.mu.Unlock()
	if err := f.enter("GetCredential"); err != nil {
		return nil, err
	}
	c, ok := f.credentials[phoneNumber]
	if !ok {
		return nil, errs.NotFound("get credential", "credential not found")
	}
	return &c, nil
}

func (f *fakeStore) InsertMember(ctx context.Context, member db.Member, credential db.Credential) error {
	defer f.mu.Unlock()
	if err := f.enter("InsertMember"); err != nil {
		return err
	}
	if _, ok := f.members[member.PhoneNumber]; ok {
		return errs.Conflict("insert member", "already exists")
	}
	f.members[member.PhoneNumber] = member
	f.credentials[credential.PhoneNumber] = credential
	return nil
}

func (f *fakeStore) GetSkills(ctx context.Context) ([]db.Skill, error) {
	defer f.mu.Unlock()
	if err := f.enter("GetSkills"); err != nil {
		return nil, err
	}
	return append([]db.Skill(nil), f.skills...), nil
}

func (f *fakeStore) GetProfileSkills(ctx context.Context, phoneNumber string) ([]db.ProfileSkill, error) {
	defer f.mu.Unlock()
	if err := f.enter("GetProfileSkills"); err != nil {
		return nil, err
	}
	var result []db.ProfileSkill
	for _, id := range f.profile[phoneNumber] {
		result = append(result, db.ProfileSkill{PhoneNumber: phoneNumber, SkillID: id})
	}
	return result, nil
}

func (f *fakeStore) ReplaceProfile(ctx context.Context, phoneNumber, userName string, skills []db.ProfileSkill) error {
	defer f.mu.Unlock()
	if err := f.enter("ReplaceProfile"); err != nil {
		return err
	}
	m := f.members[phoneNumber]
	m.PhoneNumber = phoneNumber
	m.UserName = userName
	f.members[phoneNumber] = m

	ids := make([]int, len(skills))
	for i, s := range skills {
		ids[i] = s.SkillID
	}
	f.profile[phoneNumber] = ids
	return nil
}

func (f *fakeStore) GetAvailabilityForDate(ctx context.Context, date string) ([]db.Availability, error) {
	defer f.mu.Unlock()
	if err := f.enter("GetAvailabilityForDate"); err != nil {
		return nil, err
	}
	var result []db.Availability
	for _, a := range f.availability {
		if a.Date == date {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeStore) GetMemberAvailability(ctx context.Context, phoneNumber string, dates []string) ([]db.Availability, error) {
	defer f.mu.Unlock()
	if err := f.enter("GetMemberAvailability"); err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(dates))
	for _, d := range dates {
		wanted[d] = true
	}
	var result []db.Availability
	for _, a := range f.availability {
		if a.PhoneNumber == phoneNumber && wanted[a.Date] {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeStore) ReplaceMemberAvailability(ctx context.Context, date, phoneNumber string, rows []db.Availability) error {
	defer f.mu.Unlock()
	if err := f.enter("ReplaceMemberAvailability"); err != nil {
		return err
	}
	kept := f.availability[:0]
	for _, a := range f.availability {
		if a.Date != date || a.PhoneNumber != phoneNumber {
			kept = append(kept, a)
		}
	}
	f.availability = append(kept, rows...)
	if len(rows) == 0 {
		delete(f.comments, commentKey(date, phoneNumber))
	}
	return nil
}

func (f *fakeStore) InsertAvailability(ctx context.Context, row db.Availability) error {
	defer f.mu.Unlock()
	if err := f.enter("InsertAvailability"); err != nil {
		return err
	}
	for _, a := range f.availability {
		if a.Date == row.Date && a.PhoneNumber == row.PhoneNumber && a.SkillID == row.SkillID {
			return errs.Conflict("insert availability", "already exists")
		}
	}
	f.availability = append(f.availability, row)
	return nil
}

func (f *fakeStore) DeleteAvailability(ctx context.Context, date, phoneNumber string, skillID int) error {
	defer f.mu.Unlock()
	if err := f.enter("DeleteAvailability"); err != nil {
		return err
	}
	kept := f.availability[:0]
	for _, a := range f.availability {
		if a.Date != date || a.PhoneNumber != phoneNumber || a.SkillID != skillID {
			kept = append(kept, a)
		}
	}
	f.availability = kept
	return nil
}

func (f *fakeStore) GetAvailabilityComment(ctx context.Context, date, phoneNumber string) (*db.AvailabilityComment, error) {
	defer f.mu.Unlock()
	if err := f.enter("GetAvailabilityComment"); err != nil {
		return nil, err
	}
	c, ok := f.comments[commentKey(date, phoneNumber)]
	if !ok {
		return nil, errs.NotFound("get comment", "comment not found")
	}
	return &db.AvailabilityComment{Date: date, PhoneNumber: phoneNumber, Comment: c}, nil
}

func (f *fakeStore) UpsertAvailabilityComment(ctx context.Context, comment db.AvailabilityComment) error {
	defer f.mu.Unlock()
	if err := f.enter("UpsertAvailabilityComment"); err != nil {
		return err
	}
	f.comments[commentKey(comment.Date, comment.PhoneNumber)] = comment.Comment
	return nil
}

func (f *fakeStore) GetRosterAssignments(ctx context.Context, date string) ([]db.RosterAssignment, error) {
	defer f.mu.Unlock()
	if err := f.enter("GetRosterAssignments"); err != nil {
		return nil, err
	}
	return append([]db.RosterAssignment(nil), f.roster[date]...), nil
}

func (f *fakeStore) ReplaceRosterAssignments(ctx context.Context, date string, assignments []db.RosterAssignment) error {
	defer f.mu.Unlock()
	if err := f.enter("ReplaceRosterAssignments"); err != nil {
		return err
	}
	f.roster[date] = append([]db.RosterAssignment(nil), assignments...)
	return nil
}

func (f *fakeStore) IsPublished(ctx context.Context, date string) (bool, error) {
	defer f.mu.Unlock()
	if err := f.enter("IsPublished"); err != nil {
		return false, err
	}
	return f.published[date], nil
}

func (f *fakeStore) SetPublished(ctx context.Context, date string, published bool) error {
	defer f.mu.Unlock()
	if err := f.enter("SetPublished"); err != nil {
		return err
	}
	if published {
		f.published[date] = true
	} else {
		delete(f.published, date)
	}
	return nil
}

// skillIDsFor returns the sorted skill ids recorded for a member on a date
func (f *fakeStore) skillIDsFor(date, phone string) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int
	for _, a := range f.availability {
		if a.Date == date && a.PhoneNumber == phone {
			ids = append(ids, a.SkillID)
		}
	}
	sort.Ints(ids)
	return ids
}

package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/jakechorley/worship-roster/pkg/core/model"
	"github.com/jakechorley/worship-roster/pkg/core/schedule"
	"github.com/jakechorley/worship-roster/pkg/db"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

// MemberReader is the member lookup every access check needs
type MemberReader interface {
	GetMember(ctx context.Context, phoneNumber string) (*db.Member, error)
}

// lookupAdmin reads the admin flag from the member record. A missing record is not an admin.
func lookupAdmin(ctx context.Context, store MemberReader, phoneNumber string) (bool, error) {
	if phoneNumber == "" {
		return false, nil
	}

	member, err := store.GetMember(ctx, phoneNumber)
	if errs.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to fetch member: %w", err)
	}
	return member.IsAdmin, nil
}

// requireAdmin fails with a Forbidden error unless the session belongs to an admin
func requireAdmin(ctx context.Context, store MemberReader, session model.Session, op string) error {
	if session.PhoneNumber == "" {
		return errs.Forbidden(op, "login required")
	}

	isAdmin, err := lookupAdmin(ctx, store, session.PhoneNumber)
	if err != nil {
		return err
	}
	if !isAdmin {
		return errs.Forbidden(op, "only admins can do this")
	}
	return nil
}

// authorizeMember allows members to act on themselves and admins to act on anyone
func authorizeMember(ctx context.Context, store MemberReader, session model.Session, member, op string) error {
	if session.PhoneNumber == "" {
		return errs.Forbidden(op, "login required")
	}
	if member == "" {
		return errs.Validation(op, "phone number is required")
	}
	if session.PhoneNumber == member {
		return nil
	}

	isAdmin, err := lookupAdmin(ctx, store, session.PhoneNumber)
	if err != nil {
		return err
	}
	if !isAdmin {
		return errs.Forbidden(op, "members can only manage their own records")
	}
	return nil
}

// validateDate rejects anything that isn't a YYYY-MM-DD date
func validateDate(op, date string) error {
	if !schedule.IsValidDate(date) {
		return errs.Validation(op, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	return nil
}

// groupBySkill groups phone numbers by skill id, sorted and without duplicates within a group
func groupBySkill[T any](rows []T, key func(T) (int, string)) map[int][]string {
	groups := make(map[int][]string)
	seen := make(map[int]map[string]bool)
	for _, row := range rows {
		skillID, phone := key(row)
		if seen[skillID] == nil {
			seen[skillID] = make(map[string]bool)
		}
		if seen[skillID][phone] {
			continue
		}
		seen[skillID][phone] = true
		groups[skillID] = append(groups[skillID], phone)
	}
	for _, phones := range groups {
		sort.Strings(phones)
	}
	return groups
}

// uniqueSortedInts returns the distinct values in ascending order
func uniqueSortedInts(values []int) []int {
	seen := make(map[int]bool, len(values))
	result := make([]int, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	sort.Ints(result)
	return result
}

// memberPhoneNumbers collects every phone number referenced by the groups, sorted and distinct
func memberPhoneNumbers(groups ...map[int][]string) []string {
	seen := make(map[string]bool)
	var phones []string
	for _, g := range groups {
		for _, members := range g {
			for _, phone := range members {
				if !seen[phone] {
					seen[phone] = true
					phones = append(phones, phone)
				}
			}
		}
	}
	sort.Strings(phones)
	return phones
}

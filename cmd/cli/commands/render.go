package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jakechorley/worship-roster/pkg/core/model"
	"github.com/jakechorley/worship-roster/pkg/core/schedule"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// formatDate renders a YYYY-MM-DD date with its weekday, or the input unchanged if it doesn't parse
func formatDate(date string) string {
	t, err := time.Parse(schedule.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02 (Monday)")
}

// parseSkillIDs parses a comma separated list of skill ids. An empty string is no skills.
func parseSkillIDs(s string) ([]int, error) {
	ids := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, errs.Validation("parse skills", fmt.Sprintf("skill id must be a number, got %q", part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseAssignments parses phone:skill_id pairs
func parseAssignments(args []string) ([]model.Assignment, error) {
	assignments := make([]model.Assignment, 0, len(args))
	for _, arg := range args {
		phone, skill, ok := strings.Cut(arg, ":")
		if !ok || phone == "" {
			return nil, errs.Validation("parse assignments", fmt.Sprintf("expected phone:skill_id, got %q", arg))
		}
		skillID, err := strconv.Atoi(skill)
		if err != nil {
			return nil, errs.Validation("parse assignments", fmt.Sprintf("skill id must be a number, got %q", skill))
		}
		assignments = append(assignments, model.Assignment{PhoneNumber: phone, SkillID: skillID})
	}
	return assignments, nil
}

func skillNameMap(skills []model.Skill) map[int]string {
	names := make(map[int]string, len(skills))
	for _, s := range skills {
		names[s.ID] = s.Name
	}
	return names
}

func skillLabel(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("skill %d", id)
}

func skillLabels(names map[int]string, ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = skillLabel(names, id)
	}
	return strings.Join(labels, ", ")
}

// memberLabel shows the display name with the phone number, or just the phone number when unnamed
func memberLabel(names map[string]string, phone string) string {
	if name := names[phone]; name != "" {
		return fmt.Sprintf("%s (%s)", name, phone)
	}
	return phone
}

func renderSkills(w io.Writer, skills []model.Skill) {
	byArea := make(map[string][]model.Skill)
	var areas []string
	for _, s := range skills {
		if _, ok := byArea[s.Area]; !ok {
			areas = append(areas, s.Area)
		}
		byArea[s.Area] = append(byArea[s.Area], s)
	}
	sort.Strings(areas)

	fmt.Fprintln(w)
	for _, area := range areas {
		label := area
		if label == "" {
			label = "Other"
		}
		fmt.Fprintf(w, "%s\n", label)
		for _, s := range byArea[area] {
			fmt.Fprintf(w, "  %3d  %s\n", s.ID, s.Name)
		}
	}
	fmt.Fprintln(w)
}

func renderProfile(w io.Writer, p *model.Profile, names map[int]string) {
	displayName := p.DisplayName
	if displayName == "" {
		displayName = colorDim + "(not set)" + colorReset
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Phone:  %s\n", p.PhoneNumber)
	fmt.Fprintf(w, "Name:   %s\n", displayName)
	if p.IsAdmin {
		fmt.Fprintf(w, "Role:   admin\n")
	}
	fmt.Fprintf(w, "Skills: %s\n\n", skillLabels(names, p.SkillIDs))
}

func renderAvailability(w io.Writer, a *model.Availability, names map[int]string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", formatDate(a.Date))
	if !a.Available {
		fmt.Fprintf(w, "  %sNot available%s\n\n", colorDim, colorReset)
		return
	}
	fmt.Fprintf(w, "  %sAvailable%s: %s\n", colorGreen, colorReset, skillLabels(names, a.ActiveSkillIDs))
	if a.Comment != "" {
		fmt.Fprintf(w, "  Comment: %s\n", a.Comment)
	}
	fmt.Fprintln(w)
}

func renderAvailabilityList(w io.Writer, list []model.Availability, names map[int]string) {
	fmt.Fprintln(w)
	for _, a := range list {
		if a.Available {
			fmt.Fprintf(w, "  %-24s %s%s%s\n", formatDate(a.Date), colorGreen, skillLabels(names, a.ActiveSkillIDs), colorReset)
		} else {
			fmt.Fprintf(w, "  %-24s %s-%s\n", formatDate(a.Date), colorDim, colorReset)
		}
	}
	fmt.Fprintln(w)
}

// renderRoster prints each skill with its assigned and available members.
// Skills nobody is available for or assigned to are left out.
func renderRoster(w io.Writer, view *model.RosterView) {
	status := colorYellow + "draft" + colorReset
	if view.IsPublished {
		status = colorGreen + "published" + colorReset
	}

	fmt.Fprintf(w, "\nRoster for %s [%s]\n\n", formatDate(view.Date), status)

	seen := make(map[int]bool)
	var skillIDs []int
	for _, g := range []map[int][]string{view.Assignments, view.SkillGroups} {
		for id := range g {
			if !seen[id] {
				seen[id] = true
				skillIDs = append(skillIDs, id)
			}
		}
	}
	sort.Ints(skillIDs)

	if len(skillIDs) == 0 {
		fmt.Fprintf(w, "  %sNobody is available yet%s\n\n", colorDim, colorReset)
		return
	}

	showAssignments := view.IsPublished || view.IsAdmin
	for _, id := range skillIDs {
		fmt.Fprintf(w, "%s\n", skillLabel(view.SkillNames, id))
		if showAssignments {
			fmt.Fprintf(w, "  Assigned:  %s\n", memberLabels(view.MemberNames, view.Assignments[id]))
		}
		fmt.Fprintf(w, "  Available: %s\n", memberLabels(view.MemberNames, view.SkillGroups[id]))
	}

	if !showAssignments {
		fmt.Fprintf(w, "\n  %sAssignments are shown once the roster is published%s\n", colorDim, colorReset)
	}
	fmt.Fprintln(w)
}

func memberLabels(names map[string]string, phones []string) string {
	if len(phones) == 0 {
		return "-"
	}
	labels := make([]string, len(phones))
	for i, p := range phones {
		labels[i] = memberLabel(names, p)
	}
	return strings.Join(labels, ", ")
}

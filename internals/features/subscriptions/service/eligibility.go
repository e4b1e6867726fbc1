package service

import (
	"strings"

	subModel "videoach_backend/internals/features/subscriptions/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDSet is an "IN (...)" constraint. An empty set matches nothing.
type IDSet struct {
	IDs []uuid.UUID
}

func (s *IDSet) has(id uuid.UUID) bool {
	for _, x := range s.IDs {
		if x == id {
			return true
		}
	}
	return false
}

// Clause is what one subscription grants. Nil fields do not constrain.
type Clause struct {
	Group    *IDSet
	Activity *IDSet
	Site     *IDSet
	Room     *IDSet
}

func (c Clause) empty() bool {
	return c.Group == nil && c.Activity == nil && c.Site == nil && c.Room == nil
}

// Filter is the OR of the clauses of a member's subscriptions in one club.
type Filter struct {
	Clauses []Clause
	// Unrestricted: no subscription narrows the club down.
	Unrestricted bool
	// Deny: no subscription at all.
	Deny bool
}

// Target is a bookable slot: a planning activity or a no-calendar activity in a room.
type Target struct {
	ActivityID uuid.UUID
	GroupID    uuid.UUID
	SiteID     uuid.UUID
	RoomID     *uuid.UUID
}

// ClauseFor maps a subscription to its clause.
// ACTIVITY_GROUP → group IN groups, ACTIVITY → activity IN activities,
// SITE → site IN sites, ROOM → room IN rooms.
func ClauseFor(s *subModel.SubscriptionModel) Clause {
	var c Clause
	switch s.SubscriptionMode {
	case subModel.ModeActivityGroup:
		c.Group = &IDSet{IDs: s.ActivityGroupIDs()}
	case subModel.ModeActivity:
		c.Activity = &IDSet{IDs: s.ActivityIDs()}
	}
	switch s.SubscriptionRestriction {
	case subModel.RestrictionSite:
		c.Site = &IDSet{IDs: s.SiteIDs()}
	case subModel.RestrictionRoom:
		c.Room = &IDSet{IDs: s.RoomIDs()}
	}
	return c
}

// BuildPlanningFilter ORs the non-empty clauses of subs. Subscriptions granting the whole
// club add no clause; when none is left the filter does not restrict.
func BuildPlanningFilter(subs []subModel.SubscriptionModel) Filter {
	if len(subs) == 0 {
		return Filter{Deny: true}
	}
	var f Filter
	for i := range subs {
		if c := ClauseFor(&subs[i]); !c.empty() {
			f.Clauses = append(f.Clauses, c)
		}
	}
	f.Unrestricted = len(f.Clauses) == 0
	return f
}

// NoCalendar keeps only the activity and group parts, for activities booked without a planning.
// Clauses left empty are dropped the same way.
func (f Filter) NoCalendar() Filter {
	if f.Deny || f.Unrestricted {
		return f
	}
	var out Filter
	for _, c := range f.Clauses {
		if nc := (Clause{Group: c.Group, Activity: c.Activity}); !nc.empty() {
			out.Clauses = append(out.Clauses, nc)
		}
	}
	out.Unrestricted = len(out.Clauses) == 0
	return out
}

func (c Clause) matches(t Target) bool {
	if c.Group != nil && !c.Group.has(t.GroupID) {
		return false
	}
	if c.Activity != nil && !c.Activity.has(t.ActivityID) {
		return false
	}
	if c.Site != nil && !c.Site.has(t.SiteID) {
		return false
	}
	if c.Room != nil && (t.RoomID == nil || !c.Room.has(*t.RoomID)) {
		return false
	}
	return true
}

func (f Filter) Matches(t Target) bool {
	switch {
	case f.Deny:
		return false
	case f.Unrestricted:
		return true
	}
	for _, c := range f.Clauses {
		if c.matches(t) {
			return true
		}
	}
	return false
}

// Columns names the SQL columns a filter is applied to. Empty names skip that part.
type Columns struct {
	Group    string
	Activity string
	Site     string
	Room     string
}

// SQL renders the filter as a boolean expression. "" means no restriction.
func (f Filter) SQL(cols Columns) (string, []any) {
	switch {
	case f.Deny:
		return "1 = 0", nil
	case f.Unrestricted:
		return "", nil
	}
	var (
		ors  []string
		args []any
	)
	for _, c := range f.Clauses {
		var ands []string
		add := func(col string, set *IDSet) {
			if set == nil || col == "" {
				return
			}
			if len(set.IDs) == 0 {
				ands = append(ands, "1 = 0")
				return
			}
			ands = append(ands, col+" IN ?")
			args = append(args, set.IDs)
		}
		add(cols.Group, c.Group)
		add(cols.Activity, c.Activity)
		add(cols.Site, c.Site)
		add(cols.Room, c.Room)
		if len(ands) == 0 {
			continue
		}
		ors = append(ors, "("+strings.Join(ands, " AND ")+")")
	}
	if len(ors) == 0 {
		return "", nil
	}
	return "(" + strings.Join(ors, " OR ") + ")", args
}

func (f Filter) Apply(q *gorm.DB, cols Columns) *gorm.DB {
	expr, args := f.SQL(cols)
	if expr == "" {
		return q
	}
	return q.Where(expr, args...)
}

package testdb

import (
	"testing"
	"time"

	clubModel "videoach_backend/internals/features/clubs/model"
	subModel "videoach_backend/internals/features/subscriptions/model"
	userModel "videoach_backend/internals/features/users/user/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func create(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("fixture %T: %v", v, err)
	}
}

func User(t *testing.T, db *gorm.DB, role string) *userModel.UserModel {
	id := uuid.New()
	u := &userModel.UserModel{ID: id, UserName: "user-" + id.String()[:8], Email: id.String() + "@test.local", Role: role}
	create(t, db, u)
	return u
}

// Club is created without sites.
func Club(t *testing.T, db *gorm.DB, managerID uuid.UUID) *clubModel.ClubModel {
	id := uuid.New()
	c := &clubModel.ClubModel{ClubID: id, ClubManagerID: managerID, ClubName: "club " + id.String()[:8], ClubSlug: "club-" + id.String()}
	create(t, db, c)
	return c
}

func Site(t *testing.T, db *gorm.DB, clubID uuid.UUID, openWithClub bool) *clubModel.SiteModel {
	s := &clubModel.SiteModel{SiteID: uuid.New(), SiteClubID: clubID, SiteName: "site", SiteOpenWithClub: openWithClub}
	create(t, db, s)
	return s
}

func Room(t *testing.T, db *gorm.DB, site *clubModel.SiteModel, capacity int) *clubModel.RoomModel {
	r := &clubModel.RoomModel{
		RoomID: uuid.New(), RoomSiteID: site.SiteID, RoomClubID: site.SiteClubID,
		RoomName: "room", RoomReservation: clubModel.ReservationPossible, RoomCapacity: capacity,
	}
	create(t, db, r)
	return r
}

func Group(t *testing.T, db *gorm.DB, name string) *clubModel.ActivityGroupModel {
	g := &clubModel.ActivityGroupModel{ActivityGroupID: uuid.New(), ActivityGroupName: name}
	create(t, db, g)
	return g
}

// Activity links the activity to rooms when given.
func Activity(t *testing.T, db *gorm.DB, clubID, groupID uuid.UUID, name string, noCalendar bool, rooms ...*clubModel.RoomModel) *clubModel.ActivityModel {
	a := &clubModel.ActivityModel{
		ActivityID: uuid.New(), ActivityClubID: clubID, ActivityGroupID: groupID,
		ActivityName: name, ActivityNoCalendar: noCalendar,
	}
	create(t, db, a)
	for _, r := range rooms {
		if err := db.Exec("INSERT INTO room_activities (room_id, activity_id) VALUES (?, ?)", r.RoomID, a.ActivityID).Error; err != nil {
			t.Fatalf("room_activities: %v", err)
		}
	}
	return a
}

// Subscription starts today in mode/restriction, granting groups when given, and enrolls members.
func Subscription(t *testing.T, db *gorm.DB, clubID uuid.UUID, mode, restriction string, groups []uuid.UUID, members ...uuid.UUID) *subModel.SubscriptionModel {
	s := &subModel.SubscriptionModel{
		SubscriptionID: uuid.New(), SubscriptionClubID: clubID, SubscriptionName: mode + " " + restriction,
		SubscriptionStartDate: time.Now(), SubscriptionMode: mode, SubscriptionRestriction: restriction,
	}
	create(t, db, s)
	for _, g := range groups {
		if err := db.Exec("INSERT INTO subscription_activity_groups (subscription_id, activity_group_id) VALUES (?, ?)", s.SubscriptionID, g).Error; err != nil {
			t.Fatalf("subscription_activity_groups: %v", err)
		}
	}
	for _, m := range members {
		create(t, db, &subModel.SubscriptionMemberModel{SubscriptionID: s.SubscriptionID, UserID: m})
	}
	return s
}

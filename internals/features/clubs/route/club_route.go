package route

import (
	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/clubs/controller"
	"videoach_backend/internals/features/clubs/service"
	pricingService "videoach_backend/internals/features/pricing/service"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/storage"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClubPublicRoutes are readable by visitors.
func ClubPublicRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	limits := pricingService.NewPricingService(db, store)
	clubCtrl := controller.NewClubController(service.NewClubService(db, store, nil, limits))
	siteCtrl := controller.NewSiteController(service.NewSiteService(db, store, limits))
	roomCtrl := controller.NewRoomController(service.NewRoomService(db, store, limits))
	activityCtrl := controller.NewActivityController(service.NewActivityService(db, store))
	calendarCtrl := controller.NewCalendarController(service.NewCalendarService(db, store))

	api.Get("/site", siteCtrl.SearchSites)

	clubs := api.Group("/clubs")
	clubs.Get("/slug/:slug", clubCtrl.GetClubBySlug)
	clubs.Get("/:id", clubCtrl.GetClubByID)
	clubs.Get("/:club_id/activities", activityCtrl.GetActivitiesForClub)
	clubs.Get("/:club_id/calendar", calendarCtrl.GetCalendarForClub)

	api.Get("/sites/:id", siteCtrl.GetSiteByID)
	api.Get("/sites/:site_id/calendar", calendarCtrl.GetCalendarForSite)
	api.Get("/rooms/:id", roomCtrl.GetRoomByID)
	api.Get("/rooms/:room_id/calendar", calendarCtrl.GetCalendarForRoom)
}

// ClubManagerRoutes: clubs, sites, rooms, activities and calendars of the signed-in manager.
func ClubManagerRoutes(api fiber.Router, db *gorm.DB, store cache.Store, up storage.Uploader) {
	limits := pricingService.NewPricingService(db, store)
	clubCtrl := controller.NewClubController(service.NewClubService(db, store, up, limits))
	siteCtrl := controller.NewSiteController(service.NewSiteService(db, store, limits))
	roomCtrl := controller.NewRoomController(service.NewRoomService(db, store, limits))
	activityCtrl := controller.NewActivityController(service.NewActivityService(db, store))
	calendarCtrl := controller.NewCalendarController(service.NewCalendarService(db, store))

	guard := authMiddleware.OnlyRoles(constants.RoleErrorManager("club management"), constants.ManagerAndAbove...)

	clubs := api.Group("/clubs", guard)
	clubs.Get("/", clubCtrl.GetMyClubs)
	clubs.Post("/", clubCtrl.CreateClub)
	clubs.Put("/:id", clubCtrl.UpdateClub)
	clubs.Delete("/:id", clubCtrl.DeleteClub)

	clubs.Get("/:club_id/sites", siteCtrl.GetSitesForClub)
	clubs.Post("/:club_id/sites", siteCtrl.CreateSite)
	clubs.Post("/:club_id/activities", activityCtrl.CreateActivity)
	clubs.Put("/:club_id/activities", activityCtrl.UpdateClubActivities)
	clubs.Post("/:club_id/calendar", calendarCtrl.CreateClubCalendar)

	sites := api.Group("/sites", guard)
	sites.Put("/:id", siteCtrl.UpdateSite)
	sites.Delete("/:id", siteCtrl.DeleteSite)
	sites.Get("/:site_id/rooms", roomCtrl.GetRoomsForSite)
	sites.Post("/:site_id/rooms", roomCtrl.CreateRoom)
	sites.Post("/:site_id/calendar", calendarCtrl.CreateSiteCalendar)
	sites.Patch("/:site_id/calendar", calendarCtrl.UpdateSiteOpenWith)

	rooms := api.Group("/rooms", guard)
	rooms.Put("/:id", roomCtrl.UpdateRoom)
	rooms.Delete("/:id", roomCtrl.DeleteRoom)
	rooms.Post("/:id/activities/:activity_id", roomCtrl.AffectActivity)
	rooms.Delete("/:id/activities/:activity_id", roomCtrl.RemoveActivity)
	rooms.Post("/:room_id/calendar", calendarCtrl.CreateRoomCalendar)
	rooms.Patch("/:room_id/calendar", calendarCtrl.UpdateRoomOpenWith)

	activities := api.Group("/activities", guard)
	activities.Put("/:id", activityCtrl.UpdateActivity)
	activities.Delete("/:id", activityCtrl.DeleteActivity)
}

// ActivityGroupRoutes: defaults plus the caller's own groups. Members may read, coaches and up write.
func ActivityGroupRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewActivityController(service.NewActivityService(db, store))

	g := api.Group("/activity-groups")
	g.Get("/", ctrl.GetActivityGroupsForUser)

	writers := authMiddleware.OnlyRoles(constants.RoleErrorCoach("activity groups"),
		constants.RoleCoach, constants.RoleManager, constants.RoleManagerCoach, constants.RoleAdmin)
	g.Post("/", writers, ctrl.CreateActivityGroup)
	g.Put("/:id", writers, ctrl.UpdateActivityGroup)
	g.Delete("/:id", writers, ctrl.DeleteActivityGroup)
}

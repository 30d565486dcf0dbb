package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/api/http/handlers"
	"github.com/weebHarsh/ticketing-portal-sub000/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Users          *handlers.UsersHandler
	Notifications  *handlers.NotificationsHandler
	MasterData     *handlers.MasterDataHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Users.ChangePassword)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	protected.Get("/users/me", cfg.Users.Me)

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/key/:key", cfg.Tickets.GetTicketByKey)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", cfg.Tickets.UpdateTicket)
	tickets.Post("/:id/status", cfg.Tickets.ChangeStatus)
	tickets.Post("/:id/assign", cfg.Tickets.Assign)
	tickets.Post("/:id/redirect", cfg.Tickets.Redirect)
	tickets.Delete("/:id", cfg.Tickets.SoftDelete)
	tickets.Post("/:id/restore", cfg.Tickets.Restore)
	tickets.Delete("/:id/permanent", cfg.Tickets.HardDelete)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/attachments", cfg.Tickets.AddAttachment)
	protected.Delete("/attachments/:id", cfg.Tickets.DeleteAttachment)

	notifications := protected.Group("/notifications")
	notifications.Get("", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)

	// Read-only lookups for the ticket form.
	master := protected.Group("/master")
	master.Get("/groups", cfg.MasterData.ListGroups)
	master.Get("/groups/:id/members", cfg.MasterData.ListTeamMembers)
	master.Get("/categories", cfg.MasterData.ListCategories)
	master.Get("/categories/:id/subcategories", cfg.MasterData.ListSubcategories)
	master.Get("/projects", cfg.MasterData.ListProjects)
	master.Get("/projects/:id/releases", cfg.MasterData.ListReleases)

	admin := protected.Group("/admin", auth.RequireAdmin())

	adminUsers := admin.Group("/users")
	adminUsers.Get("", cfg.Users.ListUsers)
	adminUsers.Patch("/:id", cfg.Users.UpdateUser)
	adminUsers.Post("/:id/deactivate", cfg.Users.Deactivate)
	adminUsers.Post("/:id/reactivate", cfg.Users.Reactivate)
	adminUsers.Delete("/:id", cfg.Users.HardDelete)

	adminMaster := admin.Group("/master")
	adminMaster.Post("/groups", cfg.MasterData.CreateGroup)
	adminMaster.Put("/groups/:id", cfg.MasterData.UpdateGroup)
	adminMaster.Delete("/groups/:id", cfg.MasterData.DeleteGroup)
	adminMaster.Delete("/groups/:id/members/:userID", cfg.MasterData.RemoveTeamMember)
	adminMaster.Post("/categories", cfg.MasterData.CreateCategory)
	adminMaster.Put("/categories/:id", cfg.MasterData.UpdateCategory)
	adminMaster.Delete("/categories/:id", cfg.MasterData.DeleteCategory)
	adminMaster.Post("/subcategories", cfg.MasterData.CreateSubcategory)
	adminMaster.Put("/subcategories/:id", cfg.MasterData.UpdateSubcategory)
	adminMaster.Delete("/subcategories/:id", cfg.MasterData.DeleteSubcategory)
	adminMaster.Post("/mappings", cfg.MasterData.CreateMapping)
	adminMaster.Get("/mappings", cfg.MasterData.ListMappings)
	adminMaster.Put("/mappings/:id", cfg.MasterData.UpdateMapping)
	adminMaster.Delete("/mappings/:id", cfg.MasterData.DeleteMapping)
	adminMaster.Post("/projects", cfg.MasterData.CreateProject)
	adminMaster.Put("/projects/:id", cfg.MasterData.UpdateProject)
	adminMaster.Delete("/projects/:id", cfg.MasterData.DeleteProject)
	adminMaster.Post("/releases", cfg.MasterData.CreateRelease)
	adminMaster.Delete("/releases/:id", cfg.MasterData.DeleteRelease)
	adminMaster.Post("/team-members", cfg.MasterData.AddTeamMember)
	adminMaster.Post("/:entity/import", cfg.MasterData.ImportCSV)
	adminMaster.Get("/:entity/export", cfg.MasterData.ExportCSV)

	adminReports := admin.Group("/reports")
	adminReports.Get("/summary", cfg.Reports.Summary)
	adminReports.Get("/tickets/export", cfg.Reports.ExportTickets)
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pathology-case-server/internal/config"
	"pathology-case-server/internal/handlers"
	"pathology-case-server/internal/middleware"
	"pathology-case-server/internal/models"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Cases    *handlers.CaseHandler
	Editor   *handlers.EditorHandler
	Search   *handlers.SearchHandler
	Feedback *handlers.FeedbackHandler
	Tenants  *handlers.TenantHandler
	Roles    *handlers.RoleHandler
	Tasks    *handlers.TaskHandler
	Admin    *handlers.AdminHandler
	Stats    *handlers.StatsHandler
}

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, cfg *config.Config, roles *store.RoleStore, h Handlers) {
	router.GET("/health", func(c *gin.Context) {
		utils.Success(c, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}

	// Everything below requires a valid token.
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", h.Auth.Logout)
		protectedAuth.GET("/profile", h.Auth.Profile)
		protectedAuth.PATCH("/profile", h.Auth.UpdateProfile)
		protectedAuth.GET("/permissions", h.Auth.Permissions(roles))
	}

	users := protected.Group("/users")
	{
		users.GET("", middleware.PermissionMiddleware(roles, models.PermViewUsers), h.Users.ListUsers)
		users.GET("/:id", middleware.PermissionMiddleware(roles, models.PermViewUsers), h.Users.GetUser)
		users.POST("", middleware.PermissionMiddleware(roles, models.PermManageUsers), h.Users.CreateUser)
		users.PATCH("/:id", middleware.PermissionMiddleware(roles, models.PermManageUsers), h.Users.UpdateUserName)
	}
	protected.GET("/leaderboard", h.Users.Leaderboard)

	cases := protected.Group("/cases")
	cases.Use(middleware.PermissionMiddleware(roles, models.PermViewCases))
	{
		cases.GET("", h.Cases.ListCases)
		cases.GET("/:id", h.Cases.GetCase)
		cases.PUT("/filters", h.Cases.ApplyFilters)
		cases.DELETE("/filters", h.Cases.ClearFilters)
		cases.POST("/sort", h.Cases.SetSort)
		cases.POST("/:id/select", h.Cases.SelectCase)
		cases.DELETE("/selection", h.Cases.ClearSelection)

		manage := cases.Group("")
		manage.Use(middleware.PermissionMiddleware(roles, models.PermManageCases))
		{
			manage.POST("", h.Cases.CreateCase)
			manage.POST("/:id/archive", h.Cases.ArchiveCase)
			manage.POST("/:id/unarchive", h.Cases.UnarchiveCase)
			manage.PATCH("/:id/status", h.Cases.UpdateStatus)
			manage.PATCH("/:id/assignee", h.Cases.UpdateAssignee)
			manage.PATCH("/:id/image", h.Cases.UpdateImage)
			manage.PUT("/:id/annotations", h.Cases.ReplaceAnnotations)
			manage.DELETE("/:id/annotations", h.Cases.ClearAnnotations)

			manage.POST("/:id/editor", h.Editor.OpenSession)
			manage.DELETE("/:id/editor", h.Editor.CloseSession)
			manage.POST("/:id/editor/events", h.Editor.Event)
			manage.DELETE("/:id/editor/annotations", h.Editor.ClearAnnotations)
			manage.DELETE("/:id/editor/annotations/:annotationId", h.Editor.DeleteAnnotation)
		}

		analysis := cases.Group("")
		analysis.Use(middleware.PermissionMiddleware(roles, models.PermRunAIAnalysis))
		{
			analysis.POST("/:id/analysis", h.Cases.RunAnalysis)
			analysis.POST("/:id/analysis/:itemId/feedback", h.Cases.AnalysisFeedback)
		}
	}
	protected.GET("/analysis/presets", h.Cases.ListPresets)

	protected.POST("/search", middleware.PermissionMiddleware(roles, models.PermViewCases), h.Search.Search)

	feedback := protected.Group("/feedback")
	{
		feedback.GET("", h.Feedback.ListFeedback)
		feedback.POST("", h.Feedback.CreateFeedback)

		review := feedback.Group("")
		review.Use(middleware.RoleAuthMiddleware(models.RoleSuperAdmin, models.RoleSystemAdmin))
		{
			review.POST("/:id/review", h.Feedback.ReviewFeedback)
			review.PATCH("/:id/status", h.Feedback.UpdateFeedbackStatus)
		}
	}

	tenants := protected.Group("/tenants")
	tenants.Use(middleware.RoleAuthMiddleware(models.RoleSuperAdmin))
	{
		tenants.GET("", h.Tenants.ListTenants)
		tenants.POST("", h.Tenants.CreateTenant)
		tenants.PATCH("/:id", h.Tenants.UpdateTenant)
		tenants.DELETE("/:id", h.Tenants.DeleteTenant)
		tenants.GET("/:id/integrations", h.Tenants.TenantIntegrations)
	}

	rolesGroup := protected.Group("/roles")
	{
		rolesGroup.GET("", middleware.PermissionMiddleware(roles, models.PermViewRoles), h.Roles.ListRoles)
		rolesGroup.GET("/permissions", middleware.PermissionMiddleware(roles, models.PermViewRoles), h.Roles.ListPermissions)
		rolesGroup.POST("", middleware.PermissionMiddleware(roles, models.PermManageRoles), h.Roles.CreateRole)
		rolesGroup.PUT("/:id", middleware.PermissionMiddleware(roles, models.PermManageRoles), h.Roles.UpdateRole)
		rolesGroup.DELETE("/:id", middleware.PermissionMiddleware(roles, models.PermManageRoles), h.Roles.DeleteRole)
	}

	tasks := protected.Group("/tasks")
	{
		tasks.GET("", h.Tasks.ListTasks)
		tasks.POST("", h.Tasks.CreateTask)
		tasks.POST("/:id/toggle", h.Tasks.ToggleTask)
		tasks.DELETE("/:id", h.Tasks.DeleteTask)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RoleAuthMiddleware(models.RoleSuperAdmin, models.RoleSystemAdmin))
	{
		admin.GET("/integrations", h.Admin.ListIntegrations)
		admin.GET("/models", h.Admin.ListModels)
		admin.POST("/models/:id/rollback", h.Admin.RollbackModel)
		admin.GET("/experiments", h.Admin.ListExperiments)
		admin.GET("/activity", h.Admin.ListActivity)
		admin.GET("/settings", h.Admin.GetSettings)
		admin.PATCH("/settings", h.Admin.UpdateSettings)
		admin.GET("/errors", middleware.PermissionMiddleware(roles, models.PermViewSystemHealth), h.Admin.ListErrors)
	}

	courses := protected.Group("/courses")
	courses.Use(middleware.RoleAuthMiddleware(models.RoleSuperAdmin, models.RoleStudentAdmin))
	{
		courses.GET("", h.Admin.ListCourses)
		courses.POST("", h.Admin.CreateCourse)
		courses.POST("/:id/assign", h.Admin.AssignStudent)
	}

	protected.GET("/changelog", h.Admin.ListChangelog)

	stats := protected.Group("/stats")
	stats.Use(middleware.PermissionMiddleware(roles, models.PermViewReports))
	{
		stats.GET("/qa-metrics", h.Stats.QAMetrics)
		stats.GET("/audit-trail", h.Stats.AuditTrail)
	}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("/current", h.Stats.CurrentNotification)
		notifications.DELETE("/current", h.Stats.DismissNotification)
	}
}

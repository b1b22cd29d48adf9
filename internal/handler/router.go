package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chainworks/retail-ops-api/internal/middleware"
	"github.com/chainworks/retail-ops-api/internal/models"
	"github.com/chainworks/retail-ops-api/internal/repository"
	"github.com/chainworks/retail-ops-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth        *AuthHandler
	Stores      *StoreHandler
	Employees   *EmployeeHandler
	Tasks       *TaskHandler
	StaffStatus *StaffStatusHandler
	Inspections *InspectionHandler
	Campaigns   *CampaignHandler
	Schedule    *ScheduleHandler
	Dashboard   *DashboardHandler
	Reports     *ReportHandler
}

// RegisterRoutes wires the API surface under the prefix. Reads are open to
// any authenticated role; writes are restricted per resource.
func RegisterRoutes(
	router *gin.Engine,
	prefix string,
	h Handlers,
	auth *service.AuthService,
	users *repository.UserRepository,
	dashboardEnabled bool,
	logger *zap.Logger,
) {
	api := router.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)
	api.GET("/reports/download/:token", h.Reports.Download)

	authed := api.Group("")
	authed.Use(middleware.JWT(auth))

	authed.GET("/auth/me", h.Auth.Me)
	authed.PUT("/auth/password", h.Auth.ChangePassword)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	adminOrSupervisor := middleware.RequireRoles(models.RoleAdmin, models.RoleSupervisor)

	stores := authed.Group("/stores")
	stores.Use(middleware.Audit(users, "stores", logger))
	{
		stores.GET("", h.Stores.List)
		stores.GET("/:id", h.Stores.Get)
		stores.GET("/:id/activity-setting", h.Stores.GetSetting)
		stores.POST("", adminOnly, h.Stores.Create)
		stores.PUT("/:id", adminOnly, h.Stores.Update)
		stores.DELETE("/:id", adminOnly, h.Stores.Deactivate)
		stores.PUT("/:id/activity-setting", adminOnly, h.Stores.UpdateSetting)
	}

	employees := authed.Group("/employees")
	employees.Use(middleware.Audit(users, "employees", logger))
	{
		employees.GET("", h.Employees.List)
		employees.GET("/:id", h.Employees.Get)
		employees.POST("", adminOnly, h.Employees.Create)
		employees.PUT("/:id", adminOnly, h.Employees.Update)
		employees.DELETE("/:id", adminOnly, h.Employees.Deactivate)
	}

	tasks := authed.Group("/tasks")
	tasks.Use(middleware.Audit(users, "tasks", logger))
	{
		tasks.GET("", h.Tasks.List)
		tasks.GET("/:id", h.Tasks.Get)
		tasks.POST("", adminOrSupervisor, h.Tasks.Create)
		tasks.PUT("/:id", adminOrSupervisor, h.Tasks.Update)
		tasks.PATCH("/:id/status", h.Tasks.Transition)
	}

	staffStatus := authed.Group("/staff-status")
	staffStatus.Use(middleware.Audit(users, "staff_status", logger))
	{
		staffStatus.GET("/:month", h.StaffStatus.ListMonth)
		staffStatus.GET("/:month/summary", h.StaffStatus.Summary)
		staffStatus.POST("/confirm", adminOrSupervisor, h.StaffStatus.Confirm)
		staffStatus.POST("/finalize", adminOnly, h.StaffStatus.Finalize)
	}

	inspections := authed.Group("/inspections")
	inspections.Use(middleware.Audit(users, "inspections", logger))
	{
		inspections.GET("", h.Inspections.List)
		inspections.GET("/:id", h.Inspections.Get)
		inspections.POST("", adminOrSupervisor, h.Inspections.Create)
		inspections.POST("/:id/report", adminOrSupervisor, h.Inspections.Report)
	}

	campaigns := authed.Group("/campaigns")
	campaigns.Use(middleware.Audit(users, "campaigns", logger))
	{
		campaigns.GET("", h.Campaigns.List)
		campaigns.GET("/:id", h.Campaigns.Get)
		campaigns.GET("/:id/schedule", h.Schedule.ListAssignments)
		campaigns.GET("/:id/schedule/export", h.Schedule.ExportCSV)
		campaigns.POST("", adminOnly, h.Campaigns.Create)
		campaigns.PATCH("/:id/status", adminOnly, h.Campaigns.UpdateStatus)
	}

	calendar := authed.Group("/calendar")
	calendar.Use(middleware.Audit(users, "calendar", logger))
	{
		calendar.GET("", h.Campaigns.ListEvents)
		calendar.POST("", adminOnly, h.Campaigns.CreateEvent)
		calendar.DELETE("/:id", adminOnly, h.Campaigns.DeleteEvent)
	}

	schedule := authed.Group("/schedule")
	schedule.Use(middleware.Audit(users, "schedule", logger))
	{
		schedule.POST("/generate", adminOnly, h.Schedule.Generate)
		schedule.POST("/save", adminOnly, h.Schedule.Save)
		schedule.DELETE("/assignments/:id", adminOnly, h.Schedule.DeleteAssignment)
	}

	if dashboardEnabled {
		authed.GET("/dashboard/summary", h.Dashboard.Summary)
	}
}

package api

import (
	"strings"

	_ "github.com/betulabla/foundation/docs/swagger"
	v1 "github.com/betulabla/foundation/internal/api/v1"
	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/rbac"
	"github.com/betulabla/foundation/internal/rest/middleware"
	"github.com/betulabla/foundation/internal/service"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Auth     *v1.AuthHandler
	User     *v1.UserHandler
	Orphan   *v1.OrphanHandler
	Borehole *v1.BoreholeHandler
	Report   *v1.ReportHandler
}

func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	authService service.AuthService,
	rbacService *rbac.RBACService,
) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.PyroscopeMiddleware(cfg),
		middleware.AccessLogMiddleware(logger),
		middleware.ErrorHandler(logger),
	)
	// every route is registered with and without the trailing slash
	router.RedirectTrailingSlash = false

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/", handlers.Health.Root)
	handle(router.Group("/health"), "GET", "", handlers.Health.Health)

	api := router.Group("/api")
	handle(api, "GET", "", handlers.Health.Root)

	limiter := middleware.NewRateLimiter(cfg)
	authenticated := []gin.HandlerFunc{
		middleware.AuthenticateMiddleware(authService, logger),
		middleware.SentryScopeMiddleware(cfg),
	}
	permissions := middleware.NewPermissionMiddleware(rbacService, logger)

	// public auth endpoints
	auth := api.Group("/auth")
	handle(auth, "POST", "/register", limiter.Middleware(), handlers.Auth.Register)
	handle(auth, "POST", "/login", limiter.Middleware(), handlers.Auth.Login)
	handle(auth, "POST", "/token/refresh", handlers.Auth.RefreshToken)

	// aliases used by older clients
	handle(api, "POST", "/token", limiter.Middleware(), handlers.Auth.Login)
	handle(api, "POST", "/token/refresh", handlers.Auth.RefreshToken)

	private := api.Group("", authenticated...)

	account := private.Group("/auth")
	handle(account, "POST", "/logout", handlers.Auth.Logout)
	handle(account, "GET", "/profile", handlers.User.GetProfile)
	handle(account, "PUT", "/profile", handlers.User.UpdateProfile)
	handle(account, "PATCH", "/profile", handlers.User.UpdateProfile)
	handle(account, "PUT", "/profile/update", handlers.User.UpdateProfile)
	handle(account, "PATCH", "/profile/update", handlers.User.UpdateProfile)
	handle(account, "POST", "/change-password", handlers.Auth.ChangePassword)
	handle(account, "GET", "/roles", handlers.Auth.ListRoles)
	handle(account, "GET", "/users", permissions.RequirePermission(rbac.EntityUser, rbac.ActionList), handlers.User.ListUsers)
	handle(account, "DELETE", "/users/:id", permissions.RequirePermission(rbac.EntityUser, rbac.ActionDelete), handlers.User.DeleteUser)

	handle(private.Group("/core"), "GET", "/dashboard", handlers.User.Dashboard)

	orphans := private.Group("/orphans")
	registerResource(orphans, permissions, rbac.EntityOrphan, resourceHandlers{
		list:   handlers.Orphan.ListOrphans,
		create: handlers.Orphan.CreateOrphan,
		get:    handlers.Orphan.GetOrphan,
		update: handlers.Orphan.UpdateOrphan,
		delete: handlers.Orphan.DeleteOrphan,
		stats:  handlers.Orphan.GetOrphanStats,
		export: handlers.Orphan.ExportOrphans,
	})
	handle(orphans, "POST", "/:id/update_status", permissions.RequirePermission(rbac.EntityOrphan, rbac.ActionWrite), handlers.Orphan.UpdateOrphanStatus)
	handle(orphans, "POST", "/:id/photo", permissions.RequirePermission(rbac.EntityOrphan, rbac.ActionWrite), handlers.Orphan.UploadOrphanPhoto)

	boreholes := private.Group("/boreholes")
	registerResource(boreholes, permissions, rbac.EntityBorehole, resourceHandlers{
		list:   handlers.Borehole.ListBoreholes,
		create: handlers.Borehole.CreateBorehole,
		get:    handlers.Borehole.GetBorehole,
		update: handlers.Borehole.UpdateBorehole,
		delete: handlers.Borehole.DeleteBorehole,
		stats:  handlers.Borehole.GetBoreholeStats,
		export: handlers.Borehole.ExportBoreholes,
	})
	handle(boreholes, "POST", "/:id/update_status", permissions.RequirePermission(rbac.EntityBorehole, rbac.ActionWrite), handlers.Borehole.UpdateBoreholeStatus)

	reports := private.Group("/reports")
	registerResource(reports, permissions, rbac.EntityReport, resourceHandlers{
		list:   handlers.Report.ListReports,
		create: handlers.Report.CreateReport,
		get:    handlers.Report.GetReport,
		update: handlers.Report.UpdateReport,
		delete: handlers.Report.DeleteReport,
		stats:  handlers.Report.GetReportStats,
		export: handlers.Report.ExportReports,
	})
	handle(reports, "POST", "/:id/approve", permissions.RequirePermission(rbac.EntityReport, rbac.ActionApprove), handlers.Report.ApproveReport)
	handle(reports, "POST", "/:id/publish", permissions.RequirePermission(rbac.EntityReport, rbac.ActionPublish), handlers.Report.PublishReport)
	handle(reports, "POST", "/:id/attachment", permissions.RequirePermission(rbac.EntityReport, rbac.ActionWrite), handlers.Report.UploadReportAttachment)

	return router
}

type resourceHandlers struct {
	list, create, get, update, delete, stats, export gin.HandlerFunc
}

func registerResource(group *gin.RouterGroup, pm *middleware.PermissionMiddleware, entity string, h resourceHandlers) {
	read := pm.RequirePermission(entity, rbac.ActionRead)
	write := pm.RequirePermission(entity, rbac.ActionWrite)

	handle(group, "GET", "", read, h.list)
	handle(group, "POST", "", write, h.create)
	handle(group, "GET", "/stats", read, h.stats)
	handle(group, "GET", "/export", pm.RequirePermission(entity, rbac.ActionExport), h.export)
	handle(group, "GET", "/:id", read, h.get)
	handle(group, "PUT", "/:id", write, h.update)
	handle(group, "PATCH", "/:id", write, h.update)
	handle(group, "DELETE", "/:id", pm.RequirePermission(entity, rbac.ActionDelete), h.delete)
}

// handle registers path both with and without a trailing slash
func handle(group *gin.RouterGroup, method, path string, handlers ...gin.HandlerFunc) {
	path = strings.TrimSuffix(path, "/")
	group.Handle(method, path+"/", handlers...)
	if path != "" || group.BasePath() != "/" {
		group.Handle(method, path, handlers...)
	}
}

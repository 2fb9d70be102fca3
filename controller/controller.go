package controller

import (
	"net/http"

	"crm-gateway/bridge"
	"crm-gateway/middelware"
	"crm-gateway/models"
	"crm-gateway/utils/logger"
	"crm-gateway/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controller wires the forwarding controllers to their backend service
// handles. Every handler is structurally the same: shape a payload, call
// the bridge, relay the envelope. Authentication and authorization run
// upstream in the middleware chain.
type Controller struct {
	User        *UserController
	Roles       *RolesController
	Profile     *ProfileController
	Company     *CompanyController
	Clients     *ClientsController
	Deals       *DealsController
	Leads       *LeadsController
	News        *NewsController
	Settings    *SettingsController
	Tasks       *TasksController
	StatusDeals *StatusDealsController
	Activity    *ActivityController
	Cars        *CarsController
	Park        *ParkController
	Files       *FilesController

	jwtManager *middelware.JWTManager
	monitor    *worker.Monitor
	config     *models.Config
	logger     logger.Logger
}

// NewController builds the service registry and every route controller.
func NewController(cfg *models.Config, log logger.Logger, registry *bridge.Registry, monitor *worker.Monitor) *Controller {
	userClient := registry.Service(bridge.UserService)
	filesClient := registry.Service(bridge.FilesService)
	companyClient := registry.Service(bridge.CompanyService)

	var sessionClient *bridge.Client
	if cfg.VerifySession {
		sessionClient = userClient
	}
	jwtManager := middelware.NewJWTManager(cfg, log, sessionClient)

	return &Controller{
		User:        NewUserController(userClient, log),
		Roles:       NewRolesController(registry.Service(bridge.RolesService), log),
		Profile:     NewProfileController(registry.Service(bridge.ProfileService), log),
		Company:     NewCompanyController(companyClient, filesClient, log),
		Clients:     NewClientsController(registry.Service(bridge.ClientsService), filesClient, log),
		Deals:       NewDealsController(companyClient, log),
		Leads:       NewLeadsController(companyClient, log),
		News:        NewNewsController(registry.Service(bridge.NewsService), log),
		Settings:    NewSettingsController(registry.Service(bridge.SettingsService), log),
		Tasks:       NewTasksController(companyClient, log),
		StatusDeals: NewStatusDealsController(companyClient, log),
		Activity:    NewActivityController(companyClient, log),
		Cars:        NewCarsController(companyClient, filesClient, log),
		Park:        NewParkController(companyClient, log),
		Files:       NewFilesController(filesClient, log),
		jwtManager:  jwtManager,
		monitor:     monitor,
		config:      cfg,
		logger:      log,
	}
}

// JWTManager exposes the guard chain, mainly for tests.
func (ct *Controller) JWTManager() *middelware.JWTManager {
	return ct.jwtManager
}

// RegisterRoutes attaches every route to the engine. Role requirements
// are declared here, per group or per route; routes registered without
// Auth are public.
func (ct *Controller) RegisterRoutes(r *gin.Engine) {
	mw := ct.jwtManager

	r.GET("/health", ct.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group(ct.config.BasePath)

	users := v1.Group("/users")
	{
		users.POST("/registration", ct.User.Registration)
		users.POST("/login", ct.User.Login)
		users.GET("/verify", ct.User.Verify)
		users.PATCH("/password/forgot", ct.User.ForgotPassword)
		users.POST("/refresh", ct.User.RefreshToken)

		users.PATCH("/password/change", append(mw.Auth(), ct.User.ChangePassword)...)
		users.POST("/create", append(mw.Auth("Admin"), ct.User.Create)...)
		users.GET("/list", append(mw.Auth("Admin"), ct.User.List)...)
		users.DELETE("/:id/archive", append(mw.Auth("Admin"), ct.User.Archive)...)
	}

	roles := v1.Group("/roles", mw.Auth("Admin")...)
	{
		roles.POST("/create", ct.Roles.Create)
		roles.GET("/list", ct.Roles.List)
		roles.PATCH("/:id/update", ct.Roles.Update)
	}

	profile := v1.Group("/profile", mw.Auth("Admin", "Manager")...)
	{
		profile.GET("/me", ct.Profile.Me)
		profile.POST("/new", ct.Profile.Create)
		profile.GET("/list", ct.Profile.List)
		profile.GET("/archive", ct.Profile.ListArchive)
		profile.GET("/:id", ct.Profile.Find)
		profile.PATCH("/:id/update", ct.Profile.Update)
		profile.PATCH("/:id/status", ct.Profile.ChangeStatus)
	}

	companies := v1.Group("/companies", mw.Auth("Admin", "Manager")...)
	{
		companies.POST("/create", ct.Company.Create)
		companies.PATCH("/:id/update", ct.Company.Update)
		companies.GET("/list", ct.Company.List)
		companies.GET("/:id/find", ct.Company.Find)
		companies.GET("/:id/checkout", ct.Company.Checkout)
		companies.DELETE("/:id/archive", ct.Company.Archive)
		companies.GET("/attachments/:id/list", ct.Company.FileList)
		companies.GET("/attachments/:id/download/:fileID", ct.Company.DownloadFile)
		companies.DELETE("/attachments/:id/delete/:fileID", ct.Company.DeleteFile)
	}

	clients := v1.Group("/clients", mw.Auth("Admin", "Manager")...)
	{
		clients.POST("/create", ct.Clients.Create)
		clients.PATCH("/:id/update", ct.Clients.Update)
		clients.GET("/list", ct.Clients.List)
		clients.GET("/:id/find", ct.Clients.Find)
		clients.DELETE("/:id/archive", ct.Clients.Archive)
		clients.GET("/attachments/:id/list", ct.Clients.FileList)
		clients.GET("/attachments/:id/download/:fileID", ct.Clients.DownloadFile)
	}

	deals := v1.Group("/deals", mw.Auth("Admin", "Manager")...)
	{
		deals.POST("/create", ct.Deals.Create)
		deals.PATCH("/:id/update", ct.Deals.Update)
		deals.GET("/list", ct.Deals.List)
		deals.GET("/:id/find", ct.Deals.Find)
		deals.DELETE("/:id/archive", ct.Deals.Archive)
		deals.PATCH("/:id/status/:sid", ct.Deals.ChangeStatus)
		deals.PATCH("/:id/owner", ct.Deals.ChangeOwner)
		deals.POST("/:id/comment", ct.Deals.Comment)
	}

	leads := v1.Group("/leads", mw.Auth("Admin", "Manager")...)
	{
		leads.POST("/create", ct.Leads.Create)
		leads.PATCH("/:id/update", ct.Leads.Update)
		leads.GET("/list", ct.Leads.List)
		leads.GET("/:id/find", ct.Leads.Find)
		leads.DELETE("/:id/archive", ct.Leads.Archive)
		leads.PATCH("/:id/status/:sid", ct.Leads.ChangeStatus)
		leads.PATCH("/:id/owner", ct.Leads.ChangeOwner)
		leads.POST("/:id/comment", ct.Leads.Comment)
		leads.PATCH("/:id/done", ct.Leads.Done)
		leads.PATCH("/:id/failure", ct.Leads.Failure)
	}

	news := v1.Group("/news", mw.Auth("Admin", "Manager")...)
	{
		news.POST("/create", ct.News.Create)
		news.PATCH("/:id/update", ct.News.Update)
		news.GET("/list", ct.News.List)
		news.GET("/:id/find", ct.News.Find)
		news.DELETE("/:id/archive", ct.News.Archive)
		news.POST("/:id/comment", ct.News.Comment)
	}

	settings := v1.Group("/settings", mw.Auth("Admin")...)
	{
		settings.POST("/set", ct.Settings.Set)
		settings.GET("/list", ct.Settings.List)
		settings.GET("/:property", ct.Settings.Get)
	}

	tasks := v1.Group("/tasks", mw.Auth("Admin", "Manager")...)
	{
		tasks.POST("/create", ct.Tasks.Create)
		tasks.PATCH("/:id/update", ct.Tasks.Update)
		tasks.GET("/list", ct.Tasks.List)
		tasks.GET("/:id/find", ct.Tasks.Find)
		tasks.DELETE("/:id/delete", ct.Tasks.Delete)
	}

	statuses := v1.Group("/status-deals", mw.Auth("Admin")...)
	{
		statuses.POST("/create", ct.StatusDeals.Create)
		statuses.PATCH("/:id/update", ct.StatusDeals.Update)
		statuses.GET("/list", ct.StatusDeals.List)
		statuses.GET("/:id/find", ct.StatusDeals.Find)
		statuses.DELETE("/:id/archive", ct.StatusDeals.Archive)
		statuses.PATCH("/:id/priority", ct.StatusDeals.ChangePriority)
	}

	activity := v1.Group("/activity", mw.Auth("Admin", "Manager")...)
	{
		activity.GET("/list", ct.Activity.List)
		activity.GET("/:id/find", ct.Activity.Find)
	}

	cars := v1.Group("/cars", mw.Auth("Admin", "Manager")...)
	{
		cars.POST("/create/:company", ct.Cars.Create)
		cars.GET("/list", ct.Cars.List)
		cars.GET("/:id/find", ct.Cars.Find)
		cars.PATCH("/:id/update", ct.Cars.Update)
		cars.DELETE("/:id/status", ct.Cars.ChangeStatus)
		cars.GET("/attachments/:id/list", ct.Cars.FileList)
		cars.GET("/attachments/:id/download/:fileID", ct.Cars.DownloadFile)
		cars.DELETE("/attachments/:id/delete/:fileID", ct.Cars.DeleteFile)
	}

	park := v1.Group("/park", mw.Auth("Admin", "Manager")...)
	{
		park.POST("/create/:company", ct.Park.Create)
		park.PATCH("/add/store/:parkId", ct.Park.AddStore)
		park.PATCH("/add/:parkId/fuel/:storeId", ct.Park.AddFuel)
		park.PATCH("/update/:parkId/store/:storeId", ct.Park.UpdateStore)
		park.PATCH("/update/:parkId/store/:storeId/fuel/:fuelId", ct.Park.UpdateFuel)
		park.GET("/list/:companyId", ct.Park.List)
		park.GET("/find/:id", ct.Park.Find)
		park.DELETE("/archive/:id", ct.Park.Archive)
		park.DELETE("/delete/:parkId/store/:storeId", ct.Park.DeleteStore)
		park.DELETE("/delete/:parkId/store/:storeId/fuel/:fuelId", ct.Park.DeleteFuel)
	}

	v1.GET("/files", append(mw.Auth("Admin", "Manager"), ct.Files.List)...)
}

// health reports the gateway's own liveness plus the last backend probe
// snapshot collected by the monitor worker.
func (ct *Controller) health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":  "healthy",
		"service": ct.config.AppName,
		"version": ct.config.AppVersion,
	}

	if ct.monitor != nil {
		backends := ct.monitor.Snapshot()
		body["backends"] = backends
		for _, up := range backends {
			if !up {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				break
			}
		}
	}

	c.JSON(status, body)
}

package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/research-portal-api/config"
	"github.com/sahilchouksey/research-portal-api/database"
	"github.com/sahilchouksey/research-portal-api/handlers"
	analytics_handlers "github.com/sahilchouksey/research-portal-api/handlers/analytics"
	auth_handlers "github.com/sahilchouksey/research-portal-api/handlers/auth"
	award_handlers "github.com/sahilchouksey/research-portal-api/handlers/award"
	consultancy_handlers "github.com/sahilchouksey/research-portal-api/handlers/consultancy"
	dashboard_handlers "github.com/sahilchouksey/research-portal-api/handlers/dashboard"
	faculty_handlers "github.com/sahilchouksey/research-portal-api/handlers/faculty"
	ipasset_handlers "github.com/sahilchouksey/research-portal-api/handlers/ipasset"
	ipr_handlers "github.com/sahilchouksey/research-portal-api/handlers/ipr"
	lab_handlers "github.com/sahilchouksey/research-portal-api/handlers/lab"
	material_handlers "github.com/sahilchouksey/research-portal-api/handlers/material"
	patent_handlers "github.com/sahilchouksey/research-portal-api/handlers/patent"
	project_handlers "github.com/sahilchouksey/research-portal-api/handlers/project"
	publication_handlers "github.com/sahilchouksey/research-portal-api/handlers/publication"
	research_handlers "github.com/sahilchouksey/research-portal-api/handlers/research"
	researchcenter_handlers "github.com/sahilchouksey/research-portal-api/handlers/researchcenter"
	studentproject_handlers "github.com/sahilchouksey/research-portal-api/handlers/studentproject"
	"github.com/sahilchouksey/research-portal-api/model"
	"github.com/sahilchouksey/research-portal-api/utils/auth"
	"github.com/sahilchouksey/research-portal-api/utils/middleware"
	"github.com/sahilchouksey/research-portal-api/utils/response"
	"github.com/sahilchouksey/research-portal-api/utils/upload"
)

// SetupRoutes wires every handler onto the Fiber app. Reads on domain
// entities are public; mutations are gated per route table below.
func SetupRoutes(app *fiber.App, store *database.PostgreSQLStore, gormStore *database.GORMStore, saver *upload.Saver, env *config.EnviornmentVariable) {
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    env.CORS_ORIGIN,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: env.JWT_EXPIRES_IN,
		Issuer: env.JWT_ISSUER,
	})
	authMW := middleware.NewAuthMiddleware(jwtManager)

	adminOnly := []fiber.Handler{authMW.Required(), authMW.RequireRole(model.RoleAdmin)}
	adminOrFaculty := []fiber.Handler{authMW.Required(), authMW.RequireRole(model.RoleAdmin, model.RoleFaculty)}

	// Uploaded files are served straight from disk.
	app.Static("/uploads", saver.BaseDir())

	app.Get("/health", handlers.HandleCheckHealth)

	api := app.Group("/api")

	// Auth
	authHandler := auth_handlers.NewAuthHandler(gormStore.DB(), jwtManager)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authGroup.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authGroup.Get("/me", authMW.Required(), authHandler.Me)
	authGroup.Post("/logout", authMW.Required(), authHandler.Logout)

	// Faculty
	facultyHandler := faculty_handlers.NewFacultyHandler(store, gormStore.DB(), saver)
	facultyGroup := api.Group("/faculty")
	facultyGroup.Get("/", facultyHandler.ListFaculty)
	facultyGroup.Get("/:id", facultyHandler.GetFaculty)
	facultyGroup.Post("/", append(adminOnly, facultyHandler.CreateFaculty)...)
	facultyGroup.Put("/:id", append(adminOrFaculty, facultyHandler.UpdateFaculty)...)
	facultyGroup.Delete("/:id", append(adminOnly, facultyHandler.DeleteFaculty)...)

	// Publications
	publicationHandler := publication_handlers.NewPublicationHandler(store)
	publicationGroup := api.Group("/publications")
	publicationGroup.Get("/", publicationHandler.ListPublications)
	publicationGroup.Get("/:id", publicationHandler.GetPublication)
	publicationGroup.Post("/", append(adminOnly, publicationHandler.CreatePublication)...)
	publicationGroup.Put("/:id", append(adminOnly, publicationHandler.UpdatePublication)...)
	publicationGroup.Delete("/:id", append(adminOnly, publicationHandler.DeletePublication)...)

	// Patents
	patentHandler := patent_handlers.NewPatentHandler(store)
	patentGroup := api.Group("/patents")
	patentGroup.Get("/", patentHandler.ListPatents)
	patentGroup.Get("/:id", patentHandler.GetPatent)
	patentGroup.Post("/", append(adminOnly, patentHandler.CreatePatent)...)
	patentGroup.Put("/:id", append(adminOnly, patentHandler.UpdatePatent)...)
	patentGroup.Delete("/:id", append(adminOnly, patentHandler.DeletePatent)...)

	// IPR filings
	iprHandler := ipr_handlers.NewIPRHandler(store)
	iprGroup := api.Group("/ipr")
	iprGroup.Get("/", iprHandler.ListIPR)
	iprGroup.Get("/:id", iprHandler.GetIPR)
	iprGroup.Post("/", append(adminOnly, iprHandler.CreateIPR)...)
	iprGroup.Put("/:id", append(adminOnly, iprHandler.UpdateIPR)...)
	iprGroup.Delete("/:id", append(adminOnly, iprHandler.DeleteIPR)...)

	// IP assets
	ipAssetHandler := ipasset_handlers.NewIPAssetHandler(store)
	ipAssetGroup := api.Group("/ip-assets")
	ipAssetGroup.Get("/", ipAssetHandler.ListIPAssets)
	ipAssetGroup.Get("/:id", ipAssetHandler.GetIPAsset)
	ipAssetGroup.Post("/", append(adminOnly, ipAssetHandler.CreateIPAsset)...)
	ipAssetGroup.Put("/:id", append(adminOnly, ipAssetHandler.UpdateIPAsset)...)
	ipAssetGroup.Delete("/:id", append(adminOnly, ipAssetHandler.DeleteIPAsset)...)

	// Research labs
	labHandler := lab_handlers.NewLabHandler(store, saver)
	labGroup := api.Group("/labs")
	labGroup.Get("/", labHandler.ListLabs)
	labGroup.Get("/:id", labHandler.GetLab)
	labGroup.Post("/", append(adminOnly, labHandler.CreateLab)...)
	labGroup.Put("/:id", append(adminOnly, labHandler.UpdateLab)...)
	labGroup.Delete("/:id", append(adminOnly, labHandler.DeleteLab)...)

	// Research centers
	centerHandler := researchcenter_handlers.NewResearchCenterHandler(store, saver)
	centerGroup := api.Group("/research-centers")
	centerGroup.Get("/", centerHandler.ListCenters)
	centerGroup.Get("/:id", centerHandler.GetCenter)
	centerGroup.Post("/", append(adminOnly, centerHandler.CreateCenter)...)
	centerGroup.Put("/:id", append(adminOnly, centerHandler.UpdateCenter)...)
	centerGroup.Delete("/:id", append(adminOnly, centerHandler.DeleteCenter)...)

	// Consultancy
	consultancyHandler := consultancy_handlers.NewConsultancyHandler(store)
	consultancyGroup := api.Group("/consultancy")
	consultancyGroup.Get("/", consultancyHandler.ListConsultancy)
	consultancyGroup.Get("/:id", consultancyHandler.GetConsultancy)
	consultancyGroup.Post("/", append(adminOnly, consultancyHandler.CreateConsultancy)...)
	consultancyGroup.Put("/:id", append(adminOnly, consultancyHandler.UpdateConsultancy)...)
	consultancyGroup.Delete("/:id", append(adminOnly, consultancyHandler.DeleteConsultancy)...)

	// Teaching materials, mounted under both historical paths.
	materialHandler := material_handlers.NewMaterialHandler(store, saver)
	for _, prefix := range []string{"/materials", "/teaching-materials"} {
		group := api.Group(prefix)
		group.Get("/", materialHandler.ListMaterials)
		group.Get("/:id", materialHandler.GetMaterial)
		group.Post("/", append(adminOrFaculty, materialHandler.CreateMaterial)...)
		group.Put("/:id", append(adminOrFaculty, materialHandler.UpdateMaterial)...)
		group.Delete("/:id", append(adminOrFaculty, materialHandler.DeleteMaterial)...)
	}

	// Awards
	awardHandler := award_handlers.NewAwardHandler(store)
	awardGroup := api.Group("/awards")
	awardGroup.Get("/", awardHandler.ListAwards)
	awardGroup.Get("/:id", awardHandler.GetAward)
	awardGroup.Post("/", append(adminOnly, awardHandler.CreateAward)...)
	awardGroup.Put("/:id", append(adminOnly, awardHandler.UpdateAward)...)
	awardGroup.Delete("/:id", append(adminOnly, awardHandler.DeleteAward)...)

	// Student projects
	studentProjectHandler := studentproject_handlers.NewStudentProjectHandler(store)
	studentProjectGroup := api.Group("/student-projects")
	studentProjectGroup.Get("/", studentProjectHandler.ListStudentProjects)
	studentProjectGroup.Get("/:id", studentProjectHandler.GetStudentProject)
	studentProjectGroup.Post("/", append(adminOnly, studentProjectHandler.CreateStudentProject)...)
	studentProjectGroup.Put("/:id", append(adminOnly, studentProjectHandler.UpdateStudentProject)...)
	studentProjectGroup.Delete("/:id", append(adminOnly, studentProjectHandler.DeleteStudentProject)...)

	// Funded research projects. The dashboard route is registered
	// before :id so it is not swallowed by the parameter.
	projectHandler := project_handlers.NewProjectHandler(gormStore.DB())
	projectGroup := api.Group("/projects")
	projectGroup.Get("/", projectHandler.ListProjects)
	projectGroup.Get("/dashboard", projectHandler.Dashboard)
	projectGroup.Get("/:id", projectHandler.GetProject)
	projectGroup.Post("/", append(adminOrFaculty, projectHandler.CreateProject)...)
	projectGroup.Put("/:id", append(adminOrFaculty, projectHandler.UpdateProject)...)
	projectGroup.Delete("/:id", append(adminOnly, projectHandler.DeleteProject)...)

	// Combined research feed. The stats route is registered before the
	// root so trailing-path matching never shadows it.
	researchHandler := research_handlers.NewResearchHandler(store, gormStore.DB())
	researchGroup := api.Group("/research")
	researchGroup.Get("/stats", researchHandler.Stats)
	researchGroup.Get("/", researchHandler.ListResearch)

	// Analytics
	analyticsHandler := analytics_handlers.NewAnalyticsHandler(store)
	analyticsGroup := api.Group("/analytics")
	analyticsGroup.Get("/projects-by-department", analyticsHandler.ProjectsByDepartment)
	analyticsGroup.Get("/funding-trend", analyticsHandler.FundingTrend)
	analyticsGroup.Get("/status-distribution", analyticsHandler.StatusDistribution)

	// Dashboard, admin only
	dashboardHandler := dashboard_handlers.NewDashboardHandler(store)
	dashboardGroup := api.Group("/dashboard", adminOnly...)
	dashboardGroup.Get("/stats", dashboardHandler.GetStats)
	dashboardGroup.Get("/publications-per-year", dashboardHandler.PublicationsPerYear)
	dashboardGroup.Get("/patent-growth", dashboardHandler.PatentGrowth)
	dashboardGroup.Get("/consultancy-revenue", dashboardHandler.ConsultancyRevenue)
	dashboardGroup.Get("/department-comparison", dashboardHandler.DepartmentComparison)

	// Catch-all 404 in the standard response envelope.
	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})
}

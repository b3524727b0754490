package router

import (
	"log"
	"time"

	"github.com/cse-dept/cms-api/config"
	"github.com/cse-dept/cms-api/database"
	"github.com/cse-dept/cms-api/handlers"
	achievement_handlers "github.com/cse-dept/cms-api/handlers/achievement"
	audit_handlers "github.com/cse-dept/cms-api/handlers/audit"
	auth_handlers "github.com/cse-dept/cms-api/handlers/auth"
	directory_handlers "github.com/cse-dept/cms-api/handlers/directory"
	event_handlers "github.com/cse-dept/cms-api/handlers/event"
	facility_handlers "github.com/cse-dept/cms-api/handlers/facility"
	infoblock_handlers "github.com/cse-dept/cms-api/handlers/infoblock"
	news_handlers "github.com/cse-dept/cms-api/handlers/news"
	newsletter_handlers "github.com/cse-dept/cms-api/handlers/newsletter"
	people_handlers "github.com/cse-dept/cms-api/handlers/people"
	program_handlers "github.com/cse-dept/cms-api/handlers/program"
	research_handlers "github.com/cse-dept/cms-api/handlers/research"
	search_handlers "github.com/cse-dept/cms-api/handlers/sitesearch"
	slider_handlers "github.com/cse-dept/cms-api/handlers/slider"
	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/services/storage"
	"github.com/cse-dept/cms-api/services/uploads"
	"github.com/cse-dept/cms-api/utils"
	"github.com/cse-dept/cms-api/utils/auth"
	"github.com/cse-dept/cms-api/utils/cache"
	"github.com/cse-dept/cms-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
)

// Dependencies are the long-lived services the routes are built from
type Dependencies struct {
	Store      database.Storage
	Env        *config.EnvironmentVariable
	JWTManager *auth.JWTManager
	Files      storage.FileStore
	Indexer    search.Indexer
	// Cache is optional. Without it brute force protection and the public
	// response cache are off.
	Cache *cache.RedisCache
	// Audit is created when nil
	Audit *middleware.AuditTrail
	// DisableLogger turns off the access log
	DisableLogger bool
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	store := deps.Store
	env := deps.Env
	db := store.GetDB()

	jwtManager := deps.JWTManager
	if jwtManager == nil {
		jwtManager = auth.NewJWTManager(auth.JWTConfig{
			Secret: env.JWT_SECRET,
			Expiry: env.JWT_EXPIRY,
			Issuer: env.JWT_ISSUER,
		})
	}

	indexer := deps.Indexer
	if indexer == nil {
		indexer = search.NewDBIndexer(db)
	}

	auditTrail := deps.Audit
	if auditTrail == nil {
		auditTrail = middleware.NewAuditTrail(db)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if deps.Cache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(deps.Cache)
	} else {
		log.Println("Redis not configured, brute force protection and public cache disabled")
	}
	publicCache := middleware.NewPublicCache(deps.Cache, env.PUBLIC_CACHE_TTL)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)
	uploadService := uploads.NewService(deps.Files, int64(env.MaxUploadBytes()))

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	sliderHandler := slider_handlers.NewSliderHandler(db, uploadService)
	peopleHandler := people_handlers.NewPeopleHandler(db, uploadService, indexer)
	programHandler := program_handlers.NewProgramHandler(db, uploadService, indexer)
	newsHandler := news_handlers.NewNewsHandler(db, uploadService, indexer)
	eventHandler := event_handlers.NewEventHandler(db, uploadService, indexer)
	achievementHandler := achievement_handlers.NewAchievementHandler(db, uploadService, indexer)
	newsletterHandler := newsletter_handlers.NewNewsletterHandler(db, uploadService)
	directoryHandler := directory_handlers.NewDirectoryHandler(db)
	infoBlockHandler := infoblock_handlers.NewInfoBlockHandler(db, uploadService)
	researchHandler := research_handlers.NewResearchHandler(db, uploadService, indexer)
	facilityHandler := facility_handlers.NewFacilityHandler(db, uploadService, indexer)
	searchHandler := search_handlers.NewSearchHandler(indexer)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    env.ALLOWED_ORIGINS,
		RateLimitRequests: env.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   time.Minute,
		DisableLogger:     deps.DisableLogger,
	})

	// Handlers give up on the database after the pool acquire timeout
	app.Use(middleware.RequestTimeout(env.DB_ACQUIRE_TIMEOUT))

	// Local uploads are served by the API itself
	if local, ok := deps.Files.(*storage.LocalStore); ok {
		app.Static(storage.PublicPrefix, local.Root(), fiber.Static{
			MaxAge: 3600,
		})
	}

	app.Get("/health", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	api := app.Group("/api")

	// ==================== Auth ====================

	authGroup := api.Group("/auth")
	authGroup.Post("/login", middleware.RateLimit(10, time.Minute), bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	// ==================== Public site ====================

	public := api.Group("/public", publicCache.Middleware())
	public.Get("/sliders", sliderHandler.ListActiveSliders)      // Active slides for the home page carousel
	public.Get("/people", peopleHandler.ListPublicPeople)        // Paginated faculty directory
	public.Get("/people/:slug", peopleHandler.GetPersonBySlug)   // Faculty profile
	public.Get("/programs", programHandler.ListPublicPrograms)   // Program summaries, ?level=UG|PG|PhD
	public.Get("/programs/:id", programHandler.GetPublicProgram) // Program with its full section tree
	public.Get("/news", newsHandler.ListPublishedNews)           // Paginated published news
	public.Get("/news/:id", newsHandler.GetPublishedNews)        // Single published article
	public.Get("/events", eventHandler.ListPublishedEvents)      // ?upcoming=1|0|all
	public.Get("/events/:id", eventHandler.GetPublishedEvent)    // Single published event
	public.Get("/achievements", achievementHandler.ListPublishedAchievements)
	public.Get("/newsletters", newsletterHandler.ListNewsletters)
	public.Get("/directory", directoryHandler.ListEntries)
	public.Get("/info/:key", infoBlockHandler.GetInfoBlockByKey) // Info block by its key
	public.Get("/research", researchHandler.ListPublicResearch)  // ?category=&featured=1
	public.Get("/research/:id", researchHandler.GetResearch)
	public.Get("/facilities", facilityHandler.ListPublicFacilities) // Active facilities only
	public.Get("/facilities/:id", facilityHandler.GetPublicFacility)
	public.Get("/search", searchHandler.Search) // Site-wide search, ?q=&type=

	// ==================== Admin panel ====================

	admin := api.Group("/admin",
		authMiddleware.RequireAdmin(),
		auditTrail.Middleware(),
		publicCache.InvalidateOnWrite(),
		middleware.UploadRateLimit(env.UPLOAD_RATE_LIMIT, time.Minute),
	)

	sliders := admin.Group("/sliders")
	sliders.Get("/", sliderHandler.ListSliders)
	sliders.Get("/:id", sliderHandler.GetSlider)
	sliders.Post("/", sliderHandler.CreateSlider)   // multipart, image required
	sliders.Put("/:id", sliderHandler.UpdateSlider) // replacing the image deletes the old one
	sliders.Delete("/:id", sliderHandler.DeleteSlider)

	people := admin.Group("/people")
	people.Get("/", peopleHandler.ListPeople)
	people.Get("/:id", peopleHandler.GetPerson)
	people.Post("/", peopleHandler.CreatePerson)
	people.Put("/:id", peopleHandler.UpdatePerson)
	people.Delete("/:id", peopleHandler.DeletePerson)

	// Static sub-resource paths go before /programs/:id so "sections",
	// "semesters", "courses" and "outcomes" are never read as a program ID.
	programs := admin.Group("/programs")
	programs.Post("/sections/content", programHandler.UpsertContent) // Create or replace a section's content
	programs.Put("/sections/:id", programHandler.UpdateSection)
	programs.Delete("/sections/:id", programHandler.DeleteSection) // Cascades to semesters, courses, outcomes, content
	programs.Post("/sections/:id/semesters", programHandler.CreateSemester)
	programs.Post("/sections/:id/outcomes", programHandler.CreateOutcome)
	programs.Put("/semesters/:id", programHandler.UpdateSemester)
	programs.Delete("/semesters/:id", programHandler.DeleteSemester)
	programs.Post("/semesters/:id/courses", programHandler.CreateCourse)
	programs.Put("/courses/:id", programHandler.UpdateCourse)
	programs.Delete("/courses/:id", programHandler.DeleteCourse)
	programs.Put("/outcomes/:id", programHandler.UpdateOutcome)
	programs.Delete("/outcomes/:id", programHandler.DeleteOutcome)
	programs.Get("/:id/sections", programHandler.ListSections)
	programs.Post("/:id/sections", programHandler.CreateSection)
	programs.Get("/", programHandler.ListPrograms)
	programs.Get("/:id", programHandler.GetProgram)
	programs.Post("/", programHandler.CreateProgram) // multipart, optional curriculum PDF
	programs.Put("/:id", programHandler.UpdateProgram)
	programs.Delete("/:id", programHandler.DeleteProgram) // Cascades to the whole section tree

	news := admin.Group("/news")
	news.Get("/", newsHandler.ListNews)
	news.Get("/:id", newsHandler.GetNews)
	news.Post("/", newsHandler.CreateNews)
	news.Put("/:id", newsHandler.UpdateNews)
	news.Delete("/:id", newsHandler.DeleteNews)

	events := admin.Group("/events")
	events.Get("/", eventHandler.ListEvents)
	events.Get("/:id", eventHandler.GetEvent)
	events.Post("/", eventHandler.CreateEvent)
	events.Put("/:id", eventHandler.UpdateEvent)
	events.Delete("/:id", eventHandler.DeleteEvent)

	achievements := admin.Group("/achievements")
	achievements.Get("/", achievementHandler.ListAchievements)
	achievements.Get("/:id", achievementHandler.GetAchievement)
	achievements.Post("/", achievementHandler.CreateAchievement)
	achievements.Put("/:id", achievementHandler.UpdateAchievement)
	achievements.Delete("/:id", achievementHandler.DeleteAchievement)

	newsletters := admin.Group("/newsletters")
	newsletters.Get("/", newsletterHandler.ListNewsletters)
	newsletters.Get("/:id", newsletterHandler.GetNewsletter)
	newsletters.Post("/", newsletterHandler.CreateNewsletter) // multipart, PDF required
	newsletters.Put("/:id", newsletterHandler.UpdateNewsletter)
	newsletters.Delete("/:id", newsletterHandler.DeleteNewsletter)

	directory := admin.Group("/directory")
	directory.Get("/", directoryHandler.ListEntries)
	directory.Get("/:id", directoryHandler.GetEntry)
	directory.Post("/", directoryHandler.CreateEntry)
	directory.Put("/:id", directoryHandler.UpdateEntry)
	directory.Delete("/:id", directoryHandler.DeleteEntry)

	infoBlocks := admin.Group("/info-blocks")
	infoBlocks.Get("/", infoBlockHandler.ListInfoBlocks)
	infoBlocks.Get("/:id", infoBlockHandler.GetInfoBlock)
	infoBlocks.Post("/", infoBlockHandler.CreateInfoBlock) // 409 on a duplicate key
	infoBlocks.Put("/:id", infoBlockHandler.UpdateInfoBlock)
	infoBlocks.Delete("/:id", infoBlockHandler.DeleteInfoBlock)

	research := admin.Group("/research")
	research.Get("/", researchHandler.ListResearch)
	research.Get("/:id", researchHandler.GetResearch)
	research.Post("/", researchHandler.CreateResearch)
	research.Put("/:id", researchHandler.UpdateResearch)
	research.Delete("/:id", researchHandler.DeleteResearch)

	facilities := admin.Group("/facilities")
	facilities.Get("/", facilityHandler.ListFacilities)
	facilities.Get("/:id", facilityHandler.GetFacility)
	facilities.Post("/", facilityHandler.CreateFacility)
	facilities.Put("/:id", facilityHandler.UpdateFacility)
	facilities.Delete("/:id", facilityHandler.DeleteFacility)

	// Audit trail (read-only)
	admin.Get("/audit-logs", utils.MakeHTTPHandleFunc(audit_handlers.ListAuditLogs, store))
	admin.Get("/audit-logs/:id", utils.MakeHTTPHandleFunc(audit_handlers.GetAuditLog, store))
}

package routers

import (
	"incubator/cache"
	achievementControllers "incubator/controllers/achievement"
	calendarControllers "incubator/controllers/calendar"
	communityControllers "incubator/controllers/community"
	financeControllers "incubator/controllers/finance"
	learningControllers "incubator/controllers/learning"
	"incubator/middleware"
	"incubator/routers/achievementRoutes"
	"incubator/routers/calendarRoutes"
	"incubator/routers/communityRoutes"
	"incubator/routers/financeRoutes"
	"incubator/routers/learningRoutes"
	"incubator/services"
	"incubator/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Options carries what the HTTP layer needs from main
type Options struct {
	DB             *gorm.DB
	Clock          *utils.Clock
	Cache          *cache.CatalogCache
	IdentitySecret string
	CORSOrigins    string
	AccessLog      bool
}

// Services are shared by the handlers and the scheduler
type Services struct {
	Achievements *services.AchievementService
	Progress     *services.ProgressService
	Booking      *services.BookingService
}

func NewServices(db *gorm.DB, clock *utils.Clock) *Services {
	achievements := services.NewAchievementService(db, clock)
	return &Services{
		Achievements: achievements,
		Progress:     services.NewProgressService(db, clock, achievements),
		Booking:      services.NewBookingService(db, clock),
	}
}

// NewApp builds the fiber app with every API route mounted
func NewApp(opts Options, svc *Services) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())

	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization",  // Allowed headers
	}))

	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:   "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
			TimeZone: opts.Clock.Location().String(),
		}))
	}

	app.Use(middleware.IdentityMiddleware(opts.IdentitySecret))

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := opts.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Database unreachable!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "API is running", nil)
	})

	learningRoutes.SetupLearningRoutes(app, learningControllers.NewLearningController(opts.DB, svc.Progress, opts.Cache))
	financeRoutes.SetupFinanceRoutes(app, financeControllers.NewFinanceController(opts.DB, opts.Clock, svc.Achievements))
	communityRoutes.SetupCommunityRoutes(app, communityControllers.NewCommunityController(opts.DB, svc.Achievements))
	achievementRoutes.SetupAchievementRoutes(app, achievementControllers.NewAchievementController(opts.DB, svc.Achievements))
	calendarRoutes.SetupCalendarRoutes(app, calendarControllers.NewCalendarController(opts.DB, opts.Clock, svc.Booking))

	return app
}

// main.go - event registration backend
package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/AreaFiftyLAN/landev/cache"
	"github.com/AreaFiftyLAN/landev/config"
	"github.com/AreaFiftyLAN/landev/database"
	"github.com/AreaFiftyLAN/landev/handlers"
	"github.com/AreaFiftyLAN/landev/middleware"
	"github.com/AreaFiftyLAN/landev/mq"
	"github.com/AreaFiftyLAN/landev/repository"
	"github.com/AreaFiftyLAN/landev/services"
)

func main() {
	cfg := config.Load()

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	database.InitDB(cfg.DSN())
	defer database.CloseDB()
	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepoGorm(db)
	teamRepo := repository.NewTeamRepoGorm(db)
	tokenRepo := repository.NewAuthTokenRepoGorm(db)
	inviteRepo := repository.NewInviteRepoGorm(db)
	orderRepo := repository.NewOrderRepoGorm(db)
	ticketRepo := repository.NewTicketRepoGorm(db)
	subRepo := repository.NewSubscriptionRepoGorm(db)
	bannerRepo := repository.NewBannerRepoGorm(db)
	rfidRepo := repository.NewRFIDRepoGorm(db)
	txRunner := repository.NewGormTxRunner(db)

	// Redis sold counters, seeded from the authoritative ticket counts
	counter := cache.NewTicketCounter(cfg.RedisAddr)
	defer counter.Close()
	if err := seedCounters(counter, ticketRepo); err != nil {
		zlog.Fatal("seeding ticket counters failed", zap.Error(err))
	}

	// RabbitMQ channel for outgoing mail
	mqConn, err := mq.NewMQConn(cfg.AMQPURL)
	if err != nil {
		zlog.Fatal("rabbitmq connection failed", zap.Error(err))
	}
	defer mqConn.Close()
	mqChannel, err := mq.NewChannel(mqConn)
	if err != nil {
		zlog.Fatal("rabbitmq channel failed", zap.Error(err))
	}
	defer mqChannel.Close()
	if err := mq.SetupMailQueue(mqChannel); err != nil {
		zlog.Fatal("mail queue declare failed", zap.Error(err))
	}
	mailer := services.NewQueueMailer(mqChannel)

	// Services
	authService := services.NewAuthService(userRepo, tokenRepo, zlog, cfg.TokenTTL)
	userService := services.NewUserService(userRepo, mailer, zlog)
	teamService := services.NewTeamService(teamRepo, userRepo, inviteRepo, ticketRepo, txRunner, mailer, zlog)
	orderService := services.NewOrderService(orderRepo, ticketRepo, counter, zlog)
	subscriptionService := services.NewSubscriptionService(subRepo)
	bannerService := services.NewBannerService(bannerRepo)
	rfidService := services.NewRFIDService(rfidRepo, ticketRepo)

	handlers.Init(authService, userService, teamService, orderService,
		subscriptionService, bannerService, rfidService)

	cleanup := services.NewCleanupService(tokenRepo, zlog, time.Hour)
	cleanup.Start()
	defer cleanup.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.TokenHeader,
	}))
	app.Use(middleware.RateLimit())
	app.Use(middleware.TokenAuth(authService))

	registerRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	zlog.Info("server starting", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}

func registerRoutes(app *fiber.App) {
	// Authentication, with stricter rate limiting on login
	app.Post("/login", middleware.AuthRateLimit(), handlers.Login)
	app.Post("/logout", middleware.RequireAuth, handlers.Logout)

	// Users
	app.Post("/users", handlers.RegisterUser)
	app.Get("/users", middleware.RequireAdmin, handlers.GetUsers)
	app.Get("/users/check-username", handlers.CheckUsername)
	app.Get("/users/check-email", handlers.CheckEmail)
	app.Get("/users/current", handlers.GetCurrentUser)
	app.Get("/users/current/teams", middleware.RequireAuth, handlers.GetCurrentUserTeams)
	app.Get("/users/current/invites", middleware.RequireAuth, handlers.GetCurrentUserInvites)
	app.Get("/users/current/orders", middleware.RequireAuth, handlers.GetCurrentUserOrders)
	app.Get("/users/:id", middleware.RequireAuth, handlers.GetUser)
	app.Put("/users/:id", middleware.RequireAuth, handlers.ReplaceUser)
	app.Put("/users/:id/profile", middleware.RequireAuth, handlers.ReplaceProfile)
	app.Delete("/users/:id", middleware.RequireAdmin, handlers.DisableUser)

	// Teams
	app.Post("/teams", middleware.RequireAuth, handlers.CreateTeam)
	app.Get("/teams", middleware.RequireAdmin, handlers.GetTeams)
	app.Post("/teams/invites", middleware.RequireAuth, handlers.AcceptInvite)
	app.Delete("/teams/invites", middleware.RequireAuth, handlers.DeclineInvite)
	app.Get("/teams/:id", middleware.RequireAuth, handlers.GetTeam)
	app.Put("/teams/:id", middleware.RequireAuth, handlers.UpdateTeam)
	app.Delete("/teams/:id", middleware.RequireAdmin, handlers.DeleteTeam)
	app.Post("/teams/:id", middleware.RequireAuth, handlers.AddMember)
	app.Post("/teams/:id/invites", middleware.RequireAuth, handlers.InviteMember)
	app.Get("/teams/:id/invites", middleware.RequireAuth, handlers.GetTeamInvites)
	app.Delete("/teams/:id/members", middleware.RequireAuth, handlers.RemoveMember)

	// Orders and tickets
	app.Post("/orders", handlers.CreateOrder)
	app.Get("/orders", middleware.RequireAdmin, handlers.GetOrders)
	app.Get("/orders/:id", handlers.GetOrder)
	app.Post("/orders/:id", handlers.AddTicketToOrder)
	app.Post("/orders/:id/assign", middleware.RequireAuth, handlers.AssignOrder)
	app.Post("/orders/:id/checkout", middleware.RequireAuth, handlers.CheckoutOrder)
	app.Post("/orders/:id/approve", middleware.RequireAdmin, handlers.ApproveOrder)
	app.Get("/tickets/types", handlers.GetTicketTypes)

	// RFID links (entrance desk)
	app.Get("/rfid", middleware.RequireAdmin, handlers.GetRFIDLinks)
	app.Post("/rfid", middleware.RequireAdmin, handlers.LinkRFID)
	app.Get("/rfid/:rfid", middleware.RequireAdmin, handlers.GetRFIDLink)
	app.Delete("/rfid/:rfid", middleware.RequireAdmin, handlers.UnlinkRFID)

	// Mail subscriptions
	app.Post("/subscriptions", handlers.Subscribe)
	app.Delete("/subscriptions", handlers.Unsubscribe)
	app.Get("/subscriptions", middleware.RequireAdmin, handlers.GetSubscriptions)

	// Banners
	app.Get("/banners/current", handlers.GetCurrentBanner)
	app.Get("/banners", middleware.RequireAdmin, handlers.GetBanners)
	app.Post("/banners", middleware.RequireAdmin, handlers.CreateBanner)
	app.Put("/banners/:id", middleware.RequireAdmin, handlers.UpdateBanner)
	app.Delete("/banners/:id", middleware.RequireAdmin, handlers.DeleteBanner)
}

// seedCounters loads the per-type sold counts into Redis so the sold-out
// gate survives restarts without overselling.
func seedCounters(counter *cache.TicketCounter, tickets repository.TicketRepo) error {
	types, err := tickets.GetAllTypes()
	if err != nil {
		return err
	}
	sold := make(map[uint]int64, len(types))
	for _, t := range types {
		n, err := tickets.CountSoldByType(t.ID)
		if err != nil {
			return err
		}
		sold[t.ID] = n
	}
	return counter.Init(sold)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "attendance-backend/docs"
	"attendance-backend/src/config"
	"attendance-backend/src/controllers"
	"attendance-backend/src/database"
	"attendance-backend/src/jobs"
	"attendance-backend/src/repositories"
	"attendance-backend/src/routes"
	"attendance-backend/src/services/accounts"
	"attendance-backend/src/services/attendance"
	"attendance-backend/src/services/geocode"
	"attendance-backend/src/services/leaves"
	"attendance-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v. Please create a .env file and set it.", err)
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	ctx := context.Background()

	// เชื่อมต่อกับ MongoDB
	mongoDB, err := database.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	defer func() {
		if err := mongoDB.Close(context.Background()); err != nil {
			log.Println("⚠️ MongoDB disconnect:", err)
		}
	}()
	if err := mongoDB.EnsureIndexes(ctx); err != nil {
		log.Println("⚠️ Could not ensure indexes:", err)
	}

	redisClient := database.NewRedis(ctx, cfg.RedisURI)
	asynqClient := database.NewAsynqClient(cfg.RedisURI, redisClient != nil)

	userRepo := repositories.NewUserRepository(mongoDB)
	checkinRepo := repositories.NewCheckinRepository(mongoDB)
	checkoutRepo := repositories.NewCheckoutRepository(mongoDB)
	leaveRepo := repositories.NewLeaveRepository(mongoDB)

	var locker attendance.Locker = attendance.NewKeyedMutex()
	if redisClient != nil {
		locker = utils.NewRedisLocker(redisClient, cfg.LockTTL)
	}
	resolver := geocode.NewResolver(cfg.GeocoderURL, cfg.GeocoderTimeout, redisClient)

	attendanceSvc := attendance.NewService(userRepo, checkinRepo, checkoutRepo, resolver, locker,
		attendance.WithLocation(cfg.Location))
	leaveSvc := leaves.NewService(leaveRepo, userRepo)
	accountSvc := accounts.NewService(userRepo)
	marker := jobs.NewAbsenceMarker(userRepo, checkinRepo, cfg.Location)

	var worker *jobs.Worker
	if redisClient != nil {
		worker = jobs.NewWorker(cfg.RedisURI, marker, cfg.AbsenceCron, cfg.Location)
		if err := worker.Start(); err != nil {
			log.Println("⚠️ Asynq worker not started:", err)
			worker = nil
		}
	} else {
		log.Println("⚠️ Redis/Asynq not available → skip absence scheduler")
	}

	// สร้าง app instance
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app, routes.Handlers{
		Auth:       controllers.NewAuthController(accountSvc),
		Attendance: controllers.NewAttendanceController(attendanceSvc),
		Leaves:     controllers.NewLeaveController(leaveSvc),
		Jobs:       controllers.NewJobsController(asynqClient, marker),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Println("⚠️ shutdown:", err)
		}
	}()

	log.Println("Server is running on port " + cfg.AppURI)
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.AppURI))); err != nil {
		log.Println("❌", err)
	}

	if worker != nil {
		worker.Shutdown()
	}
	if asynqClient != nil {
		_ = asynqClient.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

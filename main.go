package main

import (
	"ClinicHub/config"
	"ClinicHub/controllers"
	"ClinicHub/db"
	"ClinicHub/jobs"
	"ClinicHub/logger"
	"ClinicHub/middleware"
	"ClinicHub/migrations"
	"ClinicHub/routes"
	"ClinicHub/server"
	"ClinicHub/services"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	startServer  = server.Start
	connectMongo = db.Connect
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("clinichub: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	zapLogger := logger.NewZapLogger(cfg)
	defer func() { _ = zapLogger.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := connectMongo(ctx, cfg)
	if err != nil {
		return err
	}
	database := client.Database(cfg.MongoDatabase)

	invoiceStore := db.NewInvoiceStore(database)
	invoiceService := services.NewInvoiceService(invoiceStore, db.NewPatientStore(database), zapLogger.Named("invoices"))
	reportService := services.NewInvoiceReportService(invoiceStore)
	sampleTypeService := services.NewSampleTypeService(db.NewSampleTypeStore(database), zapLogger.Named("sample_types"))

	ctrls := routes.Controllers{
		Health:     controllers.NewHealthController(db.NewHealthChecker(client), zapLogger),
		Invoice:    controllers.NewInvoiceController(invoiceService, reportService, zapLogger),
		SampleType: controllers.NewSampleTypeController(sampleTypeService, zapLogger),
	}

	defaults := server.GetDefaultOptions()
	options := server.Options{
		WebServerEnabled: defaults.WebServerEnabled,
		WebServerPort:    cfg.Port,
		ReadTimeout:      cfg.ReadTimeout,
		WriteTimeout:     cfg.WriteTimeout,
		ShutdownTimeout:  defaults.ShutdownTimeout,
		Logger:           zapLogger,

		MigrationEnabled: cfg.MigrationsEnabled,
		MigrationHandler: func(ctx context.Context) error {
			return migrations.Run(ctx, database, migrations.All, zapLogger.Named("migrations"))
		},

		JobsEnabled: cfg.JobsEnabled,
		JobsHandler: func() (func(), error) {
			c, err := jobs.StartOverdueSweep(cfg.OverdueCron, invoiceService, zapLogger.Named("jobs"))
			if err != nil {
				return nil, err
			}
			return func() { <-c.Stop().Done() }, nil
		},

		WebServerPreHandler: func(r *gin.Engine) {
			r.Use(cors.New(cors.Config{
				AllowOrigins:     cfg.CORSOrigins,
				AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
				ExposeHeaders:    []string{middleware.RequestIDHeader},
				AllowCredentials: !allowsAnyOrigin(cfg.CORSOrigins),
			}))
			r.Use(middleware.RequestID(), middleware.Logger(zapLogger), middleware.Timeout(cfg.MongoTimeout))
			routes.Routes(r, ctrls)
		},

		OnShutdown: func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				zapLogger.Error("mongo disconnect", zap.Error(err))
			}
		},
	}
	return startServer(ctx, options)
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

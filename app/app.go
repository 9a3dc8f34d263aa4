package app

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bid-management-api/internal/config"
	"bid-management-api/internal/controller"
	"bid-management-api/internal/repo"
	"bid-management-api/internal/service"
	"bid-management-api/pkg/http_server"
	"bid-management-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
)

func runMigrations(postgresDB *postgres.Postgres, sourceUrl string, databaseName string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		log.Fatal(err)
	}

	migrations, err := migrate.NewWithDatabaseInstance(sourceUrl, databaseName, driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Println("no change made by migration scripts")
		} else {
			log.Fatal(err)
		}
	}
}

func Run() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("Error occurred while loading config: %w", err)
	}

	log.Println("Connecting database...")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		log.Fatal("Error occurred while connecting to db: %w", err)
	}
	defer postgresDB.Close()

	log.Println("Running migrations...")
	runMigrations(postgresDB, cfg.MigrationURL, cfg.PostgresDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	gateways := &service.Gateways{
		Notification: &service.LogNotificationGateway{Logger: logger},
		Attachment:   &service.LogAttachmentGateway{Logger: logger},
		Commitment:   &service.LogCommitmentGateway{Logger: logger},
		Audit:        &service.LogAuditGateway{Logger: logger},
	}

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories, gateways, cfg.PublicBaseURL)
	handler := echo.New()

	log.Println("Setup routes...")
	controller.SetupRoutesHandlers(handler, services)

	log.Println("Starting server...")
	httpServer := http_server.New(handler, cfg.ServerAddress)

	log.Println("Ready to process requests...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Println("Got signal: " + s.String())
	case err = <-httpServer.Notify():
		log.Fatal("Notify error: %w", err)
	}

	log.Println("Shutting down...")
	err = httpServer.Shutdown()
	if err != nil {
		log.Fatal("Shutdown error: %w", err)
	} else {
		log.Println("Successful shutdown")
	}
}

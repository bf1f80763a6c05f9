package main

import (
	"fmt"
	"log/slog"
	"os"

	"tableside/cmd"
	httpadapter "tableside/internal/adapters/in/http"
	"tableside/internal/adapters/out/postgres/catalogrepo"
	"tableside/internal/adapters/out/postgres/orderrepo"
	"tableside/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	salesSummaryJob := jobs.NewSalesSummaryJob(
		app.CreateGetSalesReportQueryHandler(),
		slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	)
	if err := salesSummaryJob.Start(); err != nil {
		log.Fatalf("Error starting sales summary job: %v", err)
	}
	defer salesSummaryJob.Stop()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&catalogrepo.CategoryDTO{},
		&catalogrepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateSubmitCartCommandHandler(),
		app.CreateSetOrderStatusCommandHandler(),
		app.CreateDeleteOrderCommandHandler(),
		app.CreateResetSalesDataCommandHandler(),
		app.CreateGetOpenOrderQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetSalesReportQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

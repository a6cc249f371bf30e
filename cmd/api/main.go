package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/payfolio/payslip-backend-go/internal/config"
	appHTTP "github.com/payfolio/payslip-backend-go/internal/handler/http"
	"github.com/payfolio/payslip-backend-go/internal/pkg/database"
	"github.com/payfolio/payslip-backend-go/internal/pkg/jwt"
	"github.com/payfolio/payslip-backend-go/internal/pkg/oauth"
	"github.com/payfolio/payslip-backend-go/internal/pkg/ocr"
	"github.com/payfolio/payslip-backend-go/internal/pkg/storage"
	"github.com/payfolio/payslip-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/payfolio/payslip-backend-go/internal/service/auth"
	dashboardService "github.com/payfolio/payslip-backend-go/internal/service/dashboard"
	extractionService "github.com/payfolio/payslip-backend-go/internal/service/extraction"
	"github.com/payfolio/payslip-backend-go/internal/service/file"
	payslipService "github.com/payfolio/payslip-backend-go/internal/service/payslip"
	settingsService "github.com/payfolio/payslip-backend-go/internal/service/settings"
	taxYearService "github.com/payfolio/payslip-backend-go/internal/service/taxyear"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(context.Background(), dsn); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	taxYearRepo := postgresql.NewTaxYearRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	case "s3":
		fileStorage, err = storage.NewS3Storage(cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	var recognizer ocr.Recognizer = ocr.Disabled{}
	if cfg.OCR.Endpoint != "" {
		recognizer = ocr.NewClient(cfg.OCR)
	}

	fileService := file.NewFileService(fileStorage)
	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	taxYearSvc := taxYearService.NewTaxYearService(taxYearRepo, payslipRepo)
	payslipSvc := payslipService.NewPayslipService(db, payslipRepo, taxYearSvc, fileService, cfg.Payslip.EarliestPeriod)
	extractionSvc := extractionService.NewExtractionService(recognizer, fileService)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, payslipRepo, settingsRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL)
	payslipHandler := appHTTP.NewPayslipHandler(payslipSvc, extractionSvc)
	taxYearHandler := appHTTP.NewTaxYearHandler(taxYearSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		cfg.App.FrontendURL,
		authHandler,
		payslipHandler,
		taxYearHandler,
		settingsHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

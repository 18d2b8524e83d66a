package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "github.com/okey68/paya-marketplace-sub000/internal/adapter/http"
	mw "github.com/okey68/paya-marketplace-sub000/internal/adapter/middleware"
	"github.com/okey68/paya-marketplace-sub000/internal/adapter/repository/mysql"
	"github.com/okey68/paya-marketplace-sub000/internal/agreement"
	"github.com/okey68/paya-marketplace-sub000/internal/config"
	companyDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/company"
	customerDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/customer"
	orderDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	uwDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
	verifDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
	"github.com/okey68/paya-marketplace-sub000/internal/infrastructure/cache"
	"github.com/okey68/paya-marketplace-sub000/internal/infrastructure/db"
	"github.com/okey68/paya-marketplace-sub000/internal/notify"
	"github.com/okey68/paya-marketplace-sub000/internal/scheduler"
	companyUC "github.com/okey68/paya-marketplace-sub000/internal/usecase/company"
	orderUC "github.com/okey68/paya-marketplace-sub000/internal/usecase/order"
	uwUC "github.com/okey68/paya-marketplace-sub000/internal/usecase/underwriting"
	verifUC "github.com/okey68/paya-marketplace-sub000/internal/usecase/verification"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logger.Fatal("mysql connect failed", zap.Error(err))
	}
	if err := gdb.AutoMigrate(
		&orderDomain.Order{},
		&verifDomain.HRVerification{},
		&companyDomain.Company{},
		&customerDomain.Customer{},
		&uwDomain.Model{},
	); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}

	// repositories & unit of work
	orders := mysql.NewOrderRepository(gdb)
	verifications := mysql.NewVerificationRepository(gdb)
	companies := mysql.NewCompanyRepository(gdb)
	customers := mysql.NewCustomerRepository(gdb)
	models := mysql.NewModelRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	dispatcher := notify.NewDispatcher(notify.NewLogSender(logger), logger)
	agreements := agreement.NewFileGenerator(cfg.AgreementDir)

	verificationUC := verifUC.NewUsecase(verifications, tx, dispatcher, agreements,
		verifUC.Config{
			Timeout:       cfg.VerificationTimeout(),
			ReminderAfter: cfg.ReminderAfter(),
			MaxReminders:  cfg.MaxReminders,
		}, logger)
	orderUsecase := orderUC.NewUsecase(orders, customers, tx, verificationUC, dispatcher, logger)
	modelUsecase := uwUC.NewUsecase(models, tx, logger)
	companyUsecase := companyUC.NewUsecase(companies, logger)

	sched := scheduler.New(verificationUC, scheduler.DefaultConfig(), logger)
	sched.Start()
	defer sched.Stop()

	h := httpadp.NewHandler()
	orderHandler := httpadp.NewOrderHandler(orderUsecase)
	verificationHandler := httpadp.NewVerificationHandler(verificationUC)
	modelHandler := httpadp.NewModelHandler(modelUsecase)
	companyHandler := httpadp.NewCompanyHandler(companyUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, logger)

	// routes
	e.GET("/health", h.Health)

	e.POST("/underwriting/models", modelHandler.SaveModel, idemp)
	e.GET("/underwriting/models/active", modelHandler.ActiveModel)

	e.POST("/companies", companyHandler.CreateCompany, idemp)
	e.GET("/companies/:company_id", companyHandler.GetCompany)

	e.POST("/orders/:order_id/underwrite", orderHandler.Underwrite, idemp)
	e.POST("/orders/:order_id/status", orderHandler.UpdateStatus, idemp)
	e.POST("/orders/:order_id/agreement/sign", orderHandler.SignAgreement, idemp)
	e.POST("/orders/:order_id/complete", orderHandler.CompleteOrder, idemp)
	e.GET("/orders/:order_id", orderHandler.GetOrder)

	e.GET("/verifications/:verification_id", verificationHandler.Get)
	e.POST("/verifications/:verification_id/send", verificationHandler.Send, idemp)
	e.POST("/verifications/:verification_id/resend", verificationHandler.Resend, idemp)
	e.POST("/verifications/:verification_id/verify", verificationHandler.Verify, idemp)
	e.POST("/verifications/:verification_id/unverify", verificationHandler.Unverify, idemp)
	e.POST("/verifications/:verification_id/contact", verificationHandler.Contact, idemp)
	e.POST("/verifications/:verification_id/escalate", verificationHandler.Escalate, idemp)
	e.POST("/verifications/:verification_id/cancel", verificationHandler.Cancel, idemp)

	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

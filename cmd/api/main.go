package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/carepoint/medibill/internal/alias"
	aliasStore "github.com/carepoint/medibill/internal/alias/store"
	"github.com/carepoint/medibill/internal/bill"
	"github.com/carepoint/medibill/internal/charge"
	chargeStore "github.com/carepoint/medibill/internal/charge/store"
	"github.com/carepoint/medibill/internal/config"
	"github.com/carepoint/medibill/internal/database"
	"github.com/carepoint/medibill/internal/export"
	medibillHttp "github.com/carepoint/medibill/internal/http"
	authHandler "github.com/carepoint/medibill/internal/http/auth"
	chargeHandler "github.com/carepoint/medibill/internal/http/charge"
	exportHandler "github.com/carepoint/medibill/internal/http/export"
	importHandler "github.com/carepoint/medibill/internal/http/importcsv"
	invoiceHandler "github.com/carepoint/medibill/internal/http/invoice"
	medicineHandler "github.com/carepoint/medibill/internal/http/medicine"
	"github.com/carepoint/medibill/internal/importer"
	"github.com/carepoint/medibill/internal/invoice"
	invoiceStore "github.com/carepoint/medibill/internal/invoice/store"
	"github.com/carepoint/medibill/internal/medicine"
	medicineStore "github.com/carepoint/medibill/internal/medicine/store"
	"github.com/carepoint/medibill/internal/user"
	userStore "github.com/carepoint/medibill/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		medicineService = medicine.NewService(medicineStore.New(db))
		chargeService   = charge.NewService(chargeStore.New(db))
		invoiceService  = invoice.NewService(invoiceStore.New(db), medicineService)
		userService     = user.NewService(userStore.New(db))
		aliasService    = alias.NewService(aliasStore.New(db))
		importService   = importer.NewService()
		exportService   = export.NewService(invoiceService)
	)

	if err := userService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		slog.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}

	tokens := authHandler.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	header := bill.Header{
		Name:    cfg.Hospital.Name,
		Address: cfg.Hospital.Address,
		Phone:   cfg.Hospital.Phone,
	}

	var (
		authH     = authHandler.NewHandler(userService, tokens)
		medicineH = medicineHandler.NewHandler(medicineService)
		chargeH   = chargeHandler.NewHandler(chargeService)
		invoiceH  = invoiceHandler.NewHandler(invoiceService, header)
		importH   = importHandler.NewHandler(importService, medicineService, aliasService)
		exportH   = exportHandler.NewHandler(exportService)
	)

	router := medibillHttp.New(tokens, authH, medicineH, chargeH, invoiceH, importH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

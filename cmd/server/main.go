package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"farms/config"
	"farms/database"
	"farms/pkg/geo"
	"farms/router"

	// Farm
	farmCtrlImp "farms/pkg/farm/controllerImp"
	farmRepoImp "farms/pkg/farm/repositoryImp"
	farmSvcImp "farms/pkg/farm/serviceImp"

	// Ingest
	"farms/pkg/ingest"
	ingestCtrlImp "farms/pkg/ingest/controllerImp"

	// Health
	healthCtrlImp "farms/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Repos/Services
	index := geo.NewFarmIndex()
	fRepo := farmRepoImp.New(db)
	fSvc := farmSvcImp.New(fRepo, index, cfg.GeomShiftKm, nil)
	if err := fSvc.RebuildIndex(); err != nil {
		log.Fatalf("index warmup: %v", err)
	}
	log.Printf("[boot] radius index warmed with %d farms", index.Size())

	ingSvc := ingest.NewService(fSvc, nil)

	// 4) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())

	// 5) Controllers
	fCtrl := farmCtrlImp.New(fSvc)
	iCtrl := ingestCtrlImp.New(ingSvc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 6) Router
	r := router.New(e, fCtrl, iCtrl, hCtrl)

	// 7) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

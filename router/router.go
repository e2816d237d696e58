package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	farmCtrl interface {
		List(echo.Context) error
		Get(echo.Context) error
		Within(echo.Context) error
	},
	ingestCtrl interface {
		CSV(echo.Context) error
		GeoJSON(echo.Context) error
		XML(echo.Context) error
		XLSX(echo.Context) error
		HTML(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	e.GET("/farms", farmCtrl.List)
	e.GET("/farms/within", farmCtrl.Within)
	e.GET("/farms/:id", farmCtrl.Get)

	g := e.Group("/ingest")
	g.POST("/csv", ingestCtrl.CSV)
	g.POST("/geojson", ingestCtrl.GeoJSON)
	g.POST("/xml", ingestCtrl.XML)
	g.POST("/xlsx", ingestCtrl.XLSX)
	g.POST("/html", ingestCtrl.HTML)

	return e
}

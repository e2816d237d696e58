package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"farms/pkg/farm/service"
	"farms/pkg/farm/types"
)

const defaultRadiusKm = 50.0

type FarmCtrl struct{ svc service.FarmService }

func New(svc service.FarmService) *FarmCtrl { return &FarmCtrl{svc} }

func (h *FarmCtrl) List(c echo.Context) error {
	farms, err := h.svc.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, farms)
}

func (h *FarmCtrl) Get(c echo.Context) error {
	f, err := h.svc.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if f == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "farm not found"})
	}
	return c.JSON(http.StatusOK, f)
}

// Within handles GET /farms/within?lat=..&lon=..&radius=..&use=.. and returns
// farms ordered nearest first.
func (h *FarmCtrl) Within(c echo.Context) error {
	lat, errLat := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if errLat != nil || errLon != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "lat and lon are required numbers"})
	}

	radius := defaultRadiusKm
	if v := c.QueryParam("radius"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "radius must be a non-negative number"})
		}
		radius = r
	}

	use := types.PointStrategy(c.QueryParam("use"))
	switch use {
	case "", types.StrategyAuto, types.StrategyLatLon, types.StrategyGeometry:
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "use must be auto, latlon or geometry"})
	}

	matches, err := h.svc.WithinRadius(lat, lon, radius, use)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, matches)
}

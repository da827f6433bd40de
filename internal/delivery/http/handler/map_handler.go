package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/risk-map-service/internal/pkg/errors"
	"github.com/risk-map-service/internal/pkg/utils"
	"github.com/risk-map-service/internal/pkg/validator"
	"github.com/risk-map-service/internal/usecase"
	"github.com/risk-map-service/internal/usecase/dto"
	"go.uber.org/zap"
)

const geoJSONContentType = "application/geo+json"

// MapHandler обрабатывает запросы карты рисков
type MapHandler struct {
	riskMapUC *usecase.RiskMapUseCase
	logger    *zap.Logger
}

// NewMapHandler создает новый экземпляр MapHandler
func NewMapHandler(riskMapUC *usecase.RiskMapUseCase, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		riskMapUC: riskMapUC,
		logger:    logger,
	}
}

// GetMap godoc
// @Summary Get styled risk map
// @Description Возвращает GeoJSON FeatureCollection муниципалитетов; у каждой фичи есть properties.risk_level и поле style
// @Tags Map
// @Produce json
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/map [get]
func (h *MapHandler) GetMap(c *fiber.Ctx) error {
	snapshot, err := h.riskMapUC.GetMap(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to get map", err)
	}

	cacheStatus := "MISS"
	if snapshot.Cached {
		cacheStatus = "HIT"
	}

	c.Set("X-Map-Selection", snapshot.Selection)
	c.Set("X-Map-Load-Id", snapshot.LoadID)
	c.Set("X-Map-Cache", cacheStatus)
	c.Set(fiber.HeaderContentType, geoJSONContentType)
	return c.Send(snapshot.Data)
}

// GetView godoc
// @Summary Get initial map view
// @Description Центр, зум, подложка OSM, стиль по умолчанию и легенда цветов
// @Tags Map
// @Produce json
// @Success 200 {object} dto.MapViewResponse
// @Router /api/v1/map/view [get]
func (h *MapHandler) GetView(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.riskMapUC.GetView(), nil)
}

// GetYears godoc
// @Summary List years with risk data
// @Tags Map
// @Produce json
// @Success 200 {object} dto.YearsResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/map/years [get]
func (h *MapHandler) GetYears(c *fiber.Ctx) error {
	years, err := h.riskMapUC.GetYears(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to get years", err)
	}

	return utils.SendSuccess(c, years, &utils.Meta{Total: len(years.Years)})
}

// GetStats godoc
// @Summary Get map statistics
// @Description Количество фич, совпадения с CSV, распределение по уровням риска и bbox покрытия
// @Tags Map
// @Produce json
// @Success 200 {object} domain.MapStatistics
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/map/stats [get]
func (h *MapHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.riskMapUC.GetStats(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to get statistics", err)
	}

	return utils.SendSuccess(c, stats, &utils.Meta{Selection: stats.Selection})
}

// GetLookup godoc
// @Summary Get risk lookup for a year
// @Description Нормализованное название города -> уровень риска (отладка сопоставления)
// @Tags Map
// @Produce json
// @Param year path string true "Year, e.g. 2025"
// @Success 200 {object} dto.LookupResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/map/lookup/{year} [get]
func (h *MapHandler) GetLookup(c *fiber.Ctx) error {
	year, err := h.yearParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	lookup, err := h.riskMapUC.GetLookup(c.UserContext(), year)
	if err != nil {
		return h.fail(c, "Failed to build lookup", err)
	}

	return utils.SendSuccess(c, lookup, &utils.Meta{Total: lookup.Total})
}

// Reset godoc
// @Summary Reset to base map
// @Description Все муниципалитеты возвращаются к Unknown и цвету по умолчанию
// @Tags Map
// @Produce json
// @Success 200 {object} dto.MapUpdateResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/map/reset [post]
func (h *MapHandler) Reset(c *fiber.Ctx) error {
	resp, err := h.riskMapUC.ResetToBaseMap(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to reset map", err)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{Selection: resp.Selection})
}

// UpdateYear godoc
// @Summary Color the map for a year
// @Description Раскрашивает муниципалитеты по колонке "<year>_risk" CSV
// @Tags Map
// @Accept json
// @Produce json
// @Param request body dto.UpdateMapRequest true "Year"
// @Success 200 {object} dto.MapUpdateResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/map/year [post]
func (h *MapHandler) UpdateYear(c *fiber.Ctx) error {
	var req dto.UpdateMapRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Failed to parse request body", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	req.Year = strings.TrimSpace(req.Year)

	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidYear.WithDetails(map[string]interface{}{
			"year": req.Year,
		}))
	}

	return h.update(c, req.Year)
}

// UpdateYearByPath godoc
// @Summary Color the map for a year (path variant)
// @Tags Map
// @Produce json
// @Param year path string true "Year, e.g. 2025"
// @Success 200 {object} dto.MapUpdateResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/map/years/{year} [post]
func (h *MapHandler) UpdateYearByPath(c *fiber.Ctx) error {
	year, err := h.yearParam(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	return h.update(c, year)
}

// Ready godoc
// @Summary Readiness check
// @Description 200 после загрузки данных, 503 до этого или если загрузка не удалась
// @Tags Health
// @Produce json
// @Success 200 {object} dto.ReadinessResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/ready [get]
func (h *MapHandler) Ready(c *fiber.Ctx) error {
	ready, err := h.riskMapUC.CheckReadiness(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, ready, nil)
}

func (h *MapHandler) update(c *fiber.Ctx, year string) error {
	resp, err := h.riskMapUC.UpdateForYear(c.UserContext(), year)
	if err != nil {
		return h.fail(c, "Failed to update map", err)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{Selection: resp.Selection})
}

func (h *MapHandler) yearParam(c *fiber.Ctx) (string, error) {
	year := strings.TrimSpace(c.Params("year"))
	if err := validator.ValidateYear(year); err != nil {
		return "", errors.ErrInvalidYear.WithDetails(map[string]interface{}{
			"year": year,
		})
	}
	return year, nil
}

func (h *MapHandler) fail(c *fiber.Ctx, msg string, err error) error {
	if _, ok := errors.As(err); ok {
		h.logger.Debug(msg, zap.Error(err))
	} else {
		h.logger.Error(msg, zap.Error(err))
	}
	return utils.SendError(c, err)
}

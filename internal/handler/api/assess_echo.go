package api

import (
	"github.com/labstack/echo/v4"

	"CaneGuard/internal/domain/models"
	"CaneGuard/internal/usecase"
	xhttp "CaneGuard/pkg/http"
	xlogger "CaneGuard/pkg/logger"
)

const weatherUnavailableMsg = "Weather service unavailable. API key not configured."

// AssessEchoHandler serves the weather and disease risk endpoints.
type AssessEchoHandler struct {
	logger   *xlogger.Logger
	assessor *usecase.AssessorUseCase
}

func NewAssessEchoHandler(logger *xlogger.Logger, assessor *usecase.AssessorUseCase) *AssessEchoHandler {
	return &AssessEchoHandler{logger: logger, assessor: assessor}
}

func (h *AssessEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/weather")
	g.GET("/current", h.Current)
	g.GET("/forecast", h.Forecast)
	g.GET("/disease-risk", h.DiseaseRisk)
	g.GET("/disease-risk-forecast", h.DiseaseRiskForecast)
	g.GET("/disease-risk/:disease_type", h.SpecificDiseaseRisk)
}

// RiskAssessmentResponse is a combined assessment together with the weather
// it was computed from.
type RiskAssessmentResponse struct {
	models.CombinedRiskResult
	WeatherData models.WeatherSnapshot `json:"weather_data"`
}

// DiseaseRiskResponse is a single-disease assessment plus its weather input.
type DiseaseRiskResponse struct {
	models.RiskResult
	WeatherData models.WeatherSnapshot `json:"weather_data"`
}

// ForecastRiskResponse additionally carries the forecast the approximation
// rules consumed.
type ForecastRiskResponse struct {
	models.CombinedRiskResult
	WeatherData  models.WeatherSnapshot `json:"weather_data"`
	ForecastData models.ForecastBundle  `json:"forecast_data"`
}

func (h *AssessEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{
		"status":  "healthy",
		"message": "Sugarcane Disease Detection API is running",
	})
}

func (h *AssessEchoHandler) Current(c echo.Context) error {
	req := &models.CoordinatesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.assessor.WeatherAvailable() {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError(weatherUnavailableMsg))
	}

	snapshot, err := h.assessor.CurrentWeather(c.Request().Context(), req.Lat, req.Lon)
	if err != nil {
		h.logger.Error("current weather failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, snapshot)
}

func (h *AssessEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.assessor.WeatherAvailable() {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError(weatherUnavailableMsg))
	}

	forecast, err := h.assessor.Forecast(c.Request().Context(), req.Lat, req.Lon, req.Days)
	if err != nil {
		h.logger.Error("weather forecast failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, forecast)
}

func (h *AssessEchoHandler) DiseaseRisk(c echo.Context) error {
	req := &models.CoordinatesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.assessor.WeatherAvailable() {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError(weatherUnavailableMsg))
	}

	combined, snapshot, err := h.assessor.AssessCombined(c.Request().Context(), req.Lat, req.Lon)
	if err != nil {
		h.logger.Error("combined assessment failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, RiskAssessmentResponse{
		CombinedRiskResult: combined,
		WeatherData:        snapshot,
	})
}

func (h *AssessEchoHandler) DiseaseRiskForecast(c echo.Context) error {
	req := &models.CoordinatesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.assessor.WeatherAvailable() {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError(weatherUnavailableMsg))
	}

	combined, snapshot, forecast, err := h.assessor.AssessWithForecast(c.Request().Context(), req.Lat, req.Lon)
	if err != nil {
		h.logger.Error("forecast assessment failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, ForecastRiskResponse{
		CombinedRiskResult: combined,
		WeatherData:        snapshot,
		ForecastData:       forecast,
	})
}

func (h *AssessEchoHandler) SpecificDiseaseRisk(c echo.Context) error {
	disease, err := models.ParseDisease(c.Param("disease_type"))
	if err != nil {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_ONEOF",
			Field:   "disease_type",
			Message: err.Error(),
		}})
	}

	req := &models.CoordinatesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.assessor.WeatherAvailable() {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError(weatherUnavailableMsg))
	}

	result, snapshot, err := h.assessor.AssessDisease(c.Request().Context(), disease, req.Lat, req.Lon)
	if err != nil {
		h.logger.Error("disease assessment failed",
			xlogger.String("disease", string(disease)), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, DiseaseRiskResponse{
		RiskResult:  result,
		WeatherData: snapshot,
	})
}

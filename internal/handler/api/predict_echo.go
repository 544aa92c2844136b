package api

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"CaneGuard/internal/domain/models"
	"CaneGuard/internal/usecase"
	xhttp "CaneGuard/pkg/http"
	xlogger "CaneGuard/pkg/logger"
)

// Uploaded images are re-encoded by the model runtime; 10MB covers any phone
// camera original.
const maxImageBytes = 10 << 20

// PredictEchoHandler serves the image+questionnaire prediction endpoints.
type PredictEchoHandler struct {
	logger    *xlogger.Logger
	predictor *usecase.PredictorUseCase
}

func NewPredictEchoHandler(logger *xlogger.Logger, predictor *usecase.PredictorUseCase) *PredictEchoHandler {
	return &PredictEchoHandler{logger: logger, predictor: predictor}
}

func (h *PredictEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/predict")
	g.POST("/deadheart", h.PredictDeadHeart)
	g.POST("/tiller", h.PredictTiller)
}

func (h *PredictEchoHandler) PredictDeadHeart(c echo.Context) error {
	return h.predict(c, models.DiseaseDeadHeart)
}

func (h *PredictEchoHandler) PredictTiller(c echo.Context) error {
	return h.predict(c, models.DiseaseTiller)
}

func (h *PredictEchoHandler) predict(c echo.Context, disease models.Disease) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_REQUIRED",
			Field:   "image",
			Message: "image file is required",
		}})
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_INVALID",
			Field:   "image",
			Message: "File must be an image",
		}})
	}
	if fileHeader.Size > maxImageBytes {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code:    "ERR_MAX",
			Field:   "image",
			Message: "image exceeds the 10MB limit",
		}})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("open uploaded image failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not read uploaded image"))
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("read uploaded image failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not read uploaded image"))
	}

	answers, verr := parseQuestions(c.FormValue("questions"))
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.predictor.Predict(c.Request().Context(), usecase.PredictParams{
		Disease:  disease,
		Filename: fileHeader.Filename,
		Image:    image,
		Answers:  answers,
	})
	if err != nil {
		h.logger.Error("prediction failed",
			xlogger.String("disease", string(disease)), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

// parseQuestions decodes the questionnaire form field. An absent field means
// the farmer skipped the form, which the encoder treats as all "no".
func parseQuestions(raw string) (map[string]any, []xhttp.ValidationError) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var answers map[string]any
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, []xhttp.ValidationError{{
			Code:    "ERR_INVALID",
			Field:   "questions",
			Message: "questions must be a JSON object",
		}}
	}
	return answers, nil
}

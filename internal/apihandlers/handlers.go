package apihandlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"librisk/internal/app"
	"librisk/internal/models"
	"librisk/internal/services"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// PredictRequest accepts the problem under "text" or, for older clients,
// "problem".
type PredictRequest struct {
	Text    string `json:"text"`
	Problem string `json:"problem"`
}

func (r PredictRequest) problemText() string {
	if strings.TrimSpace(r.Text) != "" {
		return r.Text
	}
	return r.Problem
}

type PredictResponse struct {
	Success       bool                `json:"success"`
	Category      string              `json:"category"`
	Description   string              `json:"description"`
	Confidence    float64             `json:"confidence"`
	Solutions     []string            `json:"solutions"`
	Probabilities []models.LabelScore `json:"probabilities,omitempty"`
}

func newPredictResponse(res *services.PredictionResult) PredictResponse {
	return PredictResponse{
		Success:       true,
		Category:      res.Category,
		Description:   res.Description,
		Confidence:    res.Confidence,
		Solutions:     res.Solutions,
		Probabilities: res.Probabilities,
	}
}

func (h *APIHandler) PredictHandler(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, models.MsgInputRequired)
		return
	}

	res, err := h.App.PredictionService.Predict(c.Request.Context(), UserID(c), req.problemText())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPredictResponse(res))
}

type HistoryResponse struct {
	Success  bool                    `json:"success"`
	Problems []*models.ProblemReport `json:"problems"`
}

func (h *APIHandler) HistoryHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			BadRequest(c, "Invalid query parameter: limit must be a positive integer")
			return
		}
		limit = n
	}

	problems, err := h.App.HistoryService.List(c.Request.Context(), UserID(c), limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{Success: true, Problems: problems})
}

type ClearHistoryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

func (h *APIHandler) ClearHistoryHandler(c *gin.Context) {
	n, err := h.App.HistoryService.Clear(c.Request.Context(), UserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClearHistoryResponse{Success: true, Message: models.MsgHistoryCleared, Deleted: n})
}

type ModelInfoResponse struct {
	Success      bool     `json:"success"`
	ModelLoaded  bool     `json:"modelLoaded"`
	Accuracy     float64  `json:"accuracy"`
	SampleCount  int      `json:"sampleCount"`
	Categories   []string `json:"categories"`
	TrainingDate string   `json:"trainingDate"`
	ModelType    string   `json:"modelType"`
	NumFeatures  int      `json:"numFeatures"`
}

func (h *APIHandler) ModelInfoHandler(c *gin.Context) {
	svc := h.App.ModelInfoService
	info := svc.Info()
	c.JSON(http.StatusOK, ModelInfoResponse{
		Success:      true,
		ModelLoaded:  svc.ModelLoaded(),
		Accuracy:     info.Accuracy,
		SampleCount:  info.NumSamples,
		Categories:   info.Categories,
		TrainingDate: info.TrainingDate,
		ModelType:    info.ModelType,
		NumFeatures:  info.NumFeatures,
	})
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	if err := h.App.Store.Ping(c.Request.Context()); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"model":    h.App.PredictionService.ModelLoaded(),
		"database": dbStatus,
	})
}

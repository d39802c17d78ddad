package handler

import (
	"net/http"

	"troubleshoot-titans/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type startGameRequest struct {
	ScenarioID string `json:"scenarioId" binding:"required"`
}

type selectActionRequest struct {
	StepIndex   *int `json:"stepIndex" binding:"required,min=0"`
	ActionIndex *int `json:"actionIndex" binding:"required,min=0"`
}

type submitQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

func (h *Handler) listScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, models.PaginatedResponse{Data: h.svc.Scenarios.List(c.Request.Context())})
}

func (h *Handler) getScenario(c *gin.Context) {
	sc, err := h.svc.Scenarios.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (h *Handler) generateScenario(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req models.GenerationRequest
	if !bindJSON(c, &req) {
		return
	}
	sc, err := h.svc.Scenarios.Generate(c.Request.Context(), session, req)
	if err != nil {
		h.logger.Warn("Scenario generation failed", zap.String("userID", session.UserID), zap.Error(err))
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

func (h *Handler) startGame(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req startGameRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.svc.Games.Start(c.Request.Context(), session, req.ScenarioID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

func (h *Handler) generateGame(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req models.GenerationRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.svc.Games.Generate(c.Request.Context(), session, req)
	if err != nil {
		h.logger.Warn("Game generation failed", zap.String("userID", session.UserID), zap.Error(err))
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

func (h *Handler) currentGame(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	state, err := h.svc.Games.State(session)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) selectAction(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req selectActionRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.svc.Games.SelectAction(session, *req.StepIndex, *req.ActionIndex)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) leaveGame(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	if err := h.svc.Games.Leave(session); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listQuizzes(c *gin.Context) {
	c.JSON(http.StatusOK, models.PaginatedResponse{Data: h.svc.Quizzes.List(c.Request.Context())})
}

func (h *Handler) getQuiz(c *gin.Context) {
	q, err := h.svc.Quizzes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) generateQuiz(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req models.GenerationRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.svc.Quizzes.Generate(c.Request.Context(), session, req)
	if err != nil {
		h.logger.Warn("Quiz generation failed", zap.String("userID", session.UserID), zap.Error(err))
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *Handler) submitQuiz(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req submitQuizRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.svc.Quizzes.Submit(c.Request.Context(), session, c.Param("id"), req.Answers)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

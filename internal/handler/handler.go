package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"troubleshoot-titans/internal/authutils"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Services - зависимости HTTP слоя.
type Services struct {
	Scenarios   *service.ScenarioService
	Games       *service.GameService
	Quizzes     *service.QuizService
	Profiles    *service.ProfileService
	Forum       *service.ForumService
	Leaderboard *service.LeaderboardService
	Minigames   *service.MinigameService
}

// Handler обрабатывает HTTP запросы API.
type Handler struct {
	svc      Services
	verifier authutils.TokenVerifier
	provider string
	logger   *zap.Logger
}

func NewHandler(svc Services, verifier authutils.TokenVerifier, provider string, logger *zap.Logger) *Handler {
	return &Handler{
		svc:      svc,
		verifier: verifier,
		provider: provider,
		logger:   logger.Named("Handler"),
	}
}

// RegisterRoutes регистрирует маршруты. generateLimit может быть nil,
// ws - обработчик websocket (nil - маршрут не регистрируется).
func (h *Handler) RegisterRoutes(router gin.IRouter, generateLimit gin.HandlerFunc, ws http.HandlerFunc) {
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if ws != nil {
		router.GET("/ws", gin.WrapF(ws))
	}
	if generateLimit == nil {
		generateLimit = func(c *gin.Context) { c.Next() }
	}

	api := router.Group("/api", AuthMiddleware(h.verifier, h.provider))
	{
		scenarios := api.Group("/scenarios")
		scenarios.GET("", h.listScenarios)
		scenarios.POST("/generate", generateLimit, h.generateScenario)
		scenarios.GET("/:id", h.getScenario)

		games := api.Group("/games")
		games.POST("", h.startGame)
		games.POST("/generate", generateLimit, h.generateGame)
		games.GET("/current", h.currentGame)
		games.POST("/current/actions", h.selectAction)
		games.DELETE("/current", h.leaveGame)

		quizzes := api.Group("/quizzes")
		quizzes.GET("", h.listQuizzes)
		quizzes.POST("/generate", generateLimit, h.generateQuiz)
		quizzes.GET("/:id", h.getQuiz)
		quizzes.POST("/:id/submit", h.submitQuiz)

		api.GET("/profile", h.getProfile)
		api.PUT("/profile", h.updateProfile)
		api.GET("/leaderboard", h.getLeaderboard)

		forum := api.Group("/forum/posts")
		forum.GET("", h.listPosts)
		forum.POST("", h.createPost)
		forum.GET("/:id", h.getPost)
		forum.DELETE("/:id", h.deletePost)
		forum.GET("/:id/comments", h.listComments)
		forum.POST("/:id/comments", h.addComment)

		minigames := api.Group("/minigames")
		minigames.POST("/reflex/start", h.startReflex)
		minigames.POST("/reflex/react", h.reactReflex)
		minigames.POST("/scramble/start", h.startScramble)
		minigames.POST("/scramble/guess", h.guessScramble)
		minigames.POST("/scramble/reveal", h.revealScramble)
		minigames.POST("/wordguess/start", h.startWordGuess)
		minigames.POST("/wordguess/guess", h.guessLetter)
	}
}

// parseLimit читает ?limit=. Пустое значение - 0 (значение по умолчанию сервиса).
func parseLimit(c *gin.Context) (int, bool) {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		zap.L().Warn("Invalid limit parameter received", zap.String("limit", limitStr))
		handleServiceError(c, fmt.Errorf("%w: invalid 'limit' parameter", models.ErrInvalidInput))
		return 0, false
	}
	return limit, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		handleServiceError(c, fmt.Errorf("%w: invalid '%s' parameter", models.ErrInvalidInput, name))
		return uuid.Nil, false
	}
	return id, true
}

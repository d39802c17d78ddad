package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"troubleshoot-titans/internal/content"
	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/scenario"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GameOptions - настройки прохождений.
type GameOptions struct {
	Timing     scenario.Timing
	Scheduler  scenario.Scheduler // nil - scenario.SystemScheduler
	GamePoints int64
}

// GameState - сценарий без ответов и текущее состояние прохождения.
type GameState struct {
	Scenario models.PublicScenario `json:"scenario"`
	State    scenario.Snapshot     `json:"state"`
	Accepted *bool                 `json:"accepted,omitempty"`
}

type activeGame struct {
	controller *scenario.Controller
}

// GameService держит по одному контроллеру на пользователя.
type GameService struct {
	store     *content.Store
	generator interfaces.ContentGenerator
	reporter  interfaces.CompletionReporter
	notifier  interfaces.ClientNotifier
	opts      GameOptions
	logger    *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	games map[string]*activeGame
}

func NewGameService(
	store *content.Store,
	generator interfaces.ContentGenerator,
	reporter interfaces.CompletionReporter,
	notifier interfaces.ClientNotifier,
	opts GameOptions,
	logger *zap.Logger,
) *GameService {
	if opts.Scheduler == nil {
		opts.Scheduler = scenario.SystemScheduler
	}
	return &GameService{
		store:     store,
		generator: generator,
		reporter:  reporter,
		notifier:  notifier,
		opts:      opts,
		logger:    logger.Named("GameService"),
		now:       time.Now,
		games:     make(map[string]*activeGame),
	}
}

// Start загружает сценарий и начинает прохождение, закрывая предыдущее.
func (s *GameService) Start(ctx context.Context, session *models.Session, scenarioID string) (*GameState, error) {
	sc, err := s.store.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return s.startGame(session, sc)
}

// Generate генерирует сценарий, сохраняет его и начинает прохождение.
// Ошибка сохранения не мешает игре: сценарий уже провалидирован.
func (s *GameService) Generate(ctx context.Context, session *models.Session, req models.GenerationRequest) (*GameState, error) {
	sc, err := s.generator.GenerateScenario(ctx, session, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveScenario(ctx, sc); err != nil {
		s.logger.Error("Failed to persist generated scenario",
			zap.String("userID", session.UserID),
			zap.String("scenarioID", sc.ID),
			zap.Error(err))
	}
	return s.startGame(session, sc)
}

func (s *GameService) startGame(session *models.Session, sc *models.Scenario) (*GameState, error) {
	userID := session.UserID
	owner := *session
	game := &activeGame{}
	game.controller = scenario.NewController(sc, scenario.Options{
		Timing:    s.opts.Timing,
		Scheduler: s.opts.Scheduler,
		OnChange: func(snap scenario.Snapshot) {
			s.notifier.SendToUser(userID, interfaces.ClientMessage{
				Type:    interfaces.MessageTypeGameState,
				Payload: snap,
			})
		},
		OnFinish: func(snap scenario.Snapshot) {
			s.onFinish(owner, snap)
		},
	})

	s.mu.Lock()
	previous := s.games[userID]
	s.games[userID] = game
	if previous == nil {
		activeGames.Inc()
	}
	s.mu.Unlock()

	if previous != nil {
		previous.controller.Close()
	}
	if err := game.controller.Start(); err != nil {
		return nil, err
	}
	gamesStarted.WithLabelValues(string(sc.Source)).Inc()
	s.logger.Info("Game started", zap.String("userID", userID), zap.String("scenarioID", sc.ID))
	return stateOf(game.controller, nil), nil
}

func (s *GameService) onFinish(session models.Session, snap scenario.Snapshot) {
	s.logger.Info("Game finished", zap.String("userID", session.UserID), zap.String("scenarioID", snap.ScenarioID))
	s.reporter.ReportCompletion(context.Background(), models.CompletionEvent{
		EventID:     uuid.NewString(),
		UserID:      session.UserID,
		DisplayName: session.DisplayName,
		Kind:        models.CompletionGame,
		ItemID:      snap.ScenarioID,
		Points:      s.opts.GamePoints,
		OccurredAt:  s.now().UTC(),
	})
}

// SelectAction передает выбор активному контроллеру пользователя.
// Проигнорированный выбор возвращается с Accepted=false.
func (s *GameService) SelectAction(session *models.Session, stepIndex, actionIndex int) (*GameState, error) {
	game, err := s.game(session.UserID)
	if err != nil {
		return nil, err
	}
	accepted, err := game.controller.SelectAction(stepIndex, actionIndex)
	if err != nil {
		switch {
		case errors.Is(err, scenario.ErrInvalidAction):
			return nil, fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
		case errors.Is(err, scenario.ErrClosed):
			return nil, models.ErrNoActiveGame
		}
		return nil, err
	}
	return stateOf(game.controller, &accepted), nil
}

// State возвращает текущее состояние прохождения.
func (s *GameService) State(session *models.Session) (*GameState, error) {
	game, err := s.game(session.UserID)
	if err != nil {
		return nil, err
	}
	return stateOf(game.controller, nil), nil
}

// Leave закрывает прохождение пользователя.
func (s *GameService) Leave(session *models.Session) error {
	s.mu.Lock()
	game, ok := s.games[session.UserID]
	if ok {
		delete(s.games, session.UserID)
		activeGames.Dec()
	}
	s.mu.Unlock()

	if !ok {
		return models.ErrNoActiveGame
	}
	game.controller.Close()
	return nil
}

// Shutdown закрывает все прохождения и останавливает таймеры.
func (s *GameService) Shutdown() {
	s.mu.Lock()
	games := s.games
	s.games = make(map[string]*activeGame)
	s.mu.Unlock()

	for _, g := range games {
		g.controller.Close()
	}
	activeGames.Set(0)
}

func (s *GameService) game(userID string) (*activeGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[userID]
	if !ok {
		return nil, models.ErrNoActiveGame
	}
	return game, nil
}

func stateOf(c *scenario.Controller, accepted *bool) *GameState {
	return &GameState{
		Scenario: c.Scenario().Public(),
		State:    c.Snapshot(),
		Accepted: accepted,
	}
}

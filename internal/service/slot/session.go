package slot

import (
	"context"
	"fmt"

	"yaminabe_backend/internal/model"
	"yaminabe_backend/internal/reel"
	"yaminabe_backend/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create заводит сессию с новым движком, настроенным по осям из конфига
func (s *serv) Create(_ context.Context, req model.SlotCreate) (*model.SlotSession, error) {
	ingredients := req.Ingredients
	if len(ingredients) == 0 && len(req.IngredientsRaw) != 0 {
		// Битый JSON не ошибка: движок покажет заглушку
		ingredients = reel.ParseIngredients(req.IngredientsRaw)
	}
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	if len(ingredients) > s.cfg.MaxIngredients() {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyIngredients, len(ingredients), s.cfg.MaxIngredients())
	}

	id := uuid.NewString()

	opts := append([]reel.Option{}, s.engineOpts...)
	opts = append(opts, reel.WithResultHandler(func(out reel.Outcome) {
		s.record(id, out)
	}))

	engine, err := reel.New(s.cfg.Reel(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create reel engine: %w", err)
	}
	if err := engine.Configure(s.cfg.Axes()); err != nil {
		return nil, fmt.Errorf("configure reel engine: %w", err)
	}
	engine.SetIngredients(ingredients)

	s.mtx.Lock()
	s.sweep()
	s.sessions[id] = &entry{engine: engine, lastSeen: s.now()}
	s.mtx.Unlock()

	s.log.Info("slot session created",
		zap.String("session_id", id),
		zap.Int("ingredients", len(ingredients)),
	)

	return &model.SlotSession{
		State:  toState(id, true, engine.Snapshot()),
		Strips: engine.Strips(),
	}, nil
}

// Start запускает барабаны. Повторный запуск во время вращения не ошибка, а Accepted=false
func (s *serv) Start(_ context.Context, sessionID string) (*model.SlotState, error) {
	engine, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	accepted := engine.Start()
	state := toState(sessionID, accepted, engine.Snapshot())
	return &state, nil
}

// Stop останавливает барабан reel
func (s *serv) Stop(_ context.Context, sessionID string, reelIndex int) (*model.SlotState, error) {
	engine, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	accepted := engine.StopReel(reelIndex)
	state := toState(sessionID, accepted, engine.Snapshot())
	return &state, nil
}

func (s *serv) State(_ context.Context, sessionID string) (*model.SlotState, error) {
	engine, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	state := toState(sessionID, true, engine.Snapshot())
	return &state, nil
}

// Confirm забирает итог сессии, подписывает билет с темой и закрывает сессию
func (s *serv) Confirm(_ context.Context, sessionID string) (*model.SlotOutcome, error) {
	engine, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	out, ok := engine.Consume()
	if !ok {
		return nil, ErrNotFinished
	}

	theme := out.Theme()
	ticket, err := token.GenerateThemeToken(sessionID, theme, out.Ingredients, s.tokenCfg.SecretKey(), s.tokenCfg.TTL())
	if err != nil {
		return nil, fmt.Errorf("sign theme ticket: %w", err)
	}

	s.remove(sessionID)

	return &model.SlotOutcome{
		Ingredients: out.Ingredients,
		Theme:       theme,
		Bonus:       out.Bonus,
		Ticket:      ticket,
	}, nil
}

func (s *serv) Close(_ context.Context, sessionID string) error {
	if !s.remove(sessionID) {
		return ErrSessionNotFound
	}
	s.log.Info("slot session closed", zap.String("session_id", sessionID))
	return nil
}

package slot

import (
	"errors"
	"sync"
	"time"

	"yaminabe_backend/internal/config"
	"yaminabe_backend/internal/reel"
	"yaminabe_backend/internal/repository"
	"yaminabe_backend/internal/service"

	"go.uber.org/zap"
)

var (
	ErrSessionNotFound    = errors.New("slot session not found")
	ErrNotFinished        = errors.New("slot session is not finished")
	ErrNoIngredients      = errors.New("at least one ingredient is required")
	ErrTooManyIngredients = errors.New("too many ingredients")
)

// Сессия без обращений дольше этого времени удаляется при создании новой
const defaultSessionTTL = 30 * time.Minute

type entry struct {
	engine   *reel.Engine
	lastSeen time.Time
}

type serv struct {
	cfg        config.SlotConfig
	tokenCfg   config.ThemeTokenConfig
	statsRepo  repository.SlotStatsRepository
	log        *zap.Logger
	engineOpts []reel.Option

	mtx        sync.Mutex
	sessions   map[string]*entry
	sessionTTL time.Duration
	now        func() time.Time
}

// NewSlotService Создать сервис слот-сессий. engineOpts передаются каждому движку
func NewSlotService(
	cfg config.SlotConfig,
	tokenCfg config.ThemeTokenConfig,
	statsRepo repository.SlotStatsRepository,
	log *zap.Logger,
	engineOpts ...reel.Option,
) service.SlotService {
	return &serv{
		cfg:        cfg,
		tokenCfg:   tokenCfg,
		statsRepo:  statsRepo,
		log:        log.Named("slot"),
		engineOpts: engineOpts,
		sessions:   make(map[string]*entry),
		sessionTTL: defaultSessionTTL,
		now:        time.Now,
	}
}

// lookup движок сессии id, отмечает обращение
func (s *serv) lookup(id string) (*reel.Engine, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = s.now()
	return e.engine, nil
}

// remove удаляет сессию и останавливает её таймеры
func (s *serv) remove(id string) bool {
	s.mtx.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mtx.Unlock()

	if ok {
		e.engine.Close()
	}
	return ok
}

// sweep удаляет заброшенные сессии. Вызывается под s.mtx
func (s *serv) sweep() {
	now := s.now()
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.sessionTTL {
			e.engine.Close()
			delete(s.sessions, id)
			s.log.Debug("slot session expired", zap.String("session_id", id))
		}
	}
}

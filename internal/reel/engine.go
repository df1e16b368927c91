package reel

import (
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

var (
	ErrSpinInProgress = errors.New("spin in progress")
	ErrRepeatCount    = errors.New("repeat count must be at least 3")
	ErrSettleDelay    = errors.New("finalize delay is shorter than settle duration")
	ErrEngineClosed   = errors.New("engine is closed")
)

// Config параметры движения барабанов
type Config struct {
	// Высота одного символа в пикселях
	SymbolHeight float64
	// Сколько раз символы оси повторяются в ленте (не меньше 3)
	RepeatCount int
	// Высота видимого окна барабана, нужна для центрирования символа
	WindowHeight float64
	// Скорость прокрутки, пикселей в миллисекунду
	Speed float64
	// Период кадра анимации
	FrameInterval time.Duration
	// Длительность замедления после остановки
	SettleDuration time.Duration
	// Задержка от последней остановки до подведения итогов
	FinalizeDelay time.Duration
	// Вероятность загорания бонусной лампы, 0 отключает лампу
	BonusChance float64
}

// DefaultConfig значения, совпадающие с браузерной версией игры
func DefaultConfig() Config {
	return Config{
		SymbolHeight:   60,
		RepeatCount:    10,
		WindowHeight:   180,
		Speed:          0.8,
		FrameInterval:  16 * time.Millisecond,
		SettleDuration: 1500 * time.Millisecond,
		FinalizeDelay:  1600 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SymbolHeight <= 0 {
		c.SymbolHeight = d.SymbolHeight
	}
	if c.RepeatCount == 0 {
		c.RepeatCount = d.RepeatCount
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = d.WindowHeight
	}
	if c.Speed <= 0 {
		c.Speed = d.Speed
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = d.FrameInterval
	}
	if c.SettleDuration <= 0 {
		c.SettleDuration = d.SettleDuration
	}
	if c.FinalizeDelay <= 0 {
		c.FinalizeDelay = d.FinalizeDelay
	}
	return c
}

func (c Config) validate() error {
	if c.RepeatCount < 3 {
		return ErrRepeatCount
	}
	if c.FinalizeDelay < c.SettleDuration {
		return ErrSettleDelay
	}
	return nil
}

// Source источник случайных чисел. *rand.Rand из math/rand/v2 подходит напрямую
type Source interface {
	IntN(n int) int
	Float64() float64
}

type globalSource struct{}

func (globalSource) IntN(n int) int   { return rand.IntN(n) }
func (globalSource) Float64() float64 { return rand.Float64() }

// Outcome итог завершённой сессии, который движок отдаёт наружу
type Outcome struct {
	Results     []Result
	Ingredients []string
	Bonus       bool
}

// Theme результаты в виде отображения ось -> символ
func (o Outcome) Theme() map[string]string {
	return Theme(o.Results)
}

// ResultHandler получает итог сессии. Вызывается вне блокировки движка
type ResultHandler func(Outcome)

type Option func(*Engine)

// WithClock подменяет часы движка
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSource подменяет генератор случайных чисел
func WithSource(s Source) Option {
	return func(e *Engine) { e.rng = s }
}

// WithResultHandler задаёт получателя итогов сессии
func WithResultHandler(h ResultHandler) Option {
	return func(e *Engine) { e.onResult = h }
}

// ReelState состояние одного барабана в момент снимка
type ReelState struct {
	Axis        string
	Position    float64
	Stopped     bool
	Settling    bool
	FinalSymbol string
}

// Snapshot состояние движка в момент вызова
type Snapshot struct {
	Configured  bool
	Spinning    bool
	Stopped     []bool
	Reels       []ReelState
	Results     []Result
	Bonus       bool
	Ingredients []string
}

type settle struct {
	from      float64
	to        float64
	startedAt time.Time
	duration  time.Duration
}

type reelState struct {
	axisIndex   int
	strip       []string
	home        float64
	cycle       float64
	position    float64
	lastTick    time.Time
	moving      bool
	settle      *settle
	stopped     bool
	finalSymbol string
}

type session struct {
	spinning bool
	stopped  []bool
	results  []Result
	bonus    bool
}

// task запланированная задача. Сравнивается по указателю:
// сработавшая задача, которой уже нет в движке, ничего не делает
type task struct {
	timer Timer
}

// Engine движок барабанов: запуск, независимая остановка каждого барабана
// и подведение итогов после того, как остановлены все
type Engine struct {
	mu       sync.Mutex
	cfg      Config
	clock    Clock
	rng      Source
	onResult ResultHandler

	axes        []Axis
	reels       []*reelState
	ingredients []string

	motion    map[int]*task
	finalizer *task
	session   *session
	closed    bool
}

// New создаёт движок. До вызова Configure Start и StopReel ничего не делают
func New(cfg Config, opts ...Option) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		clock:       NewRealClock(),
		rng:         globalSource{},
		motion:      make(map[int]*task),
		ingredients: []string{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Configure строит ленты барабанов по осям и выставляет начальное смещение
// -(len(axis) * SymbolHeight * (RepeatCount - 3))
func (e *Engine) Configure(axes []Axis) error {
	if err := validateAxes(axes); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if e.session != nil && e.session.spinning {
		return ErrSpinInProgress
	}

	e.axes = cloneAxes(axes)
	e.reels = make([]*reelState, len(e.axes))
	for i, a := range e.axes {
		cycle := float64(len(a.Symbols)) * e.cfg.SymbolHeight
		home := -(cycle * float64(e.cfg.RepeatCount-3))
		e.reels[i] = &reelState{
			axisIndex: i,
			strip:     tile(a.Symbols, e.cfg.RepeatCount),
			home:      home,
			cycle:     cycle,
			position:  home,
		}
	}
	e.session = nil
	return nil
}

// SetIngredients задаёт список ингредиентов для показа и передачи в итог
func (e *Engine) SetIngredients(ingredients []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ingredients = append([]string{}, ingredients...)
}

// Strips ленты символов каждого барабана
func (e *Engine) Strips() [][]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([][]string, len(e.reels))
	for i, r := range e.reels {
		out[i] = append([]string(nil), r.strip...)
	}
	return out
}

// Axes настроенные оси
func (e *Engine) Axes() []Axis {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneAxes(e.axes)
}

// Start начинает новую сессию. Возвращает false, если движок не настроен
// или сессия уже идёт: повторный клик не сбрасывает барабаны
func (e *Engine) Start() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.reels == nil {
		return false
	}
	if e.session != nil && e.session.spinning {
		return false
	}

	now := e.clock.Now()
	e.session = &session{
		spinning: true,
		stopped:  make([]bool, len(e.reels)),
		bonus:    e.drawBonus(),
	}

	for i, r := range e.reels {
		// Сдвиг на целое число циклов незаметен: лента повторяется
		r.position = r.fold(r.displayed(now, e.cfg.Speed))
		r.settle = nil
		r.stopped = false
		r.finalSymbol = ""
		r.lastTick = now
		r.moving = true
		e.scheduleMotion(i)
	}
	return true
}

// StopReel останавливает барабан index. Возвращает false, если сессии нет,
// индекс неверный или барабан уже остановлен
func (e *Engine) StopReel(index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.session == nil || !e.session.spinning {
		return false
	}
	if index < 0 || index >= len(e.reels) || e.session.stopped[index] {
		return false
	}

	now := e.clock.Now()
	r := e.reels[index]

	if t, ok := e.motion[index]; ok {
		t.timer.Stop()
		delete(e.motion, index)
	}
	live := r.displayed(now, e.cfg.Speed)
	r.moving = false
	r.position = live

	// Сначала выбирается символ, затем из него считается точка остановки
	symbols := e.axes[r.axisIndex].Symbols
	idx := e.rng.IntN(len(symbols))
	r.finalSymbol = symbols[idx]

	target := e.targetOffset(r, idx)
	from := live
	for from <= target {
		from += r.cycle
	}
	r.settle = &settle{
		from:      from,
		to:        target,
		startedAt: now,
		duration:  e.cfg.SettleDuration,
	}
	r.stopped = true
	e.session.stopped[index] = true

	if allTrue(e.session.stopped) {
		e.scheduleFinalize()
	}
	return true
}

// Snapshot текущее состояние барабанов и сессии
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	snap := Snapshot{
		Configured:  e.reels != nil,
		Reels:       make([]ReelState, len(e.reels)),
		Stopped:     make([]bool, len(e.reels)),
		Ingredients: append([]string{}, e.ingredients...),
	}
	for i, r := range e.reels {
		snap.Reels[i] = ReelState{
			Axis:        e.axes[r.axisIndex].Name,
			Position:    r.displayed(now, e.cfg.Speed),
			Stopped:     r.stopped,
			Settling:    r.settle != nil && now.Sub(r.settle.startedAt) < r.settle.duration,
			FinalSymbol: r.finalSymbol,
		}
	}
	if s := e.session; s != nil {
		snap.Spinning = s.spinning
		copy(snap.Stopped, s.stopped)
		snap.Bonus = s.bonus
		if s.results != nil {
			snap.Results = append([]Result(nil), s.results...)
		}
	}
	return snap
}

// Results итог последней сессии или nil, пока он не подведён
func (e *Engine) Results() []Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.session.results == nil {
		return nil
	}
	return append([]Result(nil), e.session.results...)
}

// Consume забирает итог завершённой сессии. После этого сессия считается уничтоженной
func (e *Engine) Consume() (Outcome, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.session.results == nil {
		return Outcome{}, false
	}
	out := e.outcome()
	e.session = nil
	return out, true
}

// Close отменяет все запланированные задачи. Дальнейшие вызовы ничего не делают
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	for i, t := range e.motion {
		t.timer.Stop()
		delete(e.motion, i)
	}
	if e.finalizer != nil {
		e.finalizer.timer.Stop()
		e.finalizer = nil
	}
}

func (e *Engine) scheduleMotion(index int) {
	t := &task{}
	e.motion[index] = t
	t.timer = e.clock.AfterFunc(e.cfg.FrameInterval, func() {
		e.tick(index, t)
	})
}

// tick один кадр прокрутки: сдвиг на speed * elapsed и перепланирование
func (e *Engine) tick(index int, t *task) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.motion[index] != t {
		return
	}

	r := e.reels[index]
	now := e.clock.Now()
	elapsed := now.Sub(r.lastTick)
	r.lastTick = now
	r.position = r.advance(r.position, millis(elapsed)*e.cfg.Speed)

	e.scheduleMotion(index)
}

func (e *Engine) scheduleFinalize() {
	s := e.session
	t := &task{}
	e.finalizer = t
	t.timer = e.clock.AfterFunc(e.cfg.FinalizeDelay, func() {
		e.finalize(s, t)
	})
}

func (e *Engine) finalize(s *session, t *task) {
	e.mu.Lock()
	if e.finalizer != t || e.session != s {
		e.mu.Unlock()
		return
	}
	e.finalizer = nil

	results := make([]Result, len(e.reels))
	for i, r := range e.reels {
		results[i] = Result{
			Axis:   e.axes[r.axisIndex].Name,
			Symbol: r.finalSymbol,
		}
	}
	s.results = results
	s.spinning = false

	out := e.outcome()
	handler := e.onResult
	e.mu.Unlock()

	if handler != nil {
		handler(out)
	}
}

func (e *Engine) outcome() Outcome {
	return Outcome{
		Results:     append([]Result(nil), e.session.results...),
		Ingredients: append([]string{}, e.ingredients...),
		Bonus:       e.session.bonus,
	}
}

// targetOffset смещение, при котором символ idx стоит по центру окна.
// Круг берётся за два повтора до конца ленты, чтобы барабан ехал только вперёд
func (e *Engine) targetOffset(r *reelState, idx int) float64 {
	n := len(e.axes[r.axisIndex].Symbols)
	targetLoop := e.cfg.RepeatCount - 2
	symbolPosition := float64(targetLoop*n+idx) * e.cfg.SymbolHeight
	centerOffset := (e.cfg.WindowHeight - e.cfg.SymbolHeight) / 2
	return -(symbolPosition - centerOffset)
}

func (e *Engine) drawBonus() bool {
	if e.cfg.BonusChance <= 0 {
		return false
	}
	return e.rng.Float64() < e.cfg.BonusChance
}

// displayed видимое смещение барабана в момент now
func (r *reelState) displayed(now time.Time, speed float64) float64 {
	if r.moving {
		return r.advance(r.position, millis(now.Sub(r.lastTick))*speed)
	}
	if s := r.settle; s != nil {
		p := 1.0
		if s.duration > 0 {
			p = float64(now.Sub(s.startedAt)) / float64(s.duration)
		}
		return s.from + (s.to-s.from)*settleEasing.At(p)
	}
	return r.position
}

// advance сдвигает позицию вниз на delta. Перейдя на цикл ниже домашней позиции,
// позиция возвращается ровно на один цикл
func (r *reelState) advance(pos, delta float64) float64 {
	pos -= delta
	for pos <= r.home-r.cycle {
		pos += r.cycle
	}
	return pos
}

// fold переносит позицию в окно (home - cycle, home] сдвигом на целое число циклов
func (r *reelState) fold(pos float64) float64 {
	k := math.Floor((r.home - pos) / r.cycle)
	return pos + k*r.cycle
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func allTrue(v []bool) bool {
	for _, b := range v {
		if !b {
			return false
		}
	}
	return true
}

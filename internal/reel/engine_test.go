package reel

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"
	"time"
)

var (
	methods = Axis{Name: "method", Symbols: []string{"炒める", "煮る"}}
	genres  = Axis{Name: "genre", Symbols: []string{"和風", "洋風"}}
	moods   = Axis{Name: "mood", Symbols: []string{"ガッツリ", "さっぱり"}}
)

type harness struct {
	engine   *Engine
	clock    *ManualClock
	outcomes []Outcome
}

func newHarness(t *testing.T, cfg Config, axes ...Axis) *harness {
	t.Helper()

	h := &harness{clock: NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))}
	e, err := New(cfg,
		WithClock(h.clock),
		WithSource(rand.New(rand.NewPCG(7, 11))),
		WithResultHandler(func(o Outcome) { h.outcomes = append(h.outcomes, o) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Configure(axes); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	h.engine = e
	return h
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestConfigureInitialOffset(t *testing.T) {
	tests := []struct {
		name   string
		repeat int
		axes   []Axis
	}{
		{"two axes", 10, []Axis{
			{Name: "genre", Symbols: []string{"錯覚フレンチ", "実験中華", "未来食", "フェイクフード", "融合料理", "再現料理"}},
			{Name: "mood", Symbols: []string{"脳がバグる味", "見た目とのギャップ", "高級食材風"}},
		}},
		{"three axes", 10, []Axis{methods, genres, moods}},
		{"minimal repeat", 3, []Axis{{Name: "single", Symbols: []string{"a"}}}},
		{"wide strip", 7, []Axis{{Name: "x", Symbols: []string{"a", "b", "c", "d", "e"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.RepeatCount = tt.repeat
			h := newHarness(t, cfg, tt.axes...)

			snap := h.engine.Snapshot()
			strips := h.engine.Strips()
			for i, a := range tt.axes {
				want := -(float64(len(a.Symbols)) * cfg.SymbolHeight * float64(tt.repeat-3))
				if snap.Reels[i].Position != want {
					t.Errorf("reel %d offset = %v, want %v", i, snap.Reels[i].Position, want)
				}
				if len(strips[i]) != len(a.Symbols)*tt.repeat {
					t.Errorf("reel %d strip len = %d, want %d", i, len(strips[i]), len(a.Symbols)*tt.repeat)
				}
			}
			if snap.Spinning {
				t.Error("engine spinning right after Configure")
			}
		})
	}
}

func TestConfigureRejectsInvalidAxes(t *testing.T) {
	tests := []struct {
		name string
		axes []Axis
		err  error
	}{
		{"no axes", nil, ErrNoAxes},
		{"empty axis", []Axis{{Name: "a"}}, ErrEmptyAxis},
		{"duplicate symbol", []Axis{{Name: "a", Symbols: []string{"x", "x"}}}, ErrDuplicateEntry},
		{"duplicate name", []Axis{methods, methods}, ErrDuplicateAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(DefaultConfig())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if err := e.Configure(tt.axes); !errors.Is(err, tt.err) {
				t.Errorf("Configure() error = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RepeatCount = 2
	if _, err := New(cfg); !errors.Is(err, ErrRepeatCount) {
		t.Errorf("repeat 2: error = %v, want %v", err, ErrRepeatCount)
	}

	cfg = DefaultConfig()
	cfg.FinalizeDelay = cfg.SettleDuration - time.Millisecond
	if _, err := New(cfg); !errors.Is(err, ErrSettleDelay) {
		t.Errorf("short finalize delay: error = %v, want %v", err, ErrSettleDelay)
	}
}

func TestOperationsBeforeConfigureAreNoops(t *testing.T) {
	e, err := New(DefaultConfig(), WithClock(NewManualClock(time.Now())))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Start() {
		t.Error("Start before Configure accepted")
	}
	if e.StopReel(0) {
		t.Error("StopReel before Configure accepted")
	}
	if snap := e.Snapshot(); snap.Configured || snap.Spinning {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestMotionMovesAtConfiguredSpeed(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, methods)
	home := h.engine.Snapshot().Reels[0].Position

	h.engine.Start()
	h.clock.Advance(2 * cfg.FrameInterval)

	got := h.engine.Snapshot().Reels[0].Position
	want := home - cfg.Speed*millis(2*cfg.FrameInterval)
	if !approx(got, want) {
		t.Errorf("position after two frames = %v, want %v", got, want)
	}
}

func TestMotionStaysWithinOneCycle(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, methods, genres, moods)
	h.engine.Start()

	prev := make([]float64, 3)
	for i, r := range h.engine.Snapshot().Reels {
		prev[i] = r.Position
	}

	for step := 0; step < 400; step++ {
		h.clock.Advance(25 * time.Millisecond)
		for i, r := range h.engine.Snapshot().Reels {
			cycle := 2 * cfg.SymbolHeight
			home := -(cycle * float64(cfg.RepeatCount-3))
			if r.Position > home || r.Position <= home-cycle {
				t.Fatalf("step %d reel %d position %v outside (%v, %v]", step, i, r.Position, home-cycle, home)
			}
			// Между кадрами позиция либо уменьшается, либо сворачивается ровно на цикл
			delta := prev[i] - r.Position
			if delta < 0 {
				delta += cycle
			}
			if delta < 0 || delta > cycle {
				t.Fatalf("step %d reel %d jumped by %v", step, i, delta)
			}
			prev[i] = r.Position
		}
	}
}

func TestStartTwiceKeepsSingleSession(t *testing.T) {
	h := newHarness(t, DefaultConfig(), methods, genres, moods)

	if !h.engine.Start() {
		t.Fatal("first Start rejected")
	}
	h.clock.Advance(100 * time.Millisecond)
	before := h.engine.Snapshot()

	if h.engine.Start() {
		t.Error("second Start accepted while spinning")
	}

	after := h.engine.Snapshot()
	if !after.Spinning {
		t.Error("session stopped spinning after second Start")
	}
	if !slices.Equal(before.Stopped, after.Stopped) {
		t.Errorf("stopped mask changed: %v -> %v", before.Stopped, after.Stopped)
	}
	for i := range before.Reels {
		if before.Reels[i].Position != after.Reels[i].Position {
			t.Errorf("reel %d position reset: %v -> %v", i, before.Reels[i].Position, after.Reels[i].Position)
		}
	}
	if h.clock.Pending() != 3 {
		t.Errorf("pending tasks = %d, want one motion task per reel", h.clock.Pending())
	}
}

func TestStartWhileSpinningKeepsFinalSymbols(t *testing.T) {
	h := newHarness(t, DefaultConfig(), methods, genres, moods)

	h.engine.Start()
	h.clock.Advance(300 * time.Millisecond)
	h.engine.StopReel(1)
	h.clock.Advance(200 * time.Millisecond)
	before := h.engine.Snapshot()

	if h.engine.Start() {
		t.Fatal("Start accepted while spinning")
	}

	after := h.engine.Snapshot()
	if after.Reels[1].FinalSymbol != before.Reels[1].FinalSymbol {
		t.Errorf("final symbol changed: %q -> %q", before.Reels[1].FinalSymbol, after.Reels[1].FinalSymbol)
	}
	if !slices.Equal(after.Stopped, []bool{false, true, false}) {
		t.Errorf("stopped mask = %v", after.Stopped)
	}
	for i := range before.Reels {
		if before.Reels[i].Position != after.Reels[i].Position {
			t.Errorf("reel %d position changed by Start", i)
		}
	}
}

func TestStopReelChoosesMemberAndSettlesOnIt(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, genres)

	h.engine.Start()
	h.clock.Advance(777 * time.Millisecond)
	if !h.engine.StopReel(0) {
		t.Fatal("StopReel rejected")
	}

	snap := h.engine.Snapshot()
	sym := snap.Reels[0].FinalSymbol
	idx := slices.Index(genres.Symbols, sym)
	if idx < 0 {
		t.Fatalf("final symbol %q is not in axis", sym)
	}
	if !snap.Reels[0].Settling {
		t.Error("reel is not settling right after stop")
	}

	h.clock.Advance(cfg.SettleDuration)

	n := len(genres.Symbols)
	want := -(float64((cfg.RepeatCount-2)*n+idx)*cfg.SymbolHeight - (cfg.WindowHeight-cfg.SymbolHeight)/2)
	got := h.engine.Snapshot().Reels[0].Position
	if !approx(got, want) {
		t.Errorf("settled position = %v, want %v (symbol %q)", got, want, sym)
	}
}

func TestStopReelTravelsForwardOnly(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, moods)

	h.engine.Start()
	h.clock.Advance(50 * time.Millisecond)
	h.engine.StopReel(0)

	prev := h.engine.Snapshot().Reels[0].Position
	for i := 0; i < 30; i++ {
		h.clock.Advance(cfg.SettleDuration / 30)
		pos := h.engine.Snapshot().Reels[0].Position
		if pos > prev+1e-9 {
			t.Fatalf("settle moved backwards: %v -> %v", prev, pos)
		}
		prev = pos
	}
}

func TestStopReelIsIdempotent(t *testing.T) {
	h := newHarness(t, DefaultConfig(), methods, genres)

	h.engine.Start()
	h.engine.StopReel(0)
	first := h.engine.Snapshot()

	for i := 0; i < 10; i++ {
		if h.engine.StopReel(0) {
			t.Fatal("second StopReel accepted")
		}
	}

	second := h.engine.Snapshot()
	if first.Reels[0].FinalSymbol != second.Reels[0].FinalSymbol {
		t.Errorf("final symbol changed: %q -> %q", first.Reels[0].FinalSymbol, second.Reels[0].FinalSymbol)
	}
	if !slices.Equal(first.Stopped, second.Stopped) {
		t.Errorf("stopped mask changed: %v -> %v", first.Stopped, second.Stopped)
	}
}

func TestStopReelInvalidTransitions(t *testing.T) {
	h := newHarness(t, DefaultConfig(), methods, genres)

	if h.engine.StopReel(0) {
		t.Error("StopReel before Start accepted")
	}
	h.engine.Start()
	for _, idx := range []int{-1, 2, 100} {
		if h.engine.StopReel(idx) {
			t.Errorf("StopReel(%d) accepted", idx)
		}
	}
	if snap := h.engine.Snapshot(); slices.Contains(snap.Stopped, true) {
		t.Errorf("stopped mask changed by invalid stops: %v", snap.Stopped)
	}
}

func TestFinalizeWaitsForDelayAfterLastStop(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, methods, genres, moods)

	h.engine.Start()
	h.engine.StopReel(0)
	h.engine.StopReel(1)
	h.engine.StopReel(2)

	h.clock.Advance(cfg.FinalizeDelay - time.Millisecond)
	if res := h.engine.Results(); res != nil {
		t.Fatalf("results published early: %v", res)
	}
	if !h.engine.Snapshot().Spinning {
		t.Fatal("session finished before finalize delay")
	}
	if len(h.outcomes) != 0 {
		t.Fatal("result handler called early")
	}

	h.clock.Advance(time.Millisecond)
	if h.engine.Results() == nil {
		t.Fatal("results missing after finalize delay")
	}
	if h.engine.Snapshot().Spinning {
		t.Error("still spinning after finalization")
	}
	if len(h.outcomes) != 1 {
		t.Errorf("result handler called %d times, want 1", len(h.outcomes))
	}
}

func TestFinalizeMeasuredFromLastStop(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, methods, genres)

	h.engine.Start()
	h.engine.StopReel(0)
	h.clock.Advance(cfg.FinalizeDelay * 3)
	if h.engine.Results() != nil {
		t.Fatal("results published with one reel still spinning")
	}

	h.engine.StopReel(1)
	h.clock.Advance(cfg.FinalizeDelay / 2)
	if h.engine.Results() != nil {
		t.Fatal("results published before delay from the last stop")
	}
	h.clock.Advance(cfg.FinalizeDelay / 2)
	if h.engine.Results() == nil {
		t.Fatal("results missing after delay from the last stop")
	}
}

func TestEndToEndThreeAxes(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, methods, genres, moods)
	h.engine.SetIngredients([]string{"きゅうり(1本)", "ハチミツ(大さじ1)"})

	if !h.engine.Start() {
		t.Fatal("Start rejected")
	}
	for i := 0; i < 3; i++ {
		h.clock.Advance(cfg.SettleDuration)
		if !h.engine.StopReel(i) {
			t.Fatalf("StopReel(%d) rejected", i)
		}
	}
	h.clock.Advance(cfg.FinalizeDelay)

	if len(h.outcomes) != 1 {
		t.Fatalf("outcomes = %d, want 1", len(h.outcomes))
	}
	theme := h.outcomes[0].Theme()
	for _, a := range []Axis{methods, genres, moods} {
		v, ok := theme[a.Name]
		if !ok {
			t.Errorf("theme has no %q", a.Name)
			continue
		}
		if !slices.Contains(a.Symbols, v) {
			t.Errorf("theme[%q] = %q is not an axis member", a.Name, v)
		}
	}
	if len(theme) != 3 {
		t.Errorf("theme has %d keys, want 3", len(theme))
	}

	order := make([]string, 0, 3)
	for _, r := range h.outcomes[0].Results {
		order = append(order, r.Axis)
	}
	if !slices.Equal(order, []string{"method", "genre", "mood"}) {
		t.Errorf("result order = %v", order)
	}
	if !slices.Equal(h.outcomes[0].Ingredients, []string{"きゅうり(1本)", "ハチミツ(大さじ1)"}) {
		t.Errorf("ingredients = %v", h.outcomes[0].Ingredients)
	}
}

func TestConsumeEndsSession(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, methods)

	if _, ok := h.engine.Consume(); ok {
		t.Fatal("Consume succeeded without a session")
	}

	h.engine.Start()
	h.engine.StopReel(0)
	if _, ok := h.engine.Consume(); ok {
		t.Fatal("Consume succeeded before finalization")
	}
	h.clock.Advance(cfg.FinalizeDelay)

	out, ok := h.engine.Consume()
	if !ok || len(out.Results) != 1 {
		t.Fatalf("Consume = %+v, %v", out, ok)
	}
	if _, ok := h.engine.Consume(); ok {
		t.Error("outcome consumed twice")
	}
	if h.engine.Results() != nil {
		t.Error("results still visible after Consume")
	}

	if !h.engine.Start() {
		t.Fatal("Start rejected for a fresh session")
	}
	if snap := h.engine.Snapshot(); snap.Stopped[0] || snap.Reels[0].FinalSymbol != "" {
		t.Errorf("fresh session carries old state: %+v", snap)
	}
}

func TestRestartAfterFinalization(t *testing.T) {
	cfg := DefaultConfig()
	h := newHarness(t, cfg, methods, genres)

	for round := 0; round < 3; round++ {
		if !h.engine.Start() {
			t.Fatalf("round %d: Start rejected", round)
		}
		h.clock.Advance(40 * time.Millisecond)
		h.engine.StopReel(1)
		h.engine.StopReel(0)
		h.clock.Advance(cfg.FinalizeDelay)
	}
	if len(h.outcomes) != 3 {
		t.Errorf("outcomes = %d, want 3", len(h.outcomes))
	}
}

func TestFinalSymbolIsUniform(t *testing.T) {
	cfg := DefaultConfig()
	axis := Axis{Name: "genre", Symbols: []string{"錯覚フレンチ", "実験中華", "未来食", "フェイクフード"}}
	h := newHarness(t, cfg, axis)

	const trials = 4000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		h.engine.Start()
		h.engine.StopReel(0)
		counts[h.engine.Snapshot().Reels[0].FinalSymbol]++
		h.clock.Advance(cfg.FinalizeDelay)
		if _, ok := h.engine.Consume(); !ok {
			t.Fatalf("trial %d did not finalize", i)
		}
	}

	expected := float64(trials) / float64(len(axis.Symbols))
	var chi2 float64
	for _, s := range axis.Symbols {
		d := float64(counts[s]) - expected
		chi2 += d * d / expected
	}
	// 3 степени свободы, квантиль 0.999 ~ 16.27
	if chi2 > 20 {
		t.Errorf("chi-square = %.2f, counts = %v", chi2, counts)
	}
}

func TestBonusLampProbability(t *testing.T) {
	for _, chance := range []float64{0, 0.3} {
		cfg := DefaultConfig()
		cfg.BonusChance = chance
		h := newHarness(t, cfg, methods)

		const trials = 5000
		lit := 0
		for i := 0; i < trials; i++ {
			h.engine.Start()
			if h.engine.Snapshot().Bonus {
				lit++
			}
			h.engine.StopReel(0)
			h.clock.Advance(cfg.FinalizeDelay)
		}

		got := float64(lit) / trials
		if math.Abs(got-chance) > 0.03 {
			t.Errorf("chance %.2f: observed %.3f", chance, got)
		}
	}
}

func TestCloseCancelsTasks(t *testing.T) {
	h := newHarness(t, DefaultConfig(), methods, genres)

	h.engine.Start()
	if h.clock.Pending() == 0 {
		t.Fatal("no motion tasks scheduled")
	}
	h.engine.Close()
	if n := h.clock.Pending(); n != 0 {
		t.Errorf("pending tasks after Close = %d", n)
	}
	if h.engine.Start() || h.engine.StopReel(0) {
		t.Error("operations accepted after Close")
	}
	if err := h.engine.Configure([]Axis{methods}); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Configure after Close: %v", err)
	}
}

func TestConfigureWhileSpinning(t *testing.T) {
	h := newHarness(t, DefaultConfig(), methods)
	h.engine.Start()
	if err := h.engine.Configure([]Axis{genres}); !errors.Is(err, ErrSpinInProgress) {
		t.Errorf("Configure while spinning: %v", err)
	}
}

package slot

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"yaminabe_backend/internal/model"
	"yaminabe_backend/internal/reel"
	"yaminabe_backend/internal/repository/slot_stats_repo"
	"yaminabe_backend/pkg/token"

	"go.uber.org/zap"
)

var testSecret = []byte("test-secret")

type slotConfig struct{}

func (slotConfig) Reel() reel.Config { return reel.DefaultConfig() }
func (slotConfig) Axes() []reel.Axis {
	return []reel.Axis{
		{Name: "genre", Symbols: []string{"錯覚フレンチ", "実験中華", "未来食"}},
		{Name: "mood", Symbols: []string{"脳がバグる味", "背徳の味"}},
	}
}
func (slotConfig) MaxIngredients() int { return 5 }

type tokenConfig struct{}

func (tokenConfig) SecretKey() []byte  { return testSecret }
func (tokenConfig) TTL() time.Duration { return time.Minute }

type fixture struct {
	serv  *serv
	clock *reel.ManualClock
	stats *slot_stats_repo.StatsRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := reel.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	stats := slot_stats_repo.NewSlotStatsRepository()
	s := NewSlotService(slotConfig{}, tokenConfig{}, stats, zap.NewNop(),
		reel.WithClock(clock),
		reel.WithSource(rand.New(rand.NewPCG(1, 2))),
	).(*serv)
	s.now = clock.Now

	return &fixture{serv: s, clock: clock, stats: stats}
}

func TestCreateValidatesIngredients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.SlotCreate
		want error
	}{
		{"empty", model.SlotCreate{}, ErrNoIngredients},
		{"empty raw list", model.SlotCreate{IngredientsRaw: "[]"}, ErrNoIngredients},
		{"too many", model.SlotCreate{Ingredients: []string{"a", "b", "c", "d", "e", "f"}}, ErrTooManyIngredients},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.serv.Create(ctx, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateParsesRawIngredients(t *testing.T) {
	f := newFixture(t)

	sess, err := f.serv.Create(context.Background(), model.SlotCreate{
		IngredientsRaw: `[{"name":"きゅうり","quantity":"1本"}]`,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := sess.State.Ingredients; len(got) != 1 || got[0] != "きゅうり(1本)" {
		t.Errorf("ingredients = %v", got)
	}
	if len(sess.Strips) != 2 || len(sess.Strips[0]) != 3*10 {
		t.Errorf("strips = %d reels", len(sess.Strips))
	}

	broken, err := f.serv.Create(context.Background(), model.SlotCreate{IngredientsRaw: "{oops"})
	if err != nil {
		t.Fatalf("Create with broken payload: %v", err)
	}
	if got := broken.State.Ingredients; len(got) != 1 || got[0] != reel.IngredientPlaceholder {
		t.Errorf("ingredients = %v", got)
	}
}

func TestFullSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, err := f.serv.Create(ctx, model.SlotCreate{Ingredients: []string{"プリン", "醤油"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := sess.State.SessionID

	st, err := f.serv.Start(ctx, id)
	if err != nil || !st.Accepted || !st.Spinning {
		t.Fatalf("Start = %+v, %v", st, err)
	}
	if st, _ := f.serv.Start(ctx, id); st.Accepted {
		t.Error("second start accepted while spinning")
	}

	if _, err := f.serv.Confirm(ctx, id); !errors.Is(err, ErrNotFinished) {
		t.Errorf("Confirm while spinning: %v", err)
	}

	f.clock.Advance(500 * time.Millisecond)
	for i := 0; i < 2; i++ {
		st, err := f.serv.Stop(ctx, id, i)
		if err != nil || !st.Accepted {
			t.Fatalf("Stop(%d) = %+v, %v", i, st, err)
		}
	}
	if st, _ := f.serv.Stop(ctx, id, 0); st.Accepted {
		t.Error("stopping a stopped reel accepted")
	}
	if st, _ := f.serv.Stop(ctx, id, 7); st.Accepted {
		t.Error("stopping an unknown reel accepted")
	}

	f.clock.Advance(2 * time.Second)

	st, err = f.serv.State(ctx, id)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if st.Spinning || len(st.Theme) != 2 {
		t.Fatalf("state after finalize = %+v", st)
	}

	out, err := f.serv.Confirm(ctx, id)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if out.Theme["genre"] != st.Theme["genre"] || out.Theme["mood"] != st.Theme["mood"] {
		t.Errorf("outcome theme %v != state theme %v", out.Theme, st.Theme)
	}

	claims, err := token.VerifyThemeToken(out.Ticket, testSecret)
	if err != nil {
		t.Fatalf("VerifyThemeToken: %v", err)
	}
	if claims.ID != id || claims.Theme["genre"] != out.Theme["genre"] || len(claims.Ingredients) != 2 {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := f.serv.State(ctx, id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session still present after confirm: %v", err)
	}

	stats := f.serv.Stats()
	if stats.Sessions != 1 || len(stats.Axes) != 2 || stats.Axes[0].Counts[out.Theme["genre"]] != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestUnknownSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.serv.Start(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Start: %v", err)
	}
	if _, err := f.serv.Stop(ctx, "missing", 0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Stop: %v", err)
	}
	if err := f.serv.Close(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Close: %v", err)
	}
}

func TestCloseCancelsTimers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, err := f.serv.Create(ctx, model.SlotCreate{Ingredients: []string{"卵"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.serv.Start(ctx, sess.State.SessionID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if f.clock.Pending() == 0 {
		t.Fatal("no motion timers scheduled")
	}

	if err := f.serv.Close(ctx, sess.State.SessionID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := f.clock.Pending(); n != 0 {
		t.Errorf("pending timers after close = %d", n)
	}
}

func TestExpiredSessionsAreSwept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old, err := f.serv.Create(ctx, model.SlotCreate{Ingredients: []string{"卵"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.clock.Advance(defaultSessionTTL + time.Minute)

	if _, err := f.serv.Create(ctx, model.SlotCreate{Ingredients: []string{"米"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.serv.State(ctx, old.State.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session still present: %v", err)
	}
}

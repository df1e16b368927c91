package slot_stats_repo

import (
	"sort"
	"sync"

	"yaminabe_backend/internal/model"
)

type axisCounter struct {
	counts map[string]int
	total  int
}

// StatsRepo статистика выпавших символов по осям, хранится в памяти
type StatsRepo struct {
	mtx      sync.RWMutex
	sessions int
	bonuses  int
	order    []string
	axes     map[string]*axisCounter
}

// NewSlotStatsRepository Конструктор пустой статистики
func NewSlotStatsRepository() *StatsRepo {
	return &StatsRepo{
		axes: make(map[string]*axisCounter),
	}
}

// Record учитывает итог одной завершённой сессии
func (r *StatsRepo) Record(draws []model.Draw, bonus bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.sessions++
	if bonus {
		r.bonuses++
	}

	for _, d := range draws {
		c, ok := r.axes[d.Axis]
		if !ok {
			c = &axisCounter{counts: make(map[string]int)}
			r.axes[d.Axis] = c
			// Оси выводятся в порядке первого появления
			r.order = append(r.order, d.Axis)
		}
		c.counts[d.Symbol]++
		c.total++
	}
}

// Stats Получение копии текущей статистики
func (r *StatsRepo) Stats() model.SlotStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := model.SlotStats{
		Sessions: r.sessions,
		Bonuses:  r.bonuses,
		Axes:     make([]model.AxisStats, 0, len(r.order)),
	}
	for _, name := range r.order {
		c := r.axes[name]
		counts := make(map[string]int, len(c.counts))
		for k, v := range c.counts {
			counts[k] = v
		}
		out.Axes = append(out.Axes, model.AxisStats{
			Axis:   name,
			Counts: counts,
			Total:  c.total,
		})
	}
	return out
}

// Symbols символы оси, которые хоть раз выпадали, по алфавиту
func (r *StatsRepo) Symbols(axis string) []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	c, ok := r.axes[axis]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(c.counts))
	for s := range c.counts {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

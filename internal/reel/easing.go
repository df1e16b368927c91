package reel

import "math"

// cubicBezier кривая ускорения в формате CSS cubic-bezier(x1, y1, x2, y2)
type cubicBezier struct {
	ax, bx, cx float64
	ay, by, cy float64
}

// settleEasing быстрый старт и плавная остановка барабана
var settleEasing = newCubicBezier(0.25, 1, 0.5, 1)

func newCubicBezier(x1, y1, x2, y2 float64) cubicBezier {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	return cubicBezier{
		ax: 1 - cx - bx, bx: bx, cx: cx,
		ay: 1 - cy - by, by: by, cy: cy,
	}
}

func (b cubicBezier) sampleX(t float64) float64 {
	return ((b.ax*t+b.bx)*t + b.cx) * t
}

func (b cubicBezier) sampleY(t float64) float64 {
	return ((b.ay*t+b.by)*t + b.cy) * t
}

func (b cubicBezier) sampleDerivX(t float64) float64 {
	return (3*b.ax*t+2*b.bx)*t + b.cx
}

// solveX ищет параметр t, для которого x(t) == x.
// Сначала метод Ньютона, при неудаче бисекция
func (b cubicBezier) solveX(x float64) float64 {
	const eps = 1e-7

	t := x
	for i := 0; i < 8; i++ {
		dx := b.sampleX(t) - x
		if math.Abs(dx) < eps {
			return t
		}
		d := b.sampleDerivX(t)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= dx / d
	}

	lo, hi := 0.0, 1.0
	t = x
	for lo < hi {
		xt := b.sampleX(t)
		if math.Abs(xt-x) < eps {
			return t
		}
		if x > xt {
			lo = t
		} else {
			hi = t
		}
		next := (lo + hi) / 2
		if next == t {
			break
		}
		t = next
	}
	return t
}

// At возвращает прогресс анимации для доли времени x в [0, 1]
func (b cubicBezier) At(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return b.sampleY(b.solveX(x))
}

package main

import (
	"math"

	"golang.org/x/mobile/event/touch"
)

type point struct {
	x, y float32
}

// gestures turns raw touch sequences into drag deltas (one finger) and pinch scale
// factors (two fingers). Once a second finger went down, dragging stays paused until
// every finger is lifted.
type gestures struct {
	points   map[touch.Sequence]point
	dragging bool
	spread   float64 // distance between the two pinching fingers
	onDrag   func(dx, dy float64)
	onScale  func(factor float64)
}

func newGestures(onDrag func(dx, dy float64), onScale func(factor float64)) *gestures {
	return &gestures{points: make(map[touch.Sequence]point), onDrag: onDrag, onScale: onScale}
}

func (g *gestures) handle(e touch.Event) {
	p := point{e.X, e.Y}
	switch e.Type {
	case touch.TypeBegin:
		g.points[e.Sequence] = p
		g.dragging = len(g.points) == 1
		g.spread = g.pinchSpread()
	case touch.TypeMove:
		prev, ok := g.points[e.Sequence]
		if !ok {
			return
		}
		g.points[e.Sequence] = p
		switch len(g.points) {
		case 1:
			if g.dragging {
				g.onDrag(float64(p.x-prev.x), float64(p.y-prev.y))
			}
		case 2:
			spread := g.pinchSpread()
			if g.spread > 0 && spread > 0 {
				g.onScale(spread / g.spread)
			}
			g.spread = spread
		}
	case touch.TypeEnd:
		delete(g.points, e.Sequence)
		g.dragging = false
		g.spread = g.pinchSpread()
	}
}

// pinchSpread returns the distance between the fingers if exactly two are down.
func (g *gestures) pinchSpread() float64 {
	if len(g.points) != 2 {
		return 0
	}
	var ps []point
	for _, p := range g.points {
		ps = append(ps, p)
	}
	return math.Hypot(float64(ps[1].x-ps[0].x), float64(ps[1].y-ps[0].y))
}

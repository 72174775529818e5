package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/physics"
	"go.uber.org/zap"
)

type contactState struct {
	contact   mgl64.Vec3
	submerged bool
}

// ContactSystem turns per-step contact flags into events. An event fires on the tick
// a body starts touching on an axis, or flips to the opposite side of it.
type ContactSystem struct {
	Logger *zap.Logger
	prev   map[ecs.Entity]contactState
}

func NewContactSystem(logger *zap.Logger) *ContactSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactSystem{Logger: logger, prev: map[ecs.Entity]contactState{}}
}

func (s *ContactSystem) Update(w *ecs.World, _ float64) {
	seen := make(map[ecs.Entity]bool, len(s.prev))

	w.Bodies2D().Each(func(e ecs.Entity, b *physics.Body2D) {
		seen[e] = true
		// 2D is y-down: positive Y contact is the floor.
		s.observe(w, e, contactState{contact: mgl64.Vec3{b.Contact.X, b.Contact.Y, 0}}, 1)
	})
	w.Bodies3D().Each(func(e ecs.Entity, b *physics.Body3D) {
		seen[e] = true
		s.observe(w, e, contactState{contact: b.Contact, submerged: b.IsSubmerged}, -1)
	})

	for e := range s.prev {
		if !seen[e] {
			delete(s.prev, e)
		}
	}
}

// observe compares cur with the previous tick. down is the sign of a floor contact on Y.
func (s *ContactSystem) observe(w *ecs.World, e ecs.Entity, cur contactState, down float64) {
	prev := s.prev[e]
	s.prev[e] = cur

	for axis := 0; axis < 3; axis++ {
		c := cur.contact[axis]
		if c == 0 || c == prev.contact[axis] {
			continue
		}
		var normal mgl64.Vec3
		normal[axis] = c
		s.emit(w, e, contactKind(axis, c, down), normal)
	}

	switch {
	case cur.submerged && !prev.submerged:
		s.emit(w, e, ecs.EventSubmerged, mgl64.Vec3{})
	case !cur.submerged && prev.submerged:
		s.emit(w, e, ecs.EventSurfaced, mgl64.Vec3{})
	}
}

func contactKind(axis int, c, down float64) ecs.EventKind {
	switch axis {
	case 0:
		return ecs.EventWall
	case 1:
		if c == down {
			return ecs.EventLanded
		}
		return ecs.EventCeiling
	default:
		return ecs.EventDepthWall
	}
}

func (s *ContactSystem) emit(w *ecs.World, e ecs.Entity, kind ecs.EventKind, normal mgl64.Vec3) {
	w.Events().Push(ecs.ContactEvent{Tick: w.Tick(), Entity: e, Kind: kind, Normal: normal})
	if ce := s.Logger.Check(zap.DebugLevel, "contact"); ce != nil {
		ce.Write(zap.Stringer("entity", e), zap.String("kind", string(kind)), zap.Uint64("tick", w.Tick()))
	}
}

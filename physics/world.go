// Package physics is the rigid-body collaborator the locomotion core drives.
//
// Horizontal motion runs in a Chipmunk space whose X/Y plane is the world
// X/Z plane, so walls block and slide bodies the usual way. The vertical
// axis is integrated alongside it: gravity, impulses, landing on solid tops
// and bumping solid undersides.
package physics

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/thirdperson/common"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeSolid
)

// skin is the vertical tolerance used when deciding whether a body rests on
// top of a solid or overlaps it from the side.
const skin = 0.05

// Solid is a static axis-aligned box.
type Solid struct {
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Layer common.LayerMask

	shape *cp.Shape
}

// World owns the Chipmunk space, the static solids and every dynamic body.
type World struct {
	space         *cp.Space
	gravity       float64
	handlersReady bool

	bodies      []*Body
	solids      []*Solid
	shapeToBody map[*cp.Shape]*Body
	shapeToSol  map[*cp.Shape]*Solid

	log *slog.Logger
}

// NewWorld creates an empty world. gravity is the vertical acceleration,
// negative for down.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})

	w := &World{
		space:       space,
		gravity:     gravity,
		shapeToBody: make(map[*cp.Shape]*Body),
		shapeToSol:  make(map[*cp.Shape]*Solid),
		log:         slog.Default().With("subsystem", "physics"),
	}
	w.ensureHandlers()
	return w
}

// SetLogger replaces the world logger.
func (w *World) SetLogger(l *slog.Logger) {
	if w == nil || l == nil {
		return
	}
	w.log = l.With("subsystem", "physics")
}

func (w *World) Gravity() float64 {
	if w == nil {
		return 0
	}
	return w.gravity
}

func (w *World) SetGravity(g float64) {
	if w == nil {
		return
	}
	w.gravity = g
}

// Space exposes the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	return append([]*Body(nil), w.bodies...)
}

func (w *World) Solids() []*Solid {
	if w == nil {
		return nil
	}
	return append([]*Solid(nil), w.solids...)
}

// AddSolid inserts a static box spanning min..max on the given layer.
func (w *World) AddSolid(min, max mgl64.Vec3, layer common.LayerMask) *Solid {
	if w == nil || w.space == nil {
		return nil
	}
	lo := mgl64.Vec3{math.Min(min.X(), max.X()), math.Min(min.Y(), max.Y()), math.Min(min.Z(), max.Z())}
	hi := mgl64.Vec3{math.Max(min.X(), max.X()), math.Max(min.Y(), max.Y()), math.Max(min.Z(), max.Z())}

	bb := cp.BB{L: lo.X(), B: lo.Z(), R: hi.X(), T: hi.Z()}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	w.space.AddShape(shape)

	s := &Solid{Min: lo, Max: hi, Layer: layer, shape: shape}
	w.solids = append(w.solids, s)
	w.shapeToSol[shape] = s
	return s
}

// AddBody creates a dynamic upright body with its feet at cfg.Position.
func (w *World) AddBody(cfg BodyConfig) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	cfg = cfg.withDefaults()

	// infinite moment: bodies never tip over
	cpBody := cp.NewBody(cfg.Mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: cfg.Position.X(), Y: cfg.Position.Z()})
	w.space.AddBody(cpBody)

	shape := cp.NewCircle(cpBody, cfg.Radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeBody)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(cfg.Layer), cp.ALL_CATEGORIES))
	w.space.AddShape(shape)

	b := &Body{
		world:      w,
		body:       cpBody,
		shape:      shape,
		y:          cfg.Position.Y(),
		radius:     cfg.Radius,
		height:     cfg.Height,
		mass:       cfg.Mass,
		layer:      cfg.Layer,
		rotation:   mgl64.QuatIdent(),
		UseGravity: !cfg.NoGravity,
	}
	w.bodies = append(w.bodies, b)
	w.shapeToBody[shape] = b
	w.log.Debug("body added", "pos", cfg.Position, "radius", cfg.Radius, "height", cfg.Height)
	return b
}

// RemoveBody detaches a body from the world. Later calls on the body are no-ops.
func (w *World) RemoveBody(b *Body) {
	if w == nil || b == nil || b.removed {
		return
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	delete(w.shapeToBody, b.shape)
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	b.removed = true
	b.world = nil
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.ensureHandlers()
	for _, b := range w.bodies {
		w.stepVertical(b, dt)
	}
	w.space.Step(dt)
}

func (w *World) stepVertical(b *Body, dt float64) {
	if b == nil || b.removed {
		return
	}
	if b.UseGravity {
		b.vy += w.gravity * dt
	}
	newY := b.y + b.vy*dt
	b.grounded = false

	if b.vy <= 0 {
		if top, ok := w.floorBelow(b); ok && newY <= top {
			newY = top
			b.vy = 0
			b.grounded = true
		}
	} else if bottom, ok := w.ceilingAbove(b); ok && newY+b.height > bottom {
		newY = bottom - b.height
		b.vy = 0
	}
	b.y = newY
}

// floorBelow returns the highest solid top under the body's footprint that
// the body's feet are at or above.
func (w *World) floorBelow(b *Body) (float64, bool) {
	best, found := math.Inf(-1), false
	for _, s := range w.underFootprint(b) {
		top := s.Max.Y()
		if b.y >= top-skin && top > best {
			best, found = top, true
		}
	}
	return best, found
}

func (w *World) ceilingAbove(b *Body) (float64, bool) {
	best, found := math.Inf(1), false
	head := b.y + b.height
	for _, s := range w.underFootprint(b) {
		bottom := s.Min.Y()
		if head <= bottom+skin && bottom < best {
			best, found = bottom, true
		}
	}
	return best, found
}

func (w *World) underFootprint(b *Body) []*Solid {
	p := b.body.Position()
	var out []*Solid
	for _, s := range w.solids {
		info := s.shape.PointQuery(p)
		if info.Distance < b.radius {
			out = append(out, s)
		}
	}
	return out
}

// OverlapSphere reports whether a sphere overlaps any solid whose layer is in mask.
func (w *World) OverlapSphere(origin mgl64.Vec3, radius float64, mask common.LayerMask) bool {
	if w == nil || radius < 0 {
		return false
	}
	p := cp.Vector{X: origin.X(), Y: origin.Z()}
	for _, s := range w.solids {
		if !mask.Contains(s.Layer) {
			continue
		}
		dxz := math.Max(s.shape.PointQuery(p).Distance, 0)
		if dxz > radius {
			continue
		}
		dy := 0.0
		if origin.Y() > s.Max.Y() {
			dy = origin.Y() - s.Max.Y()
		} else if origin.Y() < s.Min.Y() {
			dy = s.Min.Y() - origin.Y()
		}
		if dxz*dxz+dy*dy <= radius*radius {
			return true
		}
	}
	return false
}

func (w *World) ensureHandlers() {
	if w.handlersReady || w.space == nil {
		return
	}

	// Bodies only collide with a solid in the horizontal plane when their
	// vertical spans overlap; standing on a floor must not push sideways.
	handler := w.space.NewCollisionHandler(collisionTypeBody, collisionTypeSolid)
	handler.UserData = w
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		body, okA := world.shapeToBody[shapeA]
		if !okA {
			body, okA = world.shapeToBody[shapeB]
		}
		solid, okB := world.shapeToSol[shapeB]
		if !okB {
			solid, okB = world.shapeToSol[shapeA]
		}
		if !okA || !okB {
			return true
		}
		return body.y < solid.Max.Y()-skin && body.y+body.height > solid.Min.Y()+skin
	}

	w.handlersReady = true
}

package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"golang.org/x/image/colornames"
)

// pixelsPerMeter is the zoom of the top-down view.
const pixelsPerMeter = 16.0

// view maps world XZ onto the screen around a centre point. World +Z is up
// on screen.
type view struct {
	centre mgl64.Vec3
}

func (v view) project(p mgl64.Vec3) (float32, float32) {
	x := (p.X()-v.centre.X())*pixelsPerMeter + baseWidth/2
	y := -(p.Z()-v.centre.Z())*pixelsPerMeter + baseHeight/2
	return float32(x), float32(y)
}

// sceneView centres the view on the followed entity.
func sceneView(w *ecs.World, follow ecs.Entity) view {
	var v view
	if t, ok := ecs.Get(w, follow, component.TransformComponent.Kind()); ok {
		v.centre = t.Position
	}
	return v
}

func drawScene(screen *ebiten.Image, w *ecs.World, v view, camera ecs.Entity) {
	screen.Fill(colornames.Midnightblue)

	if pw := w.Physics(); pw != nil {
		for _, s := range pw.Solids() {
			x0, y0 := v.project(mgl64.Vec3{s.Min.X(), 0, s.Max.Z()})
			x1, y1 := v.project(mgl64.Vec3{s.Max.X(), 0, s.Min.Z()})
			fill, edge := solidColors(s.Layer, s.Max.Y())
			vector.FillRect(screen, x0, y0, x1-x0, y1-y0, fill, false)
			vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, edge, false)
		}
	}

	ecs.ForEach3(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.PlayerComponent.Kind(),
		func(_ ecs.Entity, t *component.Transform, pb *component.PhysicsBody, p *component.Player) {
			px, py := v.project(t.Position)
			radius := float32(0.5 * pixelsPerMeter)
			if pb.Body != nil {
				radius = float32(pb.Body.Radius() * pixelsPerMeter)
			}
			body := colornames.Crimson
			if p.Controller.IsDashing() {
				body = colornames.Orange
			}
			vector.FillCircle(screen, px, py, radius, body, true)

			fwd := t.Rotation.Rotate(common.Forward)
			fx, fy := v.project(t.Position.Add(fwd.Mul(1.5)))
			vector.StrokeLine(screen, px, py, fx, fy, 2, colornames.White, true)
		})

	if c, ok := ecs.Get(w, camera, component.CameraComponent.Kind()); ok && c.Orbit != nil {
		pos := c.Orbit.Position()
		cx, cy := v.project(pos)
		vector.StrokeCircle(screen, cx, cy, 5, 2, colornames.Lightskyblue, true)
		if target, ok := c.Orbit.Desired(); ok {
			tx, ty := v.project(target)
			vector.StrokeCircle(screen, tx, ty, 3, 1, colornames.Lightgrey, true)
		}
		lx, ly := v.project(pos.Add(c.Orbit.Forward().Mul(4)))
		vector.StrokeLine(screen, cx, cy, lx, ly, 1, colornames.Lightskyblue, true)
	}
}

// solidColors shades solids by layer; taller solids are drawn more opaque.
func solidColors(layer common.LayerMask, top float64) (color.Color, color.Color) {
	base := colornames.Slategray
	if layer&common.LayerGround != 0 {
		base = colornames.Darkolivegreen
	}
	alpha := uint8(96)
	if top > 1 {
		alpha = 200
	}
	fill := color.NRGBA{R: base.R, G: base.G, B: base.B, A: alpha}
	return fill, colornames.Lightgrey
}

func drawHUD(screen *ebiten.Image, w *ecs.World, player, camera ecs.Entity) {
	var b strings.Builder
	fmt.Fprintf(&b, "TPS: %.1f  FPS: %.1f  t=%.2f  ticks=%d\n", ebiten.ActualTPS(), ebiten.ActualFPS(), w.Clock().Now(), w.Clock().Ticks())

	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		ctrl := p.Controller
		speed := 0.0
		if pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			speed = common.Horizontal(pb.Body.Velocity()).Len()
		}
		fmt.Fprintf(&b, "grounded: %v  moving: %v  dash: %s  speed: %.2f\n",
			ctrl.Grounded(), ctrl.IsMoving(), ctrl.DashPhase(), speed)
		fmt.Fprintf(&b, "intent: (%.2f, %.2f)  heading: %.1f\n", ctrl.Intent().X(), ctrl.Intent().Y(), ctrl.TargetAngle())
	}
	if c, ok := ecs.Get(w, camera, component.CameraComponent.Kind()); ok && c.Orbit != nil {
		fmt.Fprintf(&b, "camera yaw: %.1f  pitch: %.1f\n", c.Orbit.OrbitYaw(), c.Orbit.Pitch())
	}
	if a, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok {
		fmt.Fprintf(&b, "anim: %v  triggers: %v\n", a.Recorder.Bools(), a.Recent)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 10, 10)
}

// drawPaused dims the scene behind the pause panel.
func drawPaused(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, baseWidth, baseHeight, color.NRGBA{A: 120}, false)
}

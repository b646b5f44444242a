package main

import (
	"fmt"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/entity"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Options struct {
	Level  string
	Script string
	Debug  bool
	Watch  bool
}

type Game struct {
	frames int
	paused bool
	quit   bool
	debug  bool

	pauseUI *ebitenui.UI

	world  *ecs.World
	player ecs.Entity
	camera ecs.Entity

	source  *deviceSource
	input   *system.InputSystem
	fixed   *ecs.Scheduler
	frame   *ecs.Scheduler
	watcher *prefabs.Watcher

	log *slog.Logger
}

func NewGame(opts Options) (*Game, error) {
	w := ecs.NewWorld()
	player, camera, err := entity.LoadScene(w, opts.Level)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", opts.Level, err)
	}

	if opts.Script != "" {
		in, ok := ecs.Get(w, player, component.InputComponent.Kind())
		if !ok {
			return nil, fmt.Errorf("player has no input component to script")
		}
		in.Script = opts.Script
	}

	g := &Game{
		debug:  opts.Debug,
		world:  w,
		player: player,
		camera: camera,
		source: newDeviceSource(),
		log:    w.Logger().With("subsystem", "game"),
	}
	g.input = system.NewInputSystem(g.source)
	g.pauseUI = newPauseUI(func() { g.setPaused(false) }, func() { g.quit = true })

	var changes <-chan string
	var errs <-chan error
	if opts.Watch {
		watcher, err := prefabs.NewWatcher()
		if err != nil {
			g.log.Warn("prefab watcher disabled", "dir", prefabs.Dir(), "err", err)
		} else {
			g.watcher = watcher
			changes, errs = watcher.Events, watcher.Errors
		}
	}

	g.fixed = ecs.NewScheduler("fixed",
		system.NewLocomotionSystem(),
		system.NewPhysicsSystem(),
	)
	g.frame = ecs.NewScheduler("frame",
		system.NewCameraSystem(),
		system.NewAnimationSystem(),
		system.NewReloadSystem(changes, errs, g.input),
	)
	for _, s := range []*ecs.Scheduler{g.fixed, g.frame} {
		g.log.Debug("scheduler ready", "name", s.Name(), "systems", len(s.Systems()))
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("close watcher", "err", err)
		}
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}

	if g.paused {
		g.pauseUI.Update()
		g.world.SetFrameDelta(0)
		g.frame.Update(g.world)
		g.drainEvents()
		return nil
	}

	g.world.SetFrameDelta(common.FixedDelta)
	g.input.Update(g.world)
	g.world.Clock().Advance(common.FixedDelta)
	g.fixed.Update(g.world)
	g.frame.Update(g.world)
	g.drainEvents()
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	g.world.Clock().SetPaused(paused)
	g.source.Reset()
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		// prime edges so the click that resumed is not read as an attack
		_, _ = g.source.Poll(g.world.Clock().Now())
	}
	g.log.Info("pause toggled", "paused", paused)
}

func (g *Game) drainEvents() {
	for _, ev := range g.world.Events().Drain() {
		switch ev.Type {
		case ecs.EventSpecRejected:
			g.log.Warn("spec change rejected", "entity", ev.Entity, "data", ev.Data)
		default:
			g.log.Debug("event", "type", ev.Type, "entity", ev.Entity, "data", ev.Data)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	v := sceneView(g.world, g.player)
	drawScene(screen, g.world, v, g.camera)
	if g.debug {
		drawSpace(screen, g.world.Physics().Space(), v)
		drawHUD(screen, g.world, g.player, g.camera)
	}
	if g.paused {
		drawPaused(screen)
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

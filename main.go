package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/logger"
	"github.com/milk9111/thirdperson/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "draw the debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "level.yaml", "level spec name in the prefab directory")
	script := flag.String("script", "", "drive the player from a tengo script instead of the keyboard")
	prefabDir := flag.String("prefabs", "prefabs", "directory checked for prefab overrides and watched for changes (empty disables)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logFormat := flag.String("log-format", "console", "console, text or json")
	flag.Parse()

	if err := logger.Init(logger.Config{Level: *logLevel, Format: *logFormat}); err != nil {
		log.Printf("logger: %v", err)
	}
	prefabs.SetDir(*prefabDir)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetTPS(common.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("thirdperson")

	game, err := NewGame(Options{
		Level:  *levelName,
		Script: *script,
		Debug:  *debug,
		Watch:  *prefabDir != "",
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	levelName := flag.String("level", "sandbox", "level name in levels/ (basename, .json optional)")
	scale := flag.Float64("scale", 3, "pixels per world unit")
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	game, err := NewGame(*levelName, *scale, *debug, logger.Named("viewer"))
	if err != nil {
		logger.Fatal("load level", zap.String("level", *levelName), zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("tilephysics")

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run game", zap.Error(err))
	}
}

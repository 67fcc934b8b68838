//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"immigration-ca/internal/app"
	"immigration-ca/internal/logging"
	_ "immigration-ca/pkg/sims/briansbrain"
	_ "immigration-ca/pkg/sims/immigration"
	_ "immigration-ca/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	configPath := flag.String("config", "", "YAML file with default settings; flags override it")
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			log.Fatal(err)
		}
		// Re-apply explicit flags on top of the file.
		if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
			log.Fatal(err)
		}
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "ca"})
	if err != nil {
		log.Fatal(err)
	}

	sim, err := app.BuildSim(cfg)
	if err != nil {
		log.Fatal(err)
	}
	size := sim.Size()
	logger.Info("starting", "sim", sim.Name(), "width", size.W, "height", size.H, "seed", cfg.Seed, "tps", cfg.TPS)

	game := app.New(sim, cfg, logger)

	ebiten.SetWindowTitle("Immigration game - " + sim.Name())
	ebiten.SetWindowSize(app.DefaultWindowWidth, app.DefaultWindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

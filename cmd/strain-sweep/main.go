// Command strain-sweep runs Immigration over a grid of seed densities and
// seeds and reports which strain ends up dominating.
package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/integrii/flaggy"

	"immigration-ca/internal/logging"
)

func main() {
	opts := sweepOptions{
		Width:   128,
		Height:  128,
		Steps:   500,
		Workers: runtime.NumCPU(),
	}
	logLevel := "info"

	flaggy.SetName("strain-sweep")
	flaggy.SetDescription("Sweep Immigration seed densities and report strain dominance")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&opts.Width, "x", "width", "grid width in cells")
	flaggy.Int(&opts.Height, "y", "height", "grid height in cells")
	flaggy.Int(&opts.Steps, "s", "steps", "maximum generations per scenario")
	flaggy.Int(&opts.Workers, "w", "workers", "scenarios run concurrently")
	flaggy.Float64Slice(&opts.Densities, "d", "density", "seed density to try (repeatable)")
	flaggy.Int64Slice(&opts.Seeds, "r", "seed", "RNG seed to try (repeatable)")
	flaggy.String(&logLevel, "l", "log-level", "debug, info, warn or error")
	flaggy.Parse()

	// flaggy appends to slice flags, so defaults apply only when none were given.
	if len(opts.Densities) == 0 {
		opts.Densities = []float64{0.1, 0.25, 0.4, 0.55}
	}
	if len(opts.Seeds) == 0 {
		opts.Seeds = []int64{1, 2, 3, 4, 5}
	}

	log, err := logging.New(logging.Config{Level: logLevel, Service: "strain-sweep"})
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	if err := opts.validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	scenarios := opts.scenarios()
	fmt.Printf("Sweeping %d scenarios (%d workers, up to %d steps on %dx%d)\n",
		len(scenarios), opts.Workers, opts.Steps, opts.Width, opts.Height)

	start := time.Now()
	results, err := sweep(opts, scenarios, log)
	if err != nil {
		log.Error("sweep failed", "error", err)
		os.Exit(1)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].scenario.density != results[j].scenario.density {
			return results[i].scenario.density < results[j].scenario.density
		}
		return results[i].scenario.seed < results[j].scenario.seed
	})
	for _, res := range results {
		fmt.Println(res)
	}

	wins := map[int]int{}
	for _, res := range results {
		wins[res.dominant]++
	}
	fmt.Printf("\nDominance (elapsed %s): strain1=%d strain2=%d strain3=%d none=%d\n",
		time.Since(start).Round(time.Millisecond), wins[1], wins[2], wins[3], wins[0])
}

// Command sim plays a CPU-versus-CPU match without a window and prints the
// result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/streetfighter/ai"
	"github.com/milk9111/streetfighter/logging"
	"github.com/milk9111/streetfighter/prefabs"
	"github.com/milk9111/streetfighter/system"
)

func main() {
	realtime := flag.Bool("realtime", false, "run on wall-clock tickers instead of as fast as possible")
	timeLimit := flag.Int("time", 0, "override the arena time limit in seconds")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	logFile := flag.String("log", "", "write logs to this file (rotated) instead of stderr")
	flag.Parse()

	logger, err := logging.New(logging.Config{Level: *logLevel, File: *logFile, Stderr: *logFile == ""})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	roster, err := prefabs.LoadRoster()
	if err != nil {
		logger.Fatal("load prefabs", zap.Error(err))
	}
	if *timeLimit > 0 {
		roster.Arena.TimeLimit = *timeLimit
	}

	loop, err := newCPULoop(roster, logger)
	if err != nil {
		logger.Fatal("build match", zap.Error(err))
	}

	if *realtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := system.NewRunner(loop, system.WithRunnerLogger(logger)).Run(ctx); err != nil {
			logger.Fatal("match interrupted", zap.Error(err))
		}
	} else {
		simulate(loop)
	}

	res, _ := loop.Result()
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(res)
		return
	}
	elapsed := time.Duration(res.Frame) * time.Second / time.Duration(loop.Match.Arena.TicksPerSecond)
	fmt.Printf("%s by %s after %d frames (%s): %s %d - %s %d\n",
		res.Outcome, res.Reason, res.Frame, elapsed,
		loop.Match.Player().Name, res.PlayerHealth, loop.Match.Enemy().Name, res.EnemyHealth)
}

func newCPULoop(roster *prefabs.Roster, logger *zap.Logger) (*system.MatchLoop, error) {
	m, err := roster.NewMatch()
	if err != nil {
		return nil, err
	}
	opts := []system.Option{system.WithLogger(logger)}
	for _, side := range system.Sides {
		name := roster.Fighters[side].Script
		src, err := roster.Script(side)
		if err != nil {
			return nil, err
		}
		if src == nil {
			name = "cpu"
			if src, err = prefabs.LoadScript(name); err != nil {
				return nil, err
			}
		}
		ctrl, err := ai.NewScriptController(name, src, ai.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		opts = append(opts, system.WithController(side, ctrl))
	}
	return system.NewMatchLoop(m, opts...), nil
}

// simulate drives the loop on a virtual clock: one second step after every
// TicksPerSecond frames.
func simulate(loop *system.MatchLoop) {
	tps := loop.Match.Arena.TicksPerSecond
	if tps <= 0 {
		tps = 60
	}
	for frame := 1; !loop.Over(); frame++ {
		loop.Step()
		if frame%tps == 0 {
			loop.StepSecond()
		}
	}
}

package main

import (
	"testing"

	"github.com/milk9111/streetfighter/logging"
	"github.com/milk9111/streetfighter/prefabs"
	"github.com/milk9111/streetfighter/system"
)

func TestSimulateFinishes(t *testing.T) {
	roster, err := prefabs.LoadRoster()
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	roster.Arena.TimeLimit = 5

	loop, err := newCPULoop(roster, logging.Nop())
	if err != nil {
		t.Fatalf("new loop: %v", err)
	}
	simulate(loop)

	res, ok := loop.Result()
	if !ok || res.Outcome == system.OutcomeOngoing {
		t.Fatalf("expected a decided result, got %+v", res)
	}
	if res.Reason == system.ReasonTimeUp && res.Frame != 5*60 {
		t.Fatalf("time up should land on frame %d, got %d", 5*60, res.Frame)
	}
}

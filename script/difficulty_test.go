package script

import "testing"

func TestEmbeddedScriptBaseline(t *testing.T) {
	e, err := LoadEvaluator()
	if err != nil {
		t.Fatalf("load evaluator: %v", err)
	}
	d, err := e.ForWave(1)
	if err != nil {
		t.Fatalf("wave 1: %v", err)
	}
	if d.SpeedScale != 1.0 {
		t.Fatalf("expected wave 1 speed scale 1.0, got %v", d.SpeedScale)
	}
	if d.FireInterval != 1.8 {
		t.Fatalf("expected wave 1 fire interval 1.8, got %v", d.FireInterval)
	}
	if d.DiveChance != 0.02 {
		t.Fatalf("expected wave 1 dive chance 0.02, got %v", d.DiveChance)
	}
}

func TestDifficultyRampsWithWaves(t *testing.T) {
	e, err := LoadEvaluator()
	if err != nil {
		t.Fatalf("load evaluator: %v", err)
	}

	prev, err := e.ForWave(1)
	if err != nil {
		t.Fatalf("wave 1: %v", err)
	}
	for wave := 2; wave <= 8; wave++ {
		d, err := e.ForWave(wave)
		if err != nil {
			t.Fatalf("wave %d: %v", wave, err)
		}
		if d.SpeedScale <= prev.SpeedScale {
			t.Fatalf("wave %d: speed scale did not increase (%v -> %v)", wave, prev.SpeedScale, d.SpeedScale)
		}
		if d.FireInterval >= prev.FireInterval {
			t.Fatalf("wave %d: fire interval did not shrink (%v -> %v)", wave, prev.FireInterval, d.FireInterval)
		}
		if d.DiveChance <= prev.DiveChance {
			t.Fatalf("wave %d: dive chance did not increase (%v -> %v)", wave, prev.DiveChance, d.DiveChance)
		}
		prev = d
	}
}

func TestBrokenScriptFailsCompile(t *testing.T) {
	if _, err := NewEvaluator([]byte(`speed_scale := (`)); err == nil {
		t.Fatalf("expected compile error")
	}
}

package engine_test

import (
	"errors"
	"testing"

	"nutricalc/internal/engine"
)

func TestComputeGEA(t *testing.T) {
	tests := []struct {
		level engine.ActivityLevel
		want  int
	}{
		{engine.Sedentary, 1200},
		{engine.Light, 1375},
		{engine.Moderate, 1550},
		{engine.Intense, 1725},
		{engine.VeryIntense, 1900},
	}
	for _, tc := range tests {
		t.Run(string(tc.level), func(t *testing.T) {
			got, err := engine.ComputeGEA(1000, tc.level)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ComputeGEA(1000, %q) = %d; want %d", tc.level, got, tc.want)
			}
		})
	}
}

func TestComputeGEA_Rounds(t *testing.T) {
	got, err := engine.ComputeGEA(1696, engine.Moderate)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2629 {
		t.Errorf("got %d; want 2629", got)
	}
}

func TestComputeGEA_UnknownLevel(t *testing.T) {
	_, err := engine.ComputeGEA(1500, "couch")
	var cfgErr *engine.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestComputeGET_Additive(t *testing.T) {
	tests := []struct {
		name      string
		gea, bmr  int
		objective engine.Objective
		wantGET   int
		wantAdj   int
		wantFloor bool
	}{
		{"maintain", 2629, 1696, engine.Maintain, 2629, 0, false},
		{"lose above floor", 2629, 1696, engine.Lose, 2129, -500, false},
		{"gain", 2629, 1696, engine.Gain, 3029, 400, false},
		{"lose clamped to 1200", 1112, 927, engine.Lose, 1200, 88, true},
		{"lose clamped to bmr", 2000, 1600, engine.Lose, 1600, -400, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.ComputeGET(tc.gea, tc.objective, tc.bmr, engine.Additive)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.GETKcal != tc.wantGET {
				t.Errorf("GET = %d; want %d", got.GETKcal, tc.wantGET)
			}
			if got.AdjustmentKcal != tc.wantAdj {
				t.Errorf("adjustment = %d; want %d", got.AdjustmentKcal, tc.wantAdj)
			}
			if got.FloorApplied != tc.wantFloor {
				t.Errorf("floorApplied = %v; want %v", got.FloorApplied, tc.wantFloor)
			}
			if got.GEAKcal != tc.gea {
				t.Errorf("GEA = %d; want %d", got.GEAKcal, tc.gea)
			}
		})
	}
}

func TestComputeGET_Multiplicative(t *testing.T) {
	tests := []struct {
		objective engine.Objective
		want      int
	}{
		{engine.Maintain, 2629},
		{engine.Lose, 2103},
		{engine.Gain, 3023},
	}
	for _, tc := range tests {
		t.Run(string(tc.objective), func(t *testing.T) {
			got, err := engine.ComputeGET(2629, tc.objective, 1696, engine.Multiplicative)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.GETKcal != tc.want {
				t.Errorf("GET = %d; want %d", got.GETKcal, tc.want)
			}
			if got.FloorApplied {
				t.Error("multiplicative model never applies the floor")
			}
		})
	}
}

func TestComputeGET_ConfigurationErrors(t *testing.T) {
	var cfgErr *engine.ConfigurationError
	if _, err := engine.ComputeGET(2000, "bulk", 1500, engine.Additive); !errors.As(err, &cfgErr) {
		t.Errorf("unknown objective: expected ConfigurationError, got %v", err)
	}
	if _, err := engine.ComputeGET(2000, engine.Lose, 1500, "magic"); !errors.As(err, &cfgErr) {
		t.Errorf("unknown model: expected ConfigurationError, got %v", err)
	}
}

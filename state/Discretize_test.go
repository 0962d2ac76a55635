package state

import (
	"math"
	"testing"

	"github.com/samuelfneumann/flappyq/game"
)

// baseObservation returns an observation with the bird in the centre of
// a gap spanning [100, 200], falling at zero velocity, with the next pipe
// at medium distance and the following pipe level with it.
func baseObservation() game.Observation {
	return game.Observation{
		PlayerY:             150,
		PlayerVel:           0,
		NextPipeDist:        50,
		NextPipeTopY:        100,
		NextPipeBottomY:     200,
		NextNextPipeDist:    150,
		NextNextPipeTopY:    100,
		NextNextPipeBottomY: 200,
	}
}

func TestDiscretizeBase(t *testing.T) {
	// ratio = 50 / 100 = 0.5 -> medium
	want := Code{0, 2, 1, ZoneCentre, DistanceMedium}
	if got := Discretize(baseObservation()); got != want {
		t.Errorf("discretize: expected %v, got %v", want, got)
	}
}

func TestDiscretizeDeterministic(t *testing.T) {
	obs := baseObservation()
	for i := 0; i < 100; i++ {
		obs.PlayerY = float64(i * 3)
		obs.PlayerVel = float64(i%21) - 10
		first, second := Discretize(obs), Discretize(obs)
		if first != second {
			t.Errorf("discretize: non-deterministic codes %v and %v for %v",
				first, second, obs)
		}
	}
}

func TestPlayerPosAndZone(t *testing.T) {
	tests := []struct {
		y        float64
		pos      int
		zone     int
		describe string
	}{
		{150, 0, ZoneCentre, "at centre"},
		{170, 1, ZoneCentre, "just below centre"},
		{181, 1, ZoneAboveCentre, "past lower threshold"},
		{119, 0, ZoneBelowCentre, "past upper threshold"},
		{120, 0, ZoneCentre, "on the threshold"},
	}

	for _, test := range tests {
		obs := baseObservation()
		obs.PlayerY = test.y
		code := Discretize(obs)
		if code[PlayerPos] != test.pos {
			t.Errorf("%v: expected player pos %v, got %v", test.describe,
				test.pos, code[PlayerPos])
		}
		if code[RelativeZone] != test.zone {
			t.Errorf("%v: expected zone %v, got %v", test.describe,
				test.zone, code[RelativeZone])
		}
	}
}

func TestDistanceZone(t *testing.T) {
	tests := []struct {
		dist, nextDist float64
		want           int
	}{
		{10, 110, DistanceNear},   // 0.1
		{33, 133, DistanceNear},   // 0.33
		{40, 140, DistanceMedium}, // 0.4
		{66, 166, DistanceMedium}, // 0.66
		{80, 180, DistanceFar},    // 0.8
		{-20, 80, DistanceNear},   // negative
	}

	for _, test := range tests {
		obs := baseObservation()
		obs.NextPipeDist = test.dist
		obs.NextNextPipeDist = test.nextDist
		if got := Discretize(obs)[DistanceZone]; got != test.want {
			t.Errorf("distance zone(%v, %v): expected %v, got %v",
				test.dist, test.nextDist, test.want, got)
		}
	}
}

func TestDistanceZoneEqualDistances(t *testing.T) {
	for _, dist := range []float64{0, 50, -50} {
		obs := baseObservation()
		obs.NextPipeDist = dist
		obs.NextNextPipeDist = dist
		if got := Discretize(obs)[DistanceZone]; got != DistanceFar {
			t.Errorf("equal distances %v: expected sentinel zone %v, got %v",
				dist, DistanceFar, got)
		}
	}
}

func TestZeroGap(t *testing.T) {
	tests := []struct {
		y    float64
		want int
	}{
		{150, ZoneCentre},
		{151, ZoneAboveCentre},
		{149, ZoneBelowCentre},
	}

	for _, test := range tests {
		obs := baseObservation()
		obs.NextPipeTopY = 150
		obs.NextPipeBottomY = 150
		obs.PlayerY = test.y
		if got := Discretize(obs)[RelativeZone]; got != test.want {
			t.Errorf("zero gap y=%v: expected zone %v, got %v", test.y,
				test.want, got)
		}
	}
}

func TestTerrainTrend(t *testing.T) {
	tests := []struct {
		nextTop float64
		want    int
	}{
		{100, 1}, // level
		{140, 1}, // down
		{60, 0},  // up
	}

	for _, test := range tests {
		obs := baseObservation()
		obs.NextNextPipeTopY = test.nextTop
		if got := Discretize(obs)[TerrainTrend]; got != test.want {
			t.Errorf("trend to %v: expected %v, got %v", test.nextTop,
				test.want, got)
		}
	}
}

func TestVelocityBin(t *testing.T) {
	tests := []struct {
		vel  float64
		want int
	}{
		{-10, 0},
		{-5.01, 0},
		{-5, 1},
		{0, 2},
		{4.99, 2},
		{5, 3},
		{10, 3},
		{-100, 0},
		{100, 3},
		{math.Inf(1), 3},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}

	for _, test := range tests {
		obs := baseObservation()
		obs.PlayerVel = test.vel
		if got := Discretize(obs)[VelocityBin]; got != test.want {
			t.Errorf("velocity %v: expected bin %v, got %v", test.vel,
				test.want, got)
		}
	}
}

func TestDiscretizeAlwaysValid(t *testing.T) {
	weird := []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -1e12, 1e12}
	for _, a := range weird {
		for _, b := range weird {
			obs := game.Observation{
				PlayerY:             a,
				PlayerVel:           b,
				NextPipeDist:        a,
				NextPipeTopY:        b,
				NextPipeBottomY:     a,
				NextNextPipeDist:    b,
				NextNextPipeTopY:    a,
				NextNextPipeBottomY: b,
			}
			if code := Discretize(obs); !code.Valid() {
				t.Errorf("discretize(%v): invalid code %v", obs, code)
			}
		}
	}
}

func TestCodeLess(t *testing.T) {
	a := Code{0, 1, 0, 2, 2}
	b := Code{0, 1, 1, 0, 0}
	if !a.Less(b) || b.Less(a) || a.Less(a) {
		t.Errorf("less: wrong ordering of %v and %v", a, b)
	}
}

func TestAllCodes(t *testing.T) {
	codes := AllCodes()
	if len(codes) != NumCodes() {
		t.Fatalf("allCodes: expected %v codes, got %v", NumCodes(), len(codes))
	}
	for i, c := range codes {
		if !c.Valid() {
			t.Errorf("allCodes: invalid code %v", c)
		}
		if i > 0 && !codes[i-1].Less(c) {
			t.Errorf("allCodes: %v not before %v", codes[i-1], c)
		}
	}
}

func BenchmarkDiscretize(b *testing.B) {
	obs := baseObservation()
	for i := 0; i < b.N; i++ {
		Discretize(obs)
	}
}

package state

import (
	"math"

	"github.com/samuelfneumann/flappyq/game"
	"github.com/samuelfneumann/flappyq/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r1"
)

// Zones of the bird relative to the centre of the next gap
const (
	ZoneBelowCentre = 0
	ZoneCentre      = 1
	ZoneAboveCentre = 2
)

// Zones of the distance to the next pipe
const (
	DistanceNear   = 0
	DistanceMedium = 1
	DistanceFar    = 2
)

const (
	// RelativeThreshold bounds the centre zone as a fraction of the gap
	// height on either side of the gap centre
	RelativeThreshold = 0.3

	// Thresholds on the normalized distance to the next pipe
	NearThreshold = 0.33
	FarThreshold  = 0.66

	velocityBins = 4
)

// VelocityRange is the range of vertical velocities of the bird
var VelocityRange = r1.Interval{Min: -10, Max: 10}

// Discretize maps an Observation to its Code. Discretize is a pure
// function: it has no side effects and the same Observation always
// yields the same Code. Out of range inputs never cause a panic, every
// feature is clamped to its range.
func Discretize(obs game.Observation) Code {
	centre := (obs.NextPipeTopY + obs.NextPipeBottomY) / 2
	gap := obs.NextPipeBottomY - obs.NextPipeTopY

	var code Code
	code[PlayerPos] = playerPos(obs.PlayerY, centre)
	code[VelocityBin] = velocityBin(obs.PlayerVel)
	code[TerrainTrend] = terrainTrend(obs.NextPipeTopY, obs.NextNextPipeTopY)
	code[RelativeZone] = relativeZone(obs.PlayerY, centre, gap)
	code[DistanceZone] = distanceZone(obs.NextPipeDist, obs.NextNextPipeDist)

	return code
}

// playerPos returns 1 if the bird is below the gap centre
func playerPos(y, centre float64) int {
	if y > centre {
		return 1
	}
	return 0
}

// relativeZone classifies the bird's offset from the gap centre,
// normalized by the gap height. A gap of zero height cannot be used to
// normalize, so the side of the centre the bird is on decides the zone.
func relativeZone(y, centre, gap float64) int {
	if gap == 0 {
		switch floatutils.Sign(y - centre) {
		case 1:
			return ZoneAboveCentre
		case -1:
			return ZoneBelowCentre
		default:
			return ZoneCentre
		}
	}

	relative := (y - centre) / gap
	if relative > RelativeThreshold {
		return ZoneAboveCentre
	} else if relative < -RelativeThreshold {
		return ZoneBelowCentre
	}
	return ZoneCentre
}

// distanceZone classifies the distance to the next pipe normalized by
// the spacing between the next two pipes. Pipes at equal distance give
// no spacing to normalize by and are treated as far away.
func distanceZone(pipeDist, nextPipeDist float64) int {
	spacing := nextPipeDist - pipeDist
	if spacing == 0 {
		return DistanceFar
	}

	ratio := pipeDist / spacing
	if ratio > FarThreshold {
		return DistanceFar
	} else if ratio > NearThreshold {
		return DistanceMedium
	}
	return DistanceNear
}

// terrainTrend returns 1 if the pipes trend down or stay level and 0 if
// they trend up
func terrainTrend(topY, nextTopY float64) int {
	if nextTopY-topY >= 0 {
		return 1
	}
	return 0
}

// velocityBin bins the vertical velocity of the bird into one of four
// equally sized bins over VelocityRange
func velocityBin(vel float64) int {
	norm := floatutils.Normalize(vel, VelocityRange)
	scaled := floatutils.Clip(norm*velocityBins, 0, velocityBins-1)
	return int(math.Floor(scaled))
}

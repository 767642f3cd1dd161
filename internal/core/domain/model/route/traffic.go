package route

import (
	"fmt"
	"math"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// TrafficLevel is a coarse classification of road congestion.
type TrafficLevel int

const (
	TrafficLevelUnknown TrafficLevel = iota
	TrafficLevelLight
	TrafficLevelNormal
	TrafficLevelHeavy
	TrafficLevelSevere
)

type trafficLevelInfo struct {
	name        string
	description string
	speedFactor float64
}

var trafficLevels = map[TrafficLevel]trafficLevelInfo{
	TrafficLevelLight:  {"LIGHT", "Light traffic - roads are clear", 1.2},
	TrafficLevelNormal: {"NORMAL", "Normal traffic conditions", 1.0},
	TrafficLevelHeavy:  {"HEAVY", "Heavy traffic - expect delays", 0.6},
	TrafficLevelSevere: {"SEVERE", "Severe traffic - major delays expected", 0.3},
}

func ParseTrafficLevel(s string) (TrafficLevel, error) {
	for level, info := range trafficLevels {
		if info.name == s {
			return level, nil
		}
	}
	return TrafficLevelUnknown, errs.NewValueIsInvalidErrorWithCause("trafficLevel",
		fmt.Errorf("%q is not a traffic level", s))
}

func (l TrafficLevel) Validate() error {
	if _, ok := trafficLevels[l]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("trafficLevel",
			fmt.Errorf("%d is not a valid traffic level", l))
	}
	return nil
}

func (l TrafficLevel) String() string {
	if info, ok := trafficLevels[l]; ok {
		return info.name
	}
	return "UNKNOWN"
}

func (l TrafficLevel) Description() string {
	return trafficLevels[l].description
}

// TypicalSpeedFactor is the speed multiplier usually observed at this level.
func (l TrafficLevel) TypicalSpeedFactor() float64 {
	return trafficLevels[l].speedFactor
}

func (l TrafficLevel) CausesDelays() bool {
	return l == TrafficLevelHeavy || l == TrafficLevelSevere
}

// Worse returns the next more congested level; SEVERE stays SEVERE.
func (l TrafficLevel) Worse() TrafficLevel {
	if l >= TrafficLevelLight && l < TrafficLevelSevere {
		return l + 1
	}
	return l
}

// Better returns the next less congested level; LIGHT stays LIGHT.
func (l TrafficLevel) Better() TrafficLevel {
	if l > TrafficLevelLight && l <= TrafficLevelSevere {
		return l - 1
	}
	return l
}

const (
	MinSpeedFactor = 0.1
	MaxSpeedFactor = 2.0
)

var ErrTrafficConditionsIsNotConstructed = errs.NewValueIsRequiredError(
	"traffic conditions must be created via NewTrafficConditions")

// TrafficConditions is an observation of traffic at a point in time. A speed
// factor below 1 slows travel down, above 1 speeds it up.
type TrafficConditions struct {
	level       TrafficLevel
	speedFactor float64
	observedAt  time.Time
	guard       guard.ConstructorGuard
}

func NewTrafficConditions(level TrafficLevel, speedFactor float64, observedAt time.Time) (TrafficConditions, error) {
	if err := level.Validate(); err != nil {
		return TrafficConditions{}, err
	}
	if math.IsNaN(speedFactor) || speedFactor < MinSpeedFactor || speedFactor > MaxSpeedFactor {
		return TrafficConditions{}, errs.NewValueIsOutOfRangeError("speedFactor", speedFactor, MinSpeedFactor, MaxSpeedFactor)
	}

	return TrafficConditions{
		level:       level,
		speedFactor: speedFactor,
		observedAt:  observedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// TypicalTrafficConditions uses the level's typical speed factor.
func TypicalTrafficConditions(level TrafficLevel, observedAt time.Time) (TrafficConditions, error) {
	return NewTrafficConditions(level, level.TypicalSpeedFactor(), observedAt)
}

func (c TrafficConditions) Validate() error {
	return c.guard.Validate(ErrTrafficConditionsIsNotConstructed)
}

func (c TrafficConditions) Level() TrafficLevel {
	return c.level
}

func (c TrafficConditions) SpeedFactor() float64 {
	return c.speedFactor
}

func (c TrafficConditions) ObservedAt() time.Time {
	return c.observedAt
}

// AdjustDuration scales a travel time by the inverse of the speed factor
// (rounded to two decimals). The result is in whole minutes.
func (c TrafficConditions) AdjustDuration(base time.Duration) time.Duration {
	minutes := math.Round(math.Floor(base.Minutes()) * c.inverseFactor())
	return time.Duration(minutes) * time.Minute
}

func (c TrafficConditions) IsFavorable() bool {
	return c.speedFactor > 1
}

func (c TrafficConditions) IsAdverse() bool {
	return c.speedFactor < 1
}

// TimeImpactPercentage is how much longer (positive) or shorter (negative)
// trips take, in percent.
func (c TrafficConditions) TimeImpactPercentage() int {
	return int(math.Round((c.inverseFactor()-1)*10000) / 100)
}

func (c TrafficConditions) String() string {
	return fmt.Sprintf("TrafficConditions(%s, factor=%.2f, impact=%+d%%)",
		c.level, c.speedFactor, c.TimeImpactPercentage())
}

func (c TrafficConditions) inverseFactor() float64 {
	return math.Round(100/c.speedFactor) / 100
}

package services

import (
	"github.com/LovationAdmin/stress-api/models"

	"github.com/shopspring/decimal"
)

// ============================================================================
// THRESHOLD CLASSIFIER
// Fixed, non-overlapping thresholds. Pure functions, no side effects.
// ============================================================================

// Direction tells whether larger values mean more stress.
type Direction int

const (
	// HigherIsWorse: high if value > High, medium if value > Medium.
	HigherIsWorse Direction = iota
	// LowerIsWorse: high if value < High, medium if value < Medium.
	LowerIsWorse
)

// Threshold is one metric's ladder. Comparisons are strict.
type Threshold struct {
	Metric    string
	High      float64
	Medium    float64
	Direction Direction
}

var (
	HeartRateThreshold = Threshold{Metric: "heart_rate", High: 100, Medium: 80, Direction: HigherIsWorse}
	SleepThreshold     = Threshold{Metric: "sleep_hours", High: 6, Medium: 7, Direction: LowerIsWorse}
	SystolicThreshold  = Threshold{Metric: "systolic", High: 140, Medium: 120, Direction: HigherIsWorse}
)

// Net cash flow ladder. Polarity is inverted: more money in means less stress.
var (
	cashFlowLow    = decimal.NewFromInt(1000)
	cashFlowMedium = decimal.NewFromInt(500)
)

// Classify maps a single value onto the ladder.
func (t Threshold) Classify(value float64) models.StressLabel {
	if t.Direction == LowerIsWorse {
		switch {
		case value < t.High:
			return models.StressHigh
		case value < t.Medium:
			return models.StressMedium
		default:
			return models.StressLow
		}
	}

	switch {
	case value > t.High:
		return models.StressHigh
	case value > t.Medium:
		return models.StressMedium
	default:
		return models.StressLow
	}
}

// ClassifyMean averages the samples and classifies the mean.
func (t Threshold) ClassifyMean(samples []float64) (models.StressLabel, error) {
	avg, err := mean(samples)
	if err != nil {
		return "", err
	}
	return t.Classify(avg), nil
}

// ClassifyHealthWindow classifies heart rate, sleep and systolic pressure
// from the mean of their samples. Diastolic values are ignored.
func ClassifyHealthWindow(w models.HealthWindow) (models.HealthStressLevels, error) {
	var levels models.HealthStressLevels
	var err error

	if levels.HeartRateStress, err = HeartRateThreshold.ClassifyMean(w.HeartRate); err != nil {
		return models.HealthStressLevels{}, err
	}
	if levels.SleepStress, err = SleepThreshold.ClassifyMean(w.SleepHours); err != nil {
		return models.HealthStressLevels{}, err
	}
	if levels.BloodPressureStress, err = SystolicThreshold.ClassifyMean(w.Systolic); err != nil {
		return models.HealthStressLevels{}, err
	}
	return levels, nil
}

// ClassifyTransaction applies the net cash flow rule to one transaction.
func ClassifyTransaction(tx models.Transaction) models.StressLabel {
	net := tx.NetCashFlow()
	switch {
	case net.GreaterThan(cashFlowLow):
		return models.StressLow
	case net.GreaterThan(cashFlowMedium):
		return models.StressMedium
	default:
		return models.StressHigh
	}
}

func mean(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrEmptyWindow
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples)), nil
}

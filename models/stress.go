package models

// StressLabel is an ordinal stress classification.
type StressLabel string

const (
	StressLow    StressLabel = "low"
	StressMedium StressLabel = "medium"
	StressHigh   StressLabel = "high"

	// StressUnknown is only produced by the narrative path.
	StressUnknown StressLabel = "unknown"
)

// HealthStressLevels is the per-metric classification of a health window.
type HealthStressLevels struct {
	HeartRateStress     StressLabel `json:"heart_rate_stress"`
	SleepStress         StressLabel `json:"sleep_stress"`
	BloodPressureStress StressLabel `json:"blood_pressure_stress"`
}

type DailyStressResult struct {
	Date         string             `json:"date"`
	StressLevels HealthStressLevels `json:"stress_levels"`
}

type DailyFinancialStressResult struct {
	Date            string      `json:"date"`
	FinancialStress StressLabel `json:"financial_stress"`
}

// StressAnalysis is the combined financial + physiological assessment.
// RequestID matches the X-Request-ID header of the response.
type StressAnalysis struct {
	RequestID       string             `json:"request_id"`
	FinancialStress StressLabel        `json:"financial_stress"`
	MentalStress    HealthStressLevels `json:"mental_stress"`
}

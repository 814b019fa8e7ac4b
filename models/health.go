package models

// DailyHealthEntry is one element of the health service "dailyData" array.
type DailyHealthEntry struct {
	Date              string  `json:"date"`
	HeartRate         float64 `json:"heartRate"`
	SleepHours        float64 `json:"sleepHours"`
	SystolicPressure  float64 `json:"systolicPressure"`
	DiastolicPressure float64 `json:"diastolicPressure"`
}

// HealthMetricsSeries stores daily samples as parallel slices.
// All slices have the same length and index i refers to the same day.
type HealthMetricsSeries struct {
	Date       []string  `json:"date"`
	HeartRate  []float64 `json:"heart_rate"`
	SleepHours []float64 `json:"sleep_hours"`
	Systolic   []float64 `json:"systolic"`
	Diastolic  []float64 `json:"diastolic"`
}

// NewHealthMetricsSeries builds a series from service entries, keeping their order.
func NewHealthMetricsSeries(entries []DailyHealthEntry) HealthMetricsSeries {
	s := HealthMetricsSeries{
		Date:       make([]string, 0, len(entries)),
		HeartRate:  make([]float64, 0, len(entries)),
		SleepHours: make([]float64, 0, len(entries)),
		Systolic:   make([]float64, 0, len(entries)),
		Diastolic:  make([]float64, 0, len(entries)),
	}
	for _, e := range entries {
		s.Date = append(s.Date, e.Date)
		s.HeartRate = append(s.HeartRate, e.HeartRate)
		s.SleepHours = append(s.SleepHours, e.SleepHours)
		s.Systolic = append(s.Systolic, e.SystolicPressure)
		s.Diastolic = append(s.Diastolic, e.DiastolicPressure)
	}
	return s
}

func (s HealthMetricsSeries) Len() int {
	return len(s.HeartRate)
}

// Window returns every sample of the series as one health window.
func (s HealthMetricsSeries) Window() HealthWindow {
	return HealthWindow{
		HeartRate:  s.HeartRate,
		SleepHours: s.SleepHours,
		Systolic:   s.Systolic,
		Diastolic:  s.Diastolic,
	}
}

// Day returns a single-sample window for day i.
func (s HealthMetricsSeries) Day(i int) HealthWindow {
	w := HealthWindow{
		HeartRate:  []float64{s.HeartRate[i]},
		SleepHours: []float64{s.SleepHours[i]},
		Systolic:   []float64{s.Systolic[i]},
	}
	if i < len(s.Diastolic) {
		w.Diastolic = []float64{s.Diastolic[i]}
	}
	return w
}

// HealthWindow is the set of samples averaged before thresholding.
// Diastolic is accepted for compatibility and never read by the classifier.
type HealthWindow struct {
	HeartRate  []float64 `json:"heart_rate"`
	SleepHours []float64 `json:"sleep_hours"`
	Systolic   []float64 `json:"systolic"`
	Diastolic  []float64 `json:"diastolic,omitempty"`
}

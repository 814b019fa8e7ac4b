package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/LovationAdmin/stress-api/models"
	"github.com/LovationAdmin/stress-api/utils"
)

const healthServiceName = "health service"

// HealthLoader fetches the daily health samples of a user.
type HealthLoader interface {
	LoadHealthMetrics(ctx context.Context, userID int) (models.HealthMetricsSeries, error)
}

// HealthClient talks to the wearable health-data service.
type HealthClient struct {
	BaseURL string
	Client  *http.Client
}

func NewHealthClient(baseURL string, timeout time.Duration) *HealthClient {
	return &HealthClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type healthResponse struct {
	DailyData []healthEntry `json:"dailyData"`
}

// healthEntry keeps pointers so absent and null values can be told apart
// from a real zero.
type healthEntry struct {
	Date              string   `json:"date"`
	HeartRate         *float64 `json:"heartRate"`
	SleepHours        *float64 `json:"sleepHours"`
	SystolicPressure  *float64 `json:"systolicPressure"`
	DiastolicPressure *float64 `json:"diastolicPressure"`
}

// toDailyEntries rejects entries lacking a classified metric. Diastolic is
// optional and defaults to zero.
func toDailyEntries(raw []healthEntry) ([]models.DailyHealthEntry, error) {
	entries := make([]models.DailyHealthEntry, 0, len(raw))
	for i, e := range raw {
		switch {
		case e.HeartRate == nil:
			return nil, fmt.Errorf("dailyData[%d] missing heartRate", i)
		case e.SleepHours == nil:
			return nil, fmt.Errorf("dailyData[%d] missing sleepHours", i)
		case e.SystolicPressure == nil:
			return nil, fmt.Errorf("dailyData[%d] missing systolicPressure", i)
		}

		entry := models.DailyHealthEntry{
			Date:             e.Date,
			HeartRate:        *e.HeartRate,
			SleepHours:       *e.SleepHours,
			SystolicPressure: *e.SystolicPressure,
		}
		if e.DiastolicPressure != nil {
			entry.DiastolicPressure = *e.DiastolicPressure
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadHealthMetrics issues GET {base}/api/health?userId={id}. A response
// without dailyData yields an empty series.
func (c *HealthClient) LoadHealthMetrics(ctx context.Context, userID int) (models.HealthMetricsSeries, error) {
	endpoint := c.BaseURL + "/api/health?" + url.Values{"userId": {strconv.Itoa(userID)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.HealthMetricsSeries{}, fmt.Errorf("create health request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return models.HealthMetricsSeries{}, &UpstreamError{Service: healthServiceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.HealthMetricsSeries{}, &UpstreamError{
			Service:    healthServiceName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", string(body)),
		}
	}

	var data healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.HealthMetricsSeries{}, &UpstreamError{
			Service:    healthServiceName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}

	entries, err := toDailyEntries(data.DailyData)
	if err != nil {
		return models.HealthMetricsSeries{}, &UpstreamError{
			Service:    healthServiceName,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	utils.Log().Debug().
		Int("user_id", userID).
		Int("days", len(entries)).
		Msg("[Health] metrics loaded")

	return models.NewHealthMetricsSeries(entries), nil
}

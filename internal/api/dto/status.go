package dto

import "fmt"

// DriverResultResponse is the wire form of one driver's run outcome.
// Duration and distance are pre-formatted display strings; the
// dashboard renders them as-is.
type DriverResultResponse struct {
	Status         string   `json:"status"`
	Stores         []string `json:"stores,omitempty"`
	StoreCount     int      `json:"store_count,omitempty"`
	URLs           []string `json:"urls,omitempty"`
	Duration       string   `json:"duration,omitempty"`
	Distance       string   `json:"distance,omitempty"`
	Unmatched      []string `json:"unmatched,omitempty"`
	UnmatchedCount int      `json:"unmatched_count,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// FormatDuration renders minutes the way the dashboard shows them.
func FormatDuration(minutes int) string { return fmt.Sprintf("%d min", minutes) }

// FormatDistance renders kilometers with one decimal.
func FormatDistance(km float64) string { return fmt.Sprintf("%.1f km", km) }

type StatusResponse struct {
	Results        map[string]DriverResultResponse `json:"results"`
	GeneratedAt    string                          `json:"generated_at,omitempty"`
	ScheduleHour   int                             `json:"schedule_hour"`
	ScheduleMinute int                             `json:"schedule_minute"`
	Running        bool                            `json:"running"`
	Drivers        []string                        `json:"drivers"`
	Phones         map[string]string               `json:"phones"`
}

type GenerateResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type ScheduleRequest struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type ScheduleResponse struct {
	OK     bool `json:"ok"`
	Hour   int  `json:"hour"`
	Minute int  `json:"minute"`
}

type PhonesResponse struct {
	OK     bool              `json:"ok"`
	Phones map[string]string `json:"phones"`
}

// ItineraryResponse is one driver's shareable itinerary.
type ItineraryResponse struct {
	Driver      string               `json:"driver"`
	GeneratedAt string               `json:"generated_at,omitempty"`
	Result      DriverResultResponse `json:"result"`
}

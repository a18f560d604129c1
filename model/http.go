package model

type RenderRequestBody struct {
	Progression string  `json:"progression"`
	Instrument  string  `json:"instrument"`
	Tempo       float64 `json:"tempo"`
	Transpose   int     `json:"transpose"`
	// NOTE: skipped tokens are reported back in EventsResponse.Skipped
	SkipInvalid bool `json:"skip_invalid"`
}

type EventsResponse struct {
	TicksPerQuarter uint16   `json:"ticks_per_quarter"`
	Tracks          []Track  `json:"tracks"`
	Skipped         []string `json:"skipped,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

package models

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	Version       string `json:"version"`
	RenderEnabled bool   `json:"renderEnabled"`
}

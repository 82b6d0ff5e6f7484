package models

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// HealthResponse model for the health check
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

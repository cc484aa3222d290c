package response

type APIError struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type HealthCheck struct {
	Status string `json:"status"`
}

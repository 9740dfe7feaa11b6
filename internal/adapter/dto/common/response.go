package common

// ListResponse wraps a list with its item count
type ListResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

// HealthResponse reports the state of the service and its backing stores
type HealthResponse struct {
	Status      string            `json:"status"`
	Environment string            `json:"environment"`
	Components  map[string]string `json:"components,omitempty"`
}

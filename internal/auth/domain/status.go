package domain

// BackendStatus is reported by the health endpoint.
type BackendStatus struct {
	Distributed string `json:"distributed"`
	Local       string `json:"local"`
}

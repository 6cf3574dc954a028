package models

// DependencyStatus reports whether an external binary is available.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status       string             `json:"status"`
	Version      string             `json:"version"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// Healthy reports whether every required dependency is available.
func (h HealthResponse) Healthy() bool {
	for _, dep := range h.Dependencies {
		if !dep.Optional && !dep.Available {
			return false
		}
	}
	return true
}

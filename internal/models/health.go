package models

// HealthStatus is the snapshot served by GET /healthcheck. Values are
// binary: 1 healthy, 0 unhealthy.
type HealthStatus struct {
	Status            int               `json:"status"`
	DependentServices DependentServices `json:"dependent_services"`
}

type DependentServices struct {
	CommentDB int `json:"commentdb"`
}

package dto

// TriggerResult is the per-user outcome of one trigger run
type TriggerResult struct {
	UserID    string `json:"user_id"`
	Status    string `json:"status"` // POSTED | FAILED | SKIPPED
	Reason    string `json:"reason,omitempty"`
	Song      string `json:"song,omitempty"`
	PublishID string `json:"publish_id,omitempty"`
}

// TriggerSummary aggregates a trigger run across all active schedules
type TriggerSummary struct {
	Processed int             `json:"processed"`
	Posted    int             `json:"posted"`
	Failed    int             `json:"failed"`
	Skipped   int             `json:"skipped"`
	Results   []TriggerResult `json:"results"`
}

package models

// ValidationResult is the verdict for a single dataset row. RecordID is the
// global row index after the batch validator remaps batch-local ids.
type ValidationResult struct {
	RecordID   int      `json:"record_id"`
	IsValid    bool     `json:"is_valid"`
	Violations []string `json:"violations"`
}

// ViolationRecord joins an invalid result with a snapshot of its original row.
type ViolationRecord struct {
	RecordID   int
	Record     map[string]interface{}
	Violations []string
}

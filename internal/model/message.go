package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

// ValidationError is one diagnostic about a single field of a heir (or of
// the decedent, keyed by the decedent's ID).
type ValidationError struct {
	ID      string `json:"id"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

package entity

type AlertLevel string

const (
	AlertSuccess AlertLevel = "success"
	AlertWarning AlertLevel = "warning"
	AlertInfo    AlertLevel = "info"
)

// Alert is a system notice derived from the current workspace state.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

package differ

// SeverityLevel ranks drift items
type SeverityLevel int

const (
	SeveritySafe SeverityLevel = iota
	SeverityModerate
	SeverityCritical
)

// SeverityString to lowercase
func SeverityString(s SeverityLevel) string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityModerate:
		return "moderate"
	case SeveritySafe:
		return "info"
	default:
		return "unknown"
	}
}

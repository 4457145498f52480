package enum

import "strings"

// SystemStatus is the deployment-wide kill switch.
type SystemStatus string

const (
	SystemActive    SystemStatus = "ACTIVE"
	SystemSuspended SystemStatus = "SUSPENDED"
)

// ParseSystemStatus falls back to SystemActive for anything but SUSPENDED.
func ParseSystemStatus(s string) SystemStatus {
	if strings.EqualFold(strings.TrimSpace(s), string(SystemSuspended)) {
		return SystemSuspended
	}
	return SystemActive
}

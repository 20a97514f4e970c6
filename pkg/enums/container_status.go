package enums

import "fmt"

// ContainerStatus is the single prioritized classification of a container's load.
type ContainerStatus string

const (
	ContainerStatusOK           ContainerStatus = "OK"
	ContainerStatusFull         ContainerStatus = "FULL"
	ContainerStatusEmpty        ContainerStatus = "EMPTY"
	ContainerStatusOverweight   ContainerStatus = "OVERWEIGHT"
	ContainerStatusOverCapacity ContainerStatus = "OVER_CAPACITY"
)

var validContainerStatuses = []ContainerStatus{
	ContainerStatusOK,
	ContainerStatusFull,
	ContainerStatusEmpty,
	ContainerStatusOverweight,
	ContainerStatusOverCapacity,
}

// String implements fmt.Stringer.
func (s ContainerStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ContainerStatus.
func (s ContainerStatus) IsValid() bool {
	for _, candidate := range validContainerStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsViolation reports whether the status describes a hard limit being exceeded.
func (s ContainerStatus) IsViolation() bool {
	return s == ContainerStatusOverweight || s == ContainerStatusOverCapacity
}

// ParseContainerStatus converts raw input into a ContainerStatus.
func ParseContainerStatus(value string) (ContainerStatus, error) {
	for _, candidate := range validContainerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid container status %q", value)
}

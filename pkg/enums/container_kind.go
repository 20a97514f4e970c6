package enums

import "fmt"

// ContainerKind discriminates bags from suitcases.
type ContainerKind string

const (
	ContainerKindBag      ContainerKind = "bag"
	ContainerKindSuitcase ContainerKind = "suitcase"
)

var validContainerKinds = []ContainerKind{
	ContainerKindBag,
	ContainerKindSuitcase,
}

// String implements fmt.Stringer.
func (k ContainerKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ContainerKind.
func (k ContainerKind) IsValid() bool {
	for _, candidate := range validContainerKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseContainerKind converts raw input into a ContainerKind.
func ParseContainerKind(value string) (ContainerKind, error) {
	for _, candidate := range validContainerKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid container kind %q", value)
}

// ContainerStyle narrows the shape of a container. Bags and suitcases accept different styles.
type ContainerStyle string

const (
	ContainerStyleBackpack  ContainerStyle = "backpack"
	ContainerStyleDuffel    ContainerStyle = "duffel"
	ContainerStyleTote      ContainerStyle = "tote"
	ContainerStyleMessenger ContainerStyle = "messenger"
	ContainerStyleOther     ContainerStyle = "other"

	ContainerStyleCarryOn   ContainerStyle = "carry_on"
	ContainerStyleChecked   ContainerStyle = "checked"
	ContainerStyleOversized ContainerStyle = "oversized"
)

var stylesByKind = map[ContainerKind][]ContainerStyle{
	ContainerKindBag: {
		ContainerStyleBackpack,
		ContainerStyleDuffel,
		ContainerStyleTote,
		ContainerStyleMessenger,
		ContainerStyleOther,
	},
	ContainerKindSuitcase: {
		ContainerStyleCarryOn,
		ContainerStyleChecked,
		ContainerStyleOversized,
	},
}

// String implements fmt.Stringer.
func (s ContainerStyle) String() string {
	return string(s)
}

// IsValid reports whether the style is known for any container kind.
func (s ContainerStyle) IsValid() bool {
	for _, styles := range stylesByKind {
		for _, candidate := range styles {
			if candidate == s {
				return true
			}
		}
	}
	return false
}

// AllowedFor reports whether the style may be used by the given container kind.
func (s ContainerStyle) AllowedFor(kind ContainerKind) bool {
	for _, candidate := range stylesByKind[kind] {
		if candidate == s {
			return true
		}
	}
	return false
}

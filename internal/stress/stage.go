package stress

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStage is returned by ParseGrowthStage for names outside the closed stage set.
var ErrUnknownStage = errors.New("unknown growth stage")

// GrowthStage is the closed set of plant development stages the tables are keyed by.
type GrowthStage uint8

const (
	StageUnknown GrowthStage = iota
	Seedling
	Vegetative
	PreFlower
	Flowering
	Ripening
)

var stageNames = [...]string{
	StageUnknown: "unknown",
	Seedling:     "seedling",
	Vegetative:   "vegetative",
	PreFlower:    "pre-flower",
	Flowering:    "flowering",
	Ripening:     "ripening",
}

// Stages lists every known stage in lifecycle order.
func Stages() []GrowthStage {
	return []GrowthStage{Seedling, Vegetative, PreFlower, Flowering, Ripening}
}

func (s GrowthStage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return stageNames[StageUnknown]
}

// Known reports whether s is one of the five lifecycle stages.
func (s GrowthStage) Known() bool {
	return s >= Seedling && s <= Ripening
}

// ParseGrowthStage resolves a stage name. Separators and case are ignored, so
// "Pre-Flower", "pre_flower" and "preflower" are the same stage.
func ParseGrowthStage(name string) (GrowthStage, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "seedling":
		return Seedling, nil
	case "vegetative", "veg":
		return Vegetative, nil
	case "preflower", "preflowering", "transition":
		return PreFlower, nil
	case "flowering", "flower", "bloom":
		return Flowering, nil
	case "ripening", "ripen", "harvest":
		return Ripening, nil
	}
	return StageUnknown, fmt.Errorf("%w: %q", ErrUnknownStage, name)
}

// MarshalText encodes the stage by name.
func (s GrowthStage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is lenient: unrecognised names decode to StageUnknown so the
// scorer can apply its vegetative fallback and flag it on the result.
func (s *GrowthStage) UnmarshalText(text []byte) error {
	stage, err := ParseGrowthStage(string(text))
	if err != nil {
		*s = StageUnknown
		return nil
	}
	*s = stage
	return nil
}

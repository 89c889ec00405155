package thresholds

import (
	"fmt"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/config"
)

// FromConfig builds the table selected by the thresholds configuration.
func FromConfig(cfg config.ThresholdsConfig) (*Table, error) {
	switch cfg.Preset {
	case "", "default":
		return DefaultTable(), nil
	case "revision_b":
		return RevisionBTable(), nil
	case "custom":
		policy, err := ParsePolicy(cfg.Policy)
		if err != nil {
			return nil, err
		}
		return NewTable(policy, map[Kind]Band{
			PH:        {Low: cfg.PH.Low, High: cfg.PH.High},
			Turbidity: {Low: cfg.Turbidity.Low, High: cfg.Turbidity.High},
			ORP:       {Low: cfg.ORP.Low, High: cfg.ORP.High},
		})
	}
	return nil, fmt.Errorf("unknown threshold preset %q", cfg.Preset)
}

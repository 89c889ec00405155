package thresholds

import "strings"

// Indicator is how a severity or alert level is drawn. It carries no meaning
// of its own; changing a color here never changes what High or Low mean.
type Indicator struct {
	Color string `json:"color"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var severityIndicators = map[Severity]Indicator{
	Normal: {Color: "green", Label: "normal", Icon: "check-circle"},
	Low:    {Color: "red", Label: "out-of-range-low", Icon: "exclamation-circle"},
	High:   {Color: "yellow", Label: "out-of-range-high", Icon: "exclamation-circle"},
}

// IndicatorFor returns the presentation of a severity.
func IndicatorFor(s Severity) Indicator {
	if ind, ok := severityIndicators[s]; ok {
		return ind
	}
	return severityIndicators[Normal]
}

// LevelIndicator returns the presentation of an alert level
// ("critical", "warning", anything else is a plain alert).
func LevelIndicator(level string) Indicator {
	switch strings.ToLower(level) {
	case "critical":
		return Indicator{Color: "red", Label: "critical", Icon: "exclamation-triangle"}
	case "warning":
		return Indicator{Color: "yellow", Label: "warning", Icon: "exclamation-triangle"}
	}
	return Indicator{Color: "orange", Label: "alert", Icon: "exclamation-triangle"}
}

package resources

import (
	"fmt"

	"github.com/Digitalminion/atakora-sub000/pkg/arm"
)

// Throughput configures provisioned capacity for Cosmos DB databases and
// containers. Exactly one of Manual or AutoscaleMax may be set; the zero
// value means serverless / inherited throughput.
type Throughput struct {
	// Manual request units per second. Minimum 400, in increments of 100.
	Manual int
	// AutoscaleMax is the autoscale ceiling in request units per second.
	// Minimum 1000, in increments of 1000.
	AutoscaleMax int
}

const (
	manualThroughputMin     = 400
	manualThroughputStep    = 100
	autoscaleThroughputMin  = 1000
	autoscaleThroughputStep = 1000
)

func (t Throughput) IsZero() bool {
	return t.Manual == 0 && t.AutoscaleMax == 0
}

func (t Throughput) validate(field string) error {
	if t.Manual != 0 && t.AutoscaleMax != 0 {
		return &arm.ValidationError{
			Field:      field,
			Message:    "manual and autoscale throughput are mutually exclusive",
			Suggestion: "Set either Manual or AutoscaleMax, not both",
		}
	}
	if t.Manual != 0 {
		if t.Manual < manualThroughputMin {
			return &arm.ValidationError{
				Field:      field,
				Message:    fmt.Sprintf("manual throughput must be at least %d RU/s", manualThroughputMin),
				Details:    fmt.Sprintf("got %d", t.Manual),
				Suggestion: fmt.Sprintf("Use %d or higher", manualThroughputMin),
			}
		}
		if t.Manual%manualThroughputStep != 0 {
			return &arm.ValidationError{
				Field:      field,
				Message:    fmt.Sprintf("manual throughput must be a multiple of %d RU/s", manualThroughputStep),
				Details:    fmt.Sprintf("got %d", t.Manual),
				Suggestion: fmt.Sprintf("Round to the nearest %d-unit increment", manualThroughputStep),
			}
		}
	}
	if t.AutoscaleMax != 0 {
		if t.AutoscaleMax < autoscaleThroughputMin {
			return &arm.ValidationError{
				Field:      field,
				Message:    fmt.Sprintf("autoscale max throughput must be at least %d RU/s", autoscaleThroughputMin),
				Details:    fmt.Sprintf("got %d", t.AutoscaleMax),
				Suggestion: fmt.Sprintf("Use %d or higher", autoscaleThroughputMin),
			}
		}
		if t.AutoscaleMax%autoscaleThroughputStep != 0 {
			return &arm.ValidationError{
				Field:      field,
				Message:    fmt.Sprintf("autoscale max throughput must be a multiple of %d RU/s", autoscaleThroughputStep),
				Details:    fmt.Sprintf("got %d", t.AutoscaleMax),
				Suggestion: fmt.Sprintf("Round to the nearest %d-unit increment", autoscaleThroughputStep),
			}
		}
	}
	return nil
}

// options renders the throughput as the "options" object of a Cosmos DB
// create body. Returns nil for the zero value so callers can omit it.
func (t Throughput) options() map[string]any {
	switch {
	case t.Manual != 0:
		return map[string]any{"throughput": t.Manual}
	case t.AutoscaleMax != 0:
		return map[string]any{
			"autoscaleSettings": map[string]any{"maxThroughput": t.AutoscaleMax},
		}
	default:
		return nil
	}
}

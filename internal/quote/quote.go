// Package quote prices the plans of a configuration and expands each into
// its payment schedule.
package quote

import (
	"fmt"

	"github.com/iwvelando/plan-pricing/internal/config"
	"github.com/iwvelando/plan-pricing/pkg/adapters"
	"github.com/iwvelando/plan-pricing/pkg/pricing"
	"github.com/iwvelando/plan-pricing/pkg/schedule"
	"github.com/iwvelando/plan-pricing/pkg/words"
	"go.uber.org/zap"
)

// Quote holds the priced result and the schedule for one plan.
type Quote struct {
	Name     string
	Mode     pricing.Mode
	Standard pricing.StandardPlan
	Result   pricing.PlanResult
	Schedule schedule.Plan
}

// GetQuotes prices every active plan in conf.
func GetQuotes(logger *zap.Logger, conf config.Configuration) ([]Quote, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	speller := words.For(words.Negotiate(conf.Output.Language))

	var results []Quote
	for _, plan := range adapters.PlansToAdapters(conf.Plans) {
		if !plan.Plan.Active {
			logger.Debug(fmt.Sprintf("skipping plan %s because it is inactive", plan.GetName()),
				zap.String("op", "quote.GetQuotes"),
			)
			continue
		}

		mode, err := plan.GetMode()
		if err != nil {
			return results, fmt.Errorf("plan %s: %w", plan.GetName(), err)
		}
		std := plan.GetStandardPlan()
		inputs := plan.GetInputs()

		result, err := pricing.Calculate(mode, std, inputs)
		if err != nil {
			return results, fmt.Errorf("plan %s: %w", plan.GetName(), err)
		}
		if !result.Meta.Feasible {
			logger.Warn(fmt.Sprintf("plan %s priced with clamped installments", plan.GetName()),
				zap.String("op", "quote.GetQuotes"),
				zap.Any("diagnostics", result.Meta.Diagnostics),
			)
		}

		expanded, err := schedule.Build(result, inputs, speller)
		if err != nil {
			return results, fmt.Errorf("plan %s: %w", plan.GetName(), err)
		}

		logger.Debug(fmt.Sprintf("priced plan %s", plan.GetName()),
			zap.String("op", "quote.GetQuotes"),
			zap.String("mode", mode.String()),
			zap.Float64("totalNominalPrice", result.TotalNominalPrice),
			zap.Float64("calculatedPV", result.CalculatedPV),
			zap.Int("entries", expanded.Totals.Count),
		)

		results = append(results, Quote{
			Name:     plan.GetName(),
			Mode:     mode,
			Standard: std,
			Result:   result,
			Schedule: expanded,
		})
	}

	return results, nil
}

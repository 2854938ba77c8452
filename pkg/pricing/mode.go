package pricing

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iwvelando/plan-pricing/pkg/mathutil"
)

// Mode selects how a proposal is priced.
type Mode int

// Calculation modes.
const (
	// ModeEvaluateCustomPrice discounts the standard price by the sales
	// discount, then distributes it.
	ModeEvaluateCustomPrice Mode = iota + 1
	// ModeCalculateForTargetPV solves for the standard plan's PV.
	ModeCalculateForTargetPV
	// ModeCustomYearlyThenEqualUseStdPrice distributes the undiscounted
	// standard price over a custom year structure.
	ModeCustomYearlyThenEqualUseStdPrice
	// ModeCustomYearlyThenEqualTargetPV solves a custom year structure for the
	// standard plan's PV.
	ModeCustomYearlyThenEqualTargetPV
)

var modeNames = map[Mode]string{
	ModeEvaluateCustomPrice:              "evaluateCustomPrice",
	ModeCalculateForTargetPV:             "calculateForTargetPV",
	ModeCustomYearlyThenEqualUseStdPrice: "customYearlyThenEqual_useStdPrice",
	ModeCustomYearlyThenEqualTargetPV:    "customYearlyThenEqual_targetPV",
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{
		ModeEvaluateCustomPrice,
		ModeCalculateForTargetPV,
		ModeCustomYearlyThenEqualUseStdPrice,
		ModeCustomYearlyThenEqualTargetPV,
	}
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode maps a mode identifier to its Mode.
func ParseMode(s string) (Mode, error) {
	trimmed := strings.TrimSpace(s)
	for _, m := range Modes() {
		if modeNames[m] == trimmed {
			return m, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownMode, "mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, errors.Wrapf(ErrUnknownMode, "mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Calculate runs the solver combination for mode.
func Calculate(mode Mode, std StandardPlan, in PlanInputs) (PlanResult, error) {
	switch mode {
	case ModeEvaluateCustomPrice:
		return EvaluateCustomPrice(std, in)
	case ModeCalculateForTargetPV:
		return CalculateForTargetPV(std, in)
	case ModeCustomYearlyThenEqualUseStdPrice:
		return CustomYearlyThenEqualUseStdPrice(std, in)
	case ModeCustomYearlyThenEqualTargetPV:
		return CustomYearlyThenEqualTargetPV(std, in)
	}
	return PlanResult{}, errors.Wrapf(ErrUnknownMode, "mode %d", int(mode))
}

// CalculateByName parses name and runs Calculate.
func CalculateByName(name string, std StandardPlan, in PlanInputs) (PlanResult, error) {
	mode, err := ParseMode(name)
	if err != nil {
		return PlanResult{}, err
	}
	return Calculate(mode, std, in)
}

// EvaluateCustomPrice applies the sales discount to the standard price and
// distributes the result.
func EvaluateCustomPrice(std StandardPlan, in PlanInputs) (PlanResult, error) {
	return DistributeForKnownTotal(mathutil.Discount(std.TotalPrice, in.SalesDiscountPercent), std, in)
}

// CalculateForTargetPV solves the structure for the standard plan's PV.
func CalculateForTargetPV(std StandardPlan, in PlanInputs) (PlanResult, error) {
	return SolveForTargetPV(std, in, std.CalculatedPV)
}

// CustomYearlyThenEqualUseStdPrice distributes the undiscounted standard price.
func CustomYearlyThenEqualUseStdPrice(std StandardPlan, in PlanInputs) (PlanResult, error) {
	return DistributeForKnownTotal(std.TotalPrice, std, in)
}

// CustomYearlyThenEqualTargetPV solves a custom structure for the standard plan's PV.
func CustomYearlyThenEqualTargetPV(std StandardPlan, in PlanInputs) (PlanResult, error) {
	return SolveForTargetPV(std, in, std.CalculatedPV)
}

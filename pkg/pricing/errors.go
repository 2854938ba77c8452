package pricing

import "github.com/cockroachdb/errors"

// Errors returned by the engine. Match them with errors.Is.
var (
	ErrInvalidFrequency                = errors.New("invalid frequency")
	ErrUnknownMode                     = errors.New("unknown calculation mode")
	ErrUnsolvableDownPaymentPercentage = errors.New("down payment percentage makes the plan unsolvable")

	// The following are never returned by the solvers directly; they are
	// produced by PlanResult.Err from the diagnostics of a clamped result.
	ErrOverCommittedStructure = errors.New("fixed commitments exceed total price")
	ErrUnallocatedRemainder   = errors.New("remaining price has no installments to carry it")
	ErrTargetUnreachable      = errors.New("structure cannot reach target present value")
)

func unsolvablePercentage(percent float64) error {
	return errors.Wrapf(ErrUnsolvableDownPaymentPercentage, "down payment of %g%%", percent)
}

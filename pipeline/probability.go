package pipeline

import (
	"fmt"

	"github.com/kbukum/breedkit/errors"
	"github.com/kbukum/breedkit/logger"
)

// CumulativeTable normalizes weights into an ascending table whose last
// entry is exactly 1. Negative weights are rejected. When every weight is
// zero the table is uniform and uniform is reported true.
func CumulativeTable(weights []float64) (table []float64, uniform bool, err error) {
	if len(weights) == 0 {
		return nil, false, errors.New(errors.ErrCodeInvalidParameter, "no weights to normalize")
	}
	sum := 0.0
	for i, w := range weights {
		if w < 0 {
			return nil, false, errors.New(errors.ErrCodeInvalidParameter,
				fmt.Sprintf("weight %d is negative: %v", i, w)).WithDetail("index", i)
		}
		sum += w
	}

	table = make([]float64, len(weights))
	if sum == 0 {
		for i := range table {
			table[i] = float64(i+1) / float64(len(table))
		}
		uniform = true
	} else {
		acc := 0.0
		for i, w := range weights {
			acc += w
			table[i] = acc / sum
		}
	}
	table[len(table)-1] = 1
	return table, uniform, nil
}

// PickIndex returns the first index whose cumulative bound exceeds r,
// for r in [0, 1).
func PickIndex(table []float64, r float64) int {
	for i, bound := range table {
		if r < bound {
			return i
		}
	}
	return len(table) - 1
}

// sourceTable builds a cumulative table from the children's probabilities.
// A child without a probability is a fatal MISSING_PARAMETER error.
func sourceTable(owner Source, sources []Source) ([]float64, error) {
	weights := make([]float64, len(sources))
	for i, s := range sources {
		if s.Probability() == NoProbability {
			return nil, errors.MissingParameter(string(s.Base().Push("prob")), string(s.DefaultBase().Push("prob"))).
				WithDetail("parent", string(owner.Base())).
				WithDetail("index", i)
		}
		weights[i] = s.Probability()
	}
	table, uniform, err := CumulativeTable(weights)
	if err != nil {
		return nil, errors.InvalidParameter(string(owner.Base()), "bad child probabilities").WithCause(err)
	}
	if uniform {
		logger.Get("pipeline").Warn("all child probabilities are zero, picking uniformly",
			logger.Fields(logger.FieldSource, string(owner.Base()), "children", len(sources)))
	}
	return table, nil
}

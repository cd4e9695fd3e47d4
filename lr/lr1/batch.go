package lr1

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of parsing one input of a batch.
type Outcome struct {
	Result *Result
	Err    error
}

// ParseAll parses a batch of inputs in parallel, using at most limit
// goroutines (limit < 1 means no limit). Outcomes are returned in input
// order. Parse errors are reported per input and do not stop the batch;
// the returned error is non-nil only if ctx has been cancelled.
func ParseAll(ctx context.Context, p *Parser, inputs [][]string, limit int) ([]Outcome, error) {
	outcomes := make([]Outcome, len(inputs))
	group, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}
	for i := range inputs {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.Parse(inputs[i])
			outcomes[i] = Outcome{Result: res, Err: err}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return outcomes, err
	}
	tracer().Debugf("parsed batch of %d inputs", len(inputs))
	return outcomes, nil
}

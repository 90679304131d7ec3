package upstage

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ItemFunc processes a single item. The returned output is tagged with the
// item index by the driver.
type ItemFunc func(ctx context.Context, idx int, item Item) (Output, error)

// Execute runs fn over every input item, sequentially and in order, and
// returns exactly one output per item.
//
// When the host runs the node in continue-on-failure mode, a failing item
// yields an {"error": message} record and processing goes on. Otherwise the
// first failure aborts the run and no output is returned.
func Execute(ctx context.Context, fns ExecuteFunctions, fn ItemFunc) ([]Output, error) {
	items := fns.InputData()
	outputs := make([]Output, 0, len(items))

	for idx, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "execution was interrupted")
		}

		output, err := fn(ctx, idx, item)
		if err != nil {
			if fns.ContinueOnFail() {
				outputs = append(outputs, ErrorOutput(idx, err))
				continue
			}

			return nil, errors.Wrapf(err, "item %d", idx)
		}

		output.PairedItem = PairedItem{Item: idx}
		outputs = append(outputs, output)
	}

	return outputs, nil
}

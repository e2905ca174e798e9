package feedback

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Joined is the settled outcome of a mandatory/optional pair. Optional is nil
// when the optional task was skipped or failed; OptionalErr carries the
// failure, if any, so callers can log it.
type Joined[M, O any] struct {
	Mandatory   M
	Optional    *O
	OptionalErr error
}

// JoinMandatoryOptional runs a mandatory task and an optional task
// concurrently and waits for both to settle. A mandatory failure fails the
// join (and cancels the optional task's context); an optional failure is
// recorded but never fails the join. A nil optional task is simply skipped.
func JoinMandatoryOptional[M, O any](
	ctx context.Context,
	mandatory func(context.Context) (M, error),
	optional func(context.Context) (O, error),
) (Joined[M, O], error) {
	var joined Joined[M, O]

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := mandatory(gCtx)
		if err != nil {
			return err
		}
		joined.Mandatory = result
		return nil
	})

	if optional != nil {
		g.Go(func() error {
			result, err := optional(gCtx)
			if err != nil {
				// Optional failures must not cancel the mandatory task.
				joined.OptionalErr = err
				return nil
			}
			joined.Optional = &result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Joined[M, O]{}, err
	}
	return joined, nil
}

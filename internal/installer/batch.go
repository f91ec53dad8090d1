package installer

import (
	"context"
)

// Step processes one component of a batch
type Step func(ctx context.Context, name string) error

// Failure is one component that did not complete
type Failure struct {
	Name string
	Err  error
}

// BatchResult summarizes a batch. Aborted is set when the user declined to
// continue or the context was cancelled; Remaining then lists the names
// that were never attempted.
type BatchResult struct {
	Succeeded []string
	Failed    []Failure
	Remaining []string
	Aborted   bool
}

// OK reports whether every component succeeded
func (r *BatchResult) OK() bool {
	return len(r.Failed) == 0 && !r.Aborted
}

// RunBatch runs step for each name in order. After a failure the user is
// asked whether to go on with the rest. Completed components are never
// rolled back.
func (i *Installer) RunBatch(ctx context.Context, names []string, step Step) *BatchResult {
	res := &BatchResult{}

	for n, name := range names {
		if ctx.Err() != nil {
			res.Aborted = true
			res.Remaining = names[n:]
			return res
		}

		err := step(ctx, name)
		if err == nil {
			res.Succeeded = append(res.Succeeded, name)
			continue
		}

		i.logger.WithError(err).WithField("component", name).Debug("batch step failed")
		i.printer.Fail("%s: %v", name, err)
		res.Failed = append(res.Failed, Failure{Name: name, Err: err})

		if n == len(names)-1 {
			break
		}
		ok, perr := i.prompter.Confirm("Continue with remaining components?", true)
		if perr != nil || !ok {
			res.Aborted = true
			res.Remaining = names[n+1:]
			return res
		}
	}

	return res
}

package scenario

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/scenemock/internal/cmds"
	"github.com/vk/scenemock/internal/ctxlog"
)

// Runner applies scenario steps to a command layer in order, stopping at
// the first failure.
type Runner struct {
	cmds *cmds.Cmds
	out  io.Writer
}

// NewRunner creates a runner writing query output to out.
func NewRunner(c *cmds.Cmds, out io.Writer) *Runner {
	return &Runner{cmds: c, out: out}
}

// Run applies every step of the scenario. The returned error names the step
// that failed.
func (r *Runner) Run(ctx context.Context, scn *Scenario) error {
	logger := ctxlog.FromContext(ctx)

	for i, step := range scn.Steps {
		logger.Debug("Applying scenario step.", "index", i, "step", step.Describe())
		if err := step.Apply(ctx, r.cmds, r.out); err != nil {
			return fmt.Errorf("step %d (%s) failed: %w", i+1, step.Describe(), err)
		}
	}
	logger.Info("Scenario completed.", "steps", len(scn.Steps))
	return nil
}

package variant

import (
	"context"
	"fmt"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/harness"
)

// EnsureCompiled runs the compile step if the compile_result cache slot
// is empty, per spec §4.6 resolution step (iii). A nonzero exit is
// recorded as Failed, not returned as an error (spec §7: "Compile
// failure: recorded in variant cache as Failed").
func (v *Variant) EnsureCompiled(ctx context.Context, runner harness.Runner, tpl harness.CompileTemplate, dir string) (CompileResult, error) {
	if v.compile.State != NotCompiled {
		return v.compile, nil
	}
	if v.snapshot == nil {
		return CompileResult{}, fmt.Errorf("variant: cannot compile without a source snapshot")
	}
	code, _, _, err := runner.Run(ctx, dir, tpl.Render())
	if err != nil {
		return CompileResult{}, fmt.Errorf("variant: spawning compiler: %w", err)
	}
	if code != 0 {
		v.compile = CompileResult{State: Failed}
		return v.compile, nil
	}
	v.compile = CompileResult{State: Succeeded, Exe: tpl.ExeName}
	return v.compile, nil
}

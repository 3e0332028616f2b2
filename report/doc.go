// SPDX-License-Identifier: MIT

// Package report runs every convergence diagnostic over one chain and
// gathers the outcomes into a single Report.
//
// Config carries the parameters of all diagnostics with conventional
// defaults and decodes from generic maps (config files, environment) via
// mapstructure. Runner executes the diagnostics concurrently; a failing
// diagnostic is recorded in Report.Failures and never stops the others.
//
//	rep, err := report.Runner{}.Run(ctx, samples, report.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	_ = rep.WriteText(os.Stdout)
//	ok := rep.Converged()
package report

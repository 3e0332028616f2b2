// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/chaindiag/chain"
	"github.com/katalvlaran/chaindiag/ess"
	"github.com/katalvlaran/chaindiag/geweke"
	"github.com/katalvlaran/chaindiag/psrf"
	"github.com/katalvlaran/chaindiag/raftery"
)

// Diagnostic names one of the six diagnostics of a run.
type Diagnostic string

const (
	UnivariatePSRF   Diagnostic = "univariate-psrf"
	MultivariatePSRF Diagnostic = "multivariate-psrf"
	IntervalPSRF     Diagnostic = "interval-psrf"
	EffectiveSize    Diagnostic = "ess"
	Geweke           Diagnostic = "geweke"
	RafteryLewis     Diagnostic = "raftery-lewis"
)

// Diagnostics lists every diagnostic in report order.
var Diagnostics = []Diagnostic{UnivariatePSRF, MultivariatePSRF, IntervalPSRF, EffectiveSize, Geweke, RafteryLewis}

// Report gathers the outcome of every diagnostic over one chain. Slots of a
// diagnostic that failed outright are nil (or NaN); per-dimension failures
// keep the partial result and are listed in Failures as well.
type Report struct {
	Dims        int
	Draws       int
	Fingerprint uint64
	MinESS      float64

	Univariate   []float64
	Multivariate float64
	Interval     []float64
	ESS          ess.Result
	Geweke       geweke.Result
	Raftery      []raftery.Record

	Failures map[Diagnostic]error
}

// Converged applies the conventional verdict: every shrink factor below
// psrf.ConvergenceThreshold, the smallest ESS above MinESS and a passed
// Geweke test. A failure of any of those diagnostics means not converged.
func (r *Report) Converged() bool {
	for _, d := range []Diagnostic{UnivariatePSRF, MultivariatePSRF, IntervalPSRF, EffectiveSize, Geweke} {
		if r.Failures[d] != nil {
			return false
		}
	}
	if !psrf.Converged(r.Univariate...) || !psrf.Converged(r.Multivariate) || !psrf.Converged(r.Interval...) {
		return false
	}

	return r.ESS.Min > r.MinESS && r.Geweke.Passed
}

// Err joins the recorded failures in report order; nil when none failed.
func (r *Report) Err() error {
	var errs *multierror.Error
	for _, d := range Diagnostics {
		if err := r.Failures[d]; err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", d, err))
		}
	}

	return errs.ErrorOrNil()
}

// Runner executes a full diagnostic run.
type Runner struct {
	// Logger receives one entry per diagnostic; nil uses the standard logger.
	Logger *logrus.Logger
	// Cache, when set, returns an earlier Report for identical input.
	Cache *Cache
}

// Run computes every diagnostic of s concurrently. Diagnostic failures are
// recorded in the Report rather than returned; Run returns an error only
// for an invalid cfg or a cancelled ctx.
func (rn Runner) Run(ctx context.Context, s *chain.Samples, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := rn.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	entry := log.WithFields(logrus.Fields{"dims": s.Dims(), "draws": s.Len()})
	fp := s.Fingerprint()
	if rn.Cache != nil {
		if rep, ok := rn.Cache.get(fp, cfg); ok {
			entry.WithField("fingerprint", fp).Debug("report served from cache")
			return rep, nil
		}
	}

	rep := &Report{
		Dims:         s.Dims(),
		Draws:        s.Len(),
		Fingerprint:  fp,
		MinESS:       cfg.MinESS,
		Multivariate: math.NaN(),
		Failures:     make(map[Diagnostic]error),
	}
	// One slot per diagnostic so the goroutines never share a write target.
	failures := make([]error, len(Diagnostics))
	jobs := []func() error{
		func() (err error) { rep.Univariate, err = psrf.Univariate(s, cfg.psrfOptions()...); return },
		func() (err error) { rep.Multivariate, err = psrf.Multivariate(s, cfg.psrfOptions()...); return },
		func() (err error) {
			rep.Interval, err = psrf.Interval(s, cfg.IntervalAlpha, cfg.psrfOptions()...)
			return
		},
		func() (err error) { rep.ESS, err = ess.Compute(s, cfg.essOptions()...); return },
		func() (err error) {
			rep.Geweke, err = geweke.Test(s, cfg.GewekeFirst, cfg.GewekeLast, cfg.gewekeOptions()...)
			return
		},
		func() (err error) {
			rep.Raftery, err = raftery.Diagnose(s, cfg.Quantile, cfg.Precision, cfg.Probability, cfg.rafteryOptions()...)
			return
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			err := job()
			e := entry.WithFields(logrus.Fields{"diagnostic": Diagnostics[i], "elapsed": time.Since(start)})
			if err != nil {
				failures[i] = err
				e.WithError(err).Warn("diagnostic failed")
				return nil
			}
			e.Debug("diagnostic done")

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, err := range failures {
		if err != nil {
			rep.Failures[Diagnostics[i]] = err
		}
	}
	entry.WithField("converged", rep.Converged()).Info("diagnostics complete")
	if rn.Cache != nil {
		rn.Cache.add(rep, cfg)
	}

	return rep, nil
}

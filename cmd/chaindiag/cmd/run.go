// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/chaindiag/chainio"
	"github.com/katalvlaran/chaindiag/report"
)

// ErrNotConverged is returned by run --strict when the verdict is negative.
var ErrNotConverged = errors.New("chain has not converged")

func runCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run ./path/to/chain.csv[.gz|.zst|.lz4|.s2]",
		Short: "Run every convergence diagnostic on a chain file",
		Long: `Run every convergence diagnostic on a chain file and print a report.

The file holds one draw per line (or one dimension per line with
--layout dims-by-draws), values separated by commas, tabs or spaces.
Every setting can also come from --config or a CHAINDIAG_<KEY> variable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0])
		},
	}
	addConfigFlags(cmd.Flags(), report.DefaultConfig())
	cmd.Flags().String("layout", chainio.DrawsByDims.String(), "line layout: draws-by-dims or dims-by-draws")
	cmd.Flags().Int("burnIn", 0, "draws to discard from the start of the chain")
	cmd.Flags().Bool("strict", false, "exit non-zero unless the chain converged")
	bindFlags(a.v, cmd.Flags())

	return cmd
}

// addConfigFlags declares one flag per report.Config key.
func addConfigFlags(fs *pflag.FlagSet, d report.Config) {
	fs.Int("batches", d.Batches, "batch count for the shrink factors")
	fs.Int("minBatchLength", d.MinBatchLength, "shortest batch before the count shrinks")
	fs.Float64("conditionLimit", d.ConditionLimit, "largest condition number of the within-batch covariance")
	fs.Float64("intervalAlpha", d.IntervalAlpha, "tail probability of the interval shrink factor")
	fs.String("truncation", d.Truncation.String(), "ESS truncation: initial-monotone or first-negative")
	fs.Int("maxLag", d.MaxLag, "highest autocorrelation lag summed by ESS")
	fs.Float64("minESS", d.MinESS, "smallest ESS accepted as converged")
	fs.Float64("gewekeFirst", d.GewekeFirst, "fraction of draws in the early Geweke window")
	fs.Float64("gewekeLast", d.GewekeLast, "fraction of draws in the late Geweke window")
	fs.Float64("gewekeAlpha", d.GewekeAlpha, "significance level of the Geweke test")
	fs.Bool("gewekeBonferroni", d.GewekeBonferroni, "divide the Geweke level by the dimension count")
	fs.Int("spectralLag", d.SpectralLag, "Bartlett lag of the spectral density (0 = automatic)")
	fs.Float64("quantile", d.Quantile, "Raftery-Lewis target quantile")
	fs.Float64("precision", d.Precision, "Raftery-Lewis accuracy of the quantile")
	fs.Float64("probability", d.Probability, "Raftery-Lewis probability of that accuracy")
	fs.Int("maxThin", d.MaxThin, "largest Raftery-Lewis thinning tried (0 = unbounded)")
	fs.Int("workers", d.Workers, "diagnostics run at once (0 = all)")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

func (a *app) config() (report.Config, error) {
	cfg := report.DefaultConfig()
	if err := a.v.Unmarshal(&cfg, viper.DecodeHook(report.DecodeHook())); err != nil {
		return report.Config{}, errors.Wrap(err, "decode settings")
	}

	return cfg, nil
}

func (a *app) run(cmd *cobra.Command, path string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	layout, err := chainio.ParseLayout(a.v.GetString("layout"))
	if err != nil {
		return err
	}

	s, err := chainio.Load(path, layout)
	if err != nil {
		a.logger.WithError(err).Error("cannot load chain")
		return err
	}
	if burn := a.v.GetInt("burnIn"); burn > 0 {
		if s, err = s.Window(burn, s.Len()-burn); err != nil {
			return errors.Wrapf(err, "burn-in %d", burn)
		}
	}
	a.logger.WithField("file", path).Infof("loaded %d dims x %d draws", s.Dims(), s.Len())

	rep, err := report.Runner{Logger: a.logger}.Run(cmd.Context(), s, cfg)
	if err != nil {
		return err
	}
	if err := rep.WriteText(cmd.OutOrStdout()); err != nil {
		return err
	}
	if a.v.GetBool("strict") && !rep.Converged() {
		return ErrNotConverged
	}

	return nil
}

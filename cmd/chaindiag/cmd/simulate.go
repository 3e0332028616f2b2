// SPDX-License-Identifier: MIT

package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/chaindiag/chain"
	"github.com/katalvlaran/chaindiag/chainio"
	"github.com/katalvlaran/chaindiag/simulate"
)

func simulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate ./path/to/out.csv[.gz|.zst|.lz4|.s2]",
		Short: "Write a synthetic AR(1) chain, optionally with a linear drift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			seed, _ := f.GetUint64("seed")
			dims, _ := f.GetInt("dims")
			draws, _ := f.GetInt("draws")
			phi, _ := f.GetFloat64("phi")
			slope, _ := f.GetFloat64("slope")
			layoutName, _ := f.GetString("layout")

			layout, err := chainio.ParseLayout(layoutName)
			if err != nil {
				return err
			}
			var s *chain.Samples
			if slope != 0 {
				s, err = simulate.Drift(seed, dims, draws, phi, slope)
			} else {
				s, err = simulate.AR1(seed, dims, draws, phi)
			}
			if err != nil {
				return err
			}
			if err = chainio.Save(args[0], s, layout); err != nil {
				return err
			}
			a.logger.WithFields(log.Fields{
				"file":        args[0],
				"compression": chainio.CompressionFor(args[0]),
				"fingerprint": s.Fingerprint(),
			}).Infof("wrote %d dims x %d draws", dims, draws)

			return nil
		},
	}
	cmd.Flags().Uint64("seed", 1, "generator seed")
	cmd.Flags().Int("dims", 10, "number of dimensions")
	cmd.Flags().Int("draws", 10000, "number of draws")
	cmd.Flags().Float64("phi", 0, "AR(1) coefficient in (-1,1); 0 gives iid draws")
	cmd.Flags().Float64("slope", 0, "total drift added over the chain")
	cmd.Flags().String("layout", chainio.DrawsByDims.String(), "line layout: draws-by-dims or dims-by-draws")

	return cmd
}

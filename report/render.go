// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// WriteText renders r as a tab-aligned table: one row per dimension, a
// summary block and the failures, if any.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "chain %016x: %d dims x %d draws\n\n", r.Fingerprint, r.Dims, r.Draws)
	fmt.Fprintln(tw, "dim\tpsrf\tinterval\tess\tgeweke z\tp-value\tburn-in\ttotal\tthin\tdependence\t")
	for i := 0; i < r.Dims; i++ {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i,
			at(r.Univariate, i, 4), at(r.Interval, i, 4), at(r.ESS.Values, i, 1),
			at(r.Geweke.Z, i, 3), at(r.Geweke.PValues, i, 4), raftCells(r, i))
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "multivariate psrf\t%s\t\n", num(r.Multivariate, 4))
	fmt.Fprintf(tw, "min ess\t%s\t\n", num(r.ESS.Min, 1))
	fmt.Fprintf(tw, "geweke passed\t%t\t\n", r.Geweke.Passed)
	fmt.Fprintf(tw, "converged\t%t\t\n", r.Converged())
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, d := range Diagnostics {
		if err := r.Failures[d]; err != nil {
			if _, werr := fmt.Fprintf(w, "%s: %v\n", d, err); werr != nil {
				return werr
			}
		}
	}

	return nil
}

func raftCells(r *Report, i int) string {
	if i >= len(r.Raftery) || r.Raftery[i].Thin == 0 {
		return "-\t-\t-\t-\t"
	}
	rec := r.Raftery[i]

	return fmt.Sprintf("%d\t%d\t%d\t%s\t", rec.BurnIn, rec.Total, rec.Thin, num(rec.Dependence, 2))
}

func at(xs []float64, i, prec int) string {
	if i >= len(xs) {
		return "-"
	}

	return num(xs[i], prec)
}

func num(x float64, prec int) string {
	return strconv.FormatFloat(x, 'f', prec, 64)
}

package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/iafilius/PhotonStatistics/src/photon"
)

// WriteReport prints the summary and one row per photon count bucket.
func WriteReport(res *photon.Result, w io.Writer) error {
	md, s := res.Metadata, res.Summary
	fmt.Fprintf(w, "%s\n", res.Path)
	fmt.Fprintf(w, "%s measurements of %dms (%s photon lines counted)\n",
		humanize.Comma(int64(md.Length)), md.DivisionMs, humanize.Comma(int64(res.Frequency.Total())))
	fmt.Fprintf(w, "mean=%.2f std=%.2f min=%.0f median=%.1f max=%.0f\n", s.Mean, s.StdDev, s.Min, s.Median, s.Max)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "photons\tcount\tprobability\t")
	for i, c := range res.Frequency {
		p := 0.0
		if i < len(res.Probabilities) {
			p = res.Probabilities[i]
		}
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t\n", i, humanize.Comma(int64(c)), p)
	}
	return tw.Flush()
}

// Package render turns an analyzed measurement file into a probability bar
// chart (go-chart) and a plain-text report.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/PhotonStatistics/src/photon"
)

const (
	// Title is the chart and window title.
	Title = "Photon probability distribution"
	// BarWidth is the bar width in x data units; 1.0 would make bars touch.
	BarWidth = 0.9

	maxXTicks = 20
)

// Options control chart size and the summary annotation anchor (data coordinates).
type Options struct {
	Width       int
	Height      int
	AnnotationX float64
	AnnotationY float64
	BarColor    drawing.Color
}

// DefaultOptions returns the layout used by the CLI when nothing is configured.
func DefaultOptions() Options {
	w, h := ChartDimensions(1000)
	return Options{
		Width:       w,
		Height:      h,
		AnnotationX: 12,
		AnnotationY: 0.1,
		BarColor:    chart.ColorBlue,
	}
}

// XAxisLabel names the x axis for a division length.
func XAxisLabel(divisionMs int) string {
	return fmt.Sprintf("Photons per %dms", divisionMs)
}

// AnnotationLines is the summary text drawn on the chart, top line first.
func AnnotationLines(res *photon.Result) []string {
	return []string{
		fmt.Sprintf("%d measurements taken", res.Metadata.Length),
		fmt.Sprintf("%.2f mean photons per div", res.Summary.Mean),
		fmt.Sprintf("%.2f standard deviation", res.Summary.StdDev),
	}
}

// BuildChart lays out one bar per photon count with the summary annotation.
func BuildChart(res *photon.Result, opts Options) chart.Chart {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = ChartDimensions(opts.Width)
	}
	if opts.BarColor.IsZero() {
		opts.BarColor = chart.ColorBlue
	}
	probs := res.Probabilities

	// go-chart has no bar series for continuous axes, so each bar is a filled
	// four-point ContinuousSeries. Series count grows with MaxCount, which
	// photon.MaxPhotonCount bounds.
	series := make([]chart.Series, 0, len(probs)+1)
	half := BarWidth / 2
	yMax := 0.0
	for i, p := range probs {
		x := float64(i)
		series = append(series, chart.ContinuousSeries{
			Name:    strconv.Itoa(i),
			XValues: []float64{x - half, x - half, x + half, x + half},
			YValues: []float64{0, p, p, 0},
			Style: chart.Style{
				StrokeColor: opts.BarColor,
				StrokeWidth: 1,
				FillColor:   opts.BarColor.WithAlpha(200),
			},
		})
		yMax = math.Max(yMax, p)
	}

	// matplotlib-style multi-line text grows upward from its anchor.
	lines := AnnotationLines(res)
	if yMax <= 0 {
		yMax = opts.AnnotationY
	}
	if yMax <= 0 {
		yMax = 1
	}
	step := yMax * 0.06
	annots := make([]chart.Value2, len(lines))
	for i, l := range lines {
		annots[i] = chart.Value2{
			XValue: opts.AnnotationX,
			YValue: opts.AnnotationY + float64(len(lines)-1-i)*step,
			Label:  l,
		}
	}
	series = append(series, chart.AnnotationSeries{Name: "summary", Annotations: annots})

	top := math.Max(yMax, opts.AnnotationY+float64(len(lines))*step) * 1.1
	xMax := math.Max(float64(len(probs))-0.5, opts.AnnotationX+1)
	xMin := math.Min(-0.5, opts.AnnotationX-1)

	return chart.Chart{
		Title:      Title,
		TitleStyle: chart.Style{FontSize: 16},
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  XAxisLabel(res.Metadata.DivisionMs),
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: countTicks(len(probs), xMin, xMax),
		},
		YAxis: chart.YAxis{
			Name:           "Probability of occurrence",
			Range:          &chart.ContinuousRange{Min: 0, Max: top},
			ValueFormatter: func(v interface{}) string { return formatProbability(v) },
		},
		Series: series,
	}
}

// countTicks places integer ticks under the bars, thinned to at most
// maxXTicks, between unlabeled ticks at lo and hi. go-chart derives the axis
// range from the outermost ticks whenever ticks are given.
func countTicks(n int, lo, hi float64) []chart.Tick {
	step := (n + maxXTicks - 1) / maxXTicks
	if step < 1 {
		step = 1
	}
	ticks := make([]chart.Tick, 0, n/step+3)
	ticks = append(ticks, chart.Tick{Value: lo})
	for i := 0; i < n; i += step {
		if v := float64(i); v > lo && v < hi {
			ticks = append(ticks, chart.Tick{Value: v, Label: strconv.Itoa(i)})
		}
	}
	return append(ticks, chart.Tick{Value: hi})
}

func formatProbability(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return fmt.Sprint(v)
}

// RenderPNG encodes the chart for res as PNG into w.
func RenderPNG(res *photon.Result, opts Options, w io.Writer) error {
	ch := BuildChart(res, opts)
	if err := ch.Render(chart.PNG, w); err != nil {
		return errors.Wrap(err, "render chart")
	}
	return nil
}

// RenderImage renders the chart and decodes it for display.
func RenderImage(res *photon.Result, opts Options) (image.Image, error) {
	var buf bytes.Buffer
	if err := RenderPNG(res, opts, &buf); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, errors.Wrap(err, "decode chart")
	}
	return img, nil
}

// WritePNGFile renders the chart to path.
func WritePNGFile(res *photon.Result, opts Options, path string) error {
	var buf bytes.Buffer
	if err := RenderPNG(res, opts, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	photon.Infof("chart written to %s", path)
	return nil
}

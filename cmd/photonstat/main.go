// photonstat plots the photon-count probability distribution of one
// measurement file.
//
// Usage: photonstat [flags] <file>
//
// The file has a free-text first line, a "<length>,<division_ms>" second line
// and one photon count per line after that. By default the chart opens in a
// window and the command returns when the window is closed; --out writes a PNG
// instead. Every flag can also be set as PHOTONSTAT_<FLAG> in the environment
// (dashes become underscores) or in the file named by --config.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iafilius/PhotonStatistics/src/photon"
	"github.com/iafilius/PhotonStatistics/src/render"
)

// showChart opens the blocking chart window; tests replace it.
var showChart = showWindow

func main() {
	cmd, err := newRootCmd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		var missing photon.MissingArgumentError
		if !errors.As(err, &missing) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, error) {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "photonstat <file>",
		Short: "Plot the photon-count probability distribution of a measurement file",
		Args:  cobra.ArbitraryArgs,
		// errors are reported by main; usage is noise for data errors
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), v, args)
		},
	}
	addFlags(cmd.Flags())
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	v.SetEnvPrefix("PHOTONSTAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd, nil
}

func addFlags(fs *pflag.FlagSet) {
	def := render.DefaultOptions()
	fs.String("config", "", "Optional config file (yaml, toml or json) holding any of these flags")
	fs.String("out", "", "Write the chart to this PNG file instead of opening a window")
	fs.Bool("no-window", false, "Do not open the chart window")
	fs.Bool("report", false, "Print a text report of the distribution to stdout")
	fs.Int("width", def.Width, "Chart width in pixels")
	fs.Int("height", def.Height, "Chart height in pixels")
	fs.Float64("annotation-x", def.AnnotationX, "X data coordinate of the summary text")
	fs.Float64("annotation-y", def.AnnotationY, "Y data coordinate of the summary text")
	fs.String("log-level", "info", "Log level (debug|info|warn|error)")
	fs.String("log-file", "", "Write log output to this file (rotated) instead of stderr")
}

func run(stdout io.Writer, v *viper.Viper, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(stdout, photon.MissingArgumentMessage)
		return photon.MissingArgumentError{}
	}
	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", cfg)
		}
	}
	photon.SetLogLevel(v.GetString("log-level"))
	if lf := v.GetString("log-file"); lf != "" {
		closer := photon.SetLogFile(lf, 5)
		defer closer.Close()
	}
	if len(args) > 1 {
		photon.Warnf("ignoring extra arguments: %s", strings.Join(args[1:], " "))
	}

	res, err := photon.Analyze(args[0])
	if err != nil {
		return err
	}

	opts := render.DefaultOptions()
	opts.Width = v.GetInt("width")
	opts.Height = v.GetInt("height")
	opts.AnnotationX = v.GetFloat64("annotation-x")
	opts.AnnotationY = v.GetFloat64("annotation-y")

	if v.GetBool("report") {
		if err := render.WriteReport(res, stdout); err != nil {
			return err
		}
	}
	out := v.GetString("out")
	if out != "" {
		if err := render.WritePNGFile(res, opts, out); err != nil {
			return err
		}
	}
	if out == "" && !v.GetBool("no-window") {
		return showChart(res, opts)
	}
	return nil
}

package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/PhotonStatistics/src/photon"
	"github.com/iafilius/PhotonStatistics/src/render"
)

// showWindow displays the chart and blocks until the window is closed.
func showWindow(res *photon.Result, opts render.Options) error {
	img, err := render.RenderImage(res, opts)
	if err != nil {
		return err
	}
	a := app.NewWithID("com.photonstat.viewer")
	w := a.NewWindow(render.Title)

	chartImg := canvas.NewImageFromImage(img)
	chartImg.FillMode = canvas.ImageFillContain
	chartImg.SetMinSize(fyne.NewSize(float32(opts.Width)*0.5, float32(opts.Height)*0.5))

	s := res.Summary
	status := widget.NewLabel(fmt.Sprintf("%s  |  %d measurements of %dms  |  mean %.2f  |  std %.2f",
		res.Path, res.Metadata.Length, res.Metadata.DivisionMs, s.Mean, s.StdDev))

	w.SetContent(container.NewBorder(nil, status, nil, nil, chartImg))
	w.Resize(fyne.NewSize(float32(opts.Width), float32(opts.Height)+40))
	photon.Debugf("showing chart window for %s", res.Path)
	w.ShowAndRun()
	return nil
}

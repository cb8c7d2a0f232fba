package sim

import (
	"fmt"
	"image/color"

	"github.com/milosgajdos/go-localize/landmark"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// New2DPlot creates a new plot of a localization run from three data sources:
// truth:    ground truth trajectory, one (x, y, ...) pose per row
// filtered: filter pose estimates, one (x, y, ...) pose per row
// m:        the landmark map
// It returns error if either of the trajectories is nil or has fewer than 2
// columns, or if the map is nil.
func New2DPlot(truth, filtered *mat.Dense, m *landmark.Map) (*plot.Plot, error) {
	if truth == nil || filtered == nil || m == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	_, ct := truth.Dims()
	_, cf := filtered.Dims()

	if ct < 2 || cf < 2 {
		return nil, fmt.Errorf("invalid data dimensions")
	}

	p := plot.New()

	p.Title.Text = "Localization"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// Make a scatter plotter for the landmark map
	lmScatter, err := plotter.NewScatter(landmarkPoints(m))
	if err != nil {
		return nil, err
	}
	lmScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	lmScatter.Shape = draw.PyramidGlyph{}
	lmScatter.GlyphStyle.Radius = vg.Points(4)

	p.Add(lmScatter)
	p.Legend.Add("landmarks", lmScatter)

	// Make a scatter plotter for the ground truth track
	truthScatter, err := plotter.NewScatter(makePoints(truth))
	if err != nil {
		return nil, err
	}
	truthScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	truthScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(truthScatter)
	p.Legend.Add("truth", truthScatter)

	// Make a scatter plotter for the filter track
	filterScatter, err := plotter.NewScatter(makePoints(filtered))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	filterScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169}
	filterScatter.Shape = draw.CrossGlyph{}
	filterScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(filterScatter)
	p.Legend.Add("filtered", filterScatter)

	return p, nil
}

func makePoints(m *mat.Dense) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}

func landmarkPoints(m *landmark.Map) plotter.XYs {
	landmarks := m.Landmarks()
	pts := make(plotter.XYs, len(landmarks))
	for i, l := range landmarks {
		pts[i].X = l.X
		pts[i].Y = l.Y
	}

	return pts
}

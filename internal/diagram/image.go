package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	tensionColor     = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	compressionColor = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	zeroColor        = color.Gray{Y: 160}
	criticalColor    = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	supportColor     = color.RGBA{R: 0, G: 130, B: 60, A: 255}
)

// ExportTrussDiagram renders the truss with members colored by force state
// and saves it to filename. The image format follows the extension; a name
// without one gets ".png" appended. The name actually written is returned.
func ExportTrussDiagram(data TrussDiagramData, filename string) (string, error) {
	if len(data.Nodes) == 0 {
		return "", errors.New("diagram: truss has no nodes")
	}

	p := plot.New()
	p.Title.Text = "Truss Forces"
	if data.Title != "" {
		p.Title.Text = fmt.Sprintf("%s: member forces", data.Title)
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Legend.Top = true

	maxForce := 0.0
	for _, m := range data.Members {
		maxForce = math.Max(maxForce, math.Abs(m.Force))
	}

	legend := map[string]bool{}
	var forceLabels plotter.XYLabels
	for _, m := range data.Members {
		line, err := plotter.NewLine(plotter.XYs{{X: m.X1, Y: m.Y1}, {X: m.X2, Y: m.Y2}})
		if err != nil {
			return "", err
		}

		state := m.State(data.ZeroForce)
		line.LineStyle.Width = vg.Points(1.5)
		if maxForce > 0 {
			line.LineStyle.Width += vg.Points(2.5 * math.Abs(m.Force) / maxForce)
		}
		switch state {
		case "tension":
			line.LineStyle.Color = tensionColor
		case "compression":
			line.LineStyle.Color = compressionColor
		default:
			line.LineStyle.Color = zeroColor
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		}
		if m.Critical {
			line.LineStyle.Color = criticalColor
			state = "critical"
		}
		p.Add(line)

		if !legend[state] {
			legend[state] = true
			p.Legend.Add(state, line)
		}

		if maxForce > 0 {
			forceLabels.XYs = append(forceLabels.XYs, plotter.XY{X: (m.X1 + m.X2) / 2, Y: (m.Y1 + m.Y2) / 2})
			forceLabels.Labels = append(forceLabels.Labels, fmt.Sprintf("%s %.4g", m.ID, m.Force))
		}
	}

	joints := make(plotter.XYs, len(data.Nodes))
	var supports, loads plotter.XYs
	nodeLabels := plotter.XYLabels{XYs: make([]plotter.XY, len(data.Nodes)), Labels: make([]string, len(data.Nodes))}
	for i, n := range data.Nodes {
		joints[i] = plotter.XY{X: n.X, Y: n.Y}
		nodeLabels.XYs[i] = joints[i]
		nodeLabels.Labels[i] = n.ID
		if n.Supported {
			supports = append(supports, joints[i])
		}
		if n.Loaded {
			loads = append(loads, joints[i])
		}
	}

	jointScatter, err := plotter.NewScatter(joints)
	if err != nil {
		return "", err
	}
	jointScatter.GlyphStyle.Color = color.Black
	jointScatter.GlyphStyle.Radius = vg.Points(3)
	jointScatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(jointScatter)

	if len(supports) > 0 {
		s, err := plotter.NewScatter(supports)
		if err != nil {
			return "", err
		}
		s.GlyphStyle.Color = supportColor
		s.GlyphStyle.Radius = vg.Points(7)
		s.GlyphStyle.Shape = draw.PyramidGlyph{}
		p.Add(s)
		p.Legend.Add("support", s)
	}

	if len(loads) > 0 {
		s, err := plotter.NewScatter(loads)
		if err != nil {
			return "", err
		}
		s.GlyphStyle.Color = compressionColor
		s.GlyphStyle.Radius = vg.Points(5)
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		p.Add(s)
		p.Legend.Add("load", s)
	}

	names, err := plotter.NewLabels(nodeLabels)
	if err != nil {
		return "", err
	}
	names.Offset = vg.Point{X: vg.Points(5), Y: vg.Points(5)}
	p.Add(names)

	if len(forceLabels.Labels) > 0 {
		forces, err := plotter.NewLabels(forceLabels)
		if err != nil {
			return "", err
		}
		for i := range forces.TextStyle {
			forces.TextStyle[i].Color = color.Gray{Y: 70}
		}
		p.Add(forces)
	}

	// Leave room around the outermost joints for glyphs and labels
	minX, minY, maxX, maxY := data.bounds()
	pad := 0.1 * math.Max(math.Max(maxX-minX, maxY-minY), 1)
	p.X.Min, p.X.Max = minX-pad, maxX+pad
	p.Y.Min, p.Y.Max = minY-pad, maxY+pad

	// Determine file format from extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff":
	default:
		filename += ".png"
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	width := 10 * vg.Inch
	height := 6 * vg.Inch
	if err := p.Save(width, height, filename); err != nil {
		return "", err
	}
	return filename, nil
}

package diagram

import (
	"fmt"
	"math"
	"strings"
)

// ForceBar is one row of the member force chart
type ForceBar struct {
	ID       string
	Force    float64
	Critical bool
}

// Half width of the force chart, in characters
const halfBar = 20

// DefaultSketchWidth is the column count of DrawASCIITruss when none is given
const DefaultSketchWidth = 61

// DrawForceChart draws member forces as horizontal bars, compression to the
// left of the axis and tension to the right
func DrawForceChart(bars []ForceBar) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  MEMBER FORCES   compression ◄ │ ► tension\n")
	sb.WriteString("  ─────────────\n\n")

	idWidth := 6
	maxForce := 0.0
	anyCritical := false
	for _, b := range bars {
		idWidth = max(idWidth, len(b.ID))
		maxForce = math.Max(maxForce, math.Abs(b.Force))
		anyCritical = anyCritical || b.Critical
	}

	for _, b := range bars {
		n := 0
		if maxForce > 0 {
			n = int(math.Round(math.Abs(b.Force) / maxForce * halfBar))
		}
		left := strings.Repeat(" ", halfBar)
		right := strings.Repeat(" ", halfBar)
		if b.Force < 0 {
			left = strings.Repeat(" ", halfBar-n) + strings.Repeat("█", n)
		} else {
			right = strings.Repeat("█", n) + strings.Repeat(" ", halfBar-n)
		}

		mark := ""
		if b.Critical {
			mark = " *"
		}
		fmt.Fprintf(&sb, "  %-*s %s│%s %14.4f%s\n", idWidth, b.ID, left, right, b.Force, mark)
	}

	if anyCritical {
		sb.WriteString("\n  * governs the load capacity\n")
	}
	return sb.String()
}

// DrawASCIITruss sketches the truss geometry on a character grid. Supported
// joints are drawn as '^', loaded joints as '*' and the rest as 'o'.
func DrawASCIITruss(data TrussDiagramData, width int) string {
	if len(data.Nodes) == 0 {
		return ""
	}
	if width < 11 {
		width = DefaultSketchWidth
	}

	minX, minY, maxX, maxY := data.bounds()
	spanX, spanY := maxX-minX, maxY-minY

	// Terminal cells are about twice as tall as they are wide
	height := 1
	switch {
	case spanX > 0 && spanY > 0:
		height = int(math.Round(float64(width-1)/2*spanY/spanX)) + 1
	case spanX == 0 && spanY > 0:
		height = width/2 + 1
	}
	height = min(max(height, 1), 2*width)

	col := func(x float64) int {
		if spanX == 0 {
			return (width - 1) / 2
		}
		return round((x - minX) / spanX * float64(width-1))
	}
	row := func(y float64) int {
		if spanY == 0 {
			return 0
		}
		return round((maxY - y) / spanY * float64(height-1))
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	// Diagonals first; horizontal and vertical members are drawn over them
	for _, straight := range []bool{false, true} {
		for _, m := range data.Members {
			c1, r1 := col(m.X1), row(m.Y1)
			c2, r2 := col(m.X2), row(m.Y2)
			dc, dr := c2-c1, r2-r1
			if (dc == 0 || dr == 0) != straight {
				continue
			}

			var ch rune
			switch {
			case dc == 0:
				ch = '|'
			case dr == 0:
				ch = '-'
			case (dc > 0) == (dr > 0):
				ch = '\\'
			default:
				ch = '/'
			}

			steps := max(abs(dc), abs(dr))
			for s := 0; s <= steps; s++ {
				c, r := c1, r1
				if steps > 0 {
					c = c1 + round(float64(dc*s)/float64(steps))
					r = r1 + round(float64(dr*s)/float64(steps))
				}
				grid[r][c] = ch
			}
		}
	}

	for _, n := range data.Nodes {
		ch := 'o'
		switch {
		case n.Supported:
			ch = '^'
		case n.Loaded:
			ch = '*'
		}
		grid[row(n.Y)][col(n.X)] = ch
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for _, line := range grid {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n  ^ support   * load   o joint\n")
	return sb.String()
}

// DrawSummaryBox frames a title and result lines in a double-line box
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	inner := len([]rune(title))
	for _, line := range lines {
		inner = max(inner, len([]rune(line)))
	}
	inner += 4

	border := strings.Repeat("═", inner)
	fmt.Fprintf(&sb, "  ╔%s╗\n", border)
	fmt.Fprintf(&sb, "  ║  %-*s  ║\n", inner-4, title)
	fmt.Fprintf(&sb, "  ╠%s╣\n", border)
	for _, line := range lines {
		fmt.Fprintf(&sb, "  ║  %-*s  ║\n", inner-4, line)
	}
	fmt.Fprintf(&sb, "  ╚%s╝\n", border)

	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// round rounds halves up regardless of sign
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

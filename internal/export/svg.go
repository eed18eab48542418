package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/fynnbrem/homepage/internal/collider"
	"github.com/fynnbrem/homepage/internal/physics"
	"github.com/fynnbrem/homepage/internal/viz"
)

const background = "#0a0a0a"

type Point struct{ X, Y float64 }

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}

	var sb strings.Builder
	header(&sb, float64(canvas.PixelWidth())*scale, float64(canvas.PixelHeight())*scale)
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", color))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ArenaToSVG draws the arena at its own scale: walls, fading trails and
// balls in their colors. Arena and SVG share the y-down orientation.
func ArenaToSVG(a *physics.Arena) string {
	b := a.Bounds
	var sb strings.Builder
	header(&sb, b.Width(), b.Height())
	sb.WriteString(fmt.Sprintf("<g transform=\"translate(%g %g)\">\n", -b.Left, -b.Top))
	sb.WriteString(fmt.Sprintf("<rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"#444466\"/>\n",
		b.Left, b.Top, b.Width(), b.Height()))

	for _, ball := range a.Balls {
		color := ballColor(ball)
		// Path is most recent first; older segments fade out.
		for i := 1; i < len(ball.Path); i++ {
			p0, p1 := ball.Path[i-1], ball.Path[i]
			opacity := 1 - float64(i)/float64(len(ball.Path))
			sb.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"2\" stroke-opacity=\"%.2f\"/>\n",
				p0[0], p0[1], p1[0], p1[1], color, opacity))
		}
	}
	for _, ball := range a.Balls {
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%g\" fill=\"%s\"><title>%s</title></circle>\n",
			ball.Pos[0], ball.Pos[1], ball.Radius, ballColor(ball), ball.ID))
	}
	if p, ok := a.Pointer(); ok {
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"4\" fill=\"none\" stroke=\"#ffffff\"/>\n", p.Pos[0], p.Pos[1]))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func ballColor(b *physics.Ball) string {
	if b.Color == "" {
		return "#e37e21"
	}
	return b.Color
}

// PhasePoints maps each record to (sqrt(m1)*v1, sqrt(m2)*v2). Energy
// conservation puts every point on one circle.
func PhasePoints(cfg collider.BlockConfig, records []collider.Record) []Point {
	sm, sM := math.Sqrt(cfg.Minor.Mass), math.Sqrt(cfg.Major.Mass)
	points := make([]Point, 0, len(records)+1)
	points = append(points, Point{sm * cfg.Minor.Vel, sM * cfg.Major.Vel})
	for _, r := range records {
		points = append(points, Point{sm * r.MinorVel, sM * r.MajorVel})
	}
	return points
}

// RecordsToSVG draws the phase chart of a pi run.
func RecordsToSVG(cfg collider.BlockConfig, records []collider.Record, size int) string {
	return TrajectoryToSVG(PhasePoints(cfg, records), size, size, "#e37e21")
}

// TrajectoryToSVG draws points as one path, scaled to fit with 10% padding.
// The y axis points up.
func TrajectoryToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

package export

import (
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/fynnbrem/homepage/internal/collider"
	"github.com/fynnbrem/homepage/internal/physics"
	"github.com/fynnbrem/homepage/internal/viz"
)

func wellFormed(t *testing.T, svg string) {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := d.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("malformed svg: %v", err)
		}
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2, "#fff") != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(5, 6)
	svg := CanvasToSVG(c, 2, "#00ff00")
	wellFormed(t, svg)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Error("unexpected size")
	}
}

func TestArenaToSVG(t *testing.T) {
	a := physics.NewArena(physics.NewBounds(600, 700), physics.DefaultRoster()...)
	w := physics.DefaultWorld()
	for i := 0; i < 5; i++ {
		a.Step(w)
	}
	a.SetPointer(physics.Vec(10, 10))

	svg := ArenaToSVG(a)
	wellFormed(t, svg)
	if n := strings.Count(svg, "<circle"); n != 4 {
		t.Errorf("expected 3 balls and the pointer, got %d circles", n)
	}
	// five samples per ball give four segments
	if n := strings.Count(svg, "<line"); n != 12 {
		t.Errorf("expected 12 trail segments, got %d", n)
	}
	for _, b := range a.Balls {
		if !strings.Contains(svg, b.Color) {
			t.Errorf("color %s missing", b.Color)
		}
	}
}

func TestPhasePointsOnCircle(t *testing.T) {
	setup, err := collider.SetupForDigits(3)
	if err != nil {
		t.Fatal(err)
	}
	records, err := collider.Simulate(setup.Blocks, collider.Options{})
	if err != nil {
		t.Fatal(err)
	}

	points := PhasePoints(setup.Blocks, records)
	if len(points) != len(records)+1 {
		t.Fatalf("expected %d points, got %d", len(records)+1, len(points))
	}
	radius := math.Hypot(points[0].X, points[0].Y)
	for i, p := range points {
		if math.Abs(math.Hypot(p.X, p.Y)-radius) > radius*1e-9 {
			t.Fatalf("point %d off the energy circle", i)
		}
	}

	svg := RecordsToSVG(setup.Blocks, records, 400)
	wellFormed(t, svg)
	if strings.Count(svg, " L") != len(records) {
		t.Errorf("expected %d path segments", len(records))
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]Point{{1, 1}}, 100, 100, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
	svg := TrajectoryToSVG([]Point{{0, 0}, {1, 1}}, 100, 100, "#fff")
	wellFormed(t, svg)
	// y axis points up: the first point is bottom left
	if !strings.Contains(svg, "M8.3,91.7") {
		t.Errorf("unexpected path start in %s", svg)
	}
}

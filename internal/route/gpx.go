package route

import (
	"errors"
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"
)

// ErrNoPoints is returned when a GPX file holds no usable points
var ErrNoPoints = errors.New("no track or route points found")

// LoadGPX reads a GPX file and returns its points in file order
func LoadGPX(path string) ([]TracePoint, error) {
	gpxFile, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	points := collectPoints(gpxFile)
	if len(points) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPoints)
	}
	return points, nil
}

// ParseGPX parses GPX content held in memory
func ParseGPX(data []byte) ([]TracePoint, error) {
	gpxFile, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing gpx: %w", err)
	}
	points := collectPoints(gpxFile)
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}

// collectPoints flattens tracks -> segments -> points. Files without track
// points fall back to their routes.
func collectPoints(g *gpx.GPX) []TracePoint {
	var points []TracePoint

	add := func(p *gpx.GPXPoint) {
		var ele float64
		if p.Elevation.NotNull() {
			ele = p.Elevation.Value()
		}
		points = append(points, TracePoint{
			Lat:       p.Latitude,
			Lon:       p.Longitude,
			Elevation: ele,
		})
	}

	for _, track := range g.Tracks {
		for _, segment := range track.Segments {
			for i := range segment.Points {
				add(&segment.Points[i])
			}
		}
	}

	if len(points) == 0 {
		for _, r := range g.Routes {
			for i := range r.Points {
				add(&r.Points[i])
			}
		}
	}

	return points
}

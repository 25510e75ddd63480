package shapes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmccoystephenson/jpo-ppm/internal/geo"
)

// ParseError reports a malformed map-file line, naming the line number.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("shapes: parse error at line %d: %s", e.Line, e.Reason)
}

// Load reads a CSV geofence map file and returns the entities it
// describes, in source order. Lines beginning with '#' and blank lines
// (after trimming) are skipped. A malformed line aborts the load with a
// *ParseError naming the offending line.
func Load(path string) ([]geo.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shapes: open %s: %w", path, err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]geo.Entity, error) {
	scanner := bufio.NewScanner(r)
	var entities []geo.Entity
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entity, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Reason: err.Error()}
		}
		entities = append(entities, entity)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("shapes: read: %w", err)
	}

	return entities, nil
}

func parseLine(line string) (geo.Entity, error) {
	fields := splitTrim(line, ',')
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty row")
	}

	switch strings.ToLower(fields[0]) {
	case "edge":
		return parseEdge(fields)
	case "circle":
		return parseCircle(fields)
	case "grid":
		return parseGrid(fields)
	default:
		return nil, fmt.Errorf("unknown shape type %q", fields[0])
	}
}

// parseEdge expects: edge, id, lat_a, lon_a, lat_b, lon_b, width_m
func parseEdge(f []string) (geo.Entity, error) {
	if len(f) != 7 {
		return nil, fmt.Errorf("edge: expected 7 fields, got %d", len(f))
	}
	latA, err := parseFloat(f[2], "lat_a")
	if err != nil {
		return nil, err
	}
	lonA, err := parseFloat(f[3], "lon_a")
	if err != nil {
		return nil, err
	}
	latB, err := parseFloat(f[4], "lat_b")
	if err != nil {
		return nil, err
	}
	lonB, err := parseFloat(f[5], "lon_b")
	if err != nil {
		return nil, err
	}
	width, err := parseFloat(f[6], "width_m")
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, fmt.Errorf("edge: width_m must be positive")
	}

	return geo.Edge{
		IDValue: f[1],
		A:       geo.Point{Lat: latA, Lon: lonA},
		B:       geo.Point{Lat: latB, Lon: lonB},
		WidthM:  width,
	}, nil
}

// parseCircle expects: circle, id, lat, lon, radius_m
func parseCircle(f []string) (geo.Entity, error) {
	if len(f) != 5 {
		return nil, fmt.Errorf("circle: expected 5 fields, got %d", len(f))
	}
	lat, err := parseFloat(f[2], "lat")
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat(f[3], "lon")
	if err != nil {
		return nil, err
	}
	radius, err := parseFloat(f[4], "radius_m")
	if err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, fmt.Errorf("circle: radius_m must be positive")
	}

	return geo.Circle{
		IDValue: f[1],
		Center:  geo.Point{Lat: lat, Lon: lon},
		RadiusM: radius,
	}, nil
}

// parseGrid expects: grid, id, sw_lat, sw_lon, ne_lat, ne_lon, row, col
func parseGrid(f []string) (geo.Entity, error) {
	if len(f) != 8 {
		return nil, fmt.Errorf("grid: expected 8 fields, got %d", len(f))
	}
	swLat, err := parseFloat(f[2], "sw_lat")
	if err != nil {
		return nil, err
	}
	swLon, err := parseFloat(f[3], "sw_lon")
	if err != nil {
		return nil, err
	}
	neLat, err := parseFloat(f[4], "ne_lat")
	if err != nil {
		return nil, err
	}
	neLon, err := parseFloat(f[5], "ne_lon")
	if err != nil {
		return nil, err
	}
	row, err := parseUint(f[6], "row")
	if err != nil {
		return nil, err
	}
	col, err := parseUint(f[7], "col")
	if err != nil {
		return nil, err
	}

	cell := geo.Bounds{SW: geo.Point{Lat: swLat, Lon: swLon}, NE: geo.Point{Lat: neLat, Lon: neLon}}
	if !cell.Valid() {
		return nil, fmt.Errorf("grid: sw must be southwest of ne")
	}

	return geo.Grid{
		IDValue: f[1],
		Cell:    cell,
		Row:     row,
		Col:     col,
	}, nil
}

func parseFloat(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid float %q", field, s)
	}
	return v, nil
}

func parseUint(s, field string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid unsigned integer %q", field, s)
	}
	return uint32(v), nil
}

// splitTrim splits s on sep and trims whitespace from every field.
func splitTrim(s string, sep byte) []string {
	parts := strings.Split(s, string(sep))
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

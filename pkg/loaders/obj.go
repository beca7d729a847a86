package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// LoadOBJ loads an OBJ file and returns its vertex and face data
func LoadOBJ(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParseOBJ reads "v" and "f" records. Face corners may carry texture and normal
// indices ("7/1/3"), which are ignored. Negative indices count back from the most
// recent vertex; positive indices may refer to vertices defined later in the file and
// are checked once the whole file is read. Polygons with more than three corners are
// split into a fan. Every other record type is skipped.
func ParseOBJ(r io.Reader) (*MeshData, error) {
	data := &MeshData{}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseOBJVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			data.Vertices = append(data.Vertices, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", lineNum, len(fields)-1)
			}
			indices := make([]int, 0, len(fields)-1)
			for _, corner := range fields[1:] {
				idx, err := parseOBJIndex(corner, len(data.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				indices = append(indices, idx)
			}
			data.addPolygon(indices)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}

	for i, face := range data.Faces {
		for _, idx := range face {
			if idx >= len(data.Vertices) {
				return nil, fmt.Errorf("face %d: vertex %d is never defined (%d vertices)", i, idx+1, len(data.Vertices))
			}
		}
	}

	return data, nil
}

func parseOBJVertex(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var coords [3]float64
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid vertex coordinate %q: %w", fields[i], err)
		}
		coords[i] = val
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseOBJIndex converts a one-based (or negative relative) corner reference to a zero-based index
func parseOBJIndex(corner string, vertexCount int) (int, error) {
	ref := corner
	if slash := strings.IndexByte(corner, '/'); slash >= 0 {
		ref = corner[:slash]
	}

	idx, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q: %w", corner, err)
	}

	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += vertexCount
	default:
		return 0, fmt.Errorf("face index 0 is not valid")
	}

	if idx < 0 {
		return 0, fmt.Errorf("face index %q refers to a missing vertex (%d defined)", corner, vertexCount)
	}
	return idx, nil
}

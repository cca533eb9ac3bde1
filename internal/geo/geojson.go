// Package geo loads the department geometry file and joins aggregated
// spending onto it by normalized region name.
package geo

import (
	"encoding/json"
	"fmt"
	"os"

	"inversiones/internal/core"
)

// nameProperty is the single GeoJSON feature property the join relies on.
const nameProperty = "NOMBRE_DPT"

type (
	// FeatureCollection is the subset of the GeoJSON document the dashboard
	// needs: one feature per department with a name property. Geometry is
	// carried through opaquely for the client-side map.
	FeatureCollection struct {
		Type     string    `json:"type"`
		Features []Feature `json:"features"`
	}

	Feature struct {
		Type       string          `json:"type"`
		Properties map[string]any  `json:"properties"`
		Geometry   json.RawMessage `json:"geometry"`
	}

	// RegionValue is one joined map entry: the feature's display name, its
	// normalized join key, and the aggregate amount for that department.
	RegionValue struct {
		Name   string  `json:"name"`
		Key    string  `json:"key"`
		Amount float64 `json:"amount"`
	}
)

// Load reads and decodes the geometry file. A missing or unreadable file is
// an error the caller downgrades to "map section unavailable"; it must not
// take the session down.
func Load(path string) (*FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geometry file %s: %w", path, err)
	}
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode geometry file %s: %w", path, err)
	}
	return &fc, nil
}

// Name returns the feature's region name property, or "" when absent.
func (f Feature) Name() string {
	if v, ok := f.Properties[nameProperty].(string); ok {
		return v
	}
	return ""
}

// Join matches per-department sums against the features by normalized name.
// Features without a matching department get amount 0; sums without a
// matching feature are silently left off the map, exactly like an unmatched
// choropleth location.
func (fc *FeatureCollection) Join(sums []core.GroupSum) []RegionValue {
	byKey := make(map[string]float64, len(sums))
	for _, s := range sums {
		byKey[core.Normalize(s.Name)] += s.Amount
	}

	out := make([]RegionValue, 0, len(fc.Features))
	for _, f := range fc.Features {
		name := f.Name()
		if name == "" {
			continue
		}
		key := core.Normalize(name)
		out = append(out, RegionValue{Name: name, Key: key, Amount: byKey[key]})
	}
	return out
}

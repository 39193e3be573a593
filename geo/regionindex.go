package geo

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// nameProperty is the GeoJSON feature property carrying the state name in
// the source boundary file. joinProperty is the property the server adds
// to every feature it publishes, holding the normalized region key that
// choropleth locations join against.
const (
	nameProperty = "NAME_1"
	joinProperty = "State_Name"
)

// RegionIndex maps canonical region keys to boundary geometry. It is built
// once at startup and read-only afterwards, so it is safe to share across
// requests.
type RegionIndex struct {
	boundaries map[string]geom.T
	published  []byte
}

// LoadRegionIndex reads a GeoJSON FeatureCollection of state boundaries and
// indexes each feature under its normalized region key. This is the one
// load that is allowed to be fatal to the caller: without boundaries no map
// can be rendered.
func LoadRegionIndex(path string) (*RegionIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading boundary file %s: %w", path, err)
	}
	return ParseRegionIndex(data)
}

// ParseRegionIndex builds a RegionIndex from raw GeoJSON bytes.
func ParseRegionIndex(data []byte) (*RegionIndex, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing boundary GeoJSON: %w", err)
	}

	idx := &RegionIndex{boundaries: make(map[string]geom.T, len(fc.Features))}
	kept := geojson.FeatureCollection{}
	skipped := 0
	for _, feature := range fc.Features {
		name, _ := feature.Properties[nameProperty].(string)
		key := NormalizeRegion(name)
		if key == "" || feature.Geometry == nil {
			skipped++
			continue
		}
		idx.boundaries[key] = feature.Geometry

		// The served collection carries the canonical key under the
		// property name choropleth payloads point at.
		if feature.Properties == nil {
			feature.Properties = make(map[string]interface{}, 1)
		}
		feature.Properties[joinProperty] = key
		kept.Features = append(kept.Features, feature)
	}

	if len(idx.boundaries) == 0 {
		return nil, fmt.Errorf("boundary GeoJSON contains no usable features")
	}

	published, err := json.Marshal(&kept)
	if err != nil {
		return nil, fmt.Errorf("encoding published boundaries: %w", err)
	}
	idx.published = published
	if skipped > 0 {
		log.Printf("RegionIndex: skipped %d features without a usable %s property", skipped, nameProperty)
	}
	log.Printf("RegionIndex: indexed %d region boundaries", len(idx.boundaries))
	return idx, nil
}

// BoundaryFor returns the geometry for a canonical region key. A miss is
// not an error; the caller drops the region from map output only.
func (idx *RegionIndex) BoundaryFor(regionKey string) (geom.T, bool) {
	g, ok := idx.boundaries[NormalizeRegion(regionKey)]
	return g, ok
}

// Has reports whether a region key resolves to a boundary.
func (idx *RegionIndex) Has(regionKey string) bool {
	_, ok := idx.BoundaryFor(regionKey)
	return ok
}

// Size returns the number of indexed boundaries.
func (idx *RegionIndex) Size() int {
	return len(idx.boundaries)
}

// Published returns the boundary FeatureCollection as served to map
// consumers: only the indexed features, each carrying its canonical region
// key in the State_Name property.
func (idx *RegionIndex) Published() []byte {
	return idx.published
}

package handlers

import (
	"log"
	"net/http"
)

// RegionBoundaries serves the boundary FeatureCollection the choropleth
// payloads join against. Each feature carries its canonical region key in
// the State_Name property, matching the feature_id_key the map payloads
// advertise. Boundaries never change at runtime, so the response is
// cacheable for a day.
func RegionBoundaries(dc *DataContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		if _, err := w.Write(dc.Regions.Published()); err != nil {
			log.Printf("RegionBoundaries: write failed: %v", err)
		}
	}
}

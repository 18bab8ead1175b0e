package hexagg

import (
	"ft-server/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func closedRing(boundary []models.LngLat) orb.Ring {
	ring := make(orb.Ring, 0, len(boundary)+1)
	for _, p := range boundary {
		ring = append(ring, orb.Point{p.Lng(), p.Lat()})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// ToFeatureCollection renders hexagons as polygons with closed rings.
func ToFeatureCollection(hexagons []models.Hexagon) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, h := range hexagons {
		f := geojson.NewFeature(orb.Polygon{closedRing(h.Boundary)})
		f.Properties["h3Index"] = h.CellID
		f.Properties["density"] = h.Density
		f.Properties["pointCount"] = h.PointCount
		f.Properties["totalValue"] = h.TotalValue
		fc.Append(f)
	}
	return fc
}

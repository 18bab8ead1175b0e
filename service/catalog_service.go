package services

import (
	"fmt"
	"sort"

	"ft-server/catalog"
	"ft-server/dao/redis"
	"ft-server/db"
	"ft-server/logging"
	"ft-server/models"

	"github.com/golang/geo/s2"
	"github.com/rs/zerolog"
)

// CatalogService publishes the catalog into the POI geo index and answers
// proximity queries from it.
type CatalogService struct {
	poiDao  *redis.RedisPoiDAO
	catalog catalog.Catalog
	log     zerolog.Logger
}

func NewCatalogService(poiDao *redis.RedisPoiDAO, c catalog.Catalog) *CatalogService {
	return &CatalogService{poiDao: poiDao, catalog: c.WithIDs(), log: logging.WithComponent("CatalogService")}
}

func (cs *CatalogService) Catalog() catalog.Catalog {
	return cs.catalog
}

// Publish upserts every entry and returns how many were written.
func (cs *CatalogService) Publish() (int, error) {
	for i, p := range cs.catalog {
		if err := cs.poiDao.UpsertPOI(p); err != nil {
			return i, fmt.Errorf("publishing %q: %w", p.Name, err)
		}
	}
	cs.log.Info().Int("count", len(cs.catalog)).Msg("catalog published")
	return len(cs.catalog), nil
}

// Nearby lists entries within radiusKm of (lat,lng), nearest first.
func (cs *CatalogService) Nearby(lat, lng, radiusKm float64) ([]models.NearbyPOI, error) {
	pois, err := cs.poiDao.GetNearbyPOIs(lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}
	origin := s2.LatLngFromDegrees(lat, lng)
	out := make([]models.NearbyPOI, len(pois))
	for i, p := range pois {
		km := origin.Distance(s2.LatLngFromDegrees(p.Lat, p.Lng)).Radians() * db.EARTH_RADIUS_KM
		out[i] = models.NearbyPOI{PointOfInterest: p, DistanceKm: km}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}

package redis

import (
	"fmt"
	"sort"
	"strings"

	"ft-server/db"
	"ft-server/logging"
	"ft-server/models"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const POIS_GEO_KEY_V1 = "pois_geo_v1"
const POIS_GEO_PLACE_MEMBER_FORMAT_V1 = "pois_geo_place_v1:%s"

// RedisPoiDAO indexes catalog entries by position.
type RedisPoiDAO struct {
	client db.RedisClient
	log    zerolog.Logger
}

func NewRedisPoiDAO(client db.RedisClient) *RedisPoiDAO {
	return &RedisPoiDAO{client: client, log: logging.WithComponent("RedisPoiDAO")}
}

// UpsertPOI stores p as a geolocation with its JSON. p.ID must be set.
func (dao *RedisPoiDAO) UpsertPOI(p models.PointOfInterest) error {
	if p.ID == "" {
		return fmt.Errorf("poi %q has no id", p.Name)
	}
	ctx := dao.client.GetContext()
	key := fmt.Sprintf(POIS_GEO_PLACE_MEMBER_FORMAT_V1, p.ID)
	return dao.client.AddLocationWithJSON(ctx, POIS_GEO_KEY_V1, key, p.Lat, p.Lng, p)
}

// GetNearbyPOIs returns entries within radiusKm, nearest first.
func (dao *RedisPoiDAO) GetNearbyPOIs(lat, lng, radiusKm float64) ([]models.PointOfInterest, error) {
	raw, err := dao.client.GetLocationsWithinRadius(POIS_GEO_KEY_V1, lat, lng, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("failed to get pois: %w", err)
	}

	pois := make([]models.PointOfInterest, len(raw))
	for i, s := range raw {
		if err := json.Unmarshal([]byte(s), &pois[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal poi JSON: %w", err)
		}
	}
	dao.log.Debug().Int("count", len(pois)).Float64("radius_km", radiusKm).Msg("nearby pois")
	return pois, nil
}

// ListPOIIDs returns the ids of every indexed entry, sorted.
func (dao *RedisPoiDAO) ListPOIIDs() ([]string, error) {
	keys, err := dao.client.Keys(fmt.Sprintf(POIS_GEO_PLACE_MEMBER_FORMAT_V1, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list poi keys: %w", err)
	}
	prefix := fmt.Sprintf(POIS_GEO_PLACE_MEMBER_FORMAT_V1, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	sort.Strings(ids)
	return ids, nil
}

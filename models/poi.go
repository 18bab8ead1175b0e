package models

// Category tags a point of interest with the temporal profile it follows.
type Category string

const (
	CategoryTourist     Category = "tourist"
	CategoryShopping    Category = "shopping"
	CategoryBusiness    Category = "business"
	CategoryTransport   Category = "transport"
	CategoryNightlife   Category = "nightlife"
	CategoryPark        Category = "park"
	CategoryEducation   Category = "education"
	CategoryResidential Category = "residential"
)

// Categories lists every known category in a fixed order.
var Categories = []Category{
	CategoryTourist,
	CategoryShopping,
	CategoryBusiness,
	CategoryTransport,
	CategoryNightlife,
	CategoryPark,
	CategoryEducation,
	CategoryResidential,
}

// PointOfInterest is a named busy area contributing a gaussian kernel to the field.
// Spread is expressed in degrees.
type PointOfInterest struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name" validate:"required"`
	Lat       float64  `json:"lat" validate:"min=-90,max=90"`
	Lng       float64  `json:"lng" validate:"min=-180,max=180"`
	Category  Category `json:"type" validate:"oneof=tourist shopping business transport nightlife park education residential"`
	Intensity float64  `json:"intensity" validate:"min=0,max=100"`
	Spread    float64  `json:"spread" validate:"gt=0"`
}

// NearbyPOI pairs a catalog entry with its distance from a query point.
type NearbyPOI struct {
	PointOfInterest
	DistanceKm float64 `json:"distanceKm"`
}

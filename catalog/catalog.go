// Package catalog holds the static tables of Paris busy areas.
package catalog

import (
	"ft-server/models"

	"github.com/google/uuid"
)

// Catalog is an ordered, read-only list of points of interest.
type Catalog []models.PointOfInterest

func poi(name string, lat, lng, intensity, spread float64, cat models.Category) models.PointOfInterest {
	return models.PointOfInterest{
		ID:        POIID(name),
		Name:      name,
		Lat:       lat,
		Lng:       lng,
		Category:  cat,
		Intensity: intensity,
		Spread:    spread,
	}
}

// POIID derives a stable identifier from a POI name.
func POIID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("ft-server/poi/"+name)).String()
}

// WithIDs returns a copy of c where entries missing an ID get one derived from their name.
func (c Catalog) WithIDs() Catalog {
	out := make(Catalog, len(c))
	for i, p := range c {
		if p.ID == "" {
			p.ID = POIID(p.Name)
		}
		out[i] = p
	}
	return out
}

// Categories returns the distinct categories used by the catalog, in first-seen order.
func (c Catalog) Categories() []models.Category {
	seen := make(map[models.Category]struct{})
	var out []models.Category
	for _, p := range c {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// CategoryChecker is satisfied by modulation tables.
type CategoryChecker interface {
	Has(cat models.Category) bool
}

// MissingCategories lists categories used by c that table has no curves for.
// Lookups for those fall back to neutral multipliers.
func (c Catalog) MissingCategories(table CategoryChecker) []models.Category {
	var missing []models.Category
	for _, cat := range c.Categories() {
		if !table.Has(cat) {
			missing = append(missing, cat)
		}
	}
	return missing
}

// Default returns the busy areas driving the density field.
func Default() Catalog {
	return Catalog{
		// Major tourist hotspots
		poi("Tour Eiffel", 48.8584, 2.2945, 100, 0.008, models.CategoryTourist),
		poi("Louvre", 48.8606, 2.3376, 95, 0.012, models.CategoryTourist),
		poi("Notre-Dame", 48.8530, 2.3499, 85, 0.007, models.CategoryTourist),
		poi("Sacré-Cœur", 48.8867, 2.3431, 90, 0.009, models.CategoryTourist),
		poi("Arc de Triomphe", 48.8738, 2.2950, 85, 0.007, models.CategoryTourist),
		poi("Musée d'Orsay", 48.8600, 2.3266, 75, 0.006, models.CategoryTourist),
		poi("Centre Pompidou", 48.8606, 2.3522, 70, 0.006, models.CategoryTourist),
		poi("Trocadéro", 48.8616, 2.2875, 80, 0.008, models.CategoryTourist),
		poi("Invalides", 48.8550, 2.3125, 65, 0.007, models.CategoryTourist),

		// Shopping & commercial districts
		poi("Champs-Élysées Nord", 48.8738, 2.3050, 90, 0.006, models.CategoryShopping),
		poi("Champs-Élysées Centre", 48.8710, 2.3025, 95, 0.007, models.CategoryShopping),
		poi("Champs-Élysées Sud", 48.8680, 2.3000, 85, 0.006, models.CategoryShopping),
		poi("Galeries Lafayette", 48.8738, 2.3320, 88, 0.006, models.CategoryShopping),
		poi("Printemps", 48.8745, 2.3285, 82, 0.005, models.CategoryShopping),
		poi("Le Marais Nord", 48.8600, 2.3622, 78, 0.008, models.CategoryShopping),
		poi("Le Marais Sud", 48.8540, 2.3600, 75, 0.007, models.CategoryShopping),
		poi("Saint-Germain", 48.8539, 2.3338, 72, 0.009, models.CategoryShopping),
		poi("Les Halles", 48.8622, 2.3461, 85, 0.008, models.CategoryShopping),
		poi("Rue de Rivoli", 48.8590, 2.3420, 70, 0.012, models.CategoryShopping),
		poi("Boulevard Haussmann", 48.8750, 2.3300, 75, 0.010, models.CategoryShopping),

		// Business districts
		poi("La Défense Centre", 48.8918, 2.2362, 85, 0.012, models.CategoryBusiness),
		poi("La Défense Est", 48.8900, 2.2450, 75, 0.008, models.CategoryBusiness),
		poi("Opéra", 48.8700, 2.3319, 80, 0.008, models.CategoryBusiness),
		poi("Bourse", 48.8690, 2.3410, 70, 0.006, models.CategoryBusiness),
		poi("Saint-Lazare Business", 48.8750, 2.3260, 72, 0.006, models.CategoryBusiness),

		// Transport hubs
		poi("Gare du Nord", 48.8809, 2.3553, 92, 0.009, models.CategoryTransport),
		poi("Gare de l'Est", 48.8768, 2.3591, 85, 0.007, models.CategoryTransport),
		poi("Gare de Lyon", 48.8443, 2.3735, 88, 0.009, models.CategoryTransport),
		poi("Gare Montparnasse", 48.8410, 2.3219, 82, 0.008, models.CategoryTransport),
		poi("Gare Saint-Lazare", 48.8764, 2.3247, 85, 0.007, models.CategoryTransport),
		poi("Châtelet", 48.8584, 2.3474, 90, 0.010, models.CategoryTransport),
		poi("République", 48.8675, 2.3640, 75, 0.007, models.CategoryTransport),
		poi("Nation", 48.8485, 2.3958, 70, 0.006, models.CategoryTransport),
		poi("Bastille", 48.8533, 2.3692, 78, 0.007, models.CategoryTransport),

		// Entertainment & nightlife
		poi("Pigalle", 48.8821, 2.3375, 70, 0.006, models.CategoryNightlife),
		poi("Moulin Rouge", 48.8841, 2.3323, 75, 0.004, models.CategoryNightlife),
		poi("Oberkampf", 48.8656, 2.3778, 68, 0.007, models.CategoryNightlife),
		poi("Canal Saint-Martin", 48.8710, 2.3650, 65, 0.008, models.CategoryNightlife),
		poi("Grands Boulevards", 48.8710, 2.3420, 72, 0.008, models.CategoryNightlife),

		// Parks spread wider at lower intensity
		poi("Jardin du Luxembourg", 48.8462, 2.3372, 55, 0.012, models.CategoryPark),
		poi("Tuileries", 48.8634, 2.3275, 60, 0.010, models.CategoryPark),
		poi("Champ de Mars", 48.8556, 2.2986, 70, 0.012, models.CategoryPark),
		poi("Parc Monceau", 48.8794, 2.3089, 45, 0.006, models.CategoryPark),
		poi("Buttes-Chaumont", 48.8811, 2.3828, 40, 0.010, models.CategoryPark),

		// Universities & cultural
		poi("Quartier Latin", 48.8497, 2.3471, 70, 0.010, models.CategoryEducation),
		poi("Sorbonne", 48.8489, 2.3443, 65, 0.006, models.CategoryEducation),
		poi("Odéon", 48.8515, 2.3388, 62, 0.005, models.CategoryEducation),

		// Secondary neighbourhoods
		poi("Belleville", 48.8717, 2.3850, 50, 0.008, models.CategoryResidential),
		poi("Ménilmontant", 48.8660, 2.3900, 45, 0.007, models.CategoryResidential),
		poi("Batignolles", 48.8867, 2.3172, 42, 0.008, models.CategoryResidential),
		poi("Alésia", 48.8280, 2.3270, 45, 0.007, models.CategoryResidential),
		poi("Convention", 48.8375, 2.2968, 40, 0.007, models.CategoryResidential),
		poi("Denfert-Rochereau", 48.8337, 2.3326, 48, 0.006, models.CategoryResidential),
		poi("Place d'Italie", 48.8311, 2.3558, 55, 0.008, models.CategoryResidential),
		poi("Bercy", 48.8396, 2.3825, 52, 0.009, models.CategoryResidential),
		poi("Père Lachaise", 48.8614, 2.3933, 35, 0.010, models.CategoryPark),
	}
}

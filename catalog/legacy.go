package catalog

import "ft-server/models"

// Legacy returns the coarser hotspot list behind the hexagon traffic payload.
// Spread holds the hotspot radius in degrees and Intensity its base popularity.
func Legacy() Catalog {
	return Catalog{
		poi("Tour Eiffel", 48.8584, 2.2945, 95, 0.012, models.CategoryTourist),
		poi("Louvre", 48.8606, 2.3376, 90, 0.015, models.CategoryTourist),
		poi("Notre-Dame", 48.8530, 2.3499, 85, 0.010, models.CategoryTourist),
		poi("Sacré-Cœur", 48.8867, 2.3431, 80, 0.012, models.CategoryTourist),
		poi("Arc de Triomphe", 48.8738, 2.2950, 75, 0.010, models.CategoryTourist),
		poi("Musée d'Orsay", 48.8600, 2.3266, 70, 0.008, models.CategoryTourist),
		poi("Centre Pompidou", 48.8606, 2.3522, 65, 0.008, models.CategoryTourist),

		poi("Champs-Élysées", 48.8698, 2.3075, 85, 0.020, models.CategoryShopping),
		poi("Galeries Lafayette", 48.8738, 2.3320, 80, 0.010, models.CategoryShopping),
		poi("Le Marais", 48.8566, 2.3622, 75, 0.018, models.CategoryShopping),
		poi("Saint-Germain", 48.8539, 2.3338, 70, 0.015, models.CategoryShopping),
		poi("Les Halles", 48.8622, 2.3461, 75, 0.012, models.CategoryShopping),

		poi("La Défense", 48.8918, 2.2362, 80, 0.025, models.CategoryBusiness),
		poi("Opéra", 48.8700, 2.3319, 75, 0.015, models.CategoryBusiness),

		poi("Gare du Nord", 48.8809, 2.3553, 85, 0.015, models.CategoryTransport),
		poi("Gare de Lyon", 48.8443, 2.3735, 80, 0.012, models.CategoryTransport),
		poi("Gare Montparnasse", 48.8410, 2.3219, 75, 0.012, models.CategoryTransport),
		poi("Gare Saint-Lazare", 48.8764, 2.3247, 75, 0.010, models.CategoryTransport),
		poi("Châtelet", 48.8584, 2.3474, 85, 0.015, models.CategoryTransport),

		poi("Pigalle", 48.8821, 2.3375, 65, 0.010, models.CategoryNightlife),
		poi("Bastille", 48.8533, 2.3692, 70, 0.012, models.CategoryNightlife),
		poi("Oberkampf", 48.8656, 2.3778, 60, 0.010, models.CategoryNightlife),

		poi("Jardin du Luxembourg", 48.8462, 2.3372, 60, 0.015, models.CategoryPark),
		poi("Tuileries", 48.8634, 2.3275, 55, 0.015, models.CategoryPark),
		poi("Champ de Mars", 48.8556, 2.2986, 65, 0.018, models.CategoryPark),

		poi("Belleville", 48.8717, 2.3850, 45, 0.015, models.CategoryResidential),
		poi("Batignolles", 48.8867, 2.3172, 40, 0.012, models.CategoryResidential),
		poi("Buttes-Chaumont", 48.8811, 2.3828, 35, 0.015, models.CategoryResidential),
	}
}

package modulation

import "ft-server/models"

// Default returns the curves used by the density field.
func Default() Table {
	return Table{
		Hours: map[models.Category][24]float64{
			models.CategoryTourist:     {0.1, 0.05, 0.05, 0.05, 0.05, 0.1, 0.2, 0.35, 0.55, 0.75, 0.9, 1.0, 0.95, 0.9, 1.0, 1.0, 0.95, 0.85, 0.7, 0.5, 0.35, 0.25, 0.15, 0.1},
			models.CategoryShopping:    {0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.1, 0.25, 0.5, 0.75, 0.9, 0.85, 0.8, 0.9, 1.0, 1.0, 0.95, 0.85, 0.6, 0.3, 0.1, 0.0, 0.0},
			models.CategoryBusiness:    {0.05, 0.02, 0.02, 0.02, 0.05, 0.1, 0.25, 0.6, 0.95, 1.0, 0.95, 0.9, 0.7, 0.75, 0.9, 0.95, 0.9, 0.85, 0.55, 0.25, 0.12, 0.08, 0.05, 0.05},
			models.CategoryTransport:   {0.15, 0.08, 0.05, 0.05, 0.1, 0.25, 0.55, 0.9, 1.0, 0.8, 0.5, 0.45, 0.5, 0.5, 0.5, 0.55, 0.65, 0.95, 1.0, 0.85, 0.6, 0.4, 0.3, 0.2},
			models.CategoryNightlife:   {0.7, 0.5, 0.3, 0.15, 0.05, 0.02, 0.02, 0.05, 0.1, 0.15, 0.2, 0.25, 0.35, 0.35, 0.35, 0.4, 0.4, 0.5, 0.6, 0.75, 0.9, 1.0, 1.0, 0.9},
			models.CategoryPark:        {0.02, 0.01, 0.01, 0.01, 0.02, 0.05, 0.15, 0.35, 0.5, 0.6, 0.75, 0.85, 0.8, 0.75, 0.85, 0.95, 1.0, 0.95, 0.8, 0.55, 0.3, 0.12, 0.05, 0.02},
			models.CategoryEducation:   {0.05, 0.02, 0.02, 0.02, 0.02, 0.05, 0.15, 0.4, 0.8, 1.0, 0.95, 0.85, 0.7, 0.75, 0.9, 0.95, 0.85, 0.7, 0.45, 0.25, 0.15, 0.1, 0.08, 0.05},
			models.CategoryResidential: {0.35, 0.25, 0.18, 0.15, 0.15, 0.2, 0.45, 0.65, 0.5, 0.4, 0.45, 0.5, 0.6, 0.55, 0.5, 0.55, 0.6, 0.75, 0.9, 1.0, 0.95, 0.8, 0.6, 0.45},
		},
		Days: map[models.Category][7]float64{
			models.CategoryTourist:     {1.15, 0.8, 0.85, 0.9, 0.95, 1.0, 1.2},
			models.CategoryShopping:    {0.65, 0.55, 0.65, 0.75, 0.85, 0.95, 1.15},
			models.CategoryBusiness:    {0.08, 1.0, 1.0, 1.0, 1.0, 0.9, 0.12},
			models.CategoryTransport:   {0.65, 1.0, 1.0, 1.0, 1.0, 1.1, 0.75},
			models.CategoryNightlife:   {0.75, 0.45, 0.55, 0.65, 0.85, 1.15, 1.0},
			models.CategoryPark:        {1.25, 0.55, 0.6, 0.65, 0.7, 0.8, 1.2},
			models.CategoryEducation:   {0.1, 1.0, 1.0, 1.0, 1.0, 0.9, 0.15},
			models.CategoryResidential: {1.0, 0.9, 0.9, 0.9, 0.9, 0.95, 1.0},
		},
	}
}

// Legacy returns the curves used by the hexagon traffic payload.
// It has no education profile.
func Legacy() Table {
	return Table{
		Hours: map[models.Category][24]float64{
			models.CategoryTourist:     {0.1, 0.05, 0.05, 0.05, 0.05, 0.1, 0.2, 0.3, 0.5, 0.7, 0.9, 1.0, 0.95, 0.9, 1.0, 1.0, 0.95, 0.85, 0.7, 0.5, 0.35, 0.25, 0.15, 0.1},
			models.CategoryShopping:    {0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.1, 0.2, 0.4, 0.7, 0.9, 0.85, 0.8, 0.9, 1.0, 1.0, 0.95, 0.85, 0.6, 0.3, 0.1, 0.0, 0.0},
			models.CategoryBusiness:    {0.05, 0.02, 0.02, 0.02, 0.05, 0.1, 0.2, 0.5, 0.9, 1.0, 0.95, 0.9, 0.7, 0.75, 0.9, 0.95, 0.9, 0.85, 0.6, 0.3, 0.15, 0.1, 0.05, 0.05},
			models.CategoryTransport:   {0.15, 0.08, 0.05, 0.05, 0.1, 0.2, 0.5, 0.85, 1.0, 0.8, 0.5, 0.45, 0.5, 0.5, 0.5, 0.55, 0.65, 0.9, 1.0, 0.85, 0.6, 0.4, 0.3, 0.2},
			models.CategoryNightlife:   {0.6, 0.4, 0.2, 0.1, 0.05, 0.02, 0.02, 0.05, 0.1, 0.15, 0.2, 0.25, 0.35, 0.35, 0.35, 0.4, 0.4, 0.45, 0.55, 0.7, 0.85, 0.95, 1.0, 0.9},
			models.CategoryPark:        {0.02, 0.01, 0.01, 0.01, 0.02, 0.05, 0.15, 0.3, 0.45, 0.55, 0.7, 0.8, 0.75, 0.7, 0.8, 0.9, 1.0, 0.95, 0.8, 0.6, 0.35, 0.15, 0.05, 0.02},
			models.CategoryResidential: {0.3, 0.2, 0.15, 0.15, 0.15, 0.2, 0.4, 0.6, 0.5, 0.4, 0.45, 0.5, 0.6, 0.55, 0.5, 0.55, 0.6, 0.7, 0.85, 0.95, 1.0, 0.9, 0.7, 0.5},
		},
		Days: map[models.Category][7]float64{
			models.CategoryTourist:     {1.1, 0.8, 0.85, 0.9, 0.95, 1.0, 1.15},
			models.CategoryShopping:    {0.7, 0.6, 0.7, 0.8, 0.9, 0.95, 1.1},
			models.CategoryBusiness:    {0.1, 1.0, 1.0, 1.0, 1.0, 0.9, 0.15},
			models.CategoryTransport:   {0.7, 1.0, 1.0, 1.0, 1.0, 1.1, 0.8},
			models.CategoryNightlife:   {0.7, 0.5, 0.6, 0.7, 0.9, 1.1, 1.0},
			models.CategoryPark:        {1.2, 0.6, 0.65, 0.7, 0.75, 0.8, 1.15},
			models.CategoryResidential: {1.0, 0.9, 0.9, 0.9, 0.9, 0.95, 1.0},
		},
	}
}

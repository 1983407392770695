package models

// CategoryName is the stable discriminant of a category.
type CategoryName string

const (
	CategoryPets            CategoryName = "PETS"
	CategorySocialInterests CategoryName = "SOCIAL_INTERESTS"
	CategoryEducation       CategoryName = "EDUCATION"
	CategoryCareer          CategoryName = "CAREER"
	CategoryTravel          CategoryName = "TRAVEL"
	CategoryHealthBeauty    CategoryName = "HEALTH_BEAUTY"
	CategoryHome            CategoryName = "HOME"
	CategoryGarden          CategoryName = "GARDEN"
	CategoryFood            CategoryName = "FOOD"
	CategoryLaundry         CategoryName = "LAUNDRY"
	CategoryFinance         CategoryName = "FINANCE"
	CategoryTransport       CategoryName = "TRANSPORT"
)

var allCategoryNames = []CategoryName{
	CategoryPets,
	CategorySocialInterests,
	CategoryEducation,
	CategoryCareer,
	CategoryTravel,
	CategoryHealthBeauty,
	CategoryHome,
	CategoryGarden,
	CategoryFood,
	CategoryLaundry,
	CategoryFinance,
	CategoryTransport,
}

// AllCategoryNames returns the closed set of category names.
func AllCategoryNames() []CategoryName {
	return append([]CategoryName(nil), allCategoryNames...)
}

// Known reports whether n is a recognised category name.
func (n CategoryName) Known() bool {
	for _, c := range allCategoryNames {
		if c == n {
			return true
		}
	}
	return false
}

// Category groups entities and tasks (Pets, Travel, ...).
type Category struct {
	ID           int          `json:"id"`
	Name         CategoryName `json:"name"`
	ReadableName string       `json:"readable_name"`
	IsPremium    bool         `json:"is_premium"`
	IsEnabled    bool         `json:"is_enabled"`
}

func (c Category) RecordID() int { return c.ID }

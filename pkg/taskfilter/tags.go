package taskfilter

import "github.com/vuet/vuet-client/pkg/models"

// TagCategories maps a task tag to the category it belongs to. Tags carry the
// category name as a prefix; the table is closed so that an unknown prefix
// never matches a category filter.
var TagCategories = map[string]models.CategoryName{
	"PETS__FEEDING":  models.CategoryPets,
	"PETS__EXERCISE": models.CategoryPets,
	"PETS__GROOMING": models.CategoryPets,
	"PETS__HEALTH":   models.CategoryPets,

	"SOCIAL_INTERESTS__INFORMATION__PUBLIC": models.CategorySocialInterests,
	"SOCIAL_INTERESTS__HOBBY":               models.CategorySocialInterests,
	"SOCIAL_INTERESTS__EVENT":               models.CategorySocialInterests,

	"EDUCATION__SCHOOL_TERM":  models.CategoryEducation,
	"EDUCATION__SCHOOL_BREAK": models.CategoryEducation,
	"EDUCATION__HOMEWORK":     models.CategoryEducation,

	"CAREER__DAYS_OFF": models.CategoryCareer,
	"CAREER__GOALS":    models.CategoryCareer,

	"TRAVEL__INFORMATION__PUBLIC": models.CategoryTravel,
	"TRAVEL__FLIGHT":              models.CategoryTravel,
	"TRAVEL__TRAIN":               models.CategoryTravel,
	"TRAVEL__RENTAL_CAR":          models.CategoryTravel,
	"TRAVEL__TAXI":                models.CategoryTravel,
	"TRAVEL__TRANSFER":            models.CategoryTravel,
	"TRAVEL__HOTEL":               models.CategoryTravel,
	"TRAVEL__STAY_WITH_FRIEND":    models.CategoryTravel,

	"HEALTH_BEAUTY__APPOINTMENT": models.CategoryHealthBeauty,
	"HEALTH_BEAUTY__GOALS":       models.CategoryHealthBeauty,

	"HOME__CLEANING":    models.CategoryHome,
	"HOME__MAINTENANCE": models.CategoryHome,

	"GARDEN__WATERING": models.CategoryGarden,
	"GARDEN__PLANTING": models.CategoryGarden,

	"FOOD__MEAL_PLAN":     models.CategoryFood,
	"FOOD__SHOPPING_LIST": models.CategoryFood,

	"LAUNDRY__WASH":   models.CategoryLaundry,
	"LAUNDRY__IRON":   models.CategoryLaundry,
	"LAUNDRY__REPAIR": models.CategoryLaundry,

	"FINANCE__BILL":    models.CategoryFinance,
	"FINANCE__BUDGET":  models.CategoryFinance,
	"FINANCE__PAYMENT": models.CategoryFinance,

	"TRANSPORT__MOT":       models.CategoryTransport,
	"TRANSPORT__SERVICE":   models.CategoryTransport,
	"TRANSPORT__INSURANCE": models.CategoryTransport,
	"TRANSPORT__TAX":       models.CategoryTransport,
}

// CategoryForTag returns the category a tag maps to.
func CategoryForTag(tag string) (models.CategoryName, bool) {
	name, ok := TagCategories[tag]
	return name, ok
}

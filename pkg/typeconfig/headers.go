package typeconfig

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"

	"github.com/vuet/vuet-client/pkg/models"
)

// BackgroundColors is the list background colour per category.
var BackgroundColors = NewTable[models.CategoryName, string]("#FFFFFF", map[models.CategoryName]string{
	models.CategoryPets:            "#FFF3E0",
	models.CategorySocialInterests: "#F3E5F5",
	models.CategoryEducation:       "#E3F2FD",
	models.CategoryCareer:          "#ECEFF1",
	models.CategoryTravel:          "#E0F7FA",
	models.CategoryHealthBeauty:    "#FCE4EC",
	models.CategoryHome:            "#EFEBE9",
	models.CategoryGarden:          "#E8F5E9",
	models.CategoryFood:            "#FFFDE7",
	models.CategoryLaundry:         "#E8EAF6",
	models.CategoryFinance:         "#F1F8E9",
	models.CategoryTransport:       "#FBE9E7",
})

// HeaderTints is the header bar colour per category.
var HeaderTints = NewTable[models.CategoryName, string]("#0D0D0D", map[models.CategoryName]string{
	models.CategoryPets:            "#E65100",
	models.CategorySocialInterests: "#6A1B9A",
	models.CategoryEducation:       "#1565C0",
	models.CategoryCareer:          "#37474F",
	models.CategoryTravel:          "#00838F",
	models.CategoryHealthBeauty:    "#AD1457",
	models.CategoryHome:            "#4E342E",
	models.CategoryGarden:          "#2E7D32",
	models.CategoryFood:            "#F9A825",
	models.CategoryLaundry:         "#283593",
	models.CategoryFinance:         "#558B2F",
	models.CategoryTransport:       "#D84315",
})

// TitleFunc renders the list header title for an entity kind.
type TitleFunc func(models.EntityKind) string

func fixedTitle(title string) TitleFunc {
	return func(models.EntityKind) string { return title }
}

// pluralTitle turns "PublicTransport" into "Public transports".
func pluralTitle(kind models.EntityKind) string {
	var words []string
	var current []rune
	for i, r := range string(kind) {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		words = append(words, strings.ToLower(string(current)))
	}
	if len(words) == 0 {
		return ""
	}
	words[len(words)-1] = inflection.Plural(words[len(words)-1])
	title := strings.Join(words, " ")
	return strings.ToUpper(title[:1]) + title[1:]
}

// HeaderTitles is the header title table, keyed by entity kind.
var HeaderTitles = NewTable[models.EntityKind, TitleFunc](pluralTitle, map[models.EntityKind]TitleFunc{
	models.EntityTrainBusFerry:   fixedTitle("Trains, buses & ferries"),
	models.EntityPublicTransport: fixedTitle("Public transport"),
	models.EntitySocialMedia:     fixedTitle("Social media"),
	models.EntityFood:            fixedTitle("Food"),
	models.EntityFinance:         fixedTitle("Finance"),
	models.EntityLaundry:         fixedTitle("Laundry"),
	models.EntityAcademicPlan:    fixedTitle("Academic plans"),
})

// HeaderTitle returns the list header title for kind.
func HeaderTitle(kind models.EntityKind) string {
	return HeaderTitles.Lookup(kind)(kind)
}

// HeaderAction is the control shown at the right of a list header.
type HeaderAction string

const (
	HeaderAddEntity HeaderAction = "add_entity"
	HeaderAddTask   HeaderAction = "add_task"
	HeaderNone      HeaderAction = "none"
)

// HeaderRight is the header-right control table, keyed by entity kind.
// Trip components are added from the trip page, not from their own lists.
var HeaderRight = NewTable[models.EntityKind, HeaderAction](HeaderAddEntity, map[models.EntityKind]HeaderAction{
	models.EntityFlight:        HeaderNone,
	models.EntityHotel:         HeaderNone,
	models.EntityRental:        HeaderNone,
	models.EntityTrainBusFerry: HeaderNone,
	models.EntityAppointment:   HeaderAddTask,
	models.EntityAcademicPlan:  HeaderAddTask,
})

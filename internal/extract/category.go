package extract

import (
	"strings"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
)

// categoryRule maps a category to its keyword set. Declaration order is
// the match priority: the first category with any keyword present in
// the text wins, even if a later category's keyword also appears.
type categoryRule struct {
	category domain.Category
	keywords []string
}

var categoryRules = []categoryRule{
	{
		category: domain.CategoryMeals,
		keywords: []string{
			"restaurant", "cafe", "coffee", "food", "dining", "lunch",
			"dinner", "breakfast", "pizza", "burger", "grill", "bistro",
			"starbucks", "mcdonald", "subway", "chipotle", "domino",
		},
	},
	{
		category: domain.CategoryTravel,
		keywords: []string{
			"hotel", "taxi", "uber", "lyft", "flight", "airline",
			"bus", "train", "parking", "gas", "fuel", "rental",
			"airport", "airways", "shuttle", "inn", "motel", "shell", "chevron",
		},
	},
	{
		category: domain.CategoryOffice,
		keywords: []string{
			"office", "supplies", "staples", "printer", "paper",
			"pen", "desk", "computer", "software", "depot",
			"xerox", "ink", "toner", "amazon", "bestbuy",
		},
	},
	{
		category: domain.CategoryUtilities,
		keywords: []string{
			"electric", "water", "gas", "internet", "phone",
			"utility", "bill", "telecom", "cable", "power",
			"energy", "wireless", "mobile", "broadband", "att", "verizon",
		},
	},
}

// ClassifyCategory assigns a category from the entire lowercased raw
// text, not line by line. The second return value is false when no
// keyword of any category appears; the caller substitutes Other.
func ClassifyCategory(text string) (domain.Category, bool) {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category, true
			}
		}
	}
	return "", false
}

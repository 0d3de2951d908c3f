package plan

import (
	"sort"
	"strings"
)

// ShoppingItem is one aggregated ingredient line
type ShoppingItem struct {
	Name        string  `json:"name"`
	Unit        string  `json:"unit"`
	TotalAmount float64 `json:"total_amount"`
}

// ShoppingCategory groups items under a store aisle heading
type ShoppingCategory struct {
	Name  string         `json:"name"`
	Items []ShoppingItem `json:"items"`
}

// Store aisle keyword table. Ingredient names are matched case-insensitively
// by substring; the first matching aisle wins, everything else lands in
// "Sonstiges". Names are German because that is the content language.
var shoppingAisles = []struct {
	name     string
	keywords []string
}{
	{"Gemüse & Salat", []string{"spinat", "grünkohl", "rucola", "brokkoli", "blumenkohl", "karotten", "rote bete", "süßkartoffeln", "zucchini", "paprika", "tomaten", "gurken", "zwiebeln", "knoblauch", "lauch", "sellerie"}},
	{"Obst", []string{"äpfel", "bananen", "beeren", "heidelbeeren", "himbeeren", "erdbeeren", "zitronen", "limetten", "orangen", "avocado", "mango", "ananas"}},
	{"Proteine", []string{"hähnchen", "rindfleisch", "lachs", "thunfisch", "eier", "tofu", "tempeh", "linsen", "kichererbsen", "bohnen", "quinoa"}},
	{"Milchprodukte", []string{"milch", "joghurt", "käse", "quark", "sahne", "butter", "mozzarella", "parmesan", "feta"}},
	{"Getreide & Kohlenhydrate", []string{"reis", "pasta", "brot", "haferflocken", "bulgur", "couscous", "kartoffeln", "mehl"}},
	{"Nüsse & Samen", []string{"mandeln", "walnüsse", "haselnüsse", "sonnenblumenkerne", "kürbiskerne", "leinsamen", "chia", "sesam"}},
	{"Öle & Fette", []string{"olivenöl", "kokosöl", "avocadoöl", "butter", "ghee", "leinöl"}},
	{"Gewürze & Kräuter", []string{"salz", "pfeffer", "kurkuma", "ingwer", "zimt", "paprika", "oregano", "basilikum", "petersilie", "dill", "thymian"}},
	{"Pantry", []string{"essig", "senf", "honig", "ahornsirup", "vanille", "backpulver", "natron", "gemüsebrühe", "kokosmilch"}},
}

const fallbackAisle = "Sonstiges"

// CategorizeIngredient maps an ingredient name to its store aisle
func CategorizeIngredient(name string) string {
	lower := strings.ToLower(name)
	for _, aisle := range shoppingAisles {
		for _, keyword := range aisle.keywords {
			if strings.Contains(lower, keyword) {
				return aisle.name
			}
		}
	}
	return fallbackAisle
}

// BuildShoppingList aggregates the ingredients of all planned meals into a
// categorized list. Amounts are summed per name+unit pair, multiplied by the
// planned portions; items within a category are sorted by name.
func BuildShoppingList(meals []PlannedMeal, lang string) []ShoppingCategory {
	type key struct {
		name string
		unit string
	}
	totals := map[key]*ShoppingItem{}

	for _, meal := range meals {
		if meal.Recipe == nil {
			continue
		}
		portions := meal.Portions
		if portions <= 0 {
			portions = 1
		}
		for _, ing := range meal.Recipe.Ingredients {
			name := ing.Name.Get(lang)
			if name == "" {
				name = "Unbekannt"
			}
			k := key{name: strings.ToLower(name), unit: ing.Unit}
			if item, ok := totals[k]; ok {
				item.TotalAmount += ing.Amount * portions
			} else {
				totals[k] = &ShoppingItem{
					Name:        name,
					Unit:        ing.Unit,
					TotalAmount: ing.Amount * portions,
				}
			}
		}
	}

	grouped := map[string][]ShoppingItem{}
	for _, item := range totals {
		aisle := CategorizeIngredient(item.Name)
		grouped[aisle] = append(grouped[aisle], *item)
	}

	categories := make([]ShoppingCategory, 0, len(grouped))
	for name, items := range grouped {
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		categories = append(categories, ShoppingCategory{Name: name, Items: items})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })

	return categories
}

package chat

import (
	"sort"
	"strings"
)

// Intent represents a detected product-chat question category.
type Intent string

const (
	// Intent_ListAll indicates the user asked for the whole catalog.
	Intent_ListAll Intent = "list_all"
	// Intent_LowestPrice indicates the user asked for the cheapest product.
	Intent_LowestPrice Intent = "lowest_price"
	// Intent_BestSelling indicates the user asked for the most popular products.
	Intent_BestSelling Intent = "best_selling"
)

// intentPhrases maps each intent to the phrases that trigger it. Detection is
// case-insensitive substring matching; new intents are additive rows here.
var intentPhrases = map[Intent][]string{
	Intent_ListAll: {
		"list all products",
		"show all products",
		"what products do you have",
		"show me every product",
		"list every product",
		"all your products",
		"entire catalog",
		"full catalog",
		"everything you have",
	},
	Intent_LowestPrice: {
		"lowest priced",
		"lowest price",
		"cheapest",
		"least expensive",
		"lowest cost",
		"lowest-priced",
		"cheapest product",
		"least costly",
	},
	Intent_BestSelling: {
		"best selling",
		"best-selling",
		"most popular",
		"top selling",
		"most sold",
		"bestseller",
		"best seller",
		"most ordered",
		"top rated",
		"most bought",
		"popular products",
		"trending products",
		"top products",
	},
}

// IntentSet is the set of intents detected in one question. Intents are
// independent: a question may carry more than one.
type IntentSet map[Intent]struct{}

// Has reports whether the given intent was detected.
func (s IntentSet) Has(intent Intent) bool {
	_, ok := s[intent]
	return ok
}

// Names returns the detected intent names in stable order.
func (s IntentSet) Names() []string {
	names := make([]string, 0, len(s))
	for intent := range s {
		names = append(names, string(intent))
	}
	sort.Strings(names)
	return names
}

// DetectIntents matches the question against the intent phrase tables.
// Blank input detects nothing.
func DetectIntents(question string) IntentSet {
	detected := IntentSet{}

	lowered := strings.ToLower(question)
	if strings.TrimSpace(lowered) == "" {
		return detected
	}

	for intent, phrases := range intentPhrases {
		for _, phrase := range phrases {
			if strings.Contains(lowered, phrase) {
				detected[intent] = struct{}{}
				break
			}
		}
	}
	return detected
}

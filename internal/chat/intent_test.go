package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntents(t *testing.T) {
	tests := map[string]struct {
		question string
		expected []string
	}{
		"blank-question": {
			question: "   ",
			expected: []string{},
		},
		"no-intent": {
			question: "Does the Aurora Headphones support bluetooth?",
			expected: []string{},
		},
		"list-all": {
			question: "Please list all products you carry",
			expected: []string{"list_all"},
		},
		"list-all-case-insensitive": {
			question: "SHOW ALL PRODUCTS",
			expected: []string{"list_all"},
		},
		"lowest-price": {
			question: "What is your cheapest item?",
			expected: []string{"lowest_price"},
		},
		"lowest-price-hyphenated": {
			question: "Which is the lowest-priced gadget?",
			expected: []string{"lowest_price"},
		},
		"best-selling": {
			question: "What are your best selling products?",
			expected: []string{"best_selling"},
		},
		"best-selling-top-rated": {
			question: "Show me the top rated speakers",
			expected: []string{"best_selling"},
		},
		"multiple-intents": {
			question: "Show all products and tell me the cheapest best seller",
			expected: []string{"best_selling", "list_all", "lowest_price"},
		},
		"substring-inside-word-does-not-match": {
			question: "Do you sell newspapers?",
			expected: []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := DetectIntents(tt.question)
			assert.Equal(t, tt.expected, got.Names())
		})
	}
}

func TestIntentSet_Has(t *testing.T) {
	set := DetectIntents("list all products at the lowest price")

	assert.True(t, set.Has(Intent_ListAll))
	assert.True(t, set.Has(Intent_LowestPrice))
	assert.False(t, set.Has(Intent_BestSelling))
}

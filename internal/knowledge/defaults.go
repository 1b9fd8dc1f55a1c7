// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import "github.com/pdiddy/faq-engine/pkg/types"

// Defaults returns the built-in FAQ used when no knowledge file or store
// is configured. Each call returns a fresh slice with IDs assigned.
func Defaults() []types.Entry {
	entries := []types.Entry{
		{
			Question: "What is your return policy?",
			Answer:   "You can return any item within 30 days of purchase for a full refund.",
			Tags:     []string{"returns"},
		},
		{
			Question: "How do I track my order?",
			Answer:   "Once your order ships, we will send you an email with a tracking number.",
			Tags:     []string{"orders"},
		},
		{
			Question: "Do you ship internationally?",
			Answer:   "Yes, we ship to most countries worldwide. Shipping rates vary by location.",
			Tags:     []string{"shipping"},
		},
		{
			Question: "How can I contact customer support?",
			Answer:   "You can reach us at support@example.com or call 1-800-123-4567.",
			Tags:     []string{"support"},
		},
		{
			Question: "What payment methods do you accept?",
			Answer:   "We accept Visa, MasterCard, American Express, and PayPal.",
			Tags:     []string{"payments"},
		},
	}
	AssignIDs(entries)
	return entries
}

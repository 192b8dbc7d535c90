package listings

import "github.com/rentifyapp/rentify-client/internal/domain"

// Fallback is the fixed demo dataset shown when the backend is unreachable,
// so the client stays browsable offline. Kept deliberately small.
func Fallback() []domain.Listing {
	return []domain.Listing{
		{
			ID:    "demo-1",
			Title: "Power washer available this weekend",
			Body:  "Perfect for driveways and patios. Located a few minutes away. Daily and weekend rates available.",
			StorageRelationLinks: []string{
				"https://images.pexels.com/photos/5854188/pexels-photo-5854188.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Author:       "Demo User",
			Ratings:      []domain.Rating{},
			Applications: []domain.Application{},
			Price:        18,
			Interval:     "day",
			Available:    true,
		},
		{
			ID:    "demo-2",
			Title: "Folding tables for parties & events",
			Body:  "Set of two 6 ft folding tables. Great for birthdays, garage sales, and neighborhood events.",
			StorageRelationLinks: []string{
				"https://images.pexels.com/photos/5877416/pexels-photo-5877416.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Author:       "Demo User",
			Ratings:      []domain.Rating{},
			Applications: []domain.Application{},
			Price:        12,
			Interval:     "day",
			Available:    true,
		},
		{
			ID:    "demo-3",
			Title: "Extension ladder - 24 feet",
			Body:  "Heavy-duty aluminum extension ladder. Perfect for painting, cleaning gutters, or roof access.",
			StorageRelationLinks: []string{
				"https://images.pexels.com/photos/162553/keys-to-success-ladder-lock-key-162553.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
			Author:       "Demo User",
			Ratings:      []domain.Rating{},
			Applications: []domain.Application{},
			Price:        15,
			Interval:     "day",
			Available:    false,
		},
	}
}

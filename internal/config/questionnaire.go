package config

import "github.com/futig/wanderlust-backend/internal/entity"

// DefaultQuestions is the built-in travel preference questionnaire
func DefaultQuestions() []entity.Question {
	return []entity.Question{
		{
			ID: 1, Key: "mood", AIKey: "travelMood",
			Question:   "What's your travel mood?",
			Options:    []string{"Relaxing", "Adventurous", "Romantic", "Cultural", "Party"},
			SelectType: entity.SelectTypeMultiple,
		},
		{
			ID: 2, Key: "companions", AIKey: "travelType",
			Question:   "Who are you traveling with?",
			Options:    []string{"Solo", "Couple", "Family", "Friends"},
			SelectType: entity.SelectTypeSingle,
		},
		{
			ID: 3, Key: "pace", AIKey: "travelPace",
			Question:   "What pace do you enjoy?",
			Options:    []string{"Slow and easy", "Balanced", "Packed itinerary"},
			SelectType: entity.SelectTypeSingle,
		},
		{
			ID: 4, Key: "budget", AIKey: "budgetStyle",
			Question:   "What's your budget style?",
			Options:    []string{"Budget", "Mid-range", "Luxury"},
			SelectType: entity.SelectTypeSingle,
		},
		{
			ID: 5, Key: "duration", AIKey: "travelDuration",
			Question:   "How long is your trip?",
			Options:    []string{"Weekend", "One week", "Two weeks", "A month or more"},
			SelectType: entity.SelectTypeSingle,
		},
		{
			ID: 6, Key: "weather", AIKey: "preferredWeather",
			Question:   "What weather do you prefer?",
			Options:    []string{"Sunny and hot", "Mild", "Cool", "Snowy"},
			SelectType: entity.SelectTypeMultiple,
		},
		{
			ID: 7, Key: "scenery", AIKey: "favoriteScenery",
			Question:   "What scenery do you love?",
			Options:    []string{"Beaches", "Mountains", "Cities", "Forests", "Deserts", "Countryside"},
			SelectType: entity.SelectTypeMultiple,
		},
		{
			ID: 8, Key: "food", AIKey: "preferredFoodStyle",
			Question:   "What food experiences do you want?",
			Options:    []string{"Street food", "Fine dining", "Local markets", "Vegetarian friendly", "Cooking classes"},
			SelectType: entity.SelectTypeMultiple,
		},
		{
			ID: 9, Key: "activities", AIKey: "likedActivities",
			Question:   "Which activities do you like?",
			Options:    []string{"Hiking", "Museums", "Nightlife", "Water sports", "Shopping", "Wellness"},
			SelectType: entity.SelectTypeMultiple,
		},
		{
			ID: 10, Key: "transport", AIKey: "travelAroundPreference",
			Question:   "How do you like to get around?",
			Options:    []string{"Walking", "Public transport", "Car rental", "Guided tours"},
			SelectType: entity.SelectTypeMultiple,
		},
		{
			ID: 11, Key: "goal", AIKey: "tripGoal",
			Question:   "What's the main goal of your trip?",
			Options:    []string{"Unwind", "Explore", "Celebrate", "Learn something new", "Reconnect"},
			SelectType: entity.SelectTypeSingle,
		},
		{
			ID: 12, Key: "region", AIKey: "preferredRegion",
			Question:   "Which region are you dreaming of?",
			Options:    []string{"Europe", "Asia", "Africa", "North America", "South America", "Oceania", "Anywhere"},
			SelectType: entity.SelectTypeMultiple,
		},
	}
}

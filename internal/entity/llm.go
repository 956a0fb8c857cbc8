package entity

// SuggestDestinationsRequest is the input of the destination suggestion prompt
type SuggestDestinationsRequest struct {
	TravelMood             string `json:"travelMood"`
	TravelType             string `json:"travelType"`
	TravelPace             string `json:"travelPace"`
	BudgetStyle            string `json:"budgetStyle"`
	TravelDuration         string `json:"travelDuration"`
	PreferredWeather       string `json:"preferredWeather"`
	FavoriteScenery        string `json:"favoriteScenery"`
	PreferredFoodStyle     string `json:"preferredFoodStyle"`
	LikedActivities        string `json:"likedActivities"`
	TravelAroundPreference string `json:"travelAroundPreference"`
	TripGoal               string `json:"tripGoal"`
	PreferredRegion        string `json:"preferredRegion"`
}

// SuggestDestinationsResponse is the structured output of the suggestion prompt.
// ImageURL of each destination holds an image prompt until post-processed.
type SuggestDestinationsResponse struct {
	Destinations []Destination `json:"destinations"`
}

// DestinationBriefRequest is the input of the destination brief prompt
type DestinationBriefRequest struct {
	DestinationName string `json:"destinationName"`
	ImageURL        string `json:"imageUrl"`
}

// DestinationBriefResponse is the structured output of the brief prompt
type DestinationBriefResponse struct {
	DestinationName string `json:"destinationName"`
	ImageURL        string `json:"imageUrl"`
	Summary         string `json:"summary"`
}

// Set assigns value to the field identified by its AI key
func (r *SuggestDestinationsRequest) Set(aiKey, value string) bool {
	switch aiKey {
	case "travelMood":
		r.TravelMood = value
	case "travelType":
		r.TravelType = value
	case "travelPace":
		r.TravelPace = value
	case "budgetStyle":
		r.BudgetStyle = value
	case "travelDuration":
		r.TravelDuration = value
	case "preferredWeather":
		r.PreferredWeather = value
	case "favoriteScenery":
		r.FavoriteScenery = value
	case "preferredFoodStyle":
		r.PreferredFoodStyle = value
	case "likedActivities":
		r.LikedActivities = value
	case "travelAroundPreference":
		r.TravelAroundPreference = value
	case "tripGoal":
		r.TripGoal = value
	case "preferredRegion":
		r.PreferredRegion = value
	default:
		return false
	}
	return true
}

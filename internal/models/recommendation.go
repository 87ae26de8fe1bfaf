package models

// RecommendedDestination is one recommendation with its source type, kept for
// the UI "why recommended" grouping.
type RecommendedDestination struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Subcategories   []string `json:"subcategories"`
	Subtypes        []string `json:"subtypes"`
	Image           string   `json:"image"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	SimilarityScore float64  `json:"similarity_score"`
	Type            string   `json:"recommendation_type"`
}

// RecentlyViewedItem is a caller-supplied recently viewed destination.
type RecentlyViewedItem struct {
	ID            int      `json:"id"`
	Country       string   `json:"country"`
	Subcategories []string `json:"subcategories"`
	Subtypes      []string `json:"subtypes"`
}

// RecommendRequest is the recommendation endpoint request body.
type RecommendRequest struct {
	RecentlyViewed []RecentlyViewedItem `json:"recently_viewed"`
}

// RecommendationResponse is the full recommendation payload: a primary merged
// list plus the per-signal lists, and the blending weights used to build it.
type RecommendationResponse struct {
	ActivityWeight                float64                             `json:"activity_weight"`
	TagWeight                     float64                             `json:"tag_weight"`
	Results                       []RecommendedDestination            `json:"results"`
	KeywordRecommendations        []RecommendedDestination            `json:"keyword_recommendations"`
	SubcategoryRecommendations    []RecommendedDestination            `json:"subcategory_recommendations"`
	SubtypeRecommendations        []RecommendedDestination            `json:"subtype_recommendations"`
	CountryRecommendations        []RecommendedDestination            `json:"country_recommendations"`
	RecentlyViewedRecommendations []RecommendedDestination            `json:"recently_viewed_recommendations"`
	TagGroupRecommendations       map[string][]RecommendedDestination `json:"tag_group_recommendations"`
}

// NewRecommendedDestination converts a scored destination, tagging its source.
func NewRecommendedDestination(sd ScoredDestination, recType string) RecommendedDestination {
	d := sd.Destination
	return RecommendedDestination{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		Subcategories:   d.Subcategories,
		Subtypes:        d.Subtypes,
		Image:           d.Image,
		City:            d.City,
		Country:         d.Country,
		SimilarityScore: sd.Score,
		Type:            recType,
	}
}

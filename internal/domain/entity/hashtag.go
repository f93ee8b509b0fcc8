package entity

// Hashtag is one entry of the Hashtags/allHashtags aggregate document.
type Hashtag struct {
	Name       string `json:"name" firestore:"name"`
	Category   string `json:"category" firestore:"category"`
	IsTrending bool   `json:"is_trending" firestore:"isTrending"`
	UsageCount int    `json:"usage_count" firestore:"usageCount"`
}

package types

// AnalyticsSummary is the admin dashboard rollup over the lessons
// collection.
type AnalyticsSummary struct {
	CreatedToday   int64 `json:"createdToday"`
	PublicLessons  int64 `json:"publicLessons"`
	PrivateLessons int64 `json:"privateLessons"`
	ActiveCreators int64 `json:"activeCreators"`
}

// ContributorCount is one row of the top-contributors aggregation.
type ContributorCount struct {
	CreatorEmail string `json:"creatorEmail"`
	CreatorName  string `json:"creatorName"`
	LessonCount  int64  `json:"lessonCount"`
}

package dto

// PostDTO 帖子
type PostDTO struct {
	ID             uint64  `json:"id"`
	LinkedinPostID *string `json:"linkedin_post_id"`
	PostURL        *string `json:"post_url"`
	DraftID        *string `json:"draft_id"`
	Title          string  `json:"title"`
	PostDate       string  `json:"post_date"`
	PostType       *string `json:"post_type"`
	Content        *string `json:"content"`
	Status         *string `json:"status"`

	Impressions    int     `json:"impressions"`
	MembersReached int     `json:"members_reached"`
	Reactions      int     `json:"reactions"`
	Comments       int     `json:"comments"`
	Shares         int     `json:"shares"`
	Clicks         int     `json:"clicks"`
	EngagementRate float64 `json:"engagement_rate"`
	WeightedScore  float64 `json:"weighted_score"`

	Saves           int `json:"saves"`
	Sends           int `json:"sends"`
	ProfileViews    int `json:"profile_views"`
	FollowersGained int `json:"followers_gained"`
	Reposts         int `json:"reposts"`

	Topic         *string `json:"topic"`
	ContentFormat *string `json:"content_format"`
	HookStyle     *string `json:"hook_style"`
	LengthBucket  *string `json:"length_bucket"`
	PostHour      *int    `json:"post_hour"`

	Demographics []*PostDemographicDTO `json:"demographics,omitempty"`
}

// PostListDTO 帖子列表
type PostListDTO struct {
	Posts []*PostDTO `json:"posts"`
	Total int64      `json:"total"`
}

// PostDemographicDTO 单帖受众分布
type PostDemographicDTO struct {
	Category   string  `json:"category"`
	Value      string  `json:"value"`
	Percentage float64 `json:"percentage"`
}

// DraftBaseDTO 草稿 - 新增或修改
type DraftBaseDTO struct {
	Title    string  `json:"title" binding:"required" validate:"min=1,max=100"`
	Content  string  `json:"content" binding:"required" validate:"min=1,max=3000"`
	PostDate *string `json:"post_date"`
	Topic    *string `json:"topic" validate:"omitempty,max=50"`
}

// PostPatchDTO 帖子人工标注字段，仅允许修改归因维度
type PostPatchDTO struct {
	Topic         *string `json:"topic" validate:"omitempty,max=50"`
	ContentFormat *string `json:"content_format" validate:"omitempty,max=30"`
	HookStyle     *string `json:"hook_style" validate:"omitempty,max=30"`
	LengthBucket  *string `json:"length_bucket" validate:"omitempty,max=20"`
}

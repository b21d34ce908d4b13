package dto

// PublishRequestDTO 发布请求，DraftID 与 Content 二选一
type PublishRequestDTO struct {
	DraftID    *uint64 `json:"draft_id"`
	Content    string  `json:"content" validate:"omitempty,max=3000"`
	Visibility string  `json:"visibility" validate:"omitempty,oneof=PUBLIC CONNECTIONS"`
}

// PublishResultDTO 发布结果
type PublishResultDTO struct {
	PostID         uint64 `json:"post_id"`
	LinkedinPostID string `json:"linkedin_post_id"`
	PostURL        string `json:"post_url"`
}

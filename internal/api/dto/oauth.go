package dto

// AuthURLDTO 授权跳转
type AuthURLDTO struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// TokenStatusDTO 授权状态，不暴露令牌本身
type TokenStatusDTO struct {
	Authorized            bool   `json:"authorized"`
	Provider              string `json:"provider"`
	Scopes                string `json:"scopes,omitempty"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at,omitempty"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at,omitempty"`
}

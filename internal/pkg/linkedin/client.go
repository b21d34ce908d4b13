package linkedin

import (
	"Beacon/internal/api/config"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const apiVersion = "202411"

// Client LinkedIn 开放平台客户端，覆盖令牌交换与内容发布
type Client struct {
	http *resty.Client
	cfg  config.LinkedInConfig
}

func NewClient(cfg config.LinkedInConfig) *Client {
	client := resty.New().
		SetTimeout(20 * time.Second).
		SetHeader("X-Restli-Protocol-Version", "2.0.0").
		SetHeader("LinkedIn-Version", apiVersion)

	return &Client{http: client, cfg: cfg}
}

// TokenResponse 令牌端点返回体
type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	ExpiresIn             int    `json:"expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int    `json:"refresh_token_expires_in"`
	Scope                 string `json:"scope"`
}

// RateLimitError 429 带重试提示
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("请求频率受限，%s 后重试", e.RetryAfter)
}

// AuthorizeURL 拼装用户授权跳转地址
func (c *Client) AuthorizeURL(state string) string {
	return fmt.Sprintf("%s?response_type=code&client_id=%s&redirect_uri=%s&state=%s&scope=%s",
		c.cfg.AuthURL, c.cfg.ClientID, c.cfg.RedirectURL, state, c.cfg.Scopes)
}

// ExchangeCode 授权码换令牌
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	return c.requestToken(ctx, map[string]string{
		"grant_type":    "authorization_code",
		"code":          code,
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
		"redirect_uri":  c.cfg.RedirectURL,
	})
}

// RefreshToken 刷新令牌
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	return c.requestToken(ctx, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
	})
}

func (c *Client) requestToken(ctx context.Context, form map[string]string) (*TokenResponse, error) {
	var token TokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&token).
		Post(c.cfg.TokenURL)
	if err != nil {
		return nil, errors.Wrap(err, "令牌请求失败")
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, errors.New("令牌端点未返回 access_token")
	}
	return &token, nil
}

// MemberInfo 授权用户的基本信息
type MemberInfo struct {
	Sub  string `json:"sub"`
	Name string `json:"name"`
}

// UserInfo 取授权用户的 member 标识
func (c *Client) UserInfo(ctx context.Context, accessToken string) (*MemberInfo, error) {
	var info MemberInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&info).
		Get(c.cfg.APIBaseURL + "/v2/userinfo")
	if err != nil {
		return nil, errors.Wrap(err, "用户信息请求失败")
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return &info, nil
}

// PublishResult 发布结果
type PublishResult struct {
	PostURN    string
	ActivityID string
	PostURL    string
}

type postPayload struct {
	Author         string `json:"author"`
	Commentary     string `json:"commentary"`
	Visibility     string `json:"visibility"`
	Distribution   map[string]interface{} `json:"distribution"`
	LifecycleState string `json:"lifecycleState"`
}

var urnIDPattern = regexp.MustCompile(`urn:li:(?:share|activity|ugcPost):(\d+)`)

// PublishPost 通过 REST Posts 接口发文。帖子 URN 从 x-restli-id 响应头取
func (c *Client) PublishPost(ctx context.Context, accessToken, memberID, commentary, visibility string) (*PublishResult, error) {
	if visibility == "" {
		visibility = "PUBLIC"
	}
	payload := postPayload{
		Author:     "urn:li:person:" + memberID,
		Commentary: commentary,
		Visibility: visibility,
		Distribution: map[string]interface{}{
			"feedDistribution":               "MAIN_FEED",
			"targetEntities":                 []interface{}{},
			"thirdPartyDistributionChannels": []interface{}{},
		},
		LifecycleState: "PUBLISHED",
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(payload).
		Post(c.cfg.APIBaseURL + "/rest/posts")
	if err != nil {
		return nil, errors.Wrap(err, "发布请求失败")
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	urn := resp.Header().Get("x-restli-id")
	if urn == "" {
		return nil, errors.New("发布响应缺少 x-restli-id")
	}
	m := urnIDPattern.FindStringSubmatch(urn)
	if m == nil {
		return nil, errors.Errorf("无法识别的帖子 URN: %s", urn)
	}
	return &PublishResult{
		PostURN:    urn,
		ActivityID: m[1],
		PostURL:    "https://www.linkedin.com/feed/update/" + urn,
	}, nil
}

func checkStatus(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	if resp.StatusCode() == 429 {
		retryAfter := 60 * time.Second
		if v := resp.Header().Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil {
				retryAfter = time.Duration(secs) * time.Second
			}
		}
		return &RateLimitError{RetryAfter: retryAfter}
	}
	return errors.Errorf("LinkedIn 接口返回 %d: %s", resp.StatusCode(), resp.String())
}

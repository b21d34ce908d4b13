package service

import (
	"Beacon/internal/api/config"
	"Beacon/internal/api/dto"
	"Beacon/internal/model"
	"Beacon/internal/pkg/linkedin"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeOAuthService struct {
	token    string
	memberID string
	err      error
}

func (f *fakeOAuthService) BeginAuth(_ context.Context) (*dto.AuthURLDTO, error) { return nil, nil }
func (f *fakeOAuthService) HandleCallback(_ context.Context, _, _ string) error  { return nil }
func (f *fakeOAuthService) Status(_ context.Context) (*dto.TokenStatusDTO, error) {
	return nil, nil
}
func (f *fakeOAuthService) Disconnect(_ context.Context) error { return nil }
func (f *fakeOAuthService) AccessToken(_ context.Context) (string, string, error) {
	return f.token, f.memberID, f.err
}
func (f *fakeOAuthService) RefreshIfNeeded(_ context.Context) error { return nil }

func newPublishTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/posts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("x-restli-id", "urn:li:activity:7432391508978397184")
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestPublishService(t *testing.T, repo *fakePostRepo, oauth OAuthService, baseURL string) PublishService {
	t.Helper()
	withTestConfig(t)
	config.Cfg.Publish.DedupWindowSize = 8
	config.Cfg.Publish.DedupTTLMinutes = 30
	client := linkedin.NewClient(config.LinkedInConfig{APIBaseURL: baseURL})
	return NewPublishService(repo, oauth, client)
}

func TestPublishInlineContent(t *testing.T) {
	srv := newPublishTestServer(t)
	repo := &fakePostRepo{}
	svc := newTestPublishService(t, repo, &fakeOAuthService{token: "tok", memberID: "abc"}, srv.URL)

	result, err := svc.Publish(context.Background(), &dto.PublishRequestDTO{Content: "晨间随笔"})
	if err != nil {
		t.Fatal(err)
	}
	if result.LinkedinPostID != "7432391508978397184" {
		t.Errorf("linkedin_post_id = %s", result.LinkedinPostID)
	}
	if len(repo.posts) != 1 {
		t.Fatalf("应落库一条帖子, got %d", len(repo.posts))
	}
	post := repo.posts[0]
	if post.Status == nil || *post.Status != model.PostStatusPublished {
		t.Errorf("status = %v", post.Status)
	}
	if post.LinkedinPostID == nil || *post.LinkedinPostID != "7432391508978397184" {
		t.Errorf("linkedin_post_id 未写入")
	}
}

func TestPublishDuplicateContentRejected(t *testing.T) {
	srv := newPublishTestServer(t)
	svc := newTestPublishService(t, &fakePostRepo{}, &fakeOAuthService{token: "tok", memberID: "abc"}, srv.URL)

	if _, err := svc.Publish(context.Background(), &dto.PublishRequestDTO{Content: "same words"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Publish(context.Background(), &dto.PublishRequestDTO{Content: "same words"})
	if !errors.Is(err, ErrDuplicatePublish) {
		t.Errorf("err = %v", err)
	}
	// 不同内容不受影响
	if _, err := svc.Publish(context.Background(), &dto.PublishRequestDTO{Content: "other words"}); err != nil {
		t.Errorf("err = %v", err)
	}
}

func TestPublishDraftPromotesStatus(t *testing.T) {
	srv := newPublishTestServer(t)
	repo := &fakePostRepo{}
	status := model.PostStatusDraft
	content := "draft body"
	draft := &model.Post{Status: &status, Content: &content, PostDate: day(2026, time.March, 1)}
	_ = repo.Create(context.Background(), draft)
	svc := newTestPublishService(t, repo, &fakeOAuthService{token: "tok", memberID: "abc"}, srv.URL)

	result, err := svc.Publish(context.Background(), &dto.PublishRequestDTO{DraftID: &draft.ID})
	if err != nil {
		t.Fatal(err)
	}
	if result.PostID != draft.ID {
		t.Errorf("post_id = %d", result.PostID)
	}
	if *draft.Status != model.PostStatusPublished {
		t.Errorf("status = %s", *draft.Status)
	}
	if len(repo.posts) != 1 {
		t.Errorf("发布草稿不应新建帖子")
	}
}

func TestPublishRequiresContent(t *testing.T) {
	srv := newPublishTestServer(t)
	svc := newTestPublishService(t, &fakePostRepo{}, &fakeOAuthService{token: "tok", memberID: "abc"}, srv.URL)

	if _, err := svc.Publish(context.Background(), &dto.PublishRequestDTO{Content: "   "}); !errors.Is(err, ErrNothingToPublish) {
		t.Errorf("err = %v", err)
	}
}

func TestPublishWithoutMemberIDRejected(t *testing.T) {
	srv := newPublishTestServer(t)
	svc := newTestPublishService(t, &fakePostRepo{}, &fakeOAuthService{token: "tok"}, srv.URL)

	if _, err := svc.Publish(context.Background(), &dto.PublishRequestDTO{Content: "hello"}); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("err = %v", err)
	}
}

package service

import (
	"Beacon/internal/model"
	"context"
	"testing"
	"time"
)

func TestRollingAverageShortWindow(t *testing.T) {
	got := rollingAverage([]float64{0.02, 0.04, 0.06, 0.08, 0.10, 0.12}, 5)
	want := []float64{0.02, 0.03, 0.04, 0.05, 0.06, 0.08}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rolling[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTopQuantileThreshold(t *testing.T) {
	rates := []float64{0.01, 0.02, 0.03, 0.04, 0.05, 0.06, 0.07, 0.08, 0.09, 0.10}
	// ceil(10*0.9)-1 = 8 → 第九个值
	if got := topQuantileThreshold(rates); got != 0.09 {
		t.Errorf("threshold = %v", got)
	}
	if got := topQuantileThreshold(nil); got != 0 {
		t.Errorf("空集阈值 = %v", got)
	}
	if got := topQuantileThreshold([]float64{0.05}); got != 0.05 {
		t.Errorf("单帖阈值 = %v", got)
	}
}

func TestMedian(t *testing.T) {
	if got := median([]float64{0.3, 0.1, 0.2}); got != 0.2 {
		t.Errorf("奇数个中位数 = %v", got)
	}
	if got := median([]float64{0.1, 0.2, 0.3, 0.4}); got != 0.25 {
		t.Errorf("偶数个中位数 = %v", got)
	}
}

func TestMonthlyMediansGroupsByMonth(t *testing.T) {
	posts := []*model.Post{
		{PostDate: day(2025, time.October, 1), EngagementRate: 0.02, Impressions: 100, Reactions: 2},
		{PostDate: day(2025, time.October, 15), EngagementRate: 0.04, Impressions: 100, Reactions: 4},
		{PostDate: day(2025, time.November, 3), EngagementRate: 0.10, Impressions: 100, Reactions: 10},
	}
	medians := monthlyMedians(posts)
	if len(medians) != 2 {
		t.Fatalf("月份数 = %d", len(medians))
	}
	if medians[0].Month != "2025-10" || medians[0].MedianEngagement != 0.03 {
		t.Errorf("十月中位数错误: %+v", medians[0])
	}
	if medians[1].Month != "2025-11" || medians[1].PostCount != 1 {
		t.Errorf("十一月分组错误: %+v", medians[1])
	}
}

func TestEngagementTrendComputesRollingAndThreshold(t *testing.T) {
	postRepo := &fakePostRepo{}
	now := time.Now().UTC()
	for i := 0; i < 10; i++ {
		_ = postRepo.Create(context.Background(), &model.Post{
			PostDate:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -10+i),
			EngagementRate: float64(i+1) / 100,
			Impressions:    1000,
		})
	}
	svc := NewAnalyticsService(postRepo, &fakeDailyMetricRepo{}, &fakeFollowerRepo{}, &fakeDemographicRepo{})

	trend, err := svc.EngagementTrend(context.Background(), 365)
	if err != nil {
		t.Fatal(err)
	}
	if len(trend.Points) != 10 {
		t.Fatalf("曲线点数 = %d", len(trend.Points))
	}
	if trend.TopTenThreshold != 0.09 {
		t.Errorf("阈值 = %v", trend.TopTenThreshold)
	}
	// 第五个点起窗口填满：(0.01+...+0.05)/5
	if trend.Points[4].RollingAvg != 0.03 {
		t.Errorf("rolling[4] = %v", trend.Points[4].RollingAvg)
	}
	if trend.Last30Days.PostCount != 10 {
		t.Errorf("近 30 天帖数 = %d", trend.Last30Days.PostCount)
	}
	if trend.Baseline.AvgEngagementRate != 0.055 {
		t.Errorf("基线均值 = %v", trend.Baseline.AvgEngagementRate)
	}
}

func TestCohortsGroupsAndExcludesUnlabeled(t *testing.T) {
	postRepo := &fakePostRepo{}
	_ = postRepo.Create(context.Background(), &model.Post{
		PostDate: day(2025, time.October, 1), Topic: strPtr("ai"),
		EngagementRate: 0.02, Impressions: 100, Reactions: 2,
	})
	_ = postRepo.Create(context.Background(), &model.Post{
		PostDate: day(2025, time.October, 2), Topic: strPtr("ai"),
		EngagementRate: 0.06, Impressions: 100, Reactions: 6,
	})
	_ = postRepo.Create(context.Background(), &model.Post{
		PostDate: day(2025, time.October, 3), Topic: strPtr("career"),
		EngagementRate: 0.10, Impressions: 100, Reactions: 10,
	})
	// 未标注的帖子不参与分组
	_ = postRepo.Create(context.Background(), &model.Post{
		PostDate: day(2025, time.October, 4), EngagementRate: 0.50,
	})
	svc := NewAnalyticsService(postRepo, &fakeDailyMetricRepo{}, &fakeFollowerRepo{}, &fakeDemographicRepo{})

	result, err := svc.Cohorts(context.Background(), "topic")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Cohorts) != 2 {
		t.Fatalf("分组数 = %d", len(result.Cohorts))
	}
	ai := result.Cohorts[0]
	if ai.Value != "ai" || ai.PostCount != 2 {
		t.Fatalf("ai 分组错误: %+v", ai)
	}
	if ai.AvgEngagementRate != 0.04 {
		t.Errorf("ai 均值 = %v", ai.AvgEngagementRate)
	}
	if ai.BestPostID != 2 {
		t.Errorf("ai 最佳帖子 = %d", ai.BestPostID)
	}
}

func TestCohortsRejectsUnknownDimension(t *testing.T) {
	svc := NewAnalyticsService(&fakePostRepo{}, &fakeDailyMetricRepo{}, &fakeFollowerRepo{}, &fakeDemographicRepo{})
	if _, err := svc.Cohorts(context.Background(), "favorite_color"); err != ErrParamInvalid {
		t.Errorf("err = %v", err)
	}
}

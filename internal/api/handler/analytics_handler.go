package handler

import (
	"Beacon/internal/pkg/response"
	"Beacon/internal/pkg/util"
	"Beacon/internal/service"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
	}
}

func (s *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := s.analyticsSvc.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}

func (s *AnalyticsHandler) TimeSeries(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	series, err := s.analyticsSvc.TimeSeries(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, series)
}

func (s *AnalyticsHandler) EngagementTrend(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "365"))

	trend, err := s.analyticsSvc.EngagementTrend(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trend)
}

func (s *AnalyticsHandler) Cohorts(c *gin.Context) {
	dimension := c.Query("dimension")

	cohorts, err := s.analyticsSvc.Cohorts(c.Request.Context(), dimension)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cohorts)
}

func (s *AnalyticsHandler) FollowerTrend(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	trend, err := s.analyticsSvc.FollowerTrend(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, trend)
}

func (s *AnalyticsHandler) Demographics(c *gin.Context) {
	demographics, err := s.analyticsSvc.Demographics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, demographics)
}

// parseDateRange 解析 from/to 查询参数，缺省近一年
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := util.GetMidnight(time.Now())
	from := now.AddDate(-1, 0, 0)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}

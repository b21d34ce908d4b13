package consts

const (
	AnalyticsOverviewKey   = "analytics:overview"
	AnalyticsTrendKey      = "analytics:trend"
	AnalyticsTimeSeriesKey = "analytics:timeseries:"
	AnalyticsCohortKey     = "analytics:cohort:"
	AnalyticsMonthlyKey    = "analytics:monthly"
	AnalyticsDirtyKey      = "analytics:dirty"
	OAuthStateUsedKey      = "oauth:state:used:"
)

const (
	ImportLock       = "import:lock:"
	TokenRefreshLock = "oauth:refresh:lock"
)

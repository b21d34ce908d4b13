package consts

const (
	ProviderLinkedin = "linkedin"
)

const (
	// RollingWindowSize 趋势曲线滚动均值的窗口帖数
	RollingWindowSize = 5
	// TopPerformerQuantile 头部帖子分位线
	TopPerformerQuantile = 0.10
)

const (
	CohortTopic         = "topic"
	CohortContentFormat = "content_format"
	CohortHookStyle     = "hook_style"
	CohortLengthBucket  = "length_bucket"
)

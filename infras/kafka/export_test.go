package kafka

var (
	HandleWithRetry = handleWithRetry
	Wait            = wait
)

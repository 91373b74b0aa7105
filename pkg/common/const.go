package common

const (
	// strategy:from:to:range:user:api key digest
	KEY_BACKTEST_RESULT = "backtest_result:%s:%s:%s:%s:%s:%s"
	// user:api key digest
	KEY_BACKTEST_CALLER = "%s:%s"
)

const (
	HEADER_REQUEST_ID = "X-Request-ID"
	HEADER_API_KEY    = "X-Api-Key"
)

const (
	LOG_KEY_REQUEST_ID  = "request_id"
	LOG_KEY_STRATEGY_ID = "strategy_id"
)

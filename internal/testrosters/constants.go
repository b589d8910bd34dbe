package testrosters

// HTTP status code constants.
const (
	StatusOK            = 200
	StatusUnprocessable = 422
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	DefaultSampleSize    = 10
	PercentageMultiplier = 100
)

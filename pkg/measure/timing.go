package measure

import "time"

const (
	// slow3GBytesPerSecond is the throughput loading time is estimated against.
	slow3GBytesPerSecond = 50 * 1024
	minLoadingTime       = 10 * time.Millisecond
)

// LoadingTime estimates how long size bytes take to download on a slow 3G connection.
func LoadingTime(size int64) time.Duration {
	d := time.Duration(float64(size) / slow3GBytesPerSecond * float64(time.Second))
	if d < minLoadingTime {
		return minLoadingTime
	}
	return d
}

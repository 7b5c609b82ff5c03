package dyndb

import "time"

// SetBatchRetryDelay troca a espera entre reenvios do BatchWrite.
func SetBatchRetryDelay(d time.Duration) (restore func()) {
	old := batchRetryDelay
	batchRetryDelay = d
	return func() { batchRetryDelay = old }
}

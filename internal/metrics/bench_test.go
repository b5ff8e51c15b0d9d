package metrics

import "testing"

// BenchmarkCollector_LineSent measures the per-line cost on the
// outbound loop.
func BenchmarkCollector_LineSent(b *testing.B) {
	c := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.BytesSent(64)
		c.LineSent()
	}
}

// BenchmarkCollector_BytesReceived measures the per-chunk cost on the
// inbound loop.
func BenchmarkCollector_BytesReceived(b *testing.B) {
	c := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.BytesReceived(32768)
	}
}

// BenchmarkCollector_SendFailed includes the mutex taken by RecordError.
func BenchmarkCollector_SendFailed(b *testing.B) {
	c := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.SendFailed("short write")
	}
}

// BenchmarkCollector_JSON measures the shutdown summary.
func BenchmarkCollector_JSON(b *testing.B) {
	c := New()
	c.ConnectAttempt()
	c.ConnectionOpened()
	c.BytesSent(1024)
	c.LineSent()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.JSON()
	}
}

// BenchmarkNilCollector covers sessions run without a collector.
func BenchmarkNilCollector(b *testing.B) {
	var c *Collector
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.ConnectAttempt()
		c.BytesSent(32768)
		c.LineSent()
	}
}

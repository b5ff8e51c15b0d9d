package util

import "sync"

// chunkPool holds DefaultBufSize read buffers for the inbound relay
// loop.  A run needs only one, but tests start many sessions.
var chunkPool = sync.Pool{
	New: func() any {
		buf := make([]byte, DefaultBufSize)
		return &buf
	},
}

// GetBuf returns a DefaultBufSize buffer.  Return it with [PutBuf].
func GetBuf() *[]byte {
	return chunkPool.Get().(*[]byte)
}

// PutBuf returns buf to the pool.  Buffers of the wrong size are
// dropped so every GetBuf caller sees a full-size chunk.
func PutBuf(buf *[]byte) {
	if buf == nil || len(*buf) != DefaultBufSize {
		return
	}
	chunkPool.Put(buf)
}

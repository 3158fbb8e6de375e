package util

import "sync"

// ReadBufSize is the per-read chunk size of the chat wire protocol.
const ReadBufSize = 1024

// BufPool provides reusable read buffers so that reconnecting does not
// allocate a fresh buffer per session.
var BufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, ReadBufSize)
		return &buf
	},
}

// GetBuf retrieves a buffer from the pool.  Callers must return it
// with [PutBuf] when finished.
func GetBuf() *[]byte {
	return BufPool.Get().(*[]byte)
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	BufPool.Put(buf)
}

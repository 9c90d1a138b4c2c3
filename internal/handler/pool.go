package handler

import (
	"bytes"
	"sync"
)

// respBufferSize covers a typical inventory list without growing
const respBufferSize = 4096

// bufferPool recycles response encoding buffers
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, respBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// putBuffer drops oversized buffers so one large snapshot does not pin memory
func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 16*respBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

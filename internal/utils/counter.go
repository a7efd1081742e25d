package utils

import "io"

// ReadCounter 统计经过的字节数，多个ReadCounter可以共用同一个Count
type ReadCounter struct {
	Count  *uint64
	Reader io.Reader
}

func (r *ReadCounter) Read(p []byte) (n int, err error) {
	n, err = r.Reader.Read(p)
	*r.Count += uint64(n)
	return
}

type WriterCounter struct {
	Writer io.Writer
	Count  uint64
}

func (w *WriterCounter) Write(p []byte) (n int, err error) {
	n, err = w.Writer.Write(p)
	w.Count += uint64(n)
	return
}

package runtime

import (
	"io"
	"sync"
)

// Reports when a tar stream fed to a container exec has been consumed.
//
// done is closed on the first [io.EOF] from the wrapped reader and never
// again, so it can be observed from any goroutine.
type doneReader struct {
	r    io.Reader
	once sync.Once
	done chan struct{}
}

func newDoneReader(r io.Reader) *doneReader {
	return &doneReader{r: r, done: make(chan struct{})}
}

// Reads from the wrapped reader. Errors other than EOF leave done open.
func (d *doneReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if err == io.EOF {
		d.once.Do(func() { close(d.done) })
	}
	return n, err
}

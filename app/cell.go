package app

import "github.com/frondui/frond/errors"

// accessCell is a runtime guard for state that must be accessed from the
// host's single UI scheduler: any number of readers or exactly one writer.
// A violation means application code re-entered the runtime from inside an
// update, sink or view call, which is a contract breach, so the cell panics
// instead of returning an error.
type accessCell struct {
	readers int
	writing bool
}

func (c *accessCell) beginRead(op string) {
	if c.writing {
		panic(errors.ReentrantAccess(op))
	}
	c.readers++
}

func (c *accessCell) endRead() {
	c.readers--
}

func (c *accessCell) beginWrite(op string) {
	if c.writing || c.readers > 0 {
		panic(errors.ReentrantAccess(op))
	}
	c.writing = true
}

func (c *accessCell) endWrite() {
	c.writing = false
}

package pixelator

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalesces(t *testing.T) {
	var fired int32
	d := newDebouncer(20*time.Millisecond, func(path string) {
		atomic.AddInt32(&fired, 1)
	})

	d.trigger("a.png")
	d.trigger("a.png")
	d.trigger("a.png")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var fired int32
	d := newDebouncer(20*time.Millisecond, func(path string) {
		atomic.AddInt32(&fired, 1)
	})

	d.trigger("a.png")
	d.trigger("b.png")
	d.stop()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fired))
}

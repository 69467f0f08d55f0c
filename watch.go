package pixelator

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debouncer coalesces rapid event bursts into a single callback per file,
// so a file still being written out by another program is converted once.
type debouncer struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	delay  time.Duration
	onFire func(path string)
}

func newDebouncer(delay time.Duration, onFire func(path string)) *debouncer {
	return &debouncer{
		timers: make(map[string]*time.Timer),
		delay:  delay,
		onFire: onFire,
	}
}

func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[path]; ok {
		t.Reset(d.delay)
		return
	}
	d.timers[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()
		d.onFire(path)
	})
}

// stop cancels every pending timer so no callback fires after shutdown.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}

// Watch converts images as they appear under dir, writing results into dst.
// It blocks until ctx is cancelled.
func (p *Pixelator) Watch(ctx context.Context, dir, dst string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	deb := newDebouncer(500*time.Millisecond, func(file string) {
		out := filepath.Join(dst, strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))+".png")
		if err := p.ConvertFile(file, out); err != nil {
			p.logger.Printf("watch: \"%s\": %v\n", file, err)
			return
		}
		p.logger.Printf("watch: converted \"%s\"\n", file)
	})
	defer deb.stop()

	if err := w.Add(dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !isImage(ev.Name) {
				continue
			}
			deb.trigger(ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.logger.Printf("watch: %v\n", err)
		}
	}
}

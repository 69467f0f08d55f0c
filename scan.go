package pixelator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

func isImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}

func (p *Pixelator) findImages(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc
}

func (p *Pixelator) convertWorker(src, dst string, in <-chan string) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			rel, err := filepath.Rel(src, file)
			if err != nil {
				errc <- err
				return
			}

			out := filepath.Join(dst, strings.TrimSuffix(rel, filepath.Ext(rel))+".png")
			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				errc <- err
				return
			}

			// A file that fails to decode should not abort the whole
			// scan; anything else is fatal.
			if err := p.ConvertFile(file, out); err != nil {
				p.logger.Printf("skipping \"%s\": %v\n", file, err)
			}
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan converts every image found under src into dst, mirroring the
// directory layout. Results are written as PNG regardless of the source
// container.
func (p *Pixelator) Scan(src, dst string) error {
	srcDir, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc := p.findImages(ctx, srcDir)
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errcList = append(errcList, p.convertWorker(srcDir, dst, files))
	}

	return waitForPipeline(errcList...)
}

package mode13h

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/mode13h/bmp"
)

const (
	defaultWorkers = 4

	// Extension is appended to converted files in place of ".bmp"
	Extension = ".pbm"
)

func isBitmap(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".bmp")
}

func outputName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + Extension
}

func (c *Converter) findBitmaps(ctx context.Context, base string) (<-chan string, <-chan error, error) {
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
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() || !isBitmap(file) {
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
	return out, errc, nil
}

func (c *Converter) conversionWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := c.ConvertFile(file, outputName(file)); err != nil {
				// A malformed bitmap only fails its own conversion
				var fe bmp.FormatError
				if errors.As(err, &fe) {
					c.logger.Printf("Skipping %v\n", err)
					continue
				}
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

// waitForPipeline drains every stage, cancelling the rest on the first error.
// It only returns once all of them have finished.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
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

// Scan walks path converting every bitmap found to a packed bitmap alongside
// it, using workers goroutines. Malformed bitmaps are logged and skipped,
// any other error stops the scan.
func (c *Converter) Scan(path string, workers int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if workers <= 0 {
		workers = defaultWorkers
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findBitmaps(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := c.conversionWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}

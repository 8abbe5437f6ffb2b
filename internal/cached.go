package internal

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// CachedLoader wraps a Loader and serves a cached snapshot of the
// knowledge base. The cache invalidates on any fsnotify event under the
// watched directory; the next Knowledge call then reloads. Watcher errors
// also mark the cache dirty so a flaky watch degrades to reload-per-call
// instead of serving stale data.
type CachedLoader struct {
	loader  *Loader
	watcher *fsnotify.Watcher
	log     *slog.Logger

	mu     sync.Mutex
	kb     *KnowledgeBase
	report *LoadReport
	dirty  bool

	done chan struct{}
}

func NewCachedLoader(loader *Loader, watchDir string, logger *slog.Logger) (*CachedLoader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(watchDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", watchDir, err)
	}

	c := &CachedLoader{
		loader:  loader,
		watcher: watcher,
		log:     logger,
		dirty:   true,
		done:    make(chan struct{}),
	}
	go c.run()

	return c, nil
}

func (c *CachedLoader) run() {
	for {
		select {
		case <-c.done:
			return
		case _, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			c.Invalidate()
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.log.Warn("knowledge watch error", "error", err)
			c.Invalidate()
		}
	}
}

// Invalidate forces the next Knowledge call to reload from disk.
func (c *CachedLoader) Invalidate() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

func (c *CachedLoader) Knowledge() (*KnowledgeBase, *LoadReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dirty || c.kb == nil {
		c.kb, c.report = c.loader.Load()
		c.dirty = false
	}
	return c.kb, c.report
}

func (c *CachedLoader) Close() error {
	close(c.done)
	return c.watcher.Close()
}

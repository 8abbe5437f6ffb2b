package internal

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// DocumentExtensions are the file suffixes recognized as knowledge
// documents.
var DocumentExtensions = []string{".yaml", ".yml"}

// LoadFailure records one document that could not be read or parsed.
type LoadFailure struct {
	File string
	Err  error
}

// LoadReport summarizes one load pass over the knowledge directory.
type LoadReport struct {
	Files    int
	Failures []LoadFailure
}

// KnowledgeSource hands out the current knowledge base. The plain Loader
// re-reads the directory on every call; CachedLoader serves a snapshot.
type KnowledgeSource interface {
	Knowledge() (*KnowledgeBase, *LoadReport)
}

// Loader reads every knowledge document under one directory and merges
// them, in sorted filename order, into a single base. A broken document is
// reported and skipped; it never aborts the load.
type Loader struct {
	fs  billy.Filesystem
	dir string
	log *slog.Logger
}

func NewLoader(fs billy.Filesystem, dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fs: fs, dir: dir, log: logger}
}

func (l *Loader) Knowledge() (*KnowledgeBase, *LoadReport) {
	return l.Load()
}

func (l *Loader) Load() (*KnowledgeBase, *LoadReport) {
	kb := NewKnowledgeBase()
	report := &LoadReport{}

	infos, err := l.fs.ReadDir(l.dir)
	if err != nil {
		report.Failures = append(report.Failures, LoadFailure{File: l.dir, Err: fmt.Errorf("read directory: %w", err)})
		l.log.Warn("knowledge directory unreadable", "dir", l.dir, "error", err)
		return kb, report
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !isDocument(info.Name()) {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		report.Files++
		path := l.fs.Join(l.dir, name)

		data, err := util.ReadFile(l.fs, path)
		if err != nil {
			report.Failures = append(report.Failures, LoadFailure{File: name, Err: fmt.Errorf("read document: %w", err)})
			l.log.Warn("knowledge document skipped", "file", name, "error", err)
			continue
		}

		doc, err := ParseDocument(data)
		if err != nil {
			report.Failures = append(report.Failures, LoadFailure{File: name, Err: err})
			l.log.Warn("knowledge document skipped", "file", name, "error", err)
			continue
		}

		kb.Merge(doc)
	}

	return kb, report
}

func isDocument(name string) bool {
	for _, ext := range DocumentExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Writer persists report documents as JSON files under a fixed directory,
// one file per scenario category.
type Writer struct {
	dir string
	log logrus.FieldLogger
}

// NewWriter creates a report writer rooted at dir.
func NewWriter(log logrus.FieldLogger, dir string) *Writer {
	return &Writer{
		dir: dir,
		log: log.WithField("component", "report_writer"),
	}
}

// Write serializes doc to filename under the writer's directory and returns
// the written path. Write never fails the run: a serialization or filesystem
// error is logged and an empty path returned, so the caller can still
// inspect the in-memory document.
func (w *Writer) Write(doc *Document, filename string) string {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		w.log.WithError(err).WithField("dir", w.dir).Warn("failed to create report directory")
		return ""
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		w.log.WithError(err).Warn("failed to serialize report")
		return ""
	}

	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		w.log.WithError(err).WithField("path", path).Warn("failed to write report")
		return ""
	}

	w.log.WithField("path", path).Debug("report written")

	return path
}

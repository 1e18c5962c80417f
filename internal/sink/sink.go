package sink

import (
	"fmt"
	"os"
	"strings"

	"github.com/mcncl/envflat/internal/errors"
	"github.com/mcncl/envflat/internal/models"
)

// Writer appends KEY=VALUE lines to an env file such as $GITHUB_ENV.
type Writer struct {
	path string
}

// New returns a Writer for the file at path. An empty path means no env file
// was configured and yields a sink error.
func New(path string) (*Writer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.NewSinkError(errors.ErrSinkUnavailable.Error(), errors.ErrSinkUnavailable)
	}
	return &Writer{path: path}, nil
}

// Append writes the rendered pairs to the end of the file in a single write,
// creating the file if needed. Existing content is never truncated.
func (w *Writer) Append(pairs []models.Pair) error {
	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.NewSinkError(fmt.Sprintf("failed to open env file '%s'", w.path), err)
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := file.WriteString(Render(pairs)); err != nil {
		return errors.NewSinkError(fmt.Sprintf("failed to append to env file '%s'", w.path), err)
	}
	return nil
}

// Render serializes pairs as KEY=VALUE lines joined by newlines, followed by a
// trailing newline. An empty list renders as a single newline.
func Render(pairs []models.Pair) string {
	lines := make([]string, len(pairs))
	for i, pair := range pairs {
		lines[i] = pair.String()
	}
	return strings.Join(lines, "\n") + "\n"
}

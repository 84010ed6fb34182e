package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	domainconfig "github.com/kodflow/msgbus/internal/domain/config"
	"github.com/kodflow/msgbus/internal/domain/logging"
)

const (
	dirPermissions  os.FileMode = 0o750
	filePermissions os.FileMode = 0o600
)

// FileWriter writes log messages to a file, rotating it by renaming numbered
// backups (path.1, path.2, ...) once it exceeds the configured size.
type FileWriter struct {
	mu          sync.Mutex
	file        *os.File
	path        string
	format      *logging.Formatter
	maxSizeByte int64
	maxFiles    int
	size        int64
}

// NewFileWriter opens (creating if necessary) a log file at path, applying
// rotation according to the given config.
func NewFileWriter(path string, rotation domainconfig.RotationConfig) (fw *FileWriter, err error) {
	if mkErr := os.MkdirAll(filepath.Dir(path), dirPermissions); mkErr != nil {
		return nil, fmt.Errorf("creating log directory: %w", mkErr)
	}

	file, openErr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermissions)
	if openErr != nil {
		return nil, fmt.Errorf("opening log file: %w", openErr)
	}
	defer func() {
		if err != nil && file != nil {
			_ = file.Close()
		}
	}()

	info, statErr := file.Stat()
	if statErr != nil {
		return nil, fmt.Errorf("stat log file: %w", statErr)
	}

	maxSize, sizeErr := domainconfig.ParseSize(rotation.MaxSize)
	if sizeErr != nil {
		return nil, fmt.Errorf("parsing rotation max_size: %w", sizeErr)
	}

	return &FileWriter{
		file:        file,
		path:        path,
		format:      logging.NewFormatter(),
		maxSizeByte: maxSize,
		maxFiles:    rotation.MaxFiles,
		size:        info.Size(),
	}, nil
}

// Write formats msg and appends it to the file, rotating first if the
// append would exceed the configured size.
func (w *FileWriter) Write(msg logging.LogMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	line := w.format.Format(msg) + "\n"

	if w.maxSizeByte > 0 && w.size+int64(len(line)) > w.maxSizeByte {
		if err := w.rotate(); err != nil {
			return err
		}
	}

	n, err := w.file.WriteString(line)
	w.size += int64(n)
	return err
}

// rotate closes the active file, shifts existing numbered backups up by one
// slot (dropping the oldest beyond maxFiles), and reopens a fresh file at
// the original path.
func (w *FileWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("closing log file for rotation: %w", err)
	}

	if w.maxFiles > 0 {
		oldest := fmt.Sprintf("%s.%d", w.path, w.maxFiles)
		_ = os.Remove(oldest)

		for i := w.maxFiles - 1; i >= 1; i-- {
			from := fmt.Sprintf("%s.%d", w.path, i)
			to := fmt.Sprintf("%s.%d", w.path, i+1)
			_ = os.Rename(from, to)
		}
		_ = os.Rename(w.path, fmt.Sprintf("%s.1", w.path))
	}

	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePermissions)
	if err != nil {
		return fmt.Errorf("reopening log file after rotation: %w", err)
	}
	w.file = file
	w.size = 0
	return nil
}

// Close closes the underlying file.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

var _ logging.Writer = (*FileWriter)(nil)

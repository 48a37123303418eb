package sink

import (
	"bufio"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/loghive/loghub"
)

// RotateConfig configures a rotating-file sink.
type RotateConfig struct {
	Directory   string // log directory; defaults to "."
	Name        string // base file name without extension; defaults to "log"
	MaxSizeMB   int    // rotate once the file exceeds this size; defaults to 100
	MaxArchives int    // rotated files to keep; 0 keeps all
	FlushEvery  int    // flush after every N deliveries; 0 flushes only on worker ticks
}

// Rotate writes entries to a size-rotated log file. Rotation, archive pruning
// and reopening are delegated to lumberjack; this type adds write buffering
// with a count-based flush policy on top.
type Rotate struct {
	file       *lumberjack.Logger
	buf        *bufio.Writer
	flushEvery int
	pending    int
}

// NewRotate creates the sink. The file itself is opened lazily on the first
// write.
func NewRotate(cfg RotateConfig) (*Rotate, error) {
	if cfg.Directory == "" {
		cfg.Directory = "."
	}
	if cfg.Name == "" {
		cfg.Name = "log"
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 100
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Directory, cfg.Name+".log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxArchives,
	}
	return &Rotate{
		file:       file,
		buf:        bufio.NewWriter(file),
		flushEvery: cfg.FlushEvery,
	}, nil
}

// Deliver appends one formatted line, honoring the flush policy.
func (r *Rotate) Deliver(e loghub.Entry) error {
	if _, err := r.buf.WriteString(e.Format()); err != nil {
		return err
	}
	if err := r.buf.WriteByte('\n'); err != nil {
		return err
	}

	r.pending++
	if r.flushEvery > 0 && r.pending >= r.flushEvery {
		return r.Flush()
	}
	return nil
}

// ChangeLogFile moves logging to a new file and returns its path. The old
// file is flushed and closed first; an empty name keeps the current base
// name.
func (r *Rotate) ChangeLogFile(directory, name string) (string, error) {
	if err := r.Flush(); err != nil {
		return "", err
	}
	if err := r.file.Close(); err != nil {
		return "", err
	}

	if name == "" {
		base := filepath.Base(r.file.Filename)
		name = base[:len(base)-len(filepath.Ext(base))]
	}
	r.file.Filename = filepath.Join(directory, name+".log")
	r.buf.Reset(r.file)
	return r.file.Filename, nil
}

// LogFileName returns the path of the current log file.
func (r *Rotate) LogFileName() string {
	return r.file.Filename
}

// SetMaxLogSize changes the rotation threshold in megabytes.
func (r *Rotate) SetMaxLogSize(mb int) {
	r.file.MaxSize = mb
}

// MaxLogSize returns the rotation threshold in megabytes.
func (r *Rotate) MaxLogSize() int {
	return r.file.MaxSize
}

// SetMaxArchiveCount changes how many rotated files are kept.
func (r *Rotate) SetMaxArchiveCount(n int) {
	r.file.MaxBackups = n
}

// MaxArchiveCount returns how many rotated files are kept.
func (r *Rotate) MaxArchiveCount() int {
	return r.file.MaxBackups
}

// SetFlushPolicy changes the count-based flush policy; 0 defers flushing to
// the worker's periodic tick.
func (r *Rotate) SetFlushPolicy(every int) {
	r.flushEvery = every
}

// Flush drains the write buffer to the file.
func (r *Rotate) Flush() error {
	r.pending = 0
	return r.buf.Flush()
}

// Close flushes and closes the current file.
func (r *Rotate) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}
	return r.file.Close()
}

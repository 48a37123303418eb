package hub

import "github.com/loghive/loghub/sink"

// RotateSinks is the façade for rotating-file sinks. Any number of instances
// may be live at once.
type RotateSinks struct {
	f *Facade[*sink.Rotate]
}

// New creates a rotating-file sink under name.
func (s *RotateSinks) New(name string, cfg sink.RotateConfig) (*RotateHandle, error) {
	h, err := s.f.New(name, func() (*sink.Rotate, error) {
		return sink.NewRotate(cfg)
	})
	if err != nil {
		return nil, err
	}
	return &RotateHandle{Handle: h}, nil
}

// Open returns a fresh handle on the sink created under name.
func (s *RotateSinks) Open(name string) (*RotateHandle, error) {
	h, err := s.f.Open(name)
	if err != nil {
		return nil, err
	}
	return &RotateHandle{Handle: h}, nil
}

// Retire removes the sink's registry bookkeeping and frees its name.
func (s *RotateSinks) Retire(name string) error {
	return s.f.Retire(name)
}

// Len returns the number of live rotating-file sinks.
func (s *RotateSinks) Len() int {
	return s.f.Len()
}

// RotateHandle provides the rotating-file operations on top of the generic
// handle.
type RotateHandle struct {
	*Handle[*sink.Rotate]
}

// ChangeLogFile moves logging to a new file and returns its path.
func (h *RotateHandle) ChangeLogFile(directory, name string) (string, error) {
	var path string
	err := h.With(func(s *sink.Rotate) error {
		var err error
		path, err = s.ChangeLogFile(directory, name)
		return err
	})
	return path, err
}

// LogFileName returns the path of the current log file.
func (h *RotateHandle) LogFileName() (string, error) {
	var path string
	err := h.With(func(s *sink.Rotate) error {
		path = s.LogFileName()
		return nil
	})
	return path, err
}

// SetMaxLogSize changes the rotation threshold in megabytes.
func (h *RotateHandle) SetMaxLogSize(mb int) error {
	return h.With(func(s *sink.Rotate) error {
		s.SetMaxLogSize(mb)
		return nil
	})
}

// MaxLogSize returns the rotation threshold in megabytes.
func (h *RotateHandle) MaxLogSize() (int, error) {
	var mb int
	err := h.With(func(s *sink.Rotate) error {
		mb = s.MaxLogSize()
		return nil
	})
	return mb, err
}

// SetMaxArchiveCount changes how many rotated files are kept.
func (h *RotateHandle) SetMaxArchiveCount(n int) error {
	return h.With(func(s *sink.Rotate) error {
		s.SetMaxArchiveCount(n)
		return nil
	})
}

// MaxArchiveCount returns how many rotated files are kept.
func (h *RotateHandle) MaxArchiveCount() (int, error) {
	var n int
	err := h.With(func(s *sink.Rotate) error {
		n = s.MaxArchiveCount()
		return nil
	})
	return n, err
}

// SetFlushPolicy changes the count-based flush policy; 0 defers flushing to
// the worker's periodic tick.
func (h *RotateHandle) SetFlushPolicy(every int) error {
	return h.With(func(s *sink.Rotate) error {
		s.SetFlushPolicy(every)
		return nil
	})
}

// Flush drains the sink's write buffer.
func (h *RotateHandle) Flush() error {
	return h.With(func(s *sink.Rotate) error { return s.Flush() })
}

package hub

import (
	"log/syslog"

	"github.com/loghive/loghub"
	"github.com/loghive/loghub/sink"
)

// SyslogSinks is the façade for the syslog kind. Syslog identity is
// process-global state, so only a single live instance is allowed; creating
// a second one fails with an instance-limit error regardless of name.
type SyslogSinks struct {
	f *Facade[*sink.Syslog]
}

// New creates the syslog sink. The identity string is persisted in hub-owned
// storage before the sink sees it, because the syslog connection may keep
// referring to it for the sink's whole lifetime.
func (s *SyslogSinks) New(name string, cfg sink.SyslogConfig) (*SyslogHandle, error) {
	cfg.Identity = s.f.hub.store.persist(cfg.Identity)

	h, err := s.f.New(name, func() (*sink.Syslog, error) {
		return sink.NewSyslog(cfg)
	})
	if err != nil {
		return nil, err
	}
	return &SyslogHandle{Handle: h}, nil
}

// Open returns a fresh handle on the sink created under name.
func (s *SyslogSinks) Open(name string) (*SyslogHandle, error) {
	h, err := s.f.Open(name)
	if err != nil {
		return nil, err
	}
	return &SyslogHandle{Handle: h}, nil
}

// Retire removes the sink's registry bookkeeping and frees its name.
func (s *SyslogSinks) Retire(name string) error {
	return s.f.Retire(name)
}

// Len reports whether the syslog sink is live (0 or 1).
func (s *SyslogSinks) Len() int {
	return s.f.Len()
}

// SyslogHandle provides the syslog-specific operations on top of the generic
// handle. Every method routes through the scoped registry guard.
type SyslogHandle struct {
	*Handle[*sink.Syslog]
}

// SetIdentity changes the ident string and reconnects. The new identity is
// persisted the same way as the construction argument.
func (h *SyslogHandle) SetIdentity(identity string) error {
	identity = h.facade.hub.store.persist(identity)
	return h.With(func(s *sink.Syslog) error { return s.SetIdentity(identity) })
}

// SetFacility changes the syslog facility and reconnects.
func (h *SyslogHandle) SetFacility(facility syslog.Priority) error {
	return h.With(func(s *sink.Syslog) error { return s.SetFacility(facility) })
}

// SetLevelMap overrides how entry levels map to syslog severities.
func (h *SyslogHandle) SetLevelMap(m map[loghub.Level]syslog.Priority) error {
	return h.With(func(s *sink.Syslog) error {
		s.SetLevelMap(m)
		return nil
	})
}

// SetLevel overrides the syslog severity used for a single level.
func (h *SyslogHandle) SetLevel(level loghub.Level, prio syslog.Priority) error {
	return h.With(func(s *sink.Syslog) error {
		s.SetLevel(level, prio)
		return nil
	})
}

// SetOption applies openlog(3)-style option bits.
func (h *SyslogHandle) SetOption(opt int) error {
	return h.With(func(s *sink.Syslog) error {
		s.SetOption(opt)
		return nil
	})
}

// EchoToStderr additionally copies delivered entries to stderr.
func (h *SyslogHandle) EchoToStderr() error {
	return h.With(func(s *sink.Syslog) error {
		s.EchoToStderr()
		return nil
	})
}

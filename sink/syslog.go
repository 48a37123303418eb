//go:build !windows && !plan9

package sink

import (
	"io"
	"log/syslog"
	"os"

	"github.com/loghive/loghub"
)

// SyslogConn is the subset of *syslog.Writer the sink uses. Injectable so
// tests can run without a reachable syslog daemon.
type SyslogConn interface {
	Debug(m string) error
	Info(m string) error
	Warning(m string) error
	Err(m string) error
	Close() error
}

// SyslogDialer opens a syslog connection for the given facility and identity.
type SyslogDialer func(facility syslog.Priority, identity string) (SyslogConn, error)

func defaultSyslogDialer(facility syslog.Priority, identity string) (SyslogConn, error) {
	return syslog.New(facility, identity)
}

// SyslogConfig configures a Syslog sink.
//
// Identity is retained by the syslog connection for the sink's whole
// lifetime, since syslog(3) may keep using the ident string it was opened
// with, so the hub persists a copy before the sink ever sees it.
type SyslogConfig struct {
	Identity string
	Facility syslog.Priority                  // defaults to LOG_USER
	LevelMap map[loghub.Level]syslog.Priority // overrides the default severity mapping
	Dial     SyslogDialer                     // test hook; nil means the real dialer
}

// Syslog forwards entries to the local syslog daemon. The hub registers it as
// a single-instance kind: syslog identity is process-global state, and two
// live instances would fight over it.
type Syslog struct {
	dial     SyslogDialer
	conn     SyslogConn
	identity string
	facility syslog.Priority
	levels   map[loghub.Level]syslog.Priority
	echo     bool
	stderr   io.Writer
}

// NewSyslog opens a syslog connection with the configured identity and
// facility.
func NewSyslog(cfg SyslogConfig) (*Syslog, error) {
	s := &Syslog{
		dial:     cfg.Dial,
		identity: cfg.Identity,
		facility: cfg.Facility,
		levels:   defaultLevelMap(),
		stderr:   os.Stderr,
	}
	if s.dial == nil {
		s.dial = defaultSyslogDialer
	}
	if s.facility == 0 {
		s.facility = syslog.LOG_USER
	}
	for lvl, prio := range cfg.LevelMap {
		s.levels[lvl] = prio
	}
	return s, s.reopen(s.facility, s.identity)
}

func defaultLevelMap() map[loghub.Level]syslog.Priority {
	return map[loghub.Level]syslog.Priority{
		loghub.LevelDebug:   syslog.LOG_DEBUG,
		loghub.LevelInfo:    syslog.LOG_INFO,
		loghub.LevelWarning: syslog.LOG_WARNING,
		loghub.LevelError:   syslog.LOG_ERR,
	}
}

// reopen dials the daemon with the requested settings and swaps the
// connection only on success. Identity and facility are fixed at dial time,
// and a failed dial must not take down a live sink: the worker keeps
// delivering through whatever connection the sink held before, so on failure
// both the connection and the committed settings stay as they were.
func (s *Syslog) reopen(facility syslog.Priority, identity string) error {
	conn, err := s.dial(facility, identity)
	if err != nil {
		return err
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.conn = conn
	s.facility = facility
	s.identity = identity
	return nil
}

// Deliver writes the entry at the severity mapped from its level.
func (s *Syslog) Deliver(e loghub.Entry) error {
	if s.echo {
		io.WriteString(s.stderr, e.Format()+"\n")
	}

	switch s.levels[e.Level] {
	case syslog.LOG_DEBUG:
		return s.conn.Debug(e.Message)
	case syslog.LOG_INFO, syslog.LOG_NOTICE:
		return s.conn.Info(e.Message)
	case syslog.LOG_WARNING:
		return s.conn.Warning(e.Message)
	default:
		return s.conn.Err(e.Message)
	}
}

// SetIdentity changes the ident string prepended to every message and
// reconnects. On failure the previous connection and identity remain in
// effect. The caller (the hub façade) must pass a persisted copy.
func (s *Syslog) SetIdentity(identity string) error {
	return s.reopen(s.facility, identity)
}

// SetFacility changes the syslog facility and reconnects. On failure the
// previous connection and facility remain in effect.
func (s *Syslog) SetFacility(facility syslog.Priority) error {
	return s.reopen(facility, s.identity)
}

// SetLevelMap overrides how entry levels map to syslog severities. Levels
// absent from m keep their current mapping.
func (s *Syslog) SetLevelMap(m map[loghub.Level]syslog.Priority) {
	for lvl, prio := range m {
		s.levels[lvl] = prio
	}
}

// SetLevel overrides the syslog severity used for a single level.
func (s *Syslog) SetLevel(level loghub.Level, prio syslog.Priority) {
	s.levels[level] = prio
}

// Option bits accepted by SetOption, with the values openlog(3) uses.
const (
	LogPID    = 0x01
	LogCons   = 0x02
	LogODelay = 0x04
	LogNDelay = 0x08
	LogNoWait = 0x10
	LogPerror = 0x20
)

// SetOption applies openlog(3)-style option bits. LogPerror toggles the
// stderr echo. The remaining bits configure how the C library opens its
// daemon connection; the Go syslog transport dials on its own terms and
// cannot forward them, so they are accepted without effect.
func (s *Syslog) SetOption(opt int) {
	s.echo = opt&LogPerror != 0
}

// EchoToStderr additionally copies every delivered entry to stderr, the
// moral equivalent of openlog's LOG_PERROR option.
func (s *Syslog) EchoToStderr() {
	s.echo = true
}

// Close disconnects from the daemon.
func (s *Syslog) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

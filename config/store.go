package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"pcrchat/internal/errors"
	"pcrchat/util"
)

// Store persists a single Endpoint as one "host,port" line.  It does
// not validate what it is given.
type Store struct {
	Path   string
	Logger *util.Logger

	mu sync.Mutex
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string, logger *util.Logger) *Store {
	return &Store{Path: path, Logger: logger}
}

// Load returns the stored endpoint.  When the file is missing, or its
// record cannot be parsed, the default endpoint is written and
// returned.  A file that exists but cannot be read is left alone and
// the read error is returned.
func (s *Store) Load() (Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save replaces the stored endpoint.
func (s *Store) Save(ep Endpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ep)
}

// SetHost stores host and keeps the current port.
func (s *Store) SetHost(host string) (Endpoint, error) {
	return s.update(func(ep *Endpoint) { ep.Host = host })
}

// SetPort stores port and keeps the current host.
func (s *Store) SetPort(port int) (Endpoint, error) {
	return s.update(func(ep *Endpoint) { ep.Port = port })
}

func (s *Store) update(fn func(*Endpoint)) (Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ep, err := s.load()
	if err != nil {
		return Endpoint{}, err
	}
	fn(&ep)
	if err := s.save(ep); err != nil {
		return Endpoint{}, err
	}
	return ep, nil
}

func (s *Store) load() (Endpoint, error) {
	data, err := os.ReadFile(s.Path)
	switch {
	case err == nil:
		ep, perr := ParseRecord(string(data))
		if perr == nil {
			return ep, nil
		}
		s.warn("%s: %v; rewriting defaults", s.Path, perr)
	case os.IsNotExist(err):
		s.debug("%s not found; creating it with defaults", s.Path)
	default:
		return Endpoint{}, fmt.Errorf("read endpoint file: %w", err)
	}

	ep := DefaultEndpoint()
	if err := s.save(ep); err != nil {
		return Endpoint{}, fmt.Errorf("create default endpoint file: %w", err)
	}
	return ep, nil
}

// save writes to a temporary file in the same directory and renames it
// over the record, so a reader sees either the old or the new value.
func (s *Store) save(ep Endpoint) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.WriteString(ep.Record()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return err
	}
	s.debug("endpoint %s written to %s", ep, s.Path)
	return nil
}

// ParseRecord parses the first line of a store record.
func ParseRecord(record string) (Endpoint, error) {
	line, _, _ := strings.Cut(record, "\n")
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 2 {
		return Endpoint{}, &errors.ConfigError{
			Field:   "config",
			Value:   line,
			Message: "record must be <ipv4>,<port>",
		}
	}
	host := strings.TrimSpace(fields[0])
	port, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || host == "" {
		return Endpoint{}, &errors.ConfigError{
			Field:   "config",
			Value:   line,
			Message: "record must be <ipv4>,<port>",
		}
	}
	return Endpoint{Host: host, Port: port}, nil
}

func (s *Store) warn(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Warn(format, args...)
	}
}

func (s *Store) debug(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(format, args...)
	}
}

package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/beldeveloper/go-errors-context"
	"github.com/rs/zerolog"
)

// NewFile creates a new instance of the file-backed audit log.
func NewFile(path model.AuditLogPath) (Service, error) {
	err := os.MkdirAll(filepath.Dir(string(path)), 0755)
	if err != nil {
		return File{}, errors.WrapContext(err, errors.Context{
			Path:   "service.audit.NewFile: mkdir",
			Params: errors.Params{"path": path},
		})
	}
	f, err := os.OpenFile(string(path), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return File{}, errors.WrapContext(err, errors.Context{
			Path:   "service.audit.NewFile: open",
			Params: errors.Params{"path": path},
		})
	}
	logger := zerolog.New(f)
	return File{path: string(path), f: f, logger: logger, mux: &sync.Mutex{}}, nil
}

// File implements the append-only audit log as JSON Lines. Entries are never
// mutated or deleted; retention is an external concern.
type File struct {
	path   string
	f      *os.File
	logger zerolog.Logger
	mux    *sync.Mutex
}

// Append writes one entry and flushes it durably before returning, so the
// trail always reflects the transitions actually taken when the caller
// reports a terminal state.
func (s File) Append(ctx context.Context, e model.AuditEntry) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	ev := s.logger.Log().
		Time("timestamp", e.Timestamp).
		Str("requester", e.Requester).
		Str("action", e.Action)
	if e.Environment != "" {
		ev = ev.Str("environment", string(e.Environment))
	}
	if e.Outcome != "" {
		ev = ev.Str("outcome", e.Outcome)
	}
	if e.CorrelationID != "" {
		ev = ev.Str("correlationId", e.CorrelationID)
	}
	if e.Detail != "" {
		ev = ev.Str("detail", e.Detail)
	}
	ev.Send()
	err := s.f.Sync()
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.audit.Append: sync",
			Params: errors.Params{"action": e.Action},
		})
	}
	return nil
}

// Recent returns the last limit entries. A corrupt line is skipped with a
// warning instead of discarding the whole trail.
func (s File) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapContext(err, errors.Context{
			Path:   "service.audit.Recent: open",
			Params: errors.Params{"path": s.path},
		})
	}
	defer f.Close()
	var entries []model.AuditEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e model.AuditEntry
		err = json.Unmarshal(line, &e)
		if err != nil {
			log.Printf("Skipping corrupt audit log line: %.120s\n", line)
			continue
		}
		entries = append(entries, e)
	}
	err = scanner.Err()
	if err != nil {
		return nil, errors.WrapContext(err, errors.Context{
			Path:   "service.audit.Recent: scan",
			Params: errors.Params{"path": s.path},
		})
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

package imagestate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/beldeveloper/go-errors-context"
)

// NewFile creates a new instance of the file-backed image state store.
func NewFile(dir model.StateDir) Service {
	muxes := make(map[model.Environment]*sync.Mutex, len(model.Environments))
	for _, env := range model.Environments {
		muxes[env] = &sync.Mutex{}
	}
	return File{dir: string(dir), muxes: muxes, now: time.Now}
}

// File implements the image state store with three single-line files per
// environment: current, previous and a transient pending slot. Every write
// goes through a temporary file and an atomic rename, never an in-place
// truncate, so an interrupted rotation resolves to either the pre-rotation
// or the fully rotated state on the next read. Mutations are serialized per
// environment even if the orchestrator's own in-flight check is bypassed.
type File struct {
	dir   string
	muxes map[model.Environment]*sync.Mutex
	now   func() time.Time
}

func (s File) currentPath(env model.Environment) string {
	return filepath.Join(s.dir, string(env)+".image")
}

func (s File) previousPath(env model.Environment) string {
	return filepath.Join(s.dir, string(env)+".image.prev")
}

func (s File) pendingPath(env model.Environment) string {
	return filepath.Join(s.dir, string(env)+".image.pending")
}

func (s File) timestampPath(env model.Environment) string {
	return filepath.Join(s.dir, string(env)+".timestamp")
}

// Read returns the resolved image state of the environment. A never-deployed
// environment yields empty slots rather than an error.
func (s File) Read(ctx context.Context, env model.Environment) (model.ImageState, error) {
	mux, ok := s.muxes[env]
	if !ok {
		return model.ImageState{}, errors.WrapContext(model.ErrNotFound, errors.Context{
			Path:   "service.imagestate.Read",
			Params: errors.Params{"environment": env},
		})
	}
	mux.Lock()
	defer mux.Unlock()
	return s.read(env)
}

// RecordDeploy rotates the state: the current image becomes the previous one
// and the new image becomes current. The rotation goes through the pending
// slot so a crash at any point leaves a recoverable state.
func (s File) RecordDeploy(ctx context.Context, env model.Environment, image model.ImageReference, at time.Time) error {
	if strings.TrimSpace(string(image)) == "" {
		return errors.WrapContext(model.ErrBadInput, errors.Context{
			Path:   "service.imagestate.RecordDeploy",
			Params: errors.Params{"environment": env},
		})
	}
	mux, ok := s.muxes[env]
	if !ok {
		return errors.WrapContext(model.ErrNotFound, errors.Context{
			Path:   "service.imagestate.RecordDeploy",
			Params: errors.Params{"environment": env},
		})
	}
	mux.Lock()
	defer mux.Unlock()
	state, err := s.read(env)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.imagestate.RecordDeploy: read",
			Params: errors.Params{"environment": env},
		})
	}
	if state.Current != "" {
		err = s.writeSlot(s.pendingPath(env), string(state.Current))
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.imagestate.RecordDeploy: shadow current",
				Params: errors.Params{"environment": env},
			})
		}
	}
	err = s.writeSlot(s.currentPath(env), string(image))
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.imagestate.RecordDeploy: write current",
			Params: errors.Params{"environment": env, "image": image},
		})
	}
	if state.Current != "" {
		err = os.Rename(s.pendingPath(env), s.previousPath(env))
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.imagestate.RecordDeploy: commit previous",
				Params: errors.Params{"environment": env},
			})
		}
	}
	err = s.writeSlot(s.timestampPath(env), at.UTC().Format(time.RFC3339))
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.imagestate.RecordDeploy: write timestamp",
			Params: errors.Params{"environment": env},
		})
	}
	return nil
}

// Rollback swaps the current and previous images and returns the now-current
// one. Calling it twice toggles back; the system never does that automatically.
func (s File) Rollback(ctx context.Context, env model.Environment) (model.ImageReference, error) {
	mux, ok := s.muxes[env]
	if !ok {
		return "", errors.WrapContext(model.ErrNotFound, errors.Context{
			Path:   "service.imagestate.Rollback",
			Params: errors.Params{"environment": env},
		})
	}
	mux.Lock()
	defer mux.Unlock()
	state, err := s.read(env)
	if err != nil {
		return "", errors.WrapContext(err, errors.Context{
			Path:   "service.imagestate.Rollback: read",
			Params: errors.Params{"environment": env},
		})
	}
	if state.Previous == "" {
		return "", errors.WrapContext(model.ErrNoPreviousImage, errors.Context{
			Path:   "service.imagestate.Rollback",
			Params: errors.Params{"environment": env},
		})
	}
	err = s.writeSlot(s.pendingPath(env), string(state.Current))
	if err != nil {
		return "", errors.WrapContext(err, errors.Context{
			Path:   "service.imagestate.Rollback: shadow current",
			Params: errors.Params{"environment": env},
		})
	}
	err = s.writeSlot(s.currentPath(env), string(state.Previous))
	if err != nil {
		return "", errors.WrapContext(err, errors.Context{
			Path:   "service.imagestate.Rollback: write current",
			Params: errors.Params{"environment": env},
		})
	}
	err = os.Rename(s.pendingPath(env), s.previousPath(env))
	if err != nil {
		return "", errors.WrapContext(err, errors.Context{
			Path:   "service.imagestate.Rollback: commit previous",
			Params: errors.Params{"environment": env},
		})
	}
	err = s.writeSlot(s.timestampPath(env), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", errors.WrapContext(err, errors.Context{
			Path:   "service.imagestate.Rollback: write timestamp",
			Params: errors.Params{"environment": env},
		})
	}
	return state.Previous, nil
}

// read recovers a half-finished rotation first, then loads the slots.
// The caller must hold the environment mutex.
func (s File) read(env model.Environment) (model.ImageState, error) {
	state := model.ImageState{Environment: env}
	err := s.recover(env)
	if err != nil {
		return state, err
	}
	current, err := s.readSlot(s.currentPath(env))
	if err != nil {
		return state, err
	}
	previous, err := s.readSlot(s.previousPath(env))
	if err != nil {
		return state, err
	}
	state.Current = model.ImageReference(current)
	state.Previous = model.ImageReference(previous)
	raw, err := s.readSlot(s.timestampPath(env))
	if err == nil && raw != "" {
		at, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr == nil {
			state.DeployedAt = at
		}
	}
	return state, nil
}

// recover resolves a leftover pending slot. A pending file equal to the
// current slot means the crash happened before the new current was written;
// the rotation is undone by dropping the shadow. A differing pending file
// means the new current is already in place; the rotation is completed by
// committing the shadow as previous.
func (s File) recover(env model.Environment) error {
	pending, err := s.readSlot(s.pendingPath(env))
	if err != nil {
		return err
	}
	if pending == "" {
		return nil
	}
	current, err := s.readSlot(s.currentPath(env))
	if err != nil {
		return err
	}
	if current != "" && current != pending {
		return os.Rename(s.pendingPath(env), s.previousPath(env))
	}
	return os.Remove(s.pendingPath(env))
}

// readSlot returns the single-line content of the slot or an empty string if
// the slot does not exist. A multi-line or blank existing slot is corruption.
func (s File) readSlot(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	content := strings.TrimRight(string(data), "\n")
	if content == "" || strings.ContainsAny(content, "\n\r") {
		return "", errors.WrapContext(model.ErrStateCorrupted, errors.Context{
			Path:   "service.imagestate.readSlot",
			Params: errors.Params{"file": path},
		})
	}
	return content, nil
}

// writeSlot writes the content to a temporary file and renames it over the
// slot. Rename on the same filesystem is atomic; the slot is never truncated
// in place.
func (s File) writeSlot(path, content string) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	_, err = f.WriteString(content + "\n")
	if err != nil {
		f.Close()
		return err
	}
	err = f.Sync()
	if err != nil {
		f.Close()
		return err
	}
	err = f.Close()
	if err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

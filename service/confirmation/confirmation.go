package confirmation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/beldeveloper/app-promoter/model"
	"github.com/beldeveloper/app-promoter/service/rbac"
	"github.com/beldeveloper/go-errors-context"
	"github.com/google/uuid"
)

// NewMemory creates a new instance of the in-memory confirmation flow.
func NewMemory(gate rbac.Service, ttl time.Duration) Service {
	return Memory{
		gate:   gate,
		ttl:    ttl,
		mux:    &sync.Mutex{},
		tokens: map[string]model.ConfirmationToken{},
		now:    time.Now,
	}
}

// Memory implements the confirmation flow with an in-memory token store.
// A token moves from Proposed to exactly one of Confirmed, Cancelled or
// Expired and is invalid afterwards regardless of outcome.
type Memory struct {
	gate   rbac.Service
	ttl    time.Duration
	mux    *sync.Mutex
	tokens map[string]model.ConfirmationToken
	now    func() time.Time
}

// Propose stores the permitted request and issues a single-use token for it.
func (s Memory) Propose(ctx context.Context, req model.ActionRequest) (model.ConfirmationToken, error) {
	role, ok := s.gate.RoleOf(req.Requester)
	if !ok {
		return model.ConfirmationToken{}, errors.WrapContext(model.ErrDenied, errors.Context{
			Path:   "service.confirmation.Propose",
			Params: errors.Params{"requester": req.Requester},
		})
	}
	req.Role = role
	t := model.ConfirmationToken{
		ID:        uuid.NewString(),
		Request:   req,
		Status:    model.ConfirmationStatusProposed,
		CreatedAt: s.now(),
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.tokens[t.ID] = t
	return t, nil
}

// Confirm consumes the token and returns the original request. The check and
// the invalidation happen atomically, so a duplicate confirm signal for the
// same token is denied instead of re-triggering the action. The confirmation
// requires a fresh gate pass and an unchanged role snapshot; the token alone
// is not proof of current authorization.
func (s Memory) Confirm(ctx context.Context, id, identity string) (model.ActionRequest, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	t, ok := s.tokens[id]
	if !ok {
		return model.ActionRequest{}, fmt.Errorf("%w: unknown or already used confirmation token", model.ErrDenied)
	}
	if t.Status != model.ConfirmationStatusProposed {
		return model.ActionRequest{}, fmt.Errorf("%w: confirmation token is %s", model.ErrDenied, t.Status)
	}
	if s.now().After(t.ExpiresAt) {
		t.Status = model.ConfirmationStatusExpired
		s.tokens[id] = t
		return model.ActionRequest{}, fmt.Errorf("%w: confirmation token expired", model.ErrDenied)
	}
	if t.Request.Requester != identity {
		return model.ActionRequest{}, fmt.Errorf("%w: confirmation token belongs to a different requester", model.ErrDenied)
	}
	err := s.gate.Check(ctx, identity, t.Request.Action, t.Request.Environment)
	if err != nil {
		return model.ActionRequest{}, errors.WrapContext(err, errors.Context{
			Path:   "service.confirmation.Confirm",
			Params: errors.Params{"requester": identity, "action": t.Request.Action},
		})
	}
	role, _ := s.gate.RoleOf(identity)
	if role != t.Request.Role {
		return model.ActionRequest{}, fmt.Errorf("%w: role changed since the action was proposed", model.ErrDenied)
	}
	t.Status = model.ConfirmationStatusConfirmed
	s.tokens[id] = t
	return t.Request, nil
}

// Cancel invalidates the token on an explicit cancel signal.
func (s Memory) Cancel(ctx context.Context, id, identity string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	t, ok := s.tokens[id]
	if !ok || t.Status != model.ConfirmationStatusProposed {
		return fmt.Errorf("%w: unknown or already used confirmation token", model.ErrDenied)
	}
	if t.Request.Requester != identity {
		return fmt.Errorf("%w: confirmation token belongs to a different requester", model.ErrDenied)
	}
	t.Status = model.ConfirmationStatusCancelled
	s.tokens[id] = t
	return nil
}

// SweepExpired expires the proposed tokens that outlived their window and
// drops the terminal ones from the store. It returns the newly expired tokens.
func (s Memory) SweepExpired(ctx context.Context) []model.ConfirmationToken {
	s.mux.Lock()
	defer s.mux.Unlock()
	var expired []model.ConfirmationToken
	for id, t := range s.tokens {
		if t.Status == model.ConfirmationStatusProposed {
			if s.now().After(t.ExpiresAt) {
				t.Status = model.ConfirmationStatusExpired
				expired = append(expired, t)
				delete(s.tokens, id)
			}
			continue
		}
		delete(s.tokens, id)
	}
	return expired
}

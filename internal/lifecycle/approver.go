package lifecycle

import (
	"context"
	"log"

	"tourmarket/internal/actor"
	"tourmarket/internal/apperr"
	"tourmarket/internal/audit"
	"tourmarket/internal/ids"
)

// StatusSetter writes a status unconditionally and returns the updated resource.
// It returns an apperr NotFound when no resource has the id.
type StatusSetter[T any] interface {
	SetStatus(ctx context.Context, id string, status Status) (*T, error)
}

// Approvable is the admin-facing capability shared by every lifecycle-bearing resource.
type Approvable[T any] interface {
	Approve(ctx context.Context, p *actor.Principal, id string) (*T, error)
	Reject(ctx context.Context, p *actor.Principal, id string) (*T, error)
}

// Approver implements Approvable for one Kind. Transitions are not guarded by the
// current status: the last transition wins.
type Approver[T any] struct {
	Kind  Kind
	Store StatusSetter[T]
	Authz actor.Authorizer
	Audit audit.Recorder
}

var _ Approvable[struct{}] = Approver[struct{}]{}

func (a Approver[T]) Approve(ctx context.Context, p *actor.Principal, id string) (*T, error) {
	return a.Apply(ctx, p, id, TransitionApprove)
}

func (a Approver[T]) Reject(ctx context.Context, p *actor.Principal, id string) (*T, error) {
	return a.Apply(ctx, p, id, TransitionReject)
}

func (a Approver[T]) Apply(ctx context.Context, p *actor.Principal, rawID string, t Transition) (*T, error) {
	target := t.Target()
	if target == "" {
		return nil, apperr.Validation("unknown transition: "+string(t), nil)
	}

	id, err := ids.Parse(string(a.Kind), rawID)
	if err != nil {
		return nil, err
	}

	authz := a.Authz
	if authz == nil {
		authz = actor.Open{}
	}
	if err := authz.Authorize(ctx, p, actor.CapTransition, ""); err != nil {
		return nil, err
	}

	out, err := a.Store.SetStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, a.Audit, audit.Entry{
		EntityKind: string(a.Kind),
		EntityID:   id,
		Action:     audit.ActionStatusChanged,
		Actor:      p.Label(),
		Metadata:   map[string]any{"transition": t, "to": target},
	})
	log.Printf("%s %s id=%s actor=%s", a.Kind, t, id, p.Label())
	return out, nil
}

// Package access implements the fixed three-tier role hierarchy and the
// directorate scoping used to authorise contract visibility and mutations.
package access

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contratos/internal/apperr"
)

// Role is the user's position in the hierarchy Admin_Gnl > director > especialista.
type Role string

const (
	RoleAdmin      Role = "Admin_Gnl"
	RoleDirector   Role = "director"
	RoleSpecialist Role = "especialista"
	RoleUnassigned Role = "Sin Asignar"
)

var ErrForbidden = apperr.New(apperr.Forbidden, "no tienes permiso para realizar esta acción")

// Actor is the authenticated user performing an operation.
//
// Specialists are scoped through the director they report to (RelationID),
// directors through their own ID.
type Actor struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Role       Role
	RelationID *uuid.UUID
}

//go:generate mockgen -source=access.go -destination=directory_mock.go -package=access
type Directory interface {
	// DirectoratesForExecutive returns the directorate names assigned to the
	// executive (director) with the given id.
	DirectoratesForExecutive(ctx context.Context, executiveID uuid.UUID) ([]string, error)
	// ContactsForDirectorate returns email addresses of the executives of a directorate.
	ContactsForDirectorate(ctx context.Context, directorate string) ([]string, error)
}

// Scope is the set of directorates an actor may see. All is true for admins.
type Scope struct {
	All          bool
	Directorates []string
}

// Allows reports whether the directorate is within scope.
func (s Scope) Allows(directorate string) bool {
	return s.All || slices.Contains(s.Directorates, directorate)
}

type Authorizer struct {
	dir Directory
}

func NewAuthorizer(dir Directory) *Authorizer {
	return &Authorizer{dir: dir}
}

// ScopeFor resolves the directorates visible to the actor. Unassigned users and
// directors or specialists without any directorate are forbidden.
func (a *Authorizer) ScopeFor(ctx context.Context, actor Actor) (Scope, error) {
	var executive uuid.UUID

	switch actor.Role {
	case RoleAdmin:
		return Scope{All: true}, nil
	case RoleDirector:
		executive = actor.ID
	case RoleSpecialist:
		if actor.RelationID == nil {
			return Scope{}, ErrForbidden
		}

		executive = *actor.RelationID
	default:
		return Scope{}, ErrForbidden
	}

	dirs, err := a.dir.DirectoratesForExecutive(ctx, executive)
	if err != nil {
		return Scope{}, fmt.Errorf("loading directorates: %w", err)
	}

	if len(dirs) == 0 {
		return Scope{}, ErrForbidden
	}

	return Scope{Directorates: dirs}, nil
}

// Authorize fails with ErrForbidden unless every given directorate is within
// the actor's scope.
func (a *Authorizer) Authorize(ctx context.Context, actor Actor, directorates ...string) error {
	scope, err := a.ScopeFor(ctx, actor)
	if err != nil {
		return err
	}

	for _, d := range directorates {
		if !scope.Allows(d) {
			return apperr.New(apperr.Forbidden, fmt.Sprintf("no tienes permiso sobre la dirección %s", d))
		}
	}

	return nil
}

// RequireAdmin fails unless the actor is Admin_Gnl.
func RequireAdmin(actor Actor) error {
	if actor.Role != RoleAdmin {
		return ErrForbidden
	}

	return nil
}

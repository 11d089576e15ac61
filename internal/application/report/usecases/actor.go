package usecases

import (
	"fmt"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

// Actor identifies the staff member behind a request. The role is
// resolved against the registry on every check; nothing about
// permissions is cached in the command.
type Actor struct {
	ID   uint
	Role capability.Role
}

func (a Actor) validate() error {
	if a.ID == 0 {
		return errors.NewValidationError("actor ID is required")
	}
	if a.Role == "" {
		return errors.NewValidationError("actor role is required")
	}
	return nil
}

func requireCapability(registry *capability.Registry, actor Actor, cap capability.Capability) error {
	if !registry.Has(actor.Role, cap) {
		return errors.NewForbiddenError(
			fmt.Sprintf("role %s lacks capability %s", actor.Role, cap),
			cap.String(),
		)
	}
	return nil
}

// Package access is the single invariant-enforcement point for role and
// ownership checks. Services call it after loading the resource, so an
// unknown id surfaces as NotFound before any Forbidden decision.
package access

import (
	"proptrack-backend/internal/domain"
)

// Actor is the authenticated caller as established by the transport layer
// from an externally issued bearer credential.
type Actor struct {
	ID   int32
	Role domain.Role
}

// RequireOwningRenter permits only the renter who owns the resource.
func RequireOwningRenter(actor Actor, ownerID int32) error {
	if actor.Role != domain.RoleRenter || actor.ID != ownerID {
		return domain.ForbiddenError("renter %d does not own this resource", actor.ID)
	}
	return nil
}

// RequireBuildingManager permits only the manager assigned to the building.
func RequireBuildingManager(actor Actor, building *domain.Building) error {
	if actor.Role != domain.RoleManager || actor.ID != building.ManagerID {
		return domain.ForbiddenError("user %d does not manage building %d", actor.ID, building.ID)
	}
	return nil
}

// RequireRecordRead permits the owning renter, the building's manager, and
// the building's owner to read a single record.
func RequireRecordRead(actor Actor, ownerID int32, building *domain.Building) error {
	switch actor.Role {
	case domain.RoleRenter:
		if actor.ID == ownerID {
			return nil
		}
	case domain.RoleManager:
		if actor.ID == building.ManagerID {
			return nil
		}
	case domain.RoleOwner:
		if actor.ID == building.OwnerID {
			return nil
		}
	}
	return domain.ForbiddenError("user %d may not read this resource", actor.ID)
}

// RequireAggregateRead permits the building's manager and owner to read
// aggregated views. Owners are read-only: they never pass the mutation
// checks above, only this one.
func RequireAggregateRead(actor Actor, building *domain.Building) error {
	switch actor.Role {
	case domain.RoleManager:
		if actor.ID == building.ManagerID {
			return nil
		}
	case domain.RoleOwner:
		if actor.ID == building.OwnerID {
			return nil
		}
	}
	return domain.ForbiddenError("user %d may not view statistics for building %d", actor.ID, building.ID)
}

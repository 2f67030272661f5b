package auth

import (
	"fmt"

	"github.com/mkovaleva/classtrack/internal/apperrors"
	"github.com/mkovaleva/classtrack/internal/models"
)

// Tier is the minimum access level an operation requires
type Tier int

const (
	TierPublic Tier = iota
	TierAuthenticated
	TierAnyRole
	TierSchoolOrAdmin
	TierAdminOnly
)

func (t Tier) String() string {
	switch t {
	case TierPublic:
		return "public"
	case TierAuthenticated:
		return "authenticated"
	case TierAnyRole:
		return "any-role"
	case TierSchoolOrAdmin:
		return "school-or-admin"
	case TierAdminOnly:
		return "admin"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Require decides whether the principal may perform an operation of the
// given tier. A missing principal fails apperrors.ErrNotAuthenticated before
// any role is looked at; an insufficient role fails apperrors.ErrForbidden
func Require(tier Tier, p *models.Principal) error {
	if tier == TierPublic {
		return nil
	}

	if p == nil {
		return apperrors.ErrNotAuthenticated
	}

	switch tier {
	case TierAuthenticated:
		return nil
	case TierAnyRole:
		if p.Role == models.RoleStudent || p.Role == models.RoleSchool || p.Role == models.RoleAdmin {
			return nil
		}
	case TierSchoolOrAdmin:
		if p.Role == models.RoleSchool || p.Role == models.RoleAdmin {
			return nil
		}
	case TierAdminOnly:
		if p.Role == models.RoleAdmin {
			return nil
		}
	}

	return apperrors.ErrForbidden
}

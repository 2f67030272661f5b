package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mkovaleva/classtrack/internal/apperrors"
	"github.com/mkovaleva/classtrack/internal/models"
)

func TestRequire(t *testing.T) {
	t.Parallel()

	principal := func(role models.Role) *models.Principal {
		return &models.Principal{ID: uuid.New(), Email: "u@x.com", Role: role}
	}

	tests := []struct {
		name        string
		tier        Tier
		principal   *models.Principal
		expectedErr error
	}{
		{"public without principal", TierPublic, nil, nil},
		{"public with principal", TierPublic, principal(models.RoleStudent), nil},

		{"authenticated without principal", TierAuthenticated, nil, apperrors.ErrNotAuthenticated},
		{"authenticated with any principal", TierAuthenticated, principal(models.RoleStudent), nil},

		{"any role student", TierAnyRole, principal(models.RoleStudent), nil},
		{"any role school", TierAnyRole, principal(models.RoleSchool), nil},
		{"any role admin", TierAnyRole, principal(models.RoleAdmin), nil},
		{"any role unknown role", TierAnyRole, principal(models.Role("ghost")), apperrors.ErrForbidden},
		{"any role without principal", TierAnyRole, nil, apperrors.ErrNotAuthenticated},

		{"school tier student", TierSchoolOrAdmin, principal(models.RoleStudent), apperrors.ErrForbidden},
		{"school tier school", TierSchoolOrAdmin, principal(models.RoleSchool), nil},
		{"school tier admin", TierSchoolOrAdmin, principal(models.RoleAdmin), nil},

		// Missing principal must fail before any role is looked at
		{"admin tier without principal", TierAdminOnly, nil, apperrors.ErrNotAuthenticated},
		{"admin tier student", TierAdminOnly, principal(models.RoleStudent), apperrors.ErrForbidden},
		{"admin tier school", TierAdminOnly, principal(models.RoleSchool), apperrors.ErrForbidden},
		{"admin tier admin", TierAdminOnly, principal(models.RoleAdmin), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Require(tt.tier, tt.principal)

			switch tt.expectedErr {
			case nil:
				require.NoError(t, err)
			default:
				require.ErrorIs(t, err, tt.expectedErr)
			}
		})
	}
}

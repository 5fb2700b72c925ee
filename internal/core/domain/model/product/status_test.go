package product_test

import (
	"fmt"
	"testing"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/product"
	"provenance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Rank(t *testing.T) {
	t.Run("ranks follow the fixed total order", func(t *testing.T) {
		expected := []struct {
			status product.Status
			rank   int
		}{
			{product.Created, 0},
			{product.ReadyForShipping, 1},
			{product.Shipped, 2},
			{product.InTransit, 3},
			{product.DeliveredToRetailer, 4},
			{product.AvailableForSale, 5},
			{product.Sold, 6},
			{product.Recalled, 7},
		}

		for _, tc := range expected {
			assert.Equal(t, tc.rank, tc.status.Rank(), "rank of %s", tc.status)
		}
	})

	t.Run("invalid status has rank -1", func(t *testing.T) {
		assert.Equal(t, -1, product.StatusUnknown.Rank())
		assert.Equal(t, -1, product.Status(99).Rank())
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("all ordered statuses are valid", func(t *testing.T) {
		for _, status := range []product.Status{
			product.Created, product.ReadyForShipping, product.Shipped,
			product.InTransit, product.DeliveredToRetailer,
			product.AvailableForSale, product.Sold, product.Recalled,
		} {
			require.NoError(t, status.Validate(), "status %s", status)
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, status := range []product.Status{product.StatusUnknown, product.Status(-1), product.Status(100)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			})
		}
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, status := range []product.Status{
			product.Created, product.ReadyForShipping, product.Shipped,
			product.InTransit, product.DeliveredToRetailer,
			product.AvailableForSale, product.Sold, product.Recalled,
		} {
			parsed, err := product.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		for _, raw := range []string{"", "Unknown", "created", "Delivered"} {
			_, err := product.StatusFromString(raw)

			require.Error(t, err, "input %q", raw)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_AllowedForRole(t *testing.T) {
	testCases := []struct {
		role    identity.Role
		allowed []product.Status
	}{
		{identity.RoleManufacturer, []product.Status{product.Created, product.ReadyForShipping}},
		{identity.RoleDistributor, []product.Status{product.Shipped, product.InTransit, product.DeliveredToRetailer}},
		{identity.RoleRetailer, []product.Status{product.AvailableForSale, product.Sold}},
	}

	all := []product.Status{
		product.Created, product.ReadyForShipping, product.Shipped,
		product.InTransit, product.DeliveredToRetailer,
		product.AvailableForSale, product.Sold, product.Recalled,
	}

	for _, tc := range testCases {
		t.Run(tc.role.String(), func(t *testing.T) {
			allowedSet := make(map[product.Status]bool)
			for _, s := range tc.allowed {
				allowedSet[s] = true
			}

			for _, status := range all {
				assert.Equal(t, allowedSet[status], status.AllowedForRole(tc.role),
					"%s for role %s", status, tc.role)
			}
		})
	}

	t.Run("super_admin has no allowed targets of its own", func(t *testing.T) {
		for _, status := range all {
			assert.False(t, status.AllowedForRole(identity.RoleSuperAdmin), "status %s", status)
		}
	})

	t.Run("Recalled is reachable by no role", func(t *testing.T) {
		for _, role := range []identity.Role{
			identity.RoleManufacturer, identity.RoleDistributor,
			identity.RoleRetailer, identity.RoleSuperAdmin,
		} {
			assert.False(t, product.Recalled.AllowedForRole(role), "role %s", role)
		}
	})
}

func TestStatus_HandOffRole(t *testing.T) {
	t.Run("ReadyForShipping hands off to a distributor", func(t *testing.T) {
		role, ok := product.ReadyForShipping.HandOffRole()

		assert.True(t, ok)
		assert.Equal(t, identity.RoleDistributor, role)
	})

	t.Run("DeliveredToRetailer hands off to a retailer", func(t *testing.T) {
		role, ok := product.DeliveredToRetailer.HandOffRole()

		assert.True(t, ok)
		assert.Equal(t, identity.RoleRetailer, role)
	})

	t.Run("other statuses are not hand-off points", func(t *testing.T) {
		for _, status := range []product.Status{
			product.Created, product.Shipped, product.InTransit,
			product.AvailableForSale, product.Sold, product.Recalled,
		} {
			_, ok := status.HandOffRole()
			assert.False(t, ok, "status %s", status)
		}
	})
}

func TestStatus_RequiredPredecessor(t *testing.T) {
	t.Run("InTransit requires Shipped", func(t *testing.T) {
		required, ok := product.InTransit.RequiredPredecessor()

		assert.True(t, ok)
		assert.Equal(t, product.Shipped, required)
	})

	t.Run("DeliveredToRetailer requires InTransit", func(t *testing.T) {
		required, ok := product.DeliveredToRetailer.RequiredPredecessor()

		assert.True(t, ok)
		assert.Equal(t, product.InTransit, required)
	})

	t.Run("other statuses have no predecessor constraint", func(t *testing.T) {
		for _, status := range []product.Status{
			product.Created, product.ReadyForShipping, product.Shipped,
			product.AvailableForSale, product.Sold, product.Recalled,
		} {
			_, ok := status.RequiredPredecessor()
			assert.False(t, ok, "status %s", status)
		}
	})
}

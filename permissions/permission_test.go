package permissions_test

import (
	"context"
	"net/http"
	"resort/permissions"
	"resort/shared/constant"
	"resort/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principal(role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestAllows(t *testing.T) {
	tests := []struct {
		capability permissions.Capability
		admin      bool
		superAdmin bool
	}{
		{permissions.BookingsManage, true, true},
		{permissions.ContactsManage, true, true},
		{permissions.TestimonialsModerate, true, true},
		{permissions.DashboardView, true, true},
		{permissions.UsersManage, false, true},
		{permissions.ReportsView, false, true},
		{permissions.ImagesManage, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.capability), func(t *testing.T) {
			assert.Equal(t, tt.admin, permissions.Allows(constant.RoleAdmin, tt.capability))
			assert.Equal(t, tt.superAdmin, permissions.Allows(constant.RoleSuperAdmin, tt.capability))
			assert.False(t, permissions.Allows("guest", tt.capability))
		})
	}
}

func TestSuperAdminIsSuperset(t *testing.T) {
	for _, capability := range permissions.Capabilities(constant.RoleAdmin) {
		assert.True(t, permissions.Allows(constant.RoleSuperAdmin, capability), capability)
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		ctx        context.Context
		capability permissions.Capability
		wantCode   int
	}{
		{name: "anonymous", ctx: context.Background(), capability: permissions.BookingsManage, wantCode: http.StatusUnauthorized},
		{name: "admin manages bookings", ctx: principal(constant.RoleAdmin), capability: permissions.BookingsManage},
		{name: "admin cannot manage users", ctx: principal(constant.RoleAdmin), capability: permissions.UsersManage, wantCode: http.StatusForbidden},
		{name: "admin cannot view reports", ctx: principal(constant.RoleAdmin), capability: permissions.ReportsView, wantCode: http.StatusForbidden},
		{name: "super admin manages images", ctx: principal(constant.RoleSuperAdmin), capability: permissions.ImagesManage},
		{name: "unknown role", ctx: principal("editor"), capability: permissions.DashboardView, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := permissions.Authorize(tt.ctx, tt.capability)
			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuthorizeMessagesDiffer(t *testing.T) {
	unauthenticated := permissions.Authorize(context.Background(), permissions.UsersManage)
	forbidden := permissions.Authorize(principal(constant.RoleAdmin), permissions.UsersManage)

	assert.Equal(t, "login required", unauthenticated.Error())
	assert.Contains(t, forbidden.Error(), "insufficient privilege")
}

func TestEmbeddedPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	login := data.FindPermissions("/v1/auth/login", http.MethodPost)
	assert.True(t, login.Skip)

	list := data.FindPermissions("/v1/bookings/", http.MethodGet)
	assert.False(t, list.Skip)
	assert.Equal(t, permissions.BookingsManage, list.Capability)

	create := data.FindPermissions("/v1/bookings", http.MethodPost)
	assert.True(t, create.Skip)

	users := data.FindPermissions("/v1/admin/users/{id}", http.MethodDelete)
	assert.Equal(t, permissions.UsersManage, users.Capability)

	unknown := data.FindPermissions("/v1/unknown", http.MethodGet)
	assert.False(t, unknown.Skip)
	assert.Empty(t, unknown.Capability)
}

func TestParseRejectsUnknownCapability(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/v1/x","method":"GET","capability":"rooms.manage"}]}`))

	var unknown *permissions.UnknownCapabilityError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, permissions.Capability("rooms.manage"), unknown.Capability)
}

func TestAsSystem(t *testing.T) {
	ctx := permissions.AsSystem(context.Background())

	assert.NoError(t, permissions.Authorize(ctx, permissions.ReportsView))
	assert.NoError(t, permissions.Authorize(ctx, permissions.DashboardView))
	assert.Equal(t, constant.ContextSystem, ctx.Value(constant.ContextKeyUserID))
}

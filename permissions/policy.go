package permissions

import (
	"context"
	"fmt"
	"resort/shared/constant"
	"resort/shared/failure"
	"slices"
)

type Capability string

const (
	BookingsManage       Capability = "bookings.manage"
	ContactsManage       Capability = "contacts.manage"
	TestimonialsModerate Capability = "testimonials.moderate"
	DashboardView        Capability = "dashboard.view"
	UsersManage          Capability = "users.manage"
	ReportsView          Capability = "reports.view"
	ImagesManage         Capability = "images.manage"
)

var (
	adminCapabilities = []Capability{
		BookingsManage,
		ContactsManage,
		TestimonialsModerate,
		DashboardView,
	}

	superAdminCapabilities = []Capability{
		UsersManage,
		ReportsView,
		ImagesManage,
	}

	// super_admin holds every admin capability.
	matrix = map[string][]Capability{
		constant.RoleAdmin:      adminCapabilities,
		constant.RoleSuperAdmin: slices.Concat(adminCapabilities, superAdminCapabilities),
	}
)

type UnknownCapabilityError struct {
	Capability Capability
	Path       string
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown capability %q on %s", e.Capability, e.Path)
}

func (c Capability) Valid() bool {
	return slices.Contains(matrix[constant.RoleSuperAdmin], c)
}

// Capabilities lists what role may do, nil for unknown roles.
func Capabilities(role string) []Capability {
	return slices.Clone(matrix[role])
}

func ValidRole(role string) bool {
	_, ok := matrix[role]

	return ok
}

func Allows(role string, capability Capability) bool {
	return slices.Contains(matrix[role], capability)
}

// Authorize checks the principal carried in ctx. It fails with 401 when no one
// is logged in and with 403 when the role lacks the capability.
func Authorize(ctx context.Context, capability Capability) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if role == "" || userID == "" {
		return failure.LoginRequiredError
	}

	if Allows(role, capability) {
		return nil
	}

	if slices.Contains(superAdminCapabilities, capability) {
		return failure.ResourceRestrictedError
	}

	return failure.Forbidden(fmt.Sprintf("%s: %s", failure.ForbiddenError.Message, capability)) //nolint:wrapcheck
}

// AsSystem runs ctx as the built-in system principal used by scheduled jobs
// and API key callers.
func AsSystem(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextSystem)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSuperAdmin)
}

package rbac

// The role set is closed. Roles are assigned at registration and only
// changed through admin tooling; nothing in the request path invents
// role names.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Known reports whether role is part of the closed set.
func Known(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

package entity

// Permission is a single capability checked by route guards.
type Permission string

const (
	PermLeadsRead       Permission = "leads:read"
	PermLeadsWrite      Permission = "leads:write"
	PermLeadsDelete     Permission = "leads:delete"
	PermScoreOverride   Permission = "leads:score_override"
	PermClientsRead     Permission = "clients:read"
	PermClientsWrite    Permission = "clients:write"
	PermClientsDelete   Permission = "clients:delete"
	PermActivitiesWrite Permission = "activities:write"
	PermTasksWrite      Permission = "tasks:write"
	PermTasksDelete     Permission = "tasks:delete"
	PermFilesWrite      Permission = "files:write"
	PermFilesDelete     Permission = "files:delete"
	PermDashboardView   Permission = "dashboard:view"
	PermUsersManage     Permission = "users:manage"
)

type permissionSet map[Permission]struct{}

func newPermissionSet(perms ...Permission) permissionSet {
	s := make(permissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

var salesRepPermissions = []Permission{
	PermLeadsRead, PermLeadsWrite,
	PermClientsRead, PermClientsWrite,
	PermActivitiesWrite,
	PermTasksWrite,
	PermFilesWrite,
	PermDashboardView,
}

var managerPermissions = append([]Permission{
	PermLeadsDelete, PermScoreOverride,
	PermClientsDelete,
	PermTasksDelete,
	PermFilesDelete,
}, salesRepPermissions...)

var adminPermissions = append([]Permission{PermUsersManage}, managerPermissions...)

// rolePermissions is fixed at init and never mutated.
var rolePermissions = map[Role]permissionSet{
	RoleAdmin:    newPermissionSet(adminPermissions...),
	RoleManager:  newPermissionSet(managerPermissions...),
	RoleSalesRep: newPermissionSet(salesRepPermissions...),
}

// Can reports whether role grants perm. Unknown roles grant nothing.
func Can(role Role, perm Permission) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"patient": {
		"card:view",
		"session:play",
		"asset:view",
	},
	"caregiver": {
		"card:*",
		"asset:*",
		"session:play",
		"progress:view",
		"users:manage",
	},
	"admin": {
		"*", // everything
	},
}

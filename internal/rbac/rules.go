package rbac

// Default policy for the grading API. Students read; teachers manage
// evaluations and grades for their sections; admins do everything.
var RolePermissions = map[string][]string{
	"student": {
		"evaluation:view",
		"grade:view",
		"report:view",
	},
	"teacher": {
		"evaluation:*",
		"grade:*",
		"report:view",
	},
	"admin": {
		"*",
	},
}

// Package domain defines user domain models: principals, roles and permissions.
//
// Roles and permissions are fixed enumerations. The role to permission grants
// form an in-code graph; a principal's effective authorities are always the
// union of the permissions of its currently assigned roles.
package domain

// Role is the name of a role a user can hold.
type Role string

// Fixed role enumeration.
const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

// Permission is the name of a fine-grained operation a role can grant.
type Permission string

// Fixed permission enumeration.
const (
	// Course permissions
	PermissionCreateCourse Permission = "CREATE_COURSE"
	PermissionUpdateCourse Permission = "UPDATE_COURSE"
	PermissionPlayCourse   Permission = "PLAY_COURSE"

	// User permissions
	PermissionListStudents    Permission = "LIST_STUDENTS"
	PermissionListInstructors Permission = "LIST_INSTRUCTORS"
	PermissionViewProfile     Permission = "VIEW_PROFILE"
)

// RolePermissions is the role to permission grant graph.
// Membership is immutable at runtime.
var RolePermissions = map[Role][]Permission{
	RoleStudent: {
		PermissionPlayCourse,
		PermissionViewProfile,
	},
	RoleInstructor: {
		PermissionCreateCourse,
		PermissionUpdateCourse,
		PermissionPlayCourse,
		PermissionListStudents,
		PermissionViewProfile,
	},
	RoleAdmin: {
		PermissionListStudents,
		PermissionListInstructors,
		PermissionViewProfile,
	},
}

// IsValid reports whether the role is part of the fixed enumeration.
func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// Permissions returns the permissions granted by the role.
func (r Role) Permissions() []Permission {
	return RolePermissions[r]
}

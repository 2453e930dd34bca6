// Package authz is the single place authorization decisions are made.
// It is pure: decisions are functions of the actor's stored role and
// placement plus the requested action, never of session claims, and no
// state is held between calls.
package authz

import "github.com/IPodymov/pd-projects-backend/internal/model"

// Action names a guarded operation.
type Action string

const (
	ActionProjectCreate Action = "project:create"
	ActionProjectJoin   Action = "project:join"
	ActionProjectStatus Action = "project:status"
	ActionProjectDelete Action = "project:delete"

	ActionUserList       Action = "user:list"
	ActionUserSearch     Action = "user:search"
	ActionUserCreate     Action = "user:create"
	ActionUserDelete     Action = "user:delete"
	ActionUserRoleChange Action = "user:role"

	ActionSchoolCreate Action = "school:create"
	ActionSchoolManage Action = "school:manage"

	ActionInvitationCreate Action = "invitation:create"

	ActionExport Action = "export"
)

// policy is the closed role × action table. Absent entries deny.
var policy = map[Action]map[model.Role]bool{
	ActionProjectCreate: {
		model.RoleStudent:         true,
		model.RoleTeacher:         true,
		model.RoleUniversityStaff: true,
		model.RoleAdmin:           true,
	},
	ActionProjectJoin: {
		model.RoleStudent: true,
	},
	ActionProjectStatus: {
		model.RoleTeacher:         true,
		model.RoleUniversityStaff: true,
		model.RoleAdmin:           true,
	},
	ActionProjectDelete: {
		model.RoleAdmin: true,
	},
	ActionUserList: {
		model.RoleAdmin: true,
	},
	ActionUserSearch: {
		model.RoleUniversityStaff: true,
		model.RoleAdmin:           true,
	},
	ActionUserCreate: {
		model.RoleAdmin: true,
	},
	ActionUserDelete: {
		model.RoleAdmin: true,
	},
	ActionUserRoleChange: {
		model.RoleAdmin: true,
	},
	ActionSchoolCreate: {
		model.RoleUniversityStaff: true,
		model.RoleAdmin:           true,
	},
	ActionSchoolManage: {
		model.RoleAdmin: true,
	},
	ActionInvitationCreate: {
		model.RoleUniversityStaff: true,
		model.RoleAdmin:           true,
	},
	ActionExport: {
		model.RoleUniversityStaff: true,
		model.RoleAdmin:           true,
	},
}

// Can reports whether the role may perform the action.
func Can(role model.Role, action Action) bool {
	return policy[action][role]
}

// ProjectScope is the visibility filter a list query applies for an
// actor. Zero value means "nothing visible".
type ProjectScope struct {
	// All bypasses filtering entirely (admin).
	All bool
	// SchoolID restricts to one school.
	SchoolID string
	// ClassScoped additionally restricts to projects in the actor's
	// class or in no class. With a nil ClassID only class-less
	// projects match.
	ClassScoped bool
	ClassID     *string
}

// ProjectScopeFor derives the list filter from the actor's stored role
// and placement. Actors without a school placement (other than admin)
// see nothing.
func ProjectScopeFor(actor *model.User) ProjectScope {
	if actor.Role == model.RoleAdmin {
		return ProjectScope{All: true}
	}
	if actor.SchoolID == nil {
		return ProjectScope{}
	}
	scope := ProjectScope{SchoolID: *actor.SchoolID}
	if actor.Role == model.RoleStudent {
		scope.ClassScoped = true
		scope.ClassID = actor.SchoolClassID
	}
	return scope
}

// CanViewProject applies the same visibility rule to a single record.
func CanViewProject(actor *model.User, p *model.Project) bool {
	scope := ProjectScopeFor(actor)
	if scope.All {
		return true
	}
	if scope.SchoolID == "" || p.SchoolID != scope.SchoolID {
		return false
	}
	if scope.ClassScoped && p.SchoolClassID != nil {
		return scope.ClassID != nil && *p.SchoolClassID == *scope.ClassID
	}
	return true
}

// CanEditProject gates content fields (title, description, github url):
// owner only.
func CanEditProject(actor *model.User, p *model.Project) bool {
	return p.OwnerID == actor.UserID
}

// CanEditUser gates user record mutation: the user themself or admin.
func CanEditUser(actor *model.User, targetID string) bool {
	return actor.UserID == targetID || actor.Role == model.RoleAdmin
}

// CanChangePlacement gates school/class placement changes on a user
// record: students may not move at all, teachers may change only their
// school, staff and admin may change both.
func CanChangePlacement(actorRole model.Role, schoolChanged, classChanged bool) bool {
	if !schoolChanged && !classChanged {
		return true
	}
	switch actorRole {
	case model.RoleAdmin, model.RoleUniversityStaff:
		return true
	case model.RoleTeacher:
		return !classChanged
	default:
		return false
	}
}

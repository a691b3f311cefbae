package rbac

// Action identifies an action a subject carries out on a resource for
// authorization purposes.
type Action int

const (
	ViewAction Action = iota
	ViewAnyAction
	ModifyAction
	CreateAction
	DeleteAction
)

func (a Action) String() string {
	switch a {
	case ViewAction:
		return "view"
	case ViewAnyAction:
		return "view_any"
	case ModifyAction:
		return "modify"
	case CreateAction:
		return "create"
	case DeleteAction:
		return "delete"
	default:
		return "unknown"
	}
}

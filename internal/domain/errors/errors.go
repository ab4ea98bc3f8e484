package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrIdentityNotFound   = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrMembersNotFound    = errors.New("some members do not exist")
	ErrAssigneeNotFound   = errors.New("assigned user does not exist")
	ErrIdentityInUse      = errors.New("user is still referenced by projects or tasks")
	ErrNotTaskOwner       = errors.New("not authorized for this task")
	ErrStatusOnly         = errors.New("assignees may only update the task status")
)

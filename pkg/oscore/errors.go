package oscore

import "fmt"

// GroupAlreadyExistsError reports an ensure-group call that found the
// group already in place. Callers treat it as success.
type GroupAlreadyExistsError struct {
	name string
}

func NewGroupAlreadyExistsError(groupName string) *GroupAlreadyExistsError {
	return &GroupAlreadyExistsError{name: groupName}
}

func (e *GroupAlreadyExistsError) Error() string {
	return fmt.Sprintf("group %s already exists", e.name)
}

// UserAlreadyExistsError reports an ensure-user call that found the
// account already in place. Callers treat it as success.
type UserAlreadyExistsError struct {
	name string
}

func NewUserAlreadyExistsError(userName string) *UserAlreadyExistsError {
	return &UserAlreadyExistsError{name: userName}
}

func (e *UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("user %s already exists", e.name)
}

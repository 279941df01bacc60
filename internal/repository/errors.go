// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios. For example,
// ErrProjectNotFound covers both "no such row" and "owned by someone else":
// ownership-scoped mutations cannot tell the two apart by design, so a
// single sentinel keeps that property visible at the call site.
package repository

import "errors"

// ErrEmailExists is returned when registration collides with an existing
// email address. Handlers surface it as a generic "user already exists"
// condition without revealing the underlying constraint.
var ErrEmailExists = errors.New("email already exists")

// ErrProjectNotFound is returned when a project lookup or ownership-scoped
// mutation matches zero rows. Callers cannot distinguish "not found" from
// "not owned"; handlers translate this into the no-op response rather than
// an error status.
var ErrProjectNotFound = errors.New("project not found or not owned")

// ErrTaskNotFound is the task-board equivalent of ErrProjectNotFound: the
// task does not exist or belongs to a project the caller does not own.
var ErrTaskNotFound = errors.New("task not found or not owned")

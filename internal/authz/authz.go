// Package authz handles all things authorization: it decides whether a
// principal may view, modify, create or delete records, and narrows list
// queries to the records a principal is entitled to see.
package authz

import (
	"context"
	"errors"
)

// unexported key type prevents collisions
type subjectCtxKeyType string

const subjectCtxKey subjectCtxKeyType = "subject"

var ErrNoSubject = errors.New("no subject in context")

// AddSubjectToContext adds a subject to a context
func AddSubjectToContext(ctx context.Context, subj *Principal) context.Context {
	return context.WithValue(ctx, subjectCtxKey, subj)
}

// SubjectFromContext retrieves a subject from a context
func SubjectFromContext(ctx context.Context) (*Principal, error) {
	subj, ok := ctx.Value(subjectCtxKey).(*Principal)
	if !ok || subj == nil {
		return nil, ErrNoSubject
	}
	return subj, nil
}

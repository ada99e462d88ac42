package domain

import (
	"context"

	"commentedit/internal/core/sechash"
)

// CommentStore is the storage collaborator
type CommentStore interface {
	// FindComment returns a not found error when id does not exist on siteID
	FindComment(ctx context.Context, id, siteID int64) (Comment, error)
	SaveComment(ctx context.Context, c Comment) error
	// FindOrCreateFlag is atomic for one (commentID, userID, label) triple
	FindOrCreateFlag(ctx context.Context, commentID int64, userID, label string) (flag CommentFlag, created bool, err error)
}

// Store is a CommentStore that can bind one unit of work to a transaction
type Store interface {
	CommentStore
	Atomic(ctx context.Context, fn func(CommentStore) error) error
}

// Notifier receives comment_flagged events; delivery is best effort and never fails the edit
type Notifier interface {
	Publish(ctx context.Context, ev CommentFlagged)
}

// EditLocker serializes concurrent edits of one comment.
// Lock returns a conflict error when another edit holds the comment.
type EditLocker interface {
	Lock(ctx context.Context, commentID int64) (unlock func(), err error)
}

// SecurityValidated is implemented by forms that carry the tamper token
type SecurityValidated interface {
	// SecurityErrors returns only the honeypot, timestamp and security_hash errors
	SecurityErrors() Errors
	// SecurityData returns a fresh token for the bound comment
	SecurityData() sechash.SecurityData
}

// EditForm validates one submission against one comment
type EditForm interface {
	SecurityValidated
	Bind(s EditSubmission)
	IsValid() bool
	Errors() Errors
	Cleaned() EditSubmission
	Initial() EditSubmission
}

// FormFactory builds the edit form for a comment
type FormFactory func(c Comment) EditForm

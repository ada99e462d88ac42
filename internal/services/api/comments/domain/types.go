// Package domain holds the comment edit model, the port contracts and the error set type
package domain

import (
	"slices"
	"time"

	pnet "commentedit/internal/platform/net"
)

// FlagModeratorEdited labels the audit flag recorded on every successful edit
const FlagModeratorEdited = "moderator edited"

// Permission codenames
const (
	PermChangeComment = "comments.change_comment"
	PermModerate      = "comments.can_moderate"
)

// ContentType identifies the kind of object a comment is attached to
type ContentType struct {
	ID       int64  `json:"id"`
	AppLabel string `json:"app_label"`
	Model    string `json:"model"`
}

// Comment is a stored comment; only Body, the user display fields and IsRemoved are edited
type Comment struct {
	ID          int64       `json:"id"`
	SiteID      int64       `json:"site_id"`
	ContentType ContentType `json:"content_type"`
	ObjectPK    string      `json:"object_pk"`
	UserID      string      `json:"user_id,omitempty"`
	UserName    string      `json:"user_name"`
	UserEmail   string      `json:"user_email"`
	UserURL     string      `json:"user_url"`
	Body        string      `json:"comment"`
	SubmitDate  time.Time   `json:"submit_date"`
	IsPublic    bool        `json:"is_public"`
	IsRemoved   bool        `json:"is_removed"`
}

// CommentFlag is the audit record, unique per (CommentID, UserID, Flag)
type CommentFlag struct {
	ID        int64     `json:"id"`
	CommentID int64     `json:"comment_id"`
	UserID    string    `json:"user_id"`
	Flag      string    `json:"flag"`
	FlagDate  time.Time `json:"flag_date"`
}

// Actor is the user attempting an edit
type Actor struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Perms    []string `json:"perms,omitempty"`
}

// ActorFrom maps an authenticated principal to an Actor
func ActorFrom(p pnet.Principal) Actor {
	return Actor{
		ID:       p.UserID,
		Username: p.Username,
		FullName: p.FullName,
		Email:    p.Email,
		Perms:    slices.Clone(p.Perms),
	}
}

// HasCapability reports whether the actor holds the permission codename
func (a Actor) HasCapability(name string) bool { return slices.Contains(a.Perms, name) }

// IsOwnerOf reports whether the actor posted c; anonymous comments have no owner
func (a Actor) IsOwnerOf(c Comment) bool { return a.ID != "" && c.UserID == a.ID }

// EditSubmission is the inbound edit payload
type EditSubmission struct {
	UserName     string `json:"user_name" form:"user_name"`
	UserEmail    string `json:"user_email" form:"user_email"`
	UserURL      string `json:"user_url" form:"user_url"`
	Comment      string `json:"comment" form:"comment"`
	Timestamp    string `json:"timestamp" form:"timestamp"`
	SecurityHash string `json:"security_hash" form:"security_hash"`
	Honeypot     string `json:"honeypot" form:"honeypot"`

	// ContentType and ObjectPK override the comment's own values in the hash check when non-empty
	ContentType string `json:"content_type,omitempty" form:"content_type"`
	ObjectPK    string `json:"object_pk,omitempty" form:"object_pk"`

	Next    string `json:"next,omitempty" form:"next"`
	Preview bool   `json:"preview,omitempty" form:"preview"`
}

// CommentFlagged is published after a successful edit
type CommentFlagged struct {
	Comment Comment     `json:"comment"`
	Flag    CommentFlag `json:"flag"`
	Created bool        `json:"created"`
	Actor   Actor       `json:"actor"`
	At      time.Time   `json:"at"`
}

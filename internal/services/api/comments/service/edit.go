package service

import (
	"context"
	"strings"

	"commentedit/internal/core/sechash"
	perr "commentedit/internal/platform/errors"
	"commentedit/internal/platform/logger"
	"commentedit/internal/services/api/comments/domain"
	"commentedit/internal/services/api/comments/form"
)

// DefaultFormTarget is where a fresh edit form posts to
const DefaultFormTarget = "/comments/edit/%d"

// EditInput is one edit attempt
type EditInput struct {
	CommentID  int64
	Actor      domain.Actor
	Submission domain.EditSubmission
	// Next is the route supplied fallback for the submission's next
	Next string
}

// Kind tells the transport how to answer a non failing edit
type Kind uint8

const (
	// KindPreview re-renders the form with the submitted values
	KindPreview Kind = iota + 1
	// KindRedirect means the edit was saved
	KindRedirect
)

// Outcome is the result of Edit
type Outcome struct {
	Kind Kind `json:"-"`

	Comment domain.Comment        `json:"comment"`
	Body    string                `json:"body"`
	Form    domain.EditSubmission `json:"form"`
	Errors  domain.Errors         `json:"errors"`
	Next    string                `json:"next,omitempty"`

	// Location and Flag are set for KindRedirect
	Location string              `json:"-"`
	Flag     *domain.CommentFlag `json:"-"`
}

// FreshForm is the render-a-fresh-form payload
type FreshForm struct {
	Comment       domain.Comment        `json:"comment"`
	Initial       domain.EditSubmission `json:"initial"`
	Security      sechash.SecurityData  `json:"security"`
	HoneypotLabel string                `json:"honeypot_label"`
	Target        string                `json:"target"`
}

// Form returns the pre-seeded edit form for a comment
func (s *Svc) Form(ctx context.Context, id int64, actor domain.Actor) (FreshForm, error) {
	c, err := s.load(ctx, id, actor)
	if err != nil {
		return FreshForm{}, err
	}
	f := s.forms(c)
	return FreshForm{
		Comment:       c,
		Initial:       f.Initial(),
		Security:      f.SecurityData(),
		HoneypotLabel: form.HoneypotLabel,
		Target:        FormTarget(s.target, c.ID),
	}, nil
}

// Edit runs lookup, authorization, default fill and validation, then persists a valid edit
func (s *Svc) Edit(ctx context.Context, in EditInput) (Outcome, error) {
	c, err := s.load(ctx, in.CommentID, in.Actor)
	if err != nil {
		return Outcome{}, err
	}

	sub := fillDefaults(in.Submission, in.Actor)
	next := strings.TrimSpace(sub.Next)
	if next == "" {
		next = in.Next
	}

	f := s.forms(c)
	f.Bind(sub)

	if sec := f.SecurityErrors(); !sec.Empty() {
		logger.C(ctx).Info().Int64("comment_id", c.ID).Strs("fields", sec.Fields()).
			Msg("comment edit failed security verification")
		return Outcome{}, perr.Securityf("The comment form failed security verification: %s", sec.String())
	}

	if errs := f.Errors(); !errs.Empty() || sub.Preview {
		return Outcome{
			Kind:    KindPreview,
			Comment: c,
			Body:    sub.Comment,
			Form:    sub,
			Errors:  errs,
			Next:    next,
		}, nil
	}

	if !f.IsValid() {
		return Outcome{}, perr.New(perr.ErrorCodeValidation, msgGeneric)
	}

	saved, flag, err := s.persist(ctx, c, in.Actor, f.Cleaned())
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Kind:     KindRedirect,
		Comment:  saved,
		Body:     saved.Body,
		Form:     sub,
		Errors:   domain.Errors{},
		Next:     next,
		Location: SafeRedirect(next, s.doneURL, saved.ID),
		Flag:     &flag,
	}, nil
}

// fillDefaults fills empty display fields from the actor's profile
func fillDefaults(sub domain.EditSubmission, a domain.Actor) domain.EditSubmission {
	if strings.TrimSpace(sub.UserName) == "" {
		sub.UserName = a.FullName
		if strings.TrimSpace(sub.UserName) == "" {
			sub.UserName = a.Username
		}
	}
	if strings.TrimSpace(sub.UserEmail) == "" {
		sub.UserEmail = a.Email
	}
	return sub
}

// persist records the audit flag and saves the comment in one unit of work, then notifies
func (s *Svc) persist(ctx context.Context, c domain.Comment, actor domain.Actor, cleaned domain.EditSubmission) (domain.Comment, domain.CommentFlag, error) {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, c.ID)
		if err != nil {
			return c, domain.CommentFlag{}, err
		}
		defer unlock()
	}

	var (
		flag    domain.CommentFlag
		created bool
	)
	c.UserName = cleaned.UserName
	c.UserEmail = cleaned.UserEmail
	c.UserURL = cleaned.UserURL
	c.Body = cleaned.Comment
	c.IsRemoved = false

	err := s.store.Atomic(ctx, func(cs domain.CommentStore) error {
		var err error
		flag, created, err = cs.FindOrCreateFlag(ctx, c.ID, actor.ID, domain.FlagModeratorEdited)
		if err != nil {
			return err
		}
		return cs.SaveComment(ctx, c)
	})
	if err != nil {
		return c, flag, perr.WithOp(err, "comments.persist")
	}

	logger.C(ctx).Info().Int64("comment_id", c.ID).Int64("flag_id", flag.ID).Bool("flag_created", created).
		Msg("comment edited")

	if s.notifier != nil {
		s.notifier.Publish(ctx, domain.CommentFlagged{
			Comment: c,
			Flag:    flag,
			Created: created,
			Actor:   actor,
			At:      s.now().UTC(),
		})
	}
	return c, flag, nil
}

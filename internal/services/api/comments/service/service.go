// Package service runs the comment edit workflow
package service

import (
	"context"
	"time"

	perr "commentedit/internal/platform/errors"
	"commentedit/internal/platform/logger"
	"commentedit/internal/services/api/comments/domain"
	"commentedit/internal/services/api/comments/policy"
)

// DefaultDoneURL is the confirmation route used when no safe next is given
const DefaultDoneURL = "/comments/edited"

// msgGeneric is returned for a submission that is neither previewable nor valid
const msgGeneric = "Could not complete request!"

// Service is the public service port
type Service interface {
	// Form returns the pre-seeded edit form for a comment
	Form(ctx context.Context, id int64, actor domain.Actor) (FreshForm, error)
	// Edit validates a submission and persists it when valid
	Edit(ctx context.Context, in EditInput) (Outcome, error)
	// Edited resolves the confirmation target; unknown ids give a nil comment
	Edited(ctx context.Context, id int64) *domain.Comment
	// PolicyName reports the active edit policy
	PolicyName() policy.Name
}

// Options control service behavior
type Options struct {
	SiteID int64

	// Policy defaults to policy.Owner
	Policy policy.Policy

	// Forms is required
	Forms domain.FormFactory

	// Notifier is optional; nil drops events
	Notifier domain.Notifier

	// Locker is optional; nil disables the edit lock
	Locker domain.EditLocker

	// DoneURL defaults to DefaultDoneURL
	DoneURL string

	// FormTarget is the URL the fresh form posts to; "%d" is replaced by the comment id
	FormTarget string

	// Now defaults to time.Now
	Now func() time.Time
}

// Svc implements Service
type Svc struct {
	store    domain.Store
	siteID   int64
	policy   policy.Policy
	forms    domain.FormFactory
	notifier domain.Notifier
	locker   domain.EditLocker
	doneURL  string
	target   string
	now      func() time.Time
}

var _ Service = (*Svc)(nil)

// New constructs the service
func New(store domain.Store, opt Options) *Svc {
	if store == nil {
		panic("comments.Service requires a non nil Store")
	}
	if opt.Forms == nil {
		panic("comments.Service requires a non nil FormFactory")
	}
	s := &Svc{
		store:    store,
		siteID:   opt.SiteID,
		policy:   opt.Policy,
		forms:    opt.Forms,
		notifier: opt.Notifier,
		locker:   opt.Locker,
		doneURL:  opt.DoneURL,
		target:   opt.FormTarget,
		now:      opt.Now,
	}
	if s.policy == nil {
		s.policy = policy.Owner{}
	}
	if s.doneURL == "" {
		s.doneURL = DefaultDoneURL
	}
	if s.target == "" {
		s.target = DefaultFormTarget
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// PolicyName reports the active edit policy
func (s *Svc) PolicyName() policy.Name { return s.policy.Name() }

// load fetches the comment and runs the policy; it never has side effects
func (s *Svc) load(ctx context.Context, id int64, actor domain.Actor) (domain.Comment, error) {
	log := logger.C(ctx)

	// route level gate, before the comment is read
	if !s.policy.Gate(actor) {
		log.Warn().Str("actor", actor.ID).Int64("comment_id", id).Str("policy", string(s.policy.Name())).
			Msg("comment edit gate refused")
		return domain.Comment{}, perr.Unauthorizedf("Unauthorized")
	}

	c, err := s.store.FindComment(ctx, id, s.siteID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Comment{}, perr.NotFoundf("comment %d not found", id)
		}
		return domain.Comment{}, perr.WithOp(err, "comments.load")
	}

	if !s.policy.Allow(actor, c) {
		log.Warn().Str("actor", actor.ID).Int64("comment_id", id).Str("policy", string(s.policy.Name())).
			Msg("comment edit refused")
		return domain.Comment{}, perr.Unauthorizedf("Unauthorized")
	}
	return c, nil
}

// Edited resolves the confirmation target
func (s *Svc) Edited(ctx context.Context, id int64) *domain.Comment {
	if id <= 0 {
		return nil
	}
	c, err := s.store.FindComment(ctx, id, s.siteID)
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeNotFound) {
			logger.C(ctx).Error().Err(err).Int64("comment_id", id).Msg("edited comment lookup failed")
		}
		return nil
	}
	return &c
}

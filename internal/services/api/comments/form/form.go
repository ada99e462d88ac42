// Package form validates comment edit submissions.
//
// Every field is checked independently. The profanity check only runs on a body that
// passed its required and length rules, and the hash check only runs on a security_hash
// of the right shape. The expected hash is always recomputed from the comment's stored
// submit date, so a replayed token with a different timestamp fails.
package form

import (
	"strconv"
	"strings"
	"sync"

	"commentedit/internal/core/profanity"
	"commentedit/internal/core/sechash"
	"commentedit/internal/platform/net/http/bind"
	"commentedit/internal/services/api/comments/domain"
)

const (
	// MaxNameLength bounds user_name in runes
	MaxNameLength = 50
	// MaxCommentLength bounds the body in runes
	MaxCommentLength = 3000

	// HoneypotLabel is both the honeypot field label and its error message
	HoneypotLabel = "If you enter anything in this field your comment will be treated as spam."

	msgHashFailed = "Security hash check failed."
)

// fields carries the validator rules; tag names double as the wire field names
type fields struct {
	UserName     string `form:"user_name" validate:"required,max=50"`
	UserEmail    string `form:"user_email" validate:"required,email"`
	UserURL      string `form:"user_url" validate:"omitempty,url"`
	Comment      string `form:"comment" validate:"required,max=3000"`
	Timestamp    string `form:"timestamp" validate:"required,integer"`
	SecurityHash string `form:"security_hash" validate:"required,min=40,max=40"`
	Honeypot     string `form:"honeypot" validate:"honeypot"`
}

var registerOnce sync.Once

func registerRules() {
	registerOnce.Do(func() {
		_ = bind.RegisterValidation("honeypot", func(fl bind.FieldLevel) bool {
			return fl.Field().String() == ""
		})
		_ = bind.RegisterMessage("honeypot", HoneypotLabel)
	})
}

// Factory builds forms that share one hash provider and one profanity filter
type Factory struct {
	hash   *sechash.Provider
	filter *profanity.Filter
}

// NewFactory returns a form factory; a nil filter allows profanities
func NewFactory(hash *sechash.Provider, filter *profanity.Filter) *Factory {
	if hash == nil {
		panic("form: nil hash provider")
	}
	registerRules()
	return &Factory{hash: hash, filter: filter}
}

// New returns an unbound form seeded with fresh security data for c
func (f *Factory) New(c domain.Comment) domain.EditForm {
	return &Form{comment: c, hash: f.hash, filter: f.filter}
}

// Form validates one submission against one comment
type Form struct {
	comment domain.Comment
	hash    *sechash.Provider
	filter  *profanity.Filter

	data    *domain.EditSubmission
	cleaned domain.EditSubmission
	errs    domain.Errors
}

var _ domain.EditForm = (*Form)(nil)

// Bind attaches submitted data and drops any earlier result
func (f *Form) Bind(s domain.EditSubmission) {
	f.data = &s
	f.errs = nil
}

// IsBound reports whether Bind was called
func (f *Form) IsBound() bool { return f.data != nil }

// IsValid validates on first use; an unbound form is never valid
func (f *Form) IsValid() bool {
	return f.IsBound() && f.Errors().Empty()
}

// Errors returns every field error; an unbound form has none
func (f *Form) Errors() domain.Errors {
	if !f.IsBound() {
		return domain.Errors{}
	}
	if f.errs == nil {
		f.fullClean()
	}
	return f.errs
}

// SecurityErrors returns only the honeypot, timestamp and security_hash errors
func (f *Form) SecurityErrors() domain.Errors {
	return f.Errors().Only(domain.SecurityFields...)
}

// SecurityData returns the token for the comment's own identity and submit date
func (f *Form) SecurityData() sechash.SecurityData {
	return f.hash.Token(f.contentTypeID(), f.objectPK(), f.comment.SubmitDate.Unix())
}

// Initial returns the values a fresh form renders with
func (f *Form) Initial() domain.EditSubmission {
	sd := f.SecurityData()
	return domain.EditSubmission{
		UserName:     f.comment.UserName,
		UserEmail:    f.comment.UserEmail,
		UserURL:      f.comment.UserURL,
		Comment:      f.comment.Body,
		Timestamp:    sd.Timestamp,
		SecurityHash: sd.SecurityHash,
		ContentType:  sd.ContentType,
		ObjectPK:     sd.ObjectPK,
	}
}

// Cleaned returns the normalized submission; only meaningful when IsValid
func (f *Form) Cleaned() domain.EditSubmission {
	f.Errors()
	return f.cleaned
}

func (f *Form) contentTypeID() string { return strconv.FormatInt(f.comment.ContentType.ID, 10) }
func (f *Form) objectPK() string      { return strconv.FormatInt(f.comment.ID, 10) }

func (f *Form) fullClean() {
	in := *f.data
	c := domain.EditSubmission{
		UserName:     strings.TrimSpace(in.UserName),
		UserEmail:    strings.TrimSpace(in.UserEmail),
		UserURL:      cleanURL(in.UserURL),
		Comment:      strings.TrimSpace(in.Comment),
		Timestamp:    strings.TrimSpace(in.Timestamp),
		SecurityHash: strings.TrimSpace(in.SecurityHash),
		Honeypot:     in.Honeypot,
		ContentType:  strings.TrimSpace(in.ContentType),
		ObjectPK:     strings.TrimSpace(in.ObjectPK),
		Next:         strings.TrimSpace(in.Next),
		Preview:      in.Preview,
	}

	errs := domain.Errors{}
	msgs, err := bind.Struct(fields{
		UserName:     c.UserName,
		UserEmail:    c.UserEmail,
		UserURL:      c.UserURL,
		Comment:      c.Comment,
		Timestamp:    c.Timestamp,
		SecurityHash: c.SecurityHash,
		Honeypot:     c.Honeypot,
	})
	if err != nil {
		errs.Add(domain.NonField, err.Error())
	}
	for field, list := range msgs {
		for _, m := range list {
			errs.Add(field, m)
		}
	}

	if !errs.Has("comment") && f.filter != nil {
		if msg := f.filter.Check(c.Comment); msg != "" {
			errs.Add("comment", msg)
		}
	}
	if !errs.Has("security_hash") && !f.hashMatches(c) {
		errs.Add("security_hash", msgHashFailed)
	}

	f.cleaned = c
	f.errs = errs
}

// hashMatches recomputes the token from the stored submit date.
// Non-empty content_type and object_pk overrides replace the comment's own values.
func (f *Form) hashMatches(c domain.EditSubmission) bool {
	ct, pk := f.contentTypeID(), f.objectPK()
	if c.ContentType != "" {
		ct = c.ContentType
	}
	if c.ObjectPK != "" {
		pk = c.ObjectPK
	}
	ts := strconv.FormatInt(f.comment.SubmitDate.Unix(), 10)
	return sechash.Verify(c.SecurityHash, f.hash.Generate(ct, pk, ts))
}

// cleanURL trims and assumes http when the scheme is missing
func cleanURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u != "" && !strings.Contains(u, "://") {
		u = "http://" + u
	}
	return u
}

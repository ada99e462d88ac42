// Package http provides http transport for comment edits
package http

import (
	"mime"
	stdhttp "net/http"
	"net/url"

	"commentedit/internal/modkit/httpkit"
	"commentedit/internal/platform/net/http/bind"
	"commentedit/internal/platform/net/middleware"
	"commentedit/internal/services/api/comments/domain"
	svc "commentedit/internal/services/api/comments/service"
)

// Options controls transport behavior
type Options struct {
	// Debug exposes security failure detail in 400 bodies
	Debug bool
	// Next is the default redirect target when the submission has none
	Next string
	// Auth guards the edit routes; nil leaves authentication to outer middleware
	Auth middleware.AuthPort
}

// Register mounts the routes; the edit routes need an authenticated principal
func Register(r httpkit.Router, s svc.Service, o Options) {
	h := &handlers{svc: s, o: o}
	httpkit.Protected(r, o.Auth, func(pr httpkit.Router) {
		pr.Get("/edit/{comment_id}", httpkit.Handle(h.form))
		pr.Post("/edit/{comment_id}", httpkit.Handle(h.edit))
	})
	r.Get("/edited", httpkit.Handle(h.edited))
}

type handlers struct {
	svc svc.Service
	o   Options
}

func actor(r *stdhttp.Request) (domain.Actor, error) {
	p, err := httpkit.Principal(r)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.ActorFrom(p), nil
}

// swagger:route GET /comments/edit/{comment_id} Comments editForm
// @Summary Fresh edit form with security data
// @Tags comments
// @Produce json
// @Param comment_id path int true "Comment id"
// @Success 200 {object} service.FreshForm "ok"
// @Failure 401 {object} httpkit.Envelope "unauthorized"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /comments/edit/{comment_id} [get]
func (h *handlers) form(r *stdhttp.Request) httpkit.Response {
	a, err := actor(r)
	if err != nil {
		return httpkit.Error(err)
	}
	id, err := bind.PathInt64(httpkit.URLParam(r, "comment_id"), "comment_id")
	if err != nil {
		return httpkit.Error(err)
	}
	out, err := h.svc.Form(r.Context(), id, a)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(out)
}

// swagger:route POST /comments/edit/{comment_id} Comments edit
// @Summary Submit a comment edit
// @Tags comments
// @Accept x-www-form-urlencoded,multipart/form-data,json
// @Produce json
// @Param comment_id path int true "Comment id"
// @Success 200 {object} service.Outcome "preview"
// @Success 302 "saved"
// @Failure 400 {object} httpkit.Envelope "security verification failed"
// @Failure 401 {object} httpkit.Envelope "unauthorized"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Failure 409 {object} httpkit.Envelope "edit in progress"
// @Router /comments/edit/{comment_id} [post]
func (h *handlers) edit(r *stdhttp.Request) httpkit.Response {
	a, err := actor(r)
	if err != nil {
		return httpkit.Error(err)
	}
	id, err := bind.PathInt64(httpkit.URLParam(r, "comment_id"), "comment_id")
	if err != nil {
		return httpkit.Error(err)
	}
	vals, err := bind.Values(r)
	if err != nil {
		return httpkit.Error(err)
	}
	if isJSON(r) && vals.Get("preview") == "false" {
		vals.Del("preview")
	}

	next := h.o.Next
	if q := r.URL.Query().Get("next"); q != "" {
		next = q
	}
	out, err := h.svc.Edit(r.Context(), svc.EditInput{
		CommentID:  id,
		Actor:      a,
		Submission: Submission(vals),
		Next:       next,
	})
	if err != nil {
		return httpkit.ErrorDebug(err, h.o.Debug)
	}
	if out.Kind == svc.KindRedirect {
		return httpkit.Redirect(out.Location)
	}
	return httpkit.OK(out)
}

// EditedView is the confirmation payload
type EditedView struct {
	Comment *domain.Comment `json:"comment"`
}

// swagger:route GET /comments/edited Comments edited
// @Summary Edit confirmation
// @Tags comments
// @Produce json
// @Param c query int false "Comment id"
// @Success 200 {object} EditedView "ok"
// @Router /comments/edited [get]
func (h *handlers) edited(r *stdhttp.Request) httpkit.Response {
	var view EditedView
	if id, err := bind.PathInt64(r.URL.Query().Get("c"), "c"); err == nil {
		view.Comment = h.svc.Edited(r.Context(), id)
	}
	return httpkit.OK(view)
}

func isJSON(r *stdhttp.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/json"
}

// Submission maps decoded body values; preview is set by the key's presence alone
func Submission(v url.Values) domain.EditSubmission {
	_, preview := v["preview"]
	return domain.EditSubmission{
		UserName:     v.Get("user_name"),
		UserEmail:    v.Get("user_email"),
		UserURL:      v.Get("user_url"),
		Comment:      v.Get("comment"),
		Timestamp:    v.Get("timestamp"),
		SecurityHash: v.Get("security_hash"),
		Honeypot:     v.Get("honeypot"),
		ContentType:  v.Get("content_type"),
		ObjectPK:     v.Get("object_pk"),
		Next:         v.Get("next"),
		Preview:      preview,
	}
}

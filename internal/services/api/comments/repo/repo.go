// Package repo provides comment storage on postgres and in memory
package repo

import (
	"context"

	"commentedit/internal/modkit/repokit"
	perr "commentedit/internal/platform/errors"
	"commentedit/internal/platform/store"
	"commentedit/internal/services/api/comments/domain"
)

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements domain.CommentStore
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[domain.CommentStore] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) domain.CommentStore { return &queries{q: q} }

const selectComment = `
select c.id, c.site_id, ct.id, ct.app_label, ct.model, c.object_pk, coalesce(c.user_id, ''),
       c.user_name, c.user_email, c.user_url, c.comment, c.submit_date, c.is_public, c.is_removed
from comments c
join content_types ct on ct.id = c.content_type_id
where c.id = $1 and c.site_id = $2
`

func scanComment(r store.Row) (domain.Comment, error) {
	var c domain.Comment
	err := r.Scan(&c.ID, &c.SiteID, &c.ContentType.ID, &c.ContentType.AppLabel, &c.ContentType.Model,
		&c.ObjectPK, &c.UserID, &c.UserName, &c.UserEmail, &c.UserURL, &c.Body,
		&c.SubmitDate, &c.IsPublic, &c.IsRemoved)
	return c, err
}

func (r *queries) FindComment(ctx context.Context, id, siteID int64) (domain.Comment, error) {
	c, err := store.One(ctx, r.q, scanComment, selectComment, id, siteID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return c, perr.NotFoundf("comment %d not found", id)
		}
		return c, perr.FromPostgres(err, "find comment")
	}
	return c, nil
}

func (r *queries) SaveComment(ctx context.Context, c domain.Comment) error {
	const sql = `
update comments
set user_name = $2, user_email = $3, user_url = $4, comment = $5, is_removed = $6
where id = $1
`
	err := store.ExecOne(ctx, r.q, sql, c.ID, c.UserName, c.UserEmail, c.UserURL, c.Body, c.IsRemoved)
	if err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.FromPostgres(err, "save comment")
	}
	return err
}

// FindOrCreateFlag inserts the triple or reads the existing row.
// Run it inside a transaction so the fallback read sees the conflicting row.
func (r *queries) FindOrCreateFlag(ctx context.Context, commentID int64, userID, label string) (domain.CommentFlag, bool, error) {
	const insert = `
insert into comment_flags (comment_id, user_id, flag)
values ($1, $2, $3)
on conflict (comment_id, user_id, flag) do nothing
returning id, comment_id, user_id, flag, flag_date
`
	const existing = `
select id, comment_id, user_id, flag, flag_date
from comment_flags
where comment_id = $1 and user_id = $2 and flag = $3
`
	f, err := store.One(ctx, r.q, scanFlag, insert, commentID, userID, label)
	if err == nil {
		return f, true, nil
	}
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return f, false, perr.FromPostgres(err, "create comment flag")
	}
	f, err = store.One(ctx, r.q, scanFlag, existing, commentID, userID, label)
	if err != nil {
		return f, false, perr.FromPostgres(err, "find comment flag")
	}
	return f, false, nil
}

func scanFlag(r store.Row) (domain.CommentFlag, error) {
	var f domain.CommentFlag
	err := r.Scan(&f.ID, &f.CommentID, &f.UserID, &f.Flag, &f.FlagDate)
	return f, err
}

// Store binds a CommentStore to the pool and to transactions
type Store struct {
	domain.CommentStore
	db     repokit.TxRunner
	binder repokit.Binder[domain.CommentStore]
}

var _ domain.Store = (*Store)(nil)

// NewStore returns a postgres backed domain.Store
func NewStore(db repokit.TxRunner, binder repokit.Binder[domain.CommentStore]) *Store {
	if db == nil {
		panic("comments repo requires a non nil TxRunner")
	}
	if binder == nil {
		binder = NewPG()
	}
	return &Store{CommentStore: repokit.MustBind(binder, repokit.Queryer(db)), db: db, binder: binder}
}

// Atomic runs fn with a CommentStore bound to one transaction
func (s *Store) Atomic(ctx context.Context, fn func(domain.CommentStore) error) error {
	return repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return fn(s.binder.Bind(q))
	})
}

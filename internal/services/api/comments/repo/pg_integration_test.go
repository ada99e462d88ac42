//go:build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"commentedit/internal/platform/store"
	"commentedit/internal/platform/store/migrate"
	"commentedit/internal/services/api/comments/domain"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
}

func TestPGStore_Integration(t *testing.T) {
	dsn := startPostgres(t)
	log := zerolog.New(io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	m, err := migrate.Open(dsn, log)
	if err != nil {
		t.Fatalf("migrate open: %v", err)
	}
	if err := m.Up(); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	_ = m.Close()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4, ConnectRetries: 5, PingTimeout: 3 * time.Second}},
		store.WithLogger(log))
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	defer st.Close()

	if _, err := st.PG.Exec(ctx, `insert into content_types (id, app_label, model) values (7, 'blog', 'post')`); err != nil {
		t.Fatalf("seed content type: %v", err)
	}
	if _, err := st.PG.Exec(ctx, `
insert into comments (id, site_id, content_type_id, object_pk, user_id, user_name, user_email, comment, submit_date, is_removed)
values (42, 1, 7, '3', 'u1', 'Ada', 'ada@example.com', 'first', '2024-03-01T12:00:00Z', true)`); err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	s := NewStore(st.PG, nil)

	if _, err := s.FindComment(ctx, 42, 2); err == nil {
		t.Fatalf("comment must not be visible on another site")
	}
	c, err := s.FindComment(ctx, 42, 1)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if c.ContentType.ID != 7 || c.ContentType.Model != "post" || c.SubmitDate.Unix() != 1709294400 {
		t.Fatalf("scanned comment: %+v", c)
	}

	for i, wantCreated := range []bool{true, false} {
		err := s.Atomic(ctx, func(cs domain.CommentStore) error {
			_, created, err := cs.FindOrCreateFlag(ctx, 42, "mod", domain.FlagModeratorEdited)
			if err != nil {
				return err
			}
			if created != wantCreated {
				return fmt.Errorf("round %d created=%v", i, created)
			}
			c.Body = "edited"
			c.IsRemoved = false
			return cs.SaveComment(ctx, c)
		})
		if err != nil {
			t.Fatalf("atomic: %v", err)
		}
	}

	n, err := store.Scalar[int64](ctx, st.PG, `select count(*) from comment_flags where comment_id = 42`)
	if err != nil || n != 1 {
		t.Fatalf("flags=%d err=%v, want exactly one", n, err)
	}
	got, _ := s.FindComment(ctx, 42, 1)
	if got.Body != "edited" || got.IsRemoved {
		t.Fatalf("comment not saved: %+v", got)
	}
}

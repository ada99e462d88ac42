package events

import (
	"context"
	"fmt"
	"regexp"
)

// columnar is satisfied by store.Clickhouse
type columnar interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Insert(ctx context.Context, table string, rows [][]any) error
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// ClickHouse appends one row per event to an analytics table
type ClickHouse struct {
	ch    columnar
	table string
}

// NewClickHouse returns a flag events sink; an empty table uses DefaultTable
func NewClickHouse(ch columnar, table string) (*ClickHouse, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid clickhouse table name %q", table)
	}
	return &ClickHouse{ch: ch, table: table}, nil
}

// EnsureTable creates the events table when missing
func (c *ClickHouse) EnsureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    event_id   String,
    at         DateTime64(3, 'UTC'),
    site_id    Int64,
    comment_id Int64,
    flag_id    Int64,
    flag       LowCardinality(String),
    created    Bool,
    actor_id   String
) ENGINE = MergeTree
ORDER BY (site_id, comment_id, at)`, c.table)
	return c.ch.Exec(ctx, ddl)
}

func (c *ClickHouse) Name() string { return "clickhouse" }

// Deliver inserts in table column order
func (c *ClickHouse) Deliver(ctx context.Context, env Envelope) error {
	return c.ch.Insert(ctx, c.table, [][]any{{
		env.ID,
		env.At.UTC(),
		env.Payload.Comment.SiteID,
		env.CommentID,
		env.FlagID,
		env.Payload.Flag.Flag,
		env.Created,
		env.ActorID,
	}})
}

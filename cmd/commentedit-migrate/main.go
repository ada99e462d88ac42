// Command commentedit-migrate applies the embedded postgres schema.
//
//	commentedit-migrate up | down [n] | to <version> | version
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"commentedit/internal/platform/config"
	"commentedit/internal/platform/logger"
	"commentedit/internal/platform/store/migrate"
)

func main() {
	_ = godotenv.Load()
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: commentedit-migrate up | down [n] | to <version> | version")
		flag.PrintDefaults()
	}
	flag.Parse()

	l := logger.Named("migrate")
	dsn := config.New().Prefix("PG_").MustString("URL")

	m, err := migrate.Open(dsn, *l)
	if err != nil {
		l.Fatal().Err(err).Msg("open migrator")
	}
	defer func() { _ = m.Close() }()

	if err := run(m, flag.Args()); err != nil {
		l.Error().Err(err).Msg("migration failed")
		_ = m.Close()
		os.Exit(1)
	}
}

func run(m *migrate.Migrator, args []string) error {
	cmd := "up"
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "up":
		return m.Up()
	case "down":
		n := 1
		if len(args) > 1 {
			v, err := strconv.Atoi(args[1])
			if err != nil || v <= 0 {
				return fmt.Errorf("down: invalid step count %q", args[1])
			}
			n = v
		}
		return m.Down(n)
	case "to":
		if len(args) < 2 {
			return fmt.Errorf("to: missing version")
		}
		v, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("to: invalid version %q", args[1])
		}
		return m.To(uint(v))
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%v\n", v, dirty)
		return nil
	}
	flag.Usage()
	return fmt.Errorf("unknown command %q", cmd)
}

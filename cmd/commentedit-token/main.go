// Command commentedit-token prints edit form security data, and optionally a bearer token.
//
//	commentedit-token -ct 7 -pk 42 -ts 1709294400
//	commentedit-token -jwt -user u1 -perms comments.can_moderate
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	jwtauth "commentedit/internal/adapters/auth/jwt"
	"commentedit/internal/core/sechash"
	"commentedit/internal/platform/config"
	pnet "commentedit/internal/platform/net"
)

func main() {
	_ = godotenv.Load()
	cc := config.New().Prefix("COMMENTS_")

	var (
		secret = flag.String("secret", cc.MayString("SECRET_KEY", ""), "hash secret (COMMENTS_SECRET_KEY)")
		salt   = flag.String("salt", cc.MayString("HASH_SALT", sechash.DefaultSalt), "hash salt (COMMENTS_HASH_SALT)")
		ct     = flag.String("ct", "", "content type id")
		pk     = flag.String("pk", "", "comment id")
		ts     = flag.Int64("ts", 0, "comment submit date as unix seconds")

		asJWT  = flag.Bool("jwt", false, "print a bearer token instead")
		jwtKey = flag.String("jwt-secret", cc.MayString("JWT_SECRET", ""), "token secret (COMMENTS_JWT_SECRET)")
		issuer = flag.String("issuer", cc.MayString("JWT_ISSUER", ""), "token issuer (COMMENTS_JWT_ISSUER)")
		user   = flag.String("user", "", "token subject")
		uname  = flag.String("username", "", "preferred_username claim")
		name   = flag.String("name", "", "full name claim")
		email  = flag.String("email", "", "email claim")
		perms  = flag.String("perms", "", "comma separated permission codenames")
		ttl    = flag.Duration("ttl", time.Hour, "token lifetime")
	)
	flag.Parse()

	if *asJWT {
		v, err := jwtauth.New(*jwtKey, *issuer)
		if err != nil {
			fail(err)
		}
		if *user == "" {
			fail(fmt.Errorf("-user is required"))
		}
		tok, err := v.Sign(pnet.Principal{
			UserID:   *user,
			Username: *uname,
			FullName: *name,
			Email:    *email,
			Perms:    splitCSV(*perms),
		}, *ttl)
		if err != nil {
			fail(err)
		}
		fmt.Println(tok)
		return
	}

	if *ct == "" || *pk == "" || *ts == 0 {
		flag.Usage()
		os.Exit(2)
	}
	h, err := sechash.New(*secret, *salt)
	if err != nil {
		fail(err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(h.Token(*ct, *pk, *ts)); err != nil {
		fail(err)
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "commentedit-token:", err)
	os.Exit(1)
}

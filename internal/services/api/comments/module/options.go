package module

import (
	"time"

	"commentedit/internal/core/sechash"
	"commentedit/internal/platform/config"
	"commentedit/internal/services/api/comments/events"
	"commentedit/internal/services/api/comments/policy"
	"commentedit/internal/services/api/comments/repo"
	"commentedit/internal/services/api/comments/service"
)

// Options controls comment edit behavior
type Options struct {
	SecretKey string
	HashSalt  string

	AllowProfanities bool
	Profanities      []string
	ProfanityLocale  string

	Policy  string
	SiteID  int64
	Debug   bool
	DoneURL string

	NATSSubject     string
	EditLockTTL     time.Duration
	FlagEventsTable string
}

// FromConfig reads COMMENTS_* values from process config/env; COMMENTS_SECRET_KEY is required
func FromConfig(cfg config.Conf) Options {
	cc := cfg.Prefix("COMMENTS_")
	return Options{
		SecretKey:        cc.MustString("SECRET_KEY"),
		HashSalt:         cc.MayString("HASH_SALT", sechash.DefaultSalt),
		AllowProfanities: cc.MayBool("ALLOW_PROFANITIES", false),
		Profanities:      cc.MayCSV("PROFANITIES", nil),
		ProfanityLocale:  cc.MayEnum("PROFANITIES_LOCALE", "en", "en", "nb"),
		Policy:           cc.MayEnum("EDIT_POLICY", string(policy.OwnerName), policy.Names...),
		SiteID:           cc.MayInt64("SITE_ID", 1),
		Debug:            cc.MayBool("DEBUG", false),
		DoneURL:          cc.MayString("DONE_URL", service.DefaultDoneURL),
		NATSSubject:      cc.MayString("NATS_SUBJECT", events.DefaultSubject),
		EditLockTTL:      cc.MayDuration("EDIT_LOCK_TTL", repo.DefaultLockTTL),
		FlagEventsTable:  cc.MayString("FLAG_EVENTS_TABLE", events.DefaultTable),
	}
}

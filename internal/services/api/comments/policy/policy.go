// Package policy decides who may edit which comment
package policy

import (
	"fmt"
	"strings"

	"commentedit/internal/services/api/comments/domain"
)

// Name selects a policy
type Name string

const (
	// OwnerName lets owners holding change_comment edit their own comments and moderators edit any
	OwnerName Name = "owner"
	// ModerateName lets only moderators edit
	ModerateName Name = "moderate"
)

// Names lists the accepted policy names
var Names = []string{string(OwnerName), string(ModerateName)}

// Policy is the edit authorization strategy.
// Gate runs before the comment is inspected; Allow runs per comment.
type Policy interface {
	Name() Name
	Gate(a domain.Actor) bool
	Allow(a domain.Actor, c domain.Comment) bool
}

// Owner is the default policy
type Owner struct{}

func (Owner) Name() Name { return OwnerName }

func (Owner) Gate(a domain.Actor) bool {
	return a.HasCapability(domain.PermChangeComment) || a.HasCapability(domain.PermModerate)
}

func (Owner) Allow(a domain.Actor, c domain.Comment) bool {
	if a.HasCapability(domain.PermModerate) {
		return true
	}
	return a.IsOwnerOf(c) && a.HasCapability(domain.PermChangeComment)
}

// Moderate ignores ownership
type Moderate struct{}

func (Moderate) Name() Name { return ModerateName }

func (Moderate) Gate(a domain.Actor) bool { return a.HasCapability(domain.PermModerate) }

func (Moderate) Allow(domain.Actor, domain.Comment) bool { return true }

// FromName resolves a configured policy name; empty selects Owner
func FromName(name string) (Policy, error) {
	switch Name(strings.ToLower(strings.TrimSpace(name))) {
	case "", OwnerName:
		return Owner{}, nil
	case ModerateName:
		return Moderate{}, nil
	}
	return nil, fmt.Errorf("unknown edit policy %q (want one of %s)", name, strings.Join(Names, ", "))
}

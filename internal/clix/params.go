package clix

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// DefaultCLIUser is the identity CLI commands act as unless --user is given.
const DefaultCLIUser = "cli"

// ParseLimit reads --limit. Zero means no limit and is returned as -1.
func ParseLimit(flags *pflag.FlagSet) (int, error) {
	limit, err := flags.GetInt("limit")
	if err != nil {
		return 0, fmt.Errorf("read --limit: %w", err)
	}
	if limit < 0 {
		return 0, fmt.Errorf("--limit must not be negative, got %d", limit)
	}
	if limit == 0 {
		return -1, nil
	}
	return limit, nil
}

// ParseUser reads --user, falling back to DefaultCLIUser.
func ParseUser(flags *pflag.FlagSet) string {
	user, _ := flags.GetString("user")
	user = strings.TrimSpace(user)
	if user == "" {
		return DefaultCLIUser
	}
	return user
}

// Package user resolves assignee references given on the command line.
package user

import (
	"os"
	"os/user"
	"strings"

	"github.com/thenoetrevino/kanboard/internal/types"
)

// Me is the assignee reference for the user running the command
const Me = "@me"

// Current returns the login name of the user running the process, then
// $USER, then "unknown".
func Current() types.UserID {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return types.UserID(u.Username)
	}
	if name := os.Getenv("USER"); name != "" {
		return types.UserID(name)
	}
	return "unknown"
}

// Resolve turns an assignee flag into a user id. Me maps to Current,
// anything else is taken as given after trimming.
func Resolve(ref string) types.UserID {
	ref = strings.TrimSpace(ref)
	if strings.EqualFold(ref, Me) {
		return Current()
	}
	return types.UserID(ref)
}

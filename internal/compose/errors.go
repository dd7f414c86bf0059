package compose

import (
	"errors"
	"fmt"

	"github.com/nhle/maildraft/internal/model"
)

// ErrNoAccount is returned when a draft targets the IMAP account but no
// account or password is configured.
var ErrNoAccount = errors.New("no mail account configured")

// LaunchError indicates that a draft was encoded but could not be handed
// to the mail client.
type LaunchError struct {
	Method model.LaunchMethod
	Target string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %s draft (%s): %v", e.Method, e.Target, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsLaunchError reports whether err (or any error in its chain) is a LaunchError.
func IsLaunchError(err error) bool {
	var launchErr *LaunchError
	return errors.As(err, &launchErr)
}

package submission

import "errors"

// ErrNotJoined is returned when submitting without a joined participant
var ErrNotJoined = errors.New("not joined: join the contest with a username first")

// ErrNoProblemSelected is returned when submitting with no problem selected
var ErrNoProblemSelected = errors.New("no problem selected")

// ErrTrackerClosed is returned when submitting after the tracker was torn down
var ErrTrackerClosed = errors.New("submission tracker is closed")

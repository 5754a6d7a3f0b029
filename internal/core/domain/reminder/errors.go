package reminder

import "errors"

// ErrReminderDoesNotExist covers both unknown ids and ids owned by another
// user: the existence of someone else's reminders is not revealed.
var ErrReminderDoesNotExist = errors.New("reminder does not exist")

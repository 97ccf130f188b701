package domain

import "errors"

var (
	// ErrEmptyName indicates an item name that is blank after trimming.
	ErrEmptyName = errors.New("item name is empty")

	// ErrDuplicateName indicates an item with the same name already exists.
	ErrDuplicateName = errors.New("item name already exists")

	// ErrNoSelection indicates a punch was requested without a selected item.
	ErrNoSelection = errors.New("no item selected")

	// ErrItemNotFound indicates no item matches the requested name.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidDate indicates a date that is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInterval indicates an unknown interval kind.
	ErrInvalidInterval = errors.New("invalid interval kind")
)

// IsUserError reports whether err is an input validation failure that should
// be shown to the user as a warning rather than treated as a failure.
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrEmptyName, ErrDuplicateName, ErrNoSelection,
		ErrItemNotFound, ErrInvalidDate, ErrInvalidInterval,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package content

import (
	"errors"
	"fmt"
)

// ErrInvalidLocator is returned when a dataset locator is neither a
// single URL string nor a list of url/type pairs. It fails fast,
// before any network activity.
var ErrInvalidLocator = errors.New("invalid dataset locator; expected an url or a list of url/type pairs")

// DatasetReadError indicates that both the streaming and the http
// download attempt failed for a dataset. It is never used for an
// opened dataset that simply contains no matching variables.
type DatasetReadError struct {
	Locator string
	Err     error
}

func (e *DatasetReadError) Error() string {
	return fmt.Sprintf("reading the dataset %s failed: %s", e.Locator, e.Err.Error())
}

func (e *DatasetReadError) Unwrap() error {
	return e.Err
}

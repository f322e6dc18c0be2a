// Package baseerror provides errors that form a class hierarchy. A child
// error matches its parent with errors.Is, so callers can test either for
// the exact condition or for the whole class.
package baseerror

type Error struct {
	parent error
	msg    string
}

// New creates a root error class.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// New derives a more specific error from the class.
func (err *Error) New(msg string) *Error {
	return &Error{
		parent: err,
		msg:    msg,
	}
}

// Root returns the topmost class the error belongs to.
func (err *Error) Root() *Error {
	root := err

	for {
		parent, ok := root.parent.(*Error)
		if !ok {
			return root
		}

		root = parent
	}
}

func (err *Error) Error() string {
	return err.msg
}

func (err *Error) Unwrap() error {
	return err.parent
}

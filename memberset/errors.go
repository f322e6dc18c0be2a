package memberset

import "github.com/maxpoletaev/kivigrid/internal/baseerror"

var (
	// ErrUnsupported is the class of errors returned by mutators of immutable
	// sets and by operations a variant cannot perform.
	ErrUnsupported         = baseerror.New("unsupported operation")
	ErrImmutable           = ErrUnsupported.New("member set is immutable")
	ErrReadOnly            = ErrUnsupported.New("member set is read-only")
	ErrSingletonHeld       = ErrUnsupported.New("set already holds a different singleton")
	ErrNoMemberRefs        = ErrUnsupported.New("lite member set does not hold member references")
	ErrEncodingUnsupported = ErrUnsupported.New("encoding is not supported by this member set")

	// ErrIllegalArgument is the class of errors caused by bad input.
	ErrIllegalArgument = baseerror.New("illegal argument")
	ErrNilMember       = ErrIllegalArgument.New("member is nil")
	ErrInvalidID       = ErrIllegalArgument.New("member id is out of range")
	ErrTooManyMembers  = ErrIllegalArgument.New("source set holds more than one member")
	ErrUnknownKind     = ErrIllegalArgument.New("unknown member set kind")

	// ErrIllegalState is the class of errors caused by a forbidden transition.
	ErrIllegalState  = baseerror.New("illegal state")
	ErrAlreadyExists = ErrIllegalState.New("singleton already set")

	ErrNotFound  = baseerror.New("member not found")
	ErrCorrupted = baseerror.New("corrupted member set encoding")
)

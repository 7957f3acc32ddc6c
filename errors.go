package circarr

type (
	errInvalidConfig struct{}
	errInvalidOp     struct{}
	errInvalidFormat struct{}
	errSelfTest      struct{}
)

var (
	// ErrInvalidConfig is returned when the config is invalid
	ErrInvalidConfig errInvalidConfig
	// ErrInvalidOp is returned when a script operation cannot be parsed
	ErrInvalidOp errInvalidOp
	// ErrInvalidFormat is returned for an unknown output format
	ErrInvalidFormat errInvalidFormat
	// ErrSelfTest is returned when a self test scenario fails
	ErrSelfTest errSelfTest
)

func (e errInvalidConfig) Error() string {
	return "Invalid config"
}

func (e errInvalidOp) Error() string {
	return "Invalid operation"
}

func (e errInvalidFormat) Error() string {
	return "Invalid format"
}

func (e errSelfTest) Error() string {
	return "Self test failed"
}

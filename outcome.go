package empower

type (
	// Outcome is the result of invoking an assertion:
	// either a Success or a Failure.
	Outcome interface {
		outcome()
	}

	// Success holds the value returned by an assertion.
	Success struct {
		Value any
	}

	// Failure holds the error raised by an assertion.
	Failure struct {
		Err error
	}
)

func (Success) outcome() {}
func (Failure) outcome() {}

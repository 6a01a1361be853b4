package oscore

type CreateUserOption func(o *createUserOptions)

// WithWorkDir allows to specify the working directory for the user.
func WithWorkDir(workDir string) CreateUserOption {
	return func(o *createUserOptions) {
		o.workDir = workDir
	}
}

func WithShell(shell string) CreateUserOption {
	return func(o *createUserOptions) {
		o.shell = shell
	}
}

// WithSystemAccount creates the account in the system uid range.
func WithSystemAccount() CreateUserOption {
	return func(o *createUserOptions) {
		o.system = true
	}
}

type createUserOptions struct {
	workDir string
	shell   string
	system  bool
}

func applyCreateUserOptions(opts ...CreateUserOption) *createUserOptions {
	o := &createUserOptions{}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

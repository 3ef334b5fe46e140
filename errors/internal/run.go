package internal

// Run adds two well-known frames above the callback, so tests can make
// assertions about captured throw sites and stacks.
func Run(callback func() error) error {
	return Run2(callback)
}

// Run2 is used in tests via Run.
func Run2(callback func() error) error {
	return callback()
}

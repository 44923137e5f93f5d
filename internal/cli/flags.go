package cli

// Flags holds command-line flag values that are not configuration keys
type Flags struct {
	// General flags
	CfgFile string

	// Target language flags (translate, lookup)
	Lang  string
	Label string

	// Output flags
	JSON bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{}
}

package ir

// Version constants for the IR and the generator.
const (
	// IRVersion is the IR schema version.
	IRVersion = "1"

	// GeneratorVersion is the code generator version recorded with artifacts.
	GeneratorVersion = "0.1.0"
)

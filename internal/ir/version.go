package ir

// Version constants for the IR schema and the generator.
const (
	// IRVersion is the IR schema version. Bump it when a change to the IR
	// types alters Fingerprint for unchanged input.
	IRVersion = "1"

	// GeneratorVersion is stamped into the header of every generated file.
	GeneratorVersion = "0.3.0"
)

package ir

// NOTE: These are store records, not part of the vector IR. They carry no
// floats so they can be hashed through canonical JSON.

// Run is one generator invocation. Token is a UUIDv7, so tokens sort by
// start time.
type Run struct {
	Token            string `json:"token"`
	GeneratorVersion string `json:"generator_version"`
	IRVersion        string `json:"ir_version"`
	PackagePrefix    string `json:"package_prefix"`
}

// Artifact is one generated file recorded under a run. Seq comes from the
// run's logical clock; ID is derived with ArtifactID.
type Artifact struct {
	ID         string   `json:"id"`
	RunToken   string   `json:"run_token"`
	Seq        int64    `json:"seq"`
	Name       string   `json:"name"`
	Theme      Theme    `json:"theme"`
	SourceFile string   `json:"source_file"`
	FileName   string   `json:"file_name"`
	Package    string   `json:"package"`
	SourceHash string   `json:"source_hash"`
	OutputHash string   `json:"output_hash"`
	Warnings   []string `json:"warnings"`
	Content    string   `json:"-"`
}

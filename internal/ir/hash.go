package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows the algorithm to change later.
const (
	DomainSource   = "vdgen/source/v1"
	DomainOutput   = "vdgen/output/v1"
	DomainArtifact = "vdgen/artifact/v1"
)

// hashWithDomain computes SHA-256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SourceHash identifies the XML text an icon was generated from.
func SourceHash(content string) string {
	return hashWithDomain(DomainSource, []byte(content))
}

// OutputHash identifies generated source text.
func OutputHash(content []byte) string {
	return hashWithDomain(DomainOutput, content)
}

// ArtifactID computes the content-addressed ID of a generated file within a run.
// The same run, icon and output always yield the same ID.
func ArtifactID(runToken string, theme Theme, name, outputHash string, seq int64) (string, error) {
	obj := map[string]any{
		"run_token":   runToken,
		"theme":       theme.PackageName(),
		"name":        name,
		"output_hash": outputHash,
		"seq":         seq,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ArtifactID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainArtifact, canonical), nil
}

// MustArtifactID is like ArtifactID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustArtifactID(runToken string, theme Theme, name, outputHash string, seq int64) string {
	id, err := ArtifactID(runToken, theme, name, outputHash, seq)
	if err != nil {
		panic(err)
	}
	return id
}

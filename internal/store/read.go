package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/vdgen/internal/ir"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// RunSummary is a run with the number of artifacts it recorded.
type RunSummary struct {
	ir.Run
	Artifacts int `json:"artifacts"`
}

// ArtifactFilter narrows ListArtifacts. Zero fields match everything.
type ArtifactFilter struct {
	RunToken string
	Name     string
	Limit    int
}

const artifactColumns = `id, run_token, seq, name, theme, source_file, file_name, package, source_hash, output_hash, warnings, content`

// ReadRun returns a run by token, or ErrNotFound.
func (s *Store) ReadRun(ctx context.Context, token string) (ir.Run, error) {
	var run ir.Run
	err := s.db.QueryRowContext(ctx, `
		SELECT token, generator_version, ir_version, package_prefix
		FROM runs
		WHERE token = ?
	`, token).Scan(&run.Token, &run.GeneratorVersion, &run.IRVersion, &run.PackagePrefix)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Run{}, fmt.Errorf("run %s: %w", token, ErrNotFound)
	}
	if err != nil {
		return ir.Run{}, fmt.Errorf("read run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs newest first. UUIDv7 tokens sort by start time, so
// ordering by token is ordering by time without reading the wall clock.
// A limit of zero or less returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
		SELECT r.token, r.generator_version, r.ir_version, r.package_prefix,
		       (SELECT COUNT(*) FROM artifacts a WHERE a.run_token = r.token)
		FROM runs r
		ORDER BY r.token COLLATE BINARY DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.Token, &r.GeneratorVersion, &r.IRVersion, &r.PackagePrefix, &r.Artifacts); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadArtifact returns an artifact by ID, or ErrNotFound.
func (s *Store) ReadArtifact(ctx context.Context, id string) (ir.Artifact, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+artifactColumns+` FROM artifacts WHERE id = ?`, id)
	a, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Artifact{}, fmt.Errorf("artifact %s: %w", id, ErrNotFound)
	}
	return a, err
}

// ListArtifacts returns artifacts matching the filter.
// Results are ordered deterministically: ORDER BY run_token ASC, seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListArtifacts(ctx context.Context, f ArtifactFilter) ([]ir.Artifact, error) {
	var (
		where []string
		args  []any
	)
	if f.RunToken != "" {
		where = append(where, "run_token = ?")
		args = append(args, f.RunToken)
	}
	if f.Name != "" {
		where = append(where, "name = ?")
		args = append(args, f.Name)
	}

	query := `SELECT ` + artifactColumns + ` FROM artifacts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY run_token COLLATE BINARY ASC, seq ASC, id COLLATE BINARY ASC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	artifacts := []ir.Artifact{}
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}
	return artifacts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row scanner) (ir.Artifact, error) {
	var (
		a        ir.Artifact
		theme    string
		warnings string
	)
	err := row.Scan(&a.ID, &a.RunToken, &a.Seq, &a.Name, &theme, &a.SourceFile,
		&a.FileName, &a.Package, &a.SourceHash, &a.OutputHash, &warnings, &a.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Artifact{}, err
	}
	if err != nil {
		return ir.Artifact{}, fmt.Errorf("scan artifact: %w", err)
	}

	if a.Theme, err = ir.ParseTheme(theme); err != nil {
		return ir.Artifact{}, fmt.Errorf("scan artifact %s: %w", a.ID, err)
	}
	if a.Warnings, err = unmarshalWarnings(warnings); err != nil {
		return ir.Artifact{}, fmt.Errorf("scan artifact %s: %w", a.ID, err)
	}
	return a, nil
}

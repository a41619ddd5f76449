package store

import (
	"context"
	"fmt"

	"github.com/roach88/vdgen/internal/ir"
)

// WriteRun inserts a run record.
// Uses ON CONFLICT(token) DO NOTHING for idempotency.
func (s *Store) WriteRun(ctx context.Context, run ir.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (token, generator_version, ir_version, package_prefix)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		run.Token,
		run.GeneratorVersion,
		run.IRVersion,
		run.PackagePrefix,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteArtifact inserts an artifact record.
// Uses ON CONFLICT DO NOTHING for idempotency - rewriting the same artifact is
// silently ignored.
//
// Note: The run referenced by RunToken must exist (foreign key constraint).
func (s *Store) WriteArtifact(ctx context.Context, a ir.Artifact) error {
	warnings, err := marshalWarnings(a.Warnings)
	if err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO artifacts
		(id, run_token, seq, name, theme, source_file, file_name, package, source_hash, output_hash, warnings, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		a.ID,
		a.RunToken,
		a.Seq,
		a.Name,
		a.Theme.PackageName(),
		a.SourceFile,
		a.FileName,
		a.Package,
		a.SourceHash,
		a.OutputHash,
		warnings,
		a.Content,
	)
	if err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

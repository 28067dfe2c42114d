package audiometa

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocontainer/avmeta/internal/registry"
	"github.com/gocontainer/avmeta/internal/rewrite"
	"github.com/gocontainer/avmeta/internal/types"
)

// Save writes modified metadata back to the original file.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the original path. If any step fails, the original file remains unchanged.
//
// Options can be provided to customize save behavior:
//
//	err := file.Save(
//	    audiometa.WithBackup(".bak"),
//	    audiometa.WithValidation(),
//	)
//
// Returns UnsupportedWriteError if no writer is registered for the format.
func (f *File) Save(opts ...SaveOption) error {
	return f.SaveAs(f.Path, opts...)
}

// SaveAs writes the file to a new location.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the output path. If any step fails, any partially written data is cleaned up.
//
// Formats registered as a registry.ContainerOps go through
// applyChanges, which lets rewrite.Plan decide between splicing the
// existing tag/index region and a full rewrite. No format in this
// module registers a ContainerOps, so every format writes through the
// flat registry.FormatWriter path, which always performs a full rewrite.
//
// Options can be provided to customize save behavior:
//
//	err := file.SaveAs("/new/path/song.m4a",
//	    audiometa.WithBackup(".bak"),
//	    audiometa.WithValidation(),
//	)
//
// Returns UnsupportedWriteError if no writer is registered for the format.
func (f *File) SaveAs(outputPath string, opts ...SaveOption) error { //nolint:gocyclo // Atomic file operations require sequential steps
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.saveFilePath != "" {
		outputPath = options.saveFilePath
	}

	if options.writingApplication != "" {
		f.Tags.Encoder = options.writingApplication
	}

	if f.Reader_ == nil {
		return fmt.Errorf("file not open: reader is nil")
	}

	outputDir := filepath.Dir(outputPath)
	tempFile, err := os.CreateTemp(outputDir, ".audiometa-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if err := f.writeTo(tempFile, options); err != nil {
		return err
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	var origModTime os.FileInfo
	if options.preserveModTime {
		if info, err := os.Stat(f.Path); err == nil {
			origModTime = info
		}
	}

	if options.backupSuffix != "" {
		if _, err := os.Stat(outputPath); err == nil {
			backupDir := options.backupDirectory
			if backupDir == "" {
				backupDir = filepath.Dir(outputPath)
			}
			backupPath := filepath.Join(backupDir, filepath.Base(outputPath)+options.backupSuffix)
			if err := os.Rename(outputPath, backupPath); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}
	success = true

	if options.preserveModTime && origModTime != nil {
		_ = os.Chtimes(outputPath, origModTime.ModTime(), origModTime.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	if options.validate {
		if err := f.validateWrittenFile(outputPath); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	return nil
}

// writeTo dispatches to whichever writing path the format supports,
// preferring registry.ContainerOps (which can splice in place) over the
// flat registry.FormatWriter fallback (which always rewrites fully).
func (f *File) writeTo(w *os.File, options *saveOptions) error {
	if ops := registry.GetContainer(f.Format); ops != nil {
		return f.applyChanges(w, ops, options)
	}

	writer := registry.GetWriter(f.Format)
	if writer == nil {
		return &types.UnsupportedWriteError{
			Format: f.Format,
			Reason: "no writer registered",
		}
	}
	if err := writer.Write(w, &f.File, f.Reader_, f.Size); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// applyChanges builds the rewrite.Policy recorded on this File (padding
// budget from WithPaddingBudget, position requests from
// WithTagPosition/WithIndexPosition, ForceRewrite from
// WithForceRewrite) and hands it to the container's MakeFile, which
// consults rewrite.Plan to decide between splicing the existing
// tag/index region and a full rewrite.
func (f *File) applyChanges(w *os.File, ops registry.ContainerOps, options *saveOptions) error {
	policy := rewrite.Policy{
		MinPadding:        f.MinPadding,
		MaxPadding:        f.MaxPadding,
		PreferredPadding:  f.PreferredPadding,
		ForceRewrite:      options.forceRewrite || f.ForceRewrite,
		Position:          f.TagPosition,
		ForcePosition:     f.ForceTagPosition,
		PositionSupported: true,
	}

	if err := ops.MakeFile(w, &f.File, f.Reader_, f.Size, policy); err != nil {
		return fmt.Errorf("make file: %w", err)
	}
	return nil
}

// validateWrittenFile re-opens the file and compares key metadata fields.
func (f *File) validateWrittenFile(path string) error {
	written, err := Open(path)
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}
	defer written.Close() //nolint:errcheck // Best effort close

	if written.Tags.Title != f.Tags.Title {
		return fmt.Errorf("title mismatch: got %q, want %q", written.Tags.Title, f.Tags.Title)
	}
	if written.Tags.Artist != f.Tags.Artist {
		return fmt.Errorf("artist mismatch: got %q, want %q", written.Tags.Artist, f.Tags.Artist)
	}
	if written.Tags.Album != f.Tags.Album {
		return fmt.Errorf("album mismatch: got %q, want %q", written.Tags.Album, f.Tags.Album)
	}

	return nil
}

// FormatWriter is an alias to registry.FormatWriter for backwards compatibility.
// Re-exporting from internal/registry to maintain public API.
type FormatWriter = registry.FormatWriter

// RegisterWriter registers a writer for a format.
// This is called by format packages during initialization (init functions).
//
// This function is public to allow internal format packages to register themselves,
// but it's not intended for external use. Do not call this function.
func RegisterWriter(format types.Format, writer FormatWriter) {
	registry.RegisterWriter(format, writer)
}

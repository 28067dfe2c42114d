package audiometa

// SaveOption configures behavior when saving audio files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	err := file.Save(
//	    audiometa.WithBackup(".bak"),
//	    audiometa.WithValidation(),
//	)
type SaveOption func(*saveOptions)

// saveOptions holds configuration for saving files.
type saveOptions struct {
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-read after write to verify
	preserveModTime bool   // Keep original modification time

	// backupDirectory, when set, places the backup made by WithBackup
	// in this directory instead of beside the output file.
	backupDirectory string

	// saveFilePath overrides the destination SaveAs would otherwise
	// use, letting Save() redirect to a different path without the
	// caller having to call SaveAs directly.
	saveFilePath string

	// writingApplication, when set, is copied into Tags.Encoder by
	// SaveAs before the write, replacing any value already there.
	writingApplication string

	// forceRewrite skips the splice-in-place fast path and always
	// performs a full rewrite, even when the size delta would have fit
	// the existing padding budget.
	forceRewrite bool
}

// defaultSaveOptions returns the default configuration for saving.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{
		backupSuffix:    "",
		validate:        false,
		preserveModTime: false,
	}
}

// WithBackup creates a backup of the original file before saving.
//
// The backup file will have the specified suffix appended to the original
// filename. For example, WithBackup(".bak") will create "song.mp3.bak"
// before modifying "song.mp3".
//
// If the backup file already exists, it will be overwritten.
//
// Example:
//
//	err := file.Save(audiometa.WithBackup(".bak"))
//	// Original file preserved as song.mp3.bak
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-reads the file after writing to verify integrity.
//
// After saving, the file is re-opened and parsed to ensure the written
// data can be read back correctly. This adds overhead but provides
// confidence that the save operation succeeded.
//
// Use this for critical operations where data integrity is paramount.
//
// Example:
//
//	err := file.Save(audiometa.WithValidation())
//	// File is re-read after save to verify
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithPreserveModTime keeps the original file modification time.
//
// By default, saving updates the file's modification time to the current
// time. This option preserves the original modification time.
//
// Use this when you want to maintain the original file timestamps,
// such as when updating metadata without changing the "modified" date.
//
// Example:
//
//	err := file.Save(audiometa.WithPreserveModTime())
//	// File modification time unchanged
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}

// WithBackupDirectory places the backup made by WithBackup in dir
// instead of alongside the output file. Has no effect unless WithBackup
// is also given.
//
// Example:
//
//	err := file.Save(audiometa.WithBackup(".bak"), audiometa.WithBackupDirectory("/var/backups"))
func WithBackupDirectory(dir string) SaveOption {
	return func(o *saveOptions) {
		o.backupDirectory = dir
	}
}

// WithSaveFilePath redirects Save() to write to path instead of the
// File's original path, without requiring a call to SaveAs.
func WithSaveFilePath(path string) SaveOption {
	return func(o *saveOptions) {
		o.saveFilePath = path
	}
}

// WithWritingApplication makes SaveAs set Tags.Encoder to application
// before writing, replacing the File's existing Encoder value.
func WithWritingApplication(application string) SaveOption {
	return func(o *saveOptions) {
		o.writingApplication = application
	}
}

// WithForceRewrite skips the splice-in-place fast path and always
// performs a full rewrite of the tag/index region, even when the size
// delta would have fit inside the existing padding budget.
func WithForceRewrite() SaveOption {
	return func(o *saveOptions) {
		o.forceRewrite = true
	}
}

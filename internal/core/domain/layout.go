package domain

import "path/filepath"

const (
	// ScoutDirName is the name of the internal workspace directory.
	ScoutDirName = ".scout"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// CheckpointDirName is the name of the checkpoint directory.
	CheckpointDirName = "checkpoints"

	// ConfigFileName is the base name of the settings file (without extension).
	ConfigFileName = "scout"

	// IndexFileName is the name of the cache index file.
	IndexFileName = "cache_index.json"

	// BackupSuffix is appended to the index file name for its backup copy.
	BackupSuffix = ".backup"

	// DigestSuffix is appended to checkpoint file names for their digest sibling.
	DigestSuffix = ".sha256"

	// TempPrefix is the prefix of temp files left by interrupted writes.
	TempPrefix = ".tmp_"

	// TempSuffix is the suffix of temp files used by durable writes.
	TempSuffix = ".tmp"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultCachePath returns the default cache directory.
// It joins .scout and cache.
func DefaultCachePath() string {
	return filepath.Join(ScoutDirName, CacheDirName)
}

// DefaultCheckpointPath returns the default checkpoint root.
// It joins .scout and checkpoints.
func DefaultCheckpointPath() string {
	return filepath.Join(ScoutDirName, CheckpointDirName)
}

// IndexBackupName returns the file name of the index backup.
func IndexBackupName() string {
	return IndexFileName + BackupSuffix
}

package model

// FilePath wraps the string for defining the paths to files and directories.
type FilePath string

// StateDir is the directory holding the per-environment image state files.
type StateDir FilePath

// AuditLogPath is the path of the append-only audit log file.
type AuditLogPath FilePath

// RepoDir is the local checkout used to resolve commits and as the build context.
type RepoDir FilePath

// PgSchema is the postgres schema holding the attempt records.
type PgSchema string

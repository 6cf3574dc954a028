package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrTaskNotFound is returned when no task with the requested ID exists.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskAlreadyExists is returned when a task ID collides with a stored one.
	ErrTaskAlreadyExists = errors.New("task already exists")

	// ErrFileNotFound is returned when a downloaded file is not present in
	// the download directory.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFileName is returned for names that would escape the
	// download directory.
	ErrInvalidFileName = errors.New("invalid file name")

	// ErrDirNotWritable is returned by EnsureDir when files cannot be
	// created in the download directory.
	ErrDirNotWritable = errors.New("download directory is not writable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan task row")

	// ErrUnsupportedDialect is returned when a DB is built for an unknown
	// SQL dialect.
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")
)

package commands

// GenerateMigrationNotes exports generateMigrationNotes for testing.
var GenerateMigrationNotes = generateMigrationNotes //nolint:gochecknoglobals // test export

// SortVersionsDescending exports sortVersionsDescending for testing.
var SortVersionsDescending = sortVersionsDescending //nolint:gochecknoglobals // test export

package sqlite

// Schema DDL. Tables persist across opens; the database is the source of
// truth for this backend.
const (
	createProjects = `CREATE TABLE IF NOT EXISTS projects (
    name TEXT PRIMARY KEY,
    created_at TEXT NOT NULL
);`

	createRecords = `CREATE TABLE IF NOT EXISTS records (
    project TEXT NOT NULL,
    record_id TEXT NOT NULL,
    doc TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (project, record_id),
    FOREIGN KEY (project) REFERENCES projects(name)
);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	"PRAGMA foreign_keys = ON",
	createProjects,
	createRecords,
}

package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS launches (
	id           TEXT PRIMARY KEY,
	app          TEXT NOT NULL,
	method       TEXT NOT NULL CHECK(method IN ('mailto', 'eml', 'imap')),
	subject      TEXT NOT NULL DEFAULT '',
	recipients   TEXT NOT NULL DEFAULT '',
	content_type TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_launches_app ON launches(app);
CREATE INDEX IF NOT EXISTS idx_launches_created_at ON launches(created_at);

CREATE TABLE IF NOT EXISTS drafts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	properties TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

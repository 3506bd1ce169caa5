package db

var schemas = map[string][]string{
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS findings (
    id     INTEGER PRIMARY KEY AUTOINCREMENT,
    type   TEXT NOT NULL,
    value  TEXT NOT NULL,
    source TEXT NOT NULL,
    lat    REAL,
    lon    REAL
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_findings_identity ON findings (type, value, source);`,
		`CREATE TABLE IF NOT EXISTS briefs (
    id         TEXT PRIMARY KEY,
    summary    TEXT NOT NULL,
    highlights TEXT NOT NULL,
    model      TEXT NOT NULL,
    findings   INTEGER NOT NULL,
    created_at DATETIME NOT NULL
);`,
	},
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS findings (
    id     BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    type   VARCHAR(32)  NOT NULL,
    value  VARCHAR(255) NOT NULL,
    source VARCHAR(64)  NOT NULL,
    lat    DOUBLE NULL,
    lon    DOUBLE NULL,
    UNIQUE KEY uq_findings_identity (type, value, source)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
		`CREATE TABLE IF NOT EXISTS briefs (
    id         CHAR(36) NOT NULL PRIMARY KEY,
    summary    TEXT NOT NULL,
    highlights JSON NOT NULL,
    model      VARCHAR(128) NOT NULL,
    findings   INT NOT NULL,
    created_at DATETIME(6) NOT NULL,
    KEY idx_briefs_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
	},
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS findings (
    id     BIGSERIAL PRIMARY KEY,
    type   TEXT NOT NULL,
    value  TEXT NOT NULL,
    source TEXT NOT NULL,
    lat    DOUBLE PRECISION,
    lon    DOUBLE PRECISION
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_findings_identity ON findings (type, value, source);`,
		`CREATE TABLE IF NOT EXISTS briefs (
    id         TEXT PRIMARY KEY,
    summary    TEXT NOT NULL,
    highlights TEXT NOT NULL,
    model      TEXT NOT NULL,
    findings   INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);`,
	},
}

package storage

const schema = `
CREATE TABLE IF NOT EXISTS rejections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_url TEXT NOT NULL UNIQUE,
    reason TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS selections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    batch_id TEXT NOT NULL,
    saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    snapshot_path TEXT NOT NULL,
    story_count INTEGER NOT NULL,
    unused_count INTEGER NOT NULL,
    change_count INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_selections_batch ON selections(batch_id);
`

package sqlite

// email is the primary key: uniqueness-by-email is enforced by the schema,
// not by convention in calling code.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    email        TEXT PRIMARY KEY,
    apple_id     TEXT NOT NULL DEFAULT '',
    store_id     TEXT NOT NULL DEFAULT '',
    first_name   TEXT NOT NULL DEFAULT '',
    last_name    TEXT NOT NULL DEFAULT '',
    ds_id        TEXT NOT NULL DEFAULT '',
    device_id    TEXT NOT NULL DEFAULT '',
    pod          TEXT NOT NULL DEFAULT '',
    created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at   DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

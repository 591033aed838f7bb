package postgres

// schemaDDL creates the ThoughtFolio schema. Statements are idempotent so a
// restart against an existing database is a no-op; compose-managed
// deployments may run their own migrations instead.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
    user_id        TEXT PRIMARY KEY,
    email          TEXT NOT NULL,
    display_name   TEXT,
    time_zone      TEXT NOT NULL DEFAULT 'UTC',
    status         TEXT NOT NULL DEFAULT 'ACTIVE',
    creation_time  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS contexts (
    user_id        TEXT NOT NULL,
    context_id     TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    description    TEXT,
    creation_time  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contexts_user ON contexts (user_id);

CREATE TABLE IF NOT EXISTS sources (
    user_id        TEXT NOT NULL,
    source_id      TEXT PRIMARY KEY,
    kind           TEXT NOT NULL,
    title          TEXT NOT NULL,
    author         TEXT,
    url            TEXT,
    creation_time  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sources_user ON sources (user_id);

CREATE TABLE IF NOT EXISTS thoughts (
    user_id           TEXT NOT NULL,
    thought_id        TEXT PRIMARY KEY,
    context_id        TEXT,
    source_id         TEXT,
    content           TEXT NOT NULL,
    application_count INTEGER NOT NULL DEFAULT 0,
    on_active_list    BOOLEAN NOT NULL DEFAULT FALSE,
    last_applied_time TIMESTAMPTZ,
    creation_time     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_thoughts_user ON thoughts (user_id, creation_time);

CREATE TABLE IF NOT EXISTS notes (
    user_id        TEXT NOT NULL,
    note_id        TEXT PRIMARY KEY,
    source_id      TEXT,
    title          TEXT NOT NULL,
    body           TEXT NOT NULL,
    creation_time  TIMESTAMPTZ NOT NULL,
    update_time    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_user ON notes (user_id, update_time);

CREATE TABLE IF NOT EXISTS moments (
    user_id              TEXT NOT NULL,
    moment_id            TEXT PRIMARY KEY,
    description          TEXT NOT NULL,
    calendar_event_title TEXT,
    calendar_event_start TIMESTAMPTZ,
    user_context         TEXT,
    status               TEXT NOT NULL,
    creation_time        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moments_user ON moments (user_id, creation_time);

CREATE TABLE IF NOT EXISTS moment_thoughts (
    user_id          TEXT NOT NULL,
    moment_id        TEXT NOT NULL,
    thought_id       TEXT NOT NULL,
    content          TEXT NOT NULL,
    relevance_score  DOUBLE PRECISION NOT NULL,
    relevance_reason TEXT NOT NULL,
    matched_terms    TEXT NOT NULL DEFAULT 'null',
    match_source     TEXT NOT NULL,
    was_reviewed     BOOLEAN NOT NULL DEFAULT FALSE,
    was_helpful      BOOLEAN,
    rank_position    INTEGER NOT NULL,
    PRIMARY KEY (moment_id, thought_id)
);

CREATE TABLE IF NOT EXISTS learning_weights (
    user_id    TEXT NOT NULL,
    thought_id TEXT NOT NULL,
    keyword    TEXT NOT NULL,
    weight     DOUBLE PRECISION NOT NULL DEFAULT 0,
    PRIMARY KEY (user_id, thought_id, keyword)
);
`

package data

const SQLCreate = `
PRAGMA foreign_keys = ON;
PRAGMA encoding = 'UTF-8';

CREATE TABLE IF NOT EXISTS antenna
(
    antenna_id    INTEGER PRIMARY KEY NOT NULL,
    uuid          TEXT                NOT NULL UNIQUE,
    created_at    TIMESTAMP           NOT NULL DEFAULT (datetime('now')),
    name          TEXT                NOT NULL,
    make          TEXT                NOT NULL,
    frequency     REAL,
    h_width       REAL,
    v_width       REAL,
    front_to_back REAL,
    gain          REAL                NOT NULL,
    tilt          REAL                NOT NULL DEFAULT 0,
    polarization  TEXT                NOT NULL,
    comment       TEXT                NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS pattern
(
    antenna_id INTEGER NOT NULL,
    plane      TEXT    NOT NULL CHECK ( plane IN ('horizontal', 'vertical') ),
    angle      INTEGER NOT NULL CHECK ( angle BETWEEN 0 AND 360 ),
    loss       REAL,
    PRIMARY KEY (antenna_id, plane, angle),
    FOREIGN KEY (antenna_id) REFERENCES antenna (antenna_id) ON DELETE CASCADE
);

CREATE VIEW IF NOT EXISTS last_antenna AS
SELECT *
FROM antenna
ORDER BY antenna_id DESC
LIMIT 1;
`

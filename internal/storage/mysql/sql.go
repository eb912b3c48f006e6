package mysql

const upsertPropertySQL = `
INSERT INTO properties
  (id, slug, name, type, city, postal_code, max_guests, profile_photo, doc)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  slug          = VALUES(slug),
  name          = VALUES(name),
  type          = VALUES(type),
  city          = VALUES(city),
  postal_code   = VALUES(postal_code),
  max_guests    = VALUES(max_guests),
  profile_photo = VALUES(profile_photo),
  doc           = VALUES(doc),
  updated_at    = CURRENT_TIMESTAMP
`

const insertActivitySQL = `
INSERT INTO activity_log (property_id, action, actor, detail)
VALUES (?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// The canonical document is the source of truth; the flat columns exist for
// listing/filtering without unpacking JSON.
const getPropertySQL = `
SELECT id, doc
FROM properties
WHERE id = ?
`

const getPropertyBySlugSQL = `
SELECT id, doc
FROM properties
WHERE slug = ?
`

const listPropertiesPrefix = `
SELECT id, slug, name, type, city, postal_code, max_guests, profile_photo
FROM properties
`

package postgres

// Character record queries
const (
	queryLoadCharacter = `SELECT record FROM characters WHERE name = $1`

	querySaveCharacter = `
		INSERT INTO characters (name, record, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET record = EXCLUDED.record, updated_at = EXCLUDED.updated_at
	`

	queryDeleteCharacter = `DELETE FROM characters WHERE name = $1`

	queryListCharacters = `SELECT name FROM characters ORDER BY name`
)

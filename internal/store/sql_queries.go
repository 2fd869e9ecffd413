// SPDX-License-Identifier: Apache-2.0

package store

const (
	getKV = `
		SELECT value
		FROM kv
		WHERE key = $1;`

	setKV = `
		INSERT INTO kv (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key)
		DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP;`

	removeKV = `
		DELETE FROM kv
		WHERE key = $1;`
)

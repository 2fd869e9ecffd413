package docstore

const (
	createDocumentsSchema = `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT        NOT NULL,
			key        TEXT        NOT NULL,
			doc        JSONB       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (collection, key)
		);

		CREATE OR REPLACE FUNCTION documents_notify_change() RETURNS trigger AS $$
		DECLARE
			payload JSON;
		BEGIN
			IF TG_OP = 'DELETE' THEN
				payload := json_build_object('collection', OLD.collection, 'key', OLD.key, 'kind', 'removed');
			ELSIF TG_OP = 'INSERT' THEN
				payload := json_build_object('collection', NEW.collection, 'key', NEW.key, 'kind', 'added');
			ELSE
				payload := json_build_object('collection', NEW.collection, 'key', NEW.key, 'kind', 'modified');
			END IF;
			PERFORM pg_notify('roadwatch_changes', payload::text);
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql;

		DROP TRIGGER IF EXISTS documents_change ON documents;
		CREATE TRIGGER documents_change
			AFTER INSERT OR UPDATE OR DELETE ON documents
			FOR EACH ROW EXECUTE FUNCTION documents_notify_change();`

	getDocument = `
		SELECT doc
		FROM documents
		WHERE collection = $1 AND key = $2;`

	// FOR UPDATE locks nothing when the row does not exist yet, so
	// transactional reads first take a transaction-scoped advisory lock on
	// the document id. Two transactions racing to create the same document
	// serialize on this lock; the loser then reads the winner's committed row.
	lockDocument = `
		SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2));`

	selectServerTime = `
		SELECT now();`

	getDocumentForUpdate = `
		SELECT doc
		FROM documents
		WHERE collection = $1 AND key = $2
		FOR UPDATE;`

	getAllDocuments = `
		SELECT key, doc
		FROM documents
		WHERE collection = $1;`

	mergeSetDocument = `
		INSERT INTO documents (collection, key, doc, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (collection, key)
		DO UPDATE SET doc = documents.doc || excluded.doc, updated_at = now();`
)

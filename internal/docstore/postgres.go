package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/roadwatch/roadwatch/internal/logger"
)

// notifyChannel is the LISTEN/NOTIFY channel the documents trigger publishes
// to. One channel for every collection; payloads carry the collection name.
const notifyChannel = "roadwatch_changes"

// txMaxAttempts bounds the retry loop for transactions that lose a
// serialization race.
const txMaxAttempts = 3

// PostgresStore implements [Store] on top of a PostgreSQL jsonb documents
// table for self-hosted deployments. Live changes are delivered through
// LISTEN/NOTIFY fired by a row trigger.
type PostgresStore struct {
	db     *sql.DB
	dsn    string
	logger *logger.Logger
}

// NewPostgresStore connects to the store, verifies the connection with a
// ping, and ensures the documents schema exists.
func NewPostgresStore(ctx context.Context, dsn string, log *logger.Logger) (*PostgresStore, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open document store connection: %w", err)
	}
	conn.SetMaxOpenConns(4)

	if err = conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping document store: %w", err)
	}

	s := &PostgresStore{db: conn, dsn: dsn, logger: log}
	if err = s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("func", "NewPostgresStore").Msg("connected to document store")
	return s, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createDocumentsSchema); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	return nil
}

// Get implements [Store].
func (s *PostgresStore) Get(ctx context.Context, collection, key string) (Document, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, getDocument, collection, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", collection, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s/%s: %w", collection, key, err)
	}
	return decodeJSONDocument(raw)
}

// GetAll implements [Store].
func (s *PostgresStore) GetAll(ctx context.Context, collection string) (map[string]Document, error) {
	rows, err := s.db.QueryContext(ctx, getAllDocuments, collection)
	if err != nil {
		return nil, fmt.Errorf("list documents in %s: %w", collection, err)
	}
	defer rows.Close()

	out := make(map[string]Document)
	for rows.Next() {
		var key string
		var raw []byte
		if err = rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		doc, decodeErr := decodeJSONDocument(raw)
		if decodeErr != nil {
			return nil, decodeErr
		}
		out[key] = doc
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents in %s: %w", collection, err)
	}
	return out, nil
}

// MergeSet implements [Store]. The jsonb || operator preserves fields not
// present in doc, matching the merge-write contract.
func (s *PostgresStore) MergeSet(ctx context.Context, collection, key string, doc Document) error {
	doc, err := resolveWithStoreClock(ctx, s.db, doc)
	if err != nil {
		return err
	}
	payload, err := encodeJSONDocument(doc)
	if err != nil {
		return err
	}
	if _, err = s.db.ExecContext(ctx, mergeSetDocument, collection, key, payload); err != nil {
		return fmt.Errorf("merge-set document %s/%s: %w", collection, key, err)
	}
	return nil
}

// RunTransaction implements [Store]. Reads inside the transaction take an
// advisory lock on the document id and then a row lock (SELECT ... FOR
// UPDATE), so two concurrent transactions on the same document are serialized
// by the database whether or not the document exists yet. Transactions that
// still fail with a retryable error are retried up to txMaxAttempts times.
func (s *PostgresStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	var lastErr error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		lastErr = s.runTransactionOnce(ctx, fn)
		if lastErr == nil {
			return nil
		}
		if ClassifyError(lastErr) != Retryable {
			return lastErr
		}
		s.logger.Warn().Err(lastErr).Int("attempt", attempt).Msg("document transaction lost a race, retrying")
	}
	return lastErr
}

func (s *PostgresStore) runTransactionOnce(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin document transaction: %w", err)
	}

	tx := &postgresTx{tx: sqlTx}
	if err = fn(ctx, tx); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit document transaction: %w", err)
	}
	return nil
}

// Subscribe implements [Store]. A dedicated connection LISTENs on the
// documents channel; each notification is resolved to a full change and
// delivered as a single-element batch. Stream failures go to onError and
// terminate the stream; resubscription is the caller's concern.
func (s *PostgresStore) Subscribe(ctx context.Context, collection string, onChanges func([]Change), onError func(error)) (Unsubscribe, error) {
	subCtx, cancel := context.WithCancel(ctx)

	conn, err := pgx.Connect(subCtx, s.dsn)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("open subscription connection: %w", err)
	}
	if _, err = conn.Exec(subCtx, "LISTEN "+notifyChannel); err != nil {
		cancel()
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("listen on %s: %w", notifyChannel, err)
	}

	go s.pump(subCtx, conn, collection, onChanges, onError)

	return func() {
		cancel()
	}, nil
}

type changePayload struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
	Kind       string `json:"kind"`
}

func (s *PostgresStore) pump(ctx context.Context, conn *pgx.Conn, collection string, onChanges func([]Change), onError func(error)) {
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return // unsubscribed
			}
			onError(fmt.Errorf("document change stream: %w", err))
			return
		}

		var payload changePayload
		if err = json.Unmarshal([]byte(notification.Payload), &payload); err != nil {
			s.logger.Warn().Err(err).Str("payload", notification.Payload).Msg("skipping malformed change notification")
			continue
		}
		if payload.Collection != collection {
			continue
		}

		change, ok := s.resolveChange(ctx, collection, payload)
		if !ok {
			continue
		}

		onChanges([]Change{change})
	}
}

// resolveChange turns a notification into a deliverable [Change]. Added and
// modified notifications are resolved to the current document; a document
// deleted between notify and read becomes a removal, while a transient read
// failure drops the notification so the periodic reconcile heals it instead
// of a phantom removal evicting a live document from the local snapshot.
func (s *PostgresStore) resolveChange(ctx context.Context, collection string, payload changePayload) (Change, bool) {
	change := Change{Kind: ChangeKind(payload.Kind), Key: payload.Key}
	if change.Kind == ChangeRemoved {
		return change, true
	}

	doc, err := s.Get(ctx, collection, payload.Key)
	switch {
	case errors.Is(err, ErrNotFound):
		return Change{Kind: ChangeRemoved, Key: payload.Key}, true
	case err != nil:
		s.logger.Warn().Err(err).Str("key", payload.Key).Msg("skipping unresolvable change notification")
		return Change{}, false
	}

	change.Doc = doc
	return change, true
}

type postgresTx struct {
	tx *sql.Tx
}

// Get implements [Tx]. An advisory lock on the document id is taken before
// the read: FOR UPDATE alone cannot serialize transactions racing to create
// a document that does not exist yet, because there is no row to lock.
func (t *postgresTx) Get(ctx context.Context, collection, key string) (Document, error) {
	if _, err := t.tx.ExecContext(ctx, lockDocument, collection, key); err != nil {
		return nil, fmt.Errorf("lock document %s/%s: %w", collection, key, err)
	}

	var raw []byte
	err := t.tx.QueryRowContext(ctx, getDocumentForUpdate, collection, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", collection, key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s/%s for update: %w", collection, key, err)
	}
	return decodeJSONDocument(raw)
}

// Set implements [Tx].
func (t *postgresTx) Set(ctx context.Context, collection, key string, doc Document) error {
	doc, err := resolveWithStoreClock(ctx, t.tx, doc)
	if err != nil {
		return err
	}
	payload, err := encodeJSONDocument(doc)
	if err != nil {
		return err
	}
	if _, err = t.tx.ExecContext(ctx, mergeSetDocument, collection, key, payload); err != nil {
		return fmt.Errorf("merge-set document %s/%s in transaction: %w", collection, key, err)
	}
	return nil
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// resolveWithStoreClock replaces [ServerTimestamp] sentinels using the
// database clock, so write times are assigned by the store rather than the
// device. Documents without a sentinel skip the round trip.
func resolveWithStoreClock(ctx context.Context, q queryRower, doc Document) (Document, error) {
	if !containsServerTimestamp(doc) {
		return doc, nil
	}

	var now time.Time
	if err := q.QueryRowContext(ctx, selectServerTime).Scan(&now); err != nil {
		return nil, fmt.Errorf("read store clock: %w", err)
	}
	return ResolveTimestamps(doc, now), nil
}

func containsServerTimestamp(doc Document) bool {
	for _, v := range doc {
		if _, ok := v.(serverTimestamp); ok {
			return true
		}
	}
	return false
}

func decodeJSONDocument(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document payload: %w", err)
	}
	return doc, nil
}

func encodeJSONDocument(doc Document) ([]byte, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document payload: %w", err)
	}
	return payload, nil
}

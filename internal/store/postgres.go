// Package store keeps a local replica of the published catalog plus the
// contact-event telemetry rows. The replica is an availability layer: it is
// written behind successful backend fetches and read when the backend is
// down, before the seed set takes over.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/williamcrk/carta-confia/catalog"
)

type Store struct{ DB *sql.DB }

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS catalog_listings (
            listing_id          TEXT PRIMARY KEY,
            consortium_type     TEXT NOT NULL,
            credit_value        NUMERIC NOT NULL,
            administrator       TEXT NOT NULL,
            paid_percentage     NUMERIC NOT NULL,
            entry_value         NUMERIC NOT NULL,
            description         TEXT,
            is_partner_approved BOOLEAN NOT NULL DEFAULT FALSE,
            views_count         INTEGER NOT NULL DEFAULT 0,
            created_at          TIMESTAMPTZ NOT NULL,
            seller_name         TEXT,
            seller_avatar       TEXT,
            updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
            last_fetch_at       TIMESTAMPTZ
        );`,
		`CREATE INDEX IF NOT EXISTS idx_catalog_listings_type ON catalog_listings(consortium_type);`,
		`CREATE INDEX IF NOT EXISTS idx_catalog_listings_created ON catalog_listings(created_at DESC);`,
		`CREATE TABLE IF NOT EXISTS contact_events (
            id           UUID PRIMARY KEY,
            user_id      TEXT NOT NULL,
            listing_id   TEXT NOT NULL,
            contact_type TEXT NOT NULL,
            created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_contact_events_listing ON contact_events(listing_id);`,
		`CREATE TABLE IF NOT EXISTS catalog_raw_snapshots (
            id             UUID PRIMARY KEY,
            payload        JSONB NOT NULL,
            payload_sha256 TEXT NOT NULL,
            fetched_at     TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_catalog_snapshots_fetched ON catalog_raw_snapshots(fetched_at DESC);`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceCatalog upserts one fetched snapshot: every listing row plus the
// raw payload for audit. One transaction, so a torn write never leaves the
// replica half-updated.
func (s *Store) ReplaceCatalog(ctx context.Context, raw []byte, listings []catalog.Listing) error {
	if s.DB == nil {
		return errors.New("nil db")
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, l := range listings {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO catalog_listings
                (listing_id, consortium_type, credit_value, administrator, paid_percentage,
                 entry_value, description, is_partner_approved, views_count, created_at,
                 seller_name, seller_avatar, updated_at, last_fetch_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, now(), now())
            ON CONFLICT (listing_id) DO UPDATE SET
                consortium_type=EXCLUDED.consortium_type,
                credit_value=EXCLUDED.credit_value,
                administrator=EXCLUDED.administrator,
                paid_percentage=EXCLUDED.paid_percentage,
                entry_value=EXCLUDED.entry_value,
                description=EXCLUDED.description,
                is_partner_approved=EXCLUDED.is_partner_approved,
                views_count=EXCLUDED.views_count,
                created_at=EXCLUDED.created_at,
                seller_name=EXCLUDED.seller_name,
                seller_avatar=EXCLUDED.seller_avatar,
                updated_at=now(), last_fetch_at=now()`,
			l.ID, string(l.ConsortiumType), l.CreditValue, l.Administrator, l.PaidPercentage,
			l.EntryValue, nullString(l.Description), l.IsVerified, l.ViewsCount, l.CreatedAt,
			nullString(l.SellerName), nullString(l.SellerAvatar),
		)
		if err != nil {
			return err
		}
	}

	if len(raw) > 0 {
		sum := sha256.Sum256(raw)
		_, err = tx.ExecContext(ctx, `
            INSERT INTO catalog_raw_snapshots (id, payload, payload_sha256)
            VALUES ($1,$2,$3)`,
			uuid.New(), string(raw), hex.EncodeToString(sum[:]),
		)
		if err != nil {
			return err
		}
	}

	err = tx.Commit()
	return err
}

// FetchPublished reads the replica back into canonical records.
func (s *Store) FetchPublished(ctx context.Context) ([]catalog.Listing, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT listing_id, consortium_type, credit_value, administrator, paid_percentage,
               entry_value, description, is_partner_approved, views_count, created_at,
               seller_name, seller_avatar
        FROM catalog_listings
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Listing
	for rows.Next() {
		var (
			l                              catalog.Listing
			typ                            string
			desc, sellerName, sellerAvatar sql.NullString
		)
		if err := rows.Scan(&l.ID, &typ, &l.CreditValue, &l.Administrator, &l.PaidPercentage,
			&l.EntryValue, &desc, &l.IsVerified, &l.ViewsCount, &l.CreatedAt,
			&sellerName, &sellerAvatar); err != nil {
			return nil, err
		}
		l.ConsortiumType = catalog.ConsortiumType(typ)
		l.Description = desc.String
		l.SellerName = sellerName.String
		l.SellerAvatar = sellerAvatar.String
		l.CreatedAt = l.CreatedAt.UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}

// InsertContactEvent stores one telemetry row and returns its id.
func (s *Store) InsertContactEvent(ctx context.Context, userID, listingID, contactType string) (string, error) {
	id := uuid.New()
	_, err := s.DB.ExecContext(ctx, `
        INSERT INTO contact_events (id, user_id, listing_id, contact_type)
        VALUES ($1,$2,$3,$4)`,
		id, userID, listingID, contactType)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

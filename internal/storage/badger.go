// Package storage keeps the ledger of published deals.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"dealpost/internal/domain"
)

const dealPrefix = "deal:"

// BadgerRepository implements Repository on BadgerDB.
type BadgerRepository struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerRepository opens (or creates) the ledger at dbPath.
func NewBadgerRepository(dbPath string, logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db at %s: %w", dbPath, err)
	}
	logger.WithField("path", dbPath).Debug("BadgerDB opened")

	return &BadgerRepository{
		db:  db,
		log: logger.WithField("component", "ledger"),
	}, nil
}

// Close closes the database.
func (r *BadgerRepository) Close() error {
	if err := r.db.Close(); err != nil {
		r.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	return nil
}

// dealKey orders entries of one ASIN by creation time.
// Format: deal:{ASIN}:{unix nanos, zero padded}
func dealKey(deal domain.Deal) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d", dealPrefix, strings.ToUpper(deal.ASIN), deal.CreatedAt.UnixNano()))
}

func asinPrefix(asin string) []byte {
	return []byte(dealPrefix + strings.ToUpper(asin) + ":")
}

// SaveDeal stores a ledger entry.
func (r *BadgerRepository) SaveDeal(ctx context.Context, deal domain.Deal) error {
	log := r.log.WithFields(logrus.Fields{"asin": deal.ASIN, "post": deal.PostPath})

	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = time.Now()
	}
	value, err := json.Marshal(deal)
	if err != nil {
		return fmt.Errorf("failed to marshal deal: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(dealKey(deal), value))
	})
	if err != nil {
		return fmt.Errorf("failed to save deal: %w", err)
	}

	log.Debug("Deal recorded")
	return nil
}

// GetDealsByASIN returns the entries for asin, newest first.
func (r *BadgerRepository) GetDealsByASIN(ctx context.Context, asin string) ([]domain.Deal, error) {
	deals, err := r.scan(asinPrefix(asin))
	if err != nil {
		return nil, fmt.Errorf("failed to get deals for %s: %w", asin, err)
	}
	return deals, nil
}

// ListDeals returns every entry, newest first.
func (r *BadgerRepository) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	deals, err := r.scan([]byte(dealPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, nil
}

// DeleteDealsByASIN removes the entries for asin.
func (r *BadgerRepository) DeleteDealsByASIN(ctx context.Context, asin string) (int, error) {
	prefix := asinPrefix(asin)
	var removed int

	err := r.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		removed = len(keys)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete deals for %s: %w", asin, err)
	}

	r.log.WithFields(logrus.Fields{"asin": asin, "removed": removed}).Info("Deals deleted")
	return removed, nil
}

func (r *BadgerRepository) scan(prefix []byte) ([]domain.Deal, error) {
	var deals []domain.Deal

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var deal domain.Deal
				if err := json.Unmarshal(val, &deal); err != nil {
					return fmt.Errorf("failed to unmarshal deal for key %s: %w", string(item.Key()), err)
				}
				deals = append(deals, deal)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(deals, func(i, j int) bool {
		return deals[i].CreatedAt.After(deals[j].CreatedAt)
	})
	return deals, nil
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}

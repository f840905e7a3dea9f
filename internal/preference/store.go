package preference

import (
	"context"
	"encoding/json"
	"time"

	"teahouse-kiosk/internal/logger"

	bolt "github.com/boltdb/bolt"
	"go.uber.org/zap"
)

const bucketName = "preferences"

type Store interface {
	Get(ctx context.Context, deviceID string) (Preferences, error)
	Save(ctx context.Context, deviceID string, p Preferences) error
	Reset(ctx context.Context, deviceID string) error
	Close() error
}

type boltStore struct {
	db *bolt.DB
}

// Open opens (or creates) the preferences file and makes sure the bucket exists.
func Open(path string) (Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &boltStore{db: db}, nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

// Get returns the stored preferences, or the defaults for a device that has
// never saved any.
func (s *boltStore) Get(ctx context.Context, deviceID string) (Preferences, error) {
	if deviceID == "" {
		return Preferences{}, ErrMissingDevice
	}

	p := Defaults()
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(deviceID))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &p)
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to read preferences", zap.Error(err))
		return Defaults(), err
	}
	return p, nil
}

func (s *boltStore) Save(ctx context.Context, deviceID string, p Preferences) error {
	if deviceID == "" {
		return ErrMissingDevice
	}
	if p.CurrentScreen == "" {
		p.CurrentScreen = ScreenMenu
	}
	if !p.CurrentScreen.Valid() {
		return ErrInvalidScreen
	}

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		// Skip the write when nothing changed.
		if existing := b.Get([]byte(deviceID)); existing != nil && string(existing) == string(data) {
			return nil
		}
		return b.Put([]byte(deviceID), data)
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to save preferences", zap.Error(err))
	}
	return err
}

// Reset drops the stored preferences. Deleting a missing key is not an error.
func (s *boltStore) Reset(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return ErrMissingDevice
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(deviceID))
	})
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/emrgen/journal/internal/model"
	redis "github.com/redis/go-redis/v9"
)

const journalTTL = time.Hour

func journalNameKey(name string) string {
	return "journal:name:" + name
}

func journalIDKey(id uint) string {
	return "journal:id:" + strconv.FormatUint(uint64(id), 10)
}

// JournalCache is a read-through cache for journal lookups. A miss is
// (nil, nil), never an error.
type JournalCache interface {
	// GetJournalByName gets a journal from the cache by name.
	GetJournalByName(ctx context.Context, name string) (*model.Journal, error)
	// GetJournalByID gets a journal from the cache by id.
	GetJournalByID(ctx context.Context, id uint) (*model.Journal, error)
	// SetJournal stores a journal under both its name and id keys.
	SetJournal(ctx context.Context, journal *model.Journal) error
	// DeleteJournal drops a journal from the cache.
	DeleteJournal(ctx context.Context, journal *model.Journal) error
}

var _ JournalCache = (*RedisJournalCache)(nil)

type RedisJournalCache struct {
	client *redis.Client
}

func NewRedisJournalCache(addr string) *RedisJournalCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return &RedisJournalCache{client: client}
}

func (r *RedisJournalCache) GetJournalByName(ctx context.Context, name string) (*model.Journal, error) {
	return r.get(ctx, journalNameKey(name))
}

func (r *RedisJournalCache) GetJournalByID(ctx context.Context, id uint) (*model.Journal, error) {
	return r.get(ctx, journalIDKey(id))
}

func (r *RedisJournalCache) get(ctx context.Context, key string) (*model.Journal, error) {
	res := r.client.Get(ctx, key)
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	journal := &model.Journal{}
	if err := json.Unmarshal(buf, journal); err != nil {
		return nil, err
	}

	return journal, nil
}

func (r *RedisJournalCache) SetJournal(ctx context.Context, journal *model.Journal) error {
	marshal, err := json.Marshal(journal)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if err := p.Set(ctx, journalNameKey(journal.Name), marshal, journalTTL).Err(); err != nil {
			return err
		}

		return p.Set(ctx, journalIDKey(journal.ID), marshal, journalTTL).Err()
	})

	return err
}

func (r *RedisJournalCache) DeleteJournal(ctx context.Context, journal *model.Journal) error {
	return r.client.Del(ctx, journalNameKey(journal.Name), journalIDKey(journal.ID)).Err()
}

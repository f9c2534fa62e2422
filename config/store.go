package config

import (
	"context"
	"strconv"
	"time"

	"github.com/romanqed/jobqd/store"
)

// Key names recognized by the core, with the defaults spec.md §3
// mandates when a key is absent.
const (
	KeyMaxRetries         = "max_retries"
	KeyBackoffBase        = "backoff_base"
	KeyWorkerPollInterval = "worker_poll_interval"
	KeyJobTimeout         = "job_timeout"
)

// Defaults returns the seed values New installs for any missing key.
func Defaults() map[string]string {
	return map[string]string{
		KeyMaxRetries:         "3",
		KeyBackoffBase:        "2",
		KeyWorkerPollInterval: "2",
		KeyJobTimeout:         "300",
	}
}

// Store is a thin typed accessor over a store.ConfigStore's namespace.
// It performs no caching: every Get/Set hits the database, which is
// acceptable given the low call rate (at most once per worker poll
// iteration).
type Store struct {
	backing store.ConfigStore
}

// New wraps backing and seeds any of Defaults' keys that are not yet
// present.
func New(ctx context.Context, backing store.ConfigStore) (*Store, error) {
	s := &Store{backing: backing}
	for key, value := range Defaults() {
		_, ok, err := backing.GetConfig(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			if err := backing.SetConfig(ctx, key, value); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// Get returns the stored value for key, or its default if unset and
// recognized, or "" if neither applies.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, ok, err := s.backing.GetConfig(ctx, key)
	if err != nil {
		return "", err
	}
	if ok {
		return value, nil
	}
	return Defaults()[key], nil
}

// Set upserts key/value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.backing.SetConfig(ctx, key, value)
}

// All returns every stored key/value pair.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	return s.backing.AllConfig(ctx)
}

// MaxRetries reads KeyMaxRetries as a uint32.
func (s *Store) MaxRetries(ctx context.Context) (uint32, error) {
	v, err := s.Get(ctx, KeyMaxRetries)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// BackoffBase reads KeyBackoffBase as an int64.
func (s *Store) BackoffBase(ctx context.Context) (int64, error) {
	v, err := s.Get(ctx, KeyBackoffBase)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

// WorkerPollInterval reads KeyWorkerPollInterval as a time.Duration of
// seconds.
func (s *Store) WorkerPollInterval(ctx context.Context) (time.Duration, error) {
	v, err := s.Get(ctx, KeyWorkerPollInterval)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}

// JobTimeout reads KeyJobTimeout as a time.Duration of seconds.
func (s *Store) JobTimeout(ctx context.Context) (time.Duration, error) {
	v, err := s.Get(ctx, KeyJobTimeout)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}

package datastore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/Septimmius/ml-templates/s3_helper"
	"github.com/Septimmius/ml-templates/utils"
	"github.com/UltimateTournament/backoff/v4"
	"github.com/rs/zerolog"
)

var (
	ErrMissingBucket = utils.PermError("missing S3 bucket name")
)

type (
	S3DataStore struct {
		bucket string
		prefix string

		MaxRetries uint64
	}
)

func NewS3DataStore(bucket, prefix string) (*S3DataStore, error) {
	if bucket == "" {
		return nil, ErrMissingBucket
	}
	return &S3DataStore{
		bucket:     bucket,
		prefix:     prefix,
		MaxRetries: 3,
	}, nil
}

// Key is the object key a store path maps to.
func (s *S3DataStore) Key(p string) string {
	return path.Join(s.prefix, p)
}

func (s *S3DataStore) WriteFile(ctx context.Context, p string, r io.Reader) error {
	// buffered so every retry sends the full body
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("error in io.ReadAll: %w", err)
	}
	key := s.Key(p)
	err = s.retry(ctx, func() error {
		_, err := s3_helper.WriteBytesToS3(ctx, s.bucket, key, bytes.NewReader(b), utils.Ptr("text/csv"))
		return err
	})
	if err != nil {
		return fmt.Errorf("error writing %s to s3: %w", key, err)
	}
	return nil
}

func (s *S3DataStore) ReadFile(ctx context.Context, p string) ([]byte, error) {
	var out []byte
	key := s.Key(p)
	err := s.retry(ctx, func() (err error) {
		out, err = s3_helper.ReadBytesFromS3(ctx, s.bucket, key)
		return
	})
	if err != nil {
		return nil, fmt.Errorf("error reading %s from s3: %w", key, err)
	}
	return out, nil
}

func (s *S3DataStore) retry(ctx context.Context, op func() error) error {
	logger := zerolog.Ctx(ctx)
	attempt := 0
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), s.MaxRetries), ctx)
	return backoff.Retry(func() error {
		attempt++
		st := time.Now()
		err := op()
		if err == nil {
			return nil
		}
		if utils.IsPermanent(err) {
			return backoff.Permanent(err)
		}
		logger.Warn().Err(err).Int("attempt", attempt).Str("took", time.Since(st).String()).Msg("s3 operation failed, retrying")
		return err
	}, b)
}

func (s *S3DataStore) Shutdown(_ context.Context) error {
	return nil
}

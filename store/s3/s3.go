package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	cmderrors "github.com/mwantia/cmdargs/pkg/errors"
	"github.com/mwantia/cmdargs/store"
)

// S3Store keeps each document as an object in an existing bucket.
// The revision is the object ETag.
type S3Store struct {
	mu sync.RWMutex

	client     *minio.Client
	bucketName string
}

func NewS3Store(endpoint, bucketName, accessKey, secretKey string, useSsl bool) (*S3Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	return &S3Store{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (*S3Store) Name() string {
	return "s3"
}

func (ss *S3Store) Open(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	exists, err := ss.client.BucketExists(ctx, ss.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket '%s': %w: %w", ss.bucketName, cmderrors.ErrStoreUnavailable, err)
	}
	if !exists {
		return fmt.Errorf("bucket '%s' does not exist: %w", ss.bucketName, cmderrors.ErrStoreUnavailable)
	}
	return nil
}

func (*S3Store) Close(_ context.Context) error {
	return nil
}

func (ss *S3Store) Get(ctx context.Context, key string) (*store.Document, error) {
	key, err := store.CleanKey(key)
	if err != nil {
		return nil, err
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	object, err := ss.client.GetObject(ctx, ss.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ss.translate(key, err)
	}
	defer object.Close()

	info, err := object.Stat()
	if err != nil {
		return nil, ss.translate(key, err)
	}

	content, err := io.ReadAll(object)
	if err != nil {
		return nil, ss.translate(key, err)
	}

	return &store.Document{
		Key:        key,
		Revision:   strings.Trim(info.ETag, `"`),
		Size:       info.Size,
		ModifyTime: info.LastModified.UTC(),
		Content:    content,
	}, nil
}

func (ss *S3Store) Put(ctx context.Context, key string, content []byte) (*store.Document, error) {
	key, err := store.CleanKey(key)
	if err != nil {
		return nil, err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	upload, err := ss.client.PutObject(ctx, ss.bucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: store.ContentType(key),
	})
	if err != nil {
		return nil, err
	}

	modifyTime := upload.LastModified
	if modifyTime.IsZero() {
		modifyTime = time.Now()
	}

	return &store.Document{
		Key:        key,
		Revision:   strings.Trim(upload.ETag, `"`),
		Size:       upload.Size,
		ModifyTime: modifyTime.UTC(),
		Content:    append([]byte(nil), content...),
	}, nil
}

func (ss *S3Store) Delete(ctx context.Context, key string) error {
	key, err := store.CleanKey(key)
	if err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if _, err := ss.client.StatObject(ctx, ss.bucketName, key, minio.StatObjectOptions{}); err != nil {
		return ss.translate(key, err)
	}

	return ss.client.RemoveObject(ctx, ss.bucketName, key, minio.RemoveObjectOptions{})
}

func (ss *S3Store) List(ctx context.Context) ([]string, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	keys := []string{}
	for object := range ss.client.ListObjects(ctx, ss.bucketName, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, object.Err
		}
		if key, err := store.CleanKey(object.Key); err == nil {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)
	return keys, nil
}

func (*S3Store) translate(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return store.NotFound(key)
	}
	return err
}

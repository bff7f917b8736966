package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bucketName = "property_photos"

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrDisabled      = errors.New("photo storage is not configured")
)

type PhotoStore interface {
	Upload(ctx context.Context, name, contentType string, src io.Reader) (string, error)
	// Open returns the blob as a stream together with its length. The caller
	// closes the stream.
	Open(ctx context.Context, fileID string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, fileID string) error
}

// GridFSStore keeps photo blobs in a MongoDB GridFS bucket.
type GridFSStore struct {
	DB *mongo.Database
}

func NewGridFSStore(client *mongo.Client, dbName string) *GridFSStore {
	return &GridFSStore{DB: client.Database(dbName)}
}

// New returns a GridFS store, or Disabled when client is nil.
func New(client *mongo.Client, dbName string) PhotoStore {
	if client == nil {
		return Disabled{}
	}
	return NewGridFSStore(client, dbName)
}

// bucket returns the photo bucket with ctx's deadline, if any, applied to
// its reads and writes.
func (s *GridFSStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bucket, err := gridfs.NewBucket(s.DB, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
	}
	return bucket, nil
}

func (s *GridFSStore) Upload(ctx context.Context, name, contentType string, src io.Reader) (string, error) {
	bucket, err := s.bucket(ctx)
	if err != nil {
		return "", fmt.Errorf("GridFSStore.Upload: %w", err)
	}
	opts := options.GridFSUpload().SetMetadata(bson.D{
		{Key: "originalName", Value: name},
		{Key: "contentType", Value: contentType},
	})
	fileID, err := bucket.UploadFromStream(uuid.NewString(), src, opts)
	if err != nil {
		return "", fmt.Errorf("GridFSStore.Upload: %w", err)
	}
	return fileID.Hex(), nil
}

func (s *GridFSStore) Open(ctx context.Context, fileID string) (io.ReadCloser, int64, error) {
	objID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, 0, fmt.Errorf("GridFSStore.Open: %w", ErrPhotoNotFound)
	}
	bucket, err := s.bucket(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("GridFSStore.Open: %w", err)
	}
	stream, err := bucket.OpenDownloadStream(objID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, 0, fmt.Errorf("GridFSStore.Open: %w", ErrPhotoNotFound)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("GridFSStore.Open: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := stream.SetReadDeadline(deadline); err != nil {
			stream.Close()
			return nil, 0, fmt.Errorf("GridFSStore.Open: %w", err)
		}
	}
	return stream, stream.GetFile().Length, nil
}

func (s *GridFSStore) Delete(ctx context.Context, fileID string) error {
	objID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return fmt.Errorf("GridFSStore.Delete: %w", ErrPhotoNotFound)
	}
	bucket, err := s.bucket(ctx)
	if err != nil {
		return fmt.Errorf("GridFSStore.Delete: %w", err)
	}
	if err := bucket.Delete(objID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("GridFSStore.Delete: %w", ErrPhotoNotFound)
		}
		return fmt.Errorf("GridFSStore.Delete: %w", err)
	}
	return nil
}

// Disabled rejects every operation with ErrDisabled.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Open(context.Context, string) (io.ReadCloser, int64, error) {
	return nil, 0, ErrDisabled
}

func (Disabled) Delete(context.Context, string) error { return ErrDisabled }

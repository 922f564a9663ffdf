package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/prospect/pkg/buildinfo"
)

// DefaultBucket is the GridFS bucket exports are stored in.
const DefaultBucket = "prospect_exports"

// GridFSSaver stores exports as GridFS files. The MIME type is kept in the
// file's metadata as contentType. Saving a filename again adds a new revision.
type GridFSSaver struct {
	client *mongo.Client // set when the saver owns the connection
	db     *mongo.Database
	bucket string
}

// NewGridFSSaver stores exports in bucket of db. An empty bucket uses
// [DefaultBucket].
func NewGridFSSaver(db *mongo.Database, bucket string) *GridFSSaver {
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &GridFSSaver{db: db, bucket: bucket}
}

// DialGridFS connects to the MongoDB deployment at uri and returns a saver
// for database. Close releases the connection.
func DialGridFS(ctx context.Context, uri, database, bucket string) (*GridFSSaver, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetAppName(buildinfo.UserAgent()))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	s := NewGridFSSaver(client.Database(database), bucket)
	s.client = client
	return s, nil
}

// Save uploads data as filename. The context deadline, if any, bounds the
// upload.
func (s *GridFSSaver) Save(ctx context.Context, data []byte, filename, mimeType string) error {
	bucket, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(s.bucket))
	if err != nil {
		return fmt.Errorf("open bucket %s: %w", s.bucket, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}

	meta := bson.D{
		{Key: "contentType", Value: mimeType},
		{Key: "exportedAt", Value: time.Now().UTC()},
	}
	_, err = bucket.UploadFromStream(filename, bytes.NewReader(data), options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return fmt.Errorf("upload %s: %w", filename, err)
	}
	return nil
}

// Close disconnects the client if the saver created it.
func (s *GridFSSaver) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

var _ Saver = (*GridFSSaver)(nil)

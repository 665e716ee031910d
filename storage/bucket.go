package storage

import (
	"os"
	"strings"

	"blog/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Directories pre-created on disk buckets
const (
	StorageLocationPosts  = "/posts"
	StorageLocationThumbs = "/posts/thumb"
)

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	Name        string `gorm:"type:varchar(200)"` // S3 bucket name, or a label for disk buckets
	StorageType StorageType
	Path        string // Path on a drive or a prefix in a S3 bucket
	Region      string // S3 region
	AuthDetails string // In case of S3 bucket - "key:secret"
	Endpoint    string // Optional custom S3 endpoint
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		if err = os.MkdirAll(b.Path+StorageLocationPosts, 0777); err != nil {
			return err
		}
		if err = os.MkdirAll(b.Path+StorageLocationThumbs, 0777); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

// CreateSVC returns an S3 client for the bucket's credentials
func (b *Bucket) CreateSVC() *s3.S3 {
	creds := strings.SplitN(b.AuthDetails, ":", 2)
	if len(creds) != 2 {
		panic("S3 bucket auth details must be in key:secret format")
	}
	cfg := aws.NewConfig().
		WithRegion(b.Region).
		WithCredentials(credentials.NewStaticCredentials(creds[0], creds[1], ""))
	if b.Endpoint != "" {
		cfg = cfg.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	return s3.New(session.Must(session.NewSession()), cfg)
}

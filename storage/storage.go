package storage

import (
	"io"
	"log"
	"net/http"
	"time"

	"blog/config"
	"blog/db"
)

type StorageAPI interface {
	Save(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	GetFreeSpace() uint64
	GetBucket() *Bucket
}

var cachedStorage []StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	cachedStorage = []StorageAPI{}
	var buckets []Bucket
	err := db.Instance.Find(&buckets).Error
	if err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.DEFAULT_BUCKET_DIR != "" {
		bucket := Bucket{
			CreatedAt:   time.Now().Unix(),
			Name:        "default",
			StorageType: StorageTypeFile,
			Path:        config.DEFAULT_BUCKET_DIR,
		}
		if err = bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Storage Buckets found: %d\n", len(buckets))
	for _, bucket := range buckets {
		if bucket.StorageType == StorageTypeFile {
			cachedStorage = append(cachedStorage, NewDiskStorage(&bucket))
		} else if bucket.StorageType == StorageTypeS3 {
			cachedStorage = append(cachedStorage, NewS3Storage(&bucket))
		} else {
			log.Printf("Storage type unavailable for Bucket %d", bucket.ID)
		}
	}
}

func GetDefaultStorage() StorageAPI {
	if len(cachedStorage) == 0 {
		return nil
	}
	for _, s := range cachedStorage {
		if s.GetBucket().StorageType == StorageTypeFile {
			return s
		}
	}
	return cachedStorage[0]
}

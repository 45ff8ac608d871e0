package datastore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
)

// S3Credentials are static credentials for the S3 backend. When left empty
// the default AWS credential chain is used.
type S3Credentials struct {
	KeyID     string `env:"ACCESS_KEY_ID"`
	SecretKey string `env:"SECRET_ACCESS_KEY"`
}

// S3Config configures the S3 data store from the environment.
// All variables are prefixed with VALIDATION_S3_.
type S3Config struct {
	Bucket         string        `env:"BUCKET"`
	Region         string        `env:"REGION" envDefault:"us-east-1"`
	Endpoint       string        `env:"ENDPOINT"`
	ForcePathStyle bool          `env:"FORCE_PATH_STYLE"`
	BaseFolder     string        `env:"BASE_FOLDER"`
	Credentials    S3Credentials `envPrefix:"CREDENTIAL_"`
}

// LoadS3Config reads the S3 data store configuration from the environment.
func LoadS3Config() (*S3Config, error) {
	config := S3Config{}
	if err := env.Parse(&config, env.Options{Prefix: "VALIDATION_S3_"}); err != nil {
		return nil, errors.WithMessage(err, "error parsing S3 config")
	}
	return &config, nil
}

// S3DataStore uploads and downloads files from an S3-compatible object store.
type S3DataStore struct {
	client     *s3.Client
	bucket     string
	baseFolder string
}

// NewS3DataStore builds an S3 data store from the given configuration.
func NewS3DataStore(ctx context.Context, config *S3Config) (*S3DataStore, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
	}
	if config.Credentials.KeyID != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.Credentials.KeyID, config.Credentials.SecretKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, errors.WithMessage(err, "error loading AWS config")
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
		}
		o.UsePathStyle = config.ForcePathStyle
	})

	return NewS3DataStoreWithClient(client, config.Bucket, config.BaseFolder), nil
}

// NewS3DataStoreWithClient wraps an existing S3 client.
func NewS3DataStoreWithClient(client *s3.Client, bucket, baseFolder string) *S3DataStore {
	return &S3DataStore{client: client, bucket: bucket, baseFolder: baseFolder}
}

// UploadData stores local files under the configured base folder, preserving
// the directory structure below the files' common base directory.
func (s *S3DataStore) UploadData(ctx context.Context, filePaths []string, overwrite bool) ([]UploadedFile, error) {
	relative := relativePaths(filePaths)
	uploaded := make([]UploadedFile, 0, len(filePaths))

	for i, localPath := range filePaths {
		key := path.Join(s.baseFolder, filepath.ToSlash(relative[i]))

		if !overwrite {
			if exists, err := s.objectExists(ctx, key); err != nil {
				return nil, err
			} else if exists {
				return nil, fmt.Errorf("object %q already exists, set overwrite to replace existing objects", key)
			}
		}

		size, err := s.uploadFile(ctx, localPath, key)
		if err != nil {
			return nil, errors.WithMessagef(err, "error uploading %s", localPath)
		}
		uploaded = append(uploaded, UploadedFile{
			Filepath: fmt.Sprintf("s3://%s/%s", s.bucket, key),
			Filesize: size,
		})
	}

	return uploaded, nil
}

func (s *S3DataStore) uploadFile(ctx context.Context, localPath, key string) (int64, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, err
	}

	slog.Debug("uploading object", "bucket", s.bucket, "key", key, "size", info.Size())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

func (s *S3DataStore) objectExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, errors.WithMessagef(err, "error checking for object %s", key)
	}
	return true, nil
}

// DownloadData fetches objects into a local directory. Remote paths may be
// full s3:// URIs or plain object keys in the configured bucket.
func (s *S3DataStore) DownloadData(ctx context.Context, remotePaths []string, localDirectory string, overwrite bool) ([]string, error) {
	localPaths := make([]string, 0, len(remotePaths))

	for _, remotePath := range remotePaths {
		key := s.objectKey(remotePath)
		localPath := filepath.Join(localDirectory, path.Base(key))
		if err := ensureAbsent(localPath, overwrite); err != nil {
			return nil, err
		}

		if err := s.downloadObject(ctx, key, localPath); err != nil {
			return nil, errors.WithMessagef(err, "error downloading %s", remotePath)
		}
		localPaths = append(localPaths, localPath)
	}

	return localPaths, nil
}

func (s *S3DataStore) downloadObject(ctx context.Context, key, localPath string) error {
	object, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return err
	}
	defer object.Body.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), os.ModePerm); err != nil {
		return err
	}

	file, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, object.Body)
	return err
}

// LoadData reads an object into memory.
func (s *S3DataStore) LoadData(ctx context.Context, remotePath string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(remotePath)),
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "error loading %s", remotePath)
	}
	defer object.Body.Close()

	return io.ReadAll(object.Body)
}

// objectKey strips the s3://bucket/ prefix from a remote path, if present.
func (s *S3DataStore) objectKey(remotePath string) string {
	prefix := fmt.Sprintf("s3://%s/", s.bucket)
	if len(remotePath) > len(prefix) && remotePath[:len(prefix)] == prefix {
		return remotePath[len(prefix):]
	}
	return remotePath
}

// Package profilesync copies the preheat profile document to and from an S3
// bucket so several panels can share material presets.
package profilesync

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ObjectName is the key suffix the profiles are stored under
const ObjectName = "preheat.json"

// ErrMissingCredentials is returned when the AWS environment is incomplete
var ErrMissingCredentials = errors.New("missing one or more required environment variables: AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY")

// ObjectClient is the part of the S3 API the sync uses
type ObjectClient interface {
	PutObject(*s3.PutObjectInput) (*s3.PutObjectOutput, error)
	GetObject(*s3.GetObjectInput) (*s3.GetObjectOutput, error)
}

// Document is the local side of the sync, usually a settings.Store
type Document interface {
	Raw() ([]byte, error)
	WriteRaw([]byte) error
}

// Syncer pushes and pulls the profile document
type Syncer struct {
	client ObjectClient
	bucket string
	prefix string
}

// New creates a Syncer on an existing client
func New(client ObjectClient, bucket, prefix string) *Syncer {
	return &Syncer{client: client, bucket: bucket, prefix: prefix}
}

// NewFromEnv creates a Syncer with static credentials from the environment
func NewFromEnv(bucket, prefix string) (*Syncer, error) {
	region := os.Getenv("AWS_DEFAULT_REGION")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if region == "" || accessKey == "" || secretKey == "" {
		return nil, ErrMissingCredentials
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}
	return New(s3.New(sess), bucket, prefix), nil
}

// Key returns the object key of the profile document
func (s *Syncer) Key() string {
	return path.Join(s.prefix, ObjectName)
}

// Push uploads the local document
func (s *Syncer) Push(doc Document) error {
	val, err := doc.Raw()
	if err != nil {
		return fmt.Errorf("read local profiles: %w", err)
	}
	_, err = s.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key()),
		Body:        bytes.NewReader(val),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, s.Key(), err)
	}
	return nil
}

// Pull downloads the remote document and stores it locally
func (s *Syncer) Pull(doc Document) error {
	out, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key()),
	})
	if err != nil {
		return fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.Key(), err)
	}
	defer out.Body.Close()

	val, err := io.ReadAll(out.Body)
	if err != nil {
		return err
	}
	return doc.WriteRaw(val)
}

package transport

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	uuid "github.com/satori/go.uuid"
)

// S3Sink archives whole OWF packets as S3 objects, one object per Encode
// call, the analogue of the teacher's aws.go SQS/SNS helpers but for bulk
// object storage rather than small JSON messages.
type S3Sink struct {
	Bucket string
	Prefix string

	client *s3.S3
	buf    bytes.Buffer
}

// NewS3Sink constructs an S3Sink writing objects to bucket, using the
// default AWS credential chain (environment, shared config, instance
// role) via session.NewSession, the same entry point getAWSSession uses.
func NewS3Sink(bucket, prefix string) (sink *S3Sink, err error) {
	sess, err := session.NewSession(aws.NewConfig())
	if err != nil {
		return
	}
	sink = &S3Sink{Bucket: bucket, Prefix: prefix, client: s3.New(sess)}
	return
}

// Sink implements codec.Sink: it buffers the whole encoded packet in
// memory and flushes it as a single S3 object once the caller closes the
// encode by calling Flush.
func (s *S3Sink) Sink(src []byte) bool {
	_, err := s.buf.Write(src)
	return err == nil
}

// Flush uploads the buffered packet as one S3 object, keyed by a fresh
// UUID under Prefix, and resets the buffer for the next packet.
func (s *S3Sink) Flush() (key string, err error) {
	id, err := uuid.NewV4()
	if err != nil {
		return
	}
	key = fmt.Sprintf("%s%s.owf", s.Prefix, id.String())
	_, err = s.client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(s.buf.Bytes()),
	})
	s.buf.Reset()
	return
}

// S3Source reads back a single previously archived packet as a
// codec.Source, pulling the whole object into memory on first read.
type S3Source struct {
	Bucket, Key string

	client *s3.S3
	data   []byte
	read   bool
}

// NewS3Source constructs an S3Source for the given bucket/key.
func NewS3Source(bucket, key string) (source *S3Source, err error) {
	sess, err := session.NewSession(aws.NewConfig())
	if err != nil {
		return
	}
	source = &S3Source{Bucket: bucket, Key: key, client: s3.New(sess)}
	return
}

func (s *S3Source) fetch() error {
	out, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return err
	}
	defer out.Body.Close()
	s.data, err = io.ReadAll(out.Body)
	s.read = true
	return err
}

// Source implements codec.Source: it fetches the whole object on the
// first call and serves subsequent reads from the in-memory buffer.
func (s *S3Source) Source(dst []byte) bool {
	if !s.read {
		if err := s.fetch(); err != nil {
			log.Errorf("s3 fetch %s/%s failed: %v", s.Bucket, s.Key, err)
			return false
		}
	}
	if len(s.data) < len(dst) {
		return false
	}
	copy(dst, s.data[:len(dst)])
	s.data = s.data[len(dst):]
	return true
}

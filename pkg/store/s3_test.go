package store_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/payloadkit/pkg/store"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func TestS3Store_ObjectKey(t *testing.T) {
	t.Parallel()

	s := store.NewS3Store(&MockS3Client{}, "bucket", store.WithPrefix("payload/state"))
	key := store.NewKey("Reports", "daily")
	assert.Equal(t, "payload/state/"+key.File(), s.ObjectKey(key))
}

func TestS3Store_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := &MockS3Client{}
	s := store.NewS3Store(client, "bucket", store.WithPrefix("state"), store.WithCipher(cipher(t)))
	key := store.NewKey("Reports", "daily")
	objectKey := s.ObjectKey(key)

	var stored []byte
	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "bucket" && *in.Key == objectKey
	}), mock.Anything).Run(func(args mock.Arguments) {
		in := args.Get(1).(*s3.PutObjectInput)
		stored, _ = io.ReadAll(in.Body)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	in := snapshot{Last: 7, Names: []string{"a", "b"}}
	require.NoError(t, s.Save(ctx, key, in))
	require.NotEmpty(t, stored)
	assert.NotContains(t, string(stored), `"a"`)

	client.On("GetObject", ctx, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Key == objectKey
	}), mock.Anything).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(stored)),
	}, nil).Once()

	var out snapshot
	require.NoError(t, s.Load(ctx, key, &out))
	assert.Equal(t, in, out)
	client.AssertExpectations(t)
}

func TestS3Store_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := &MockS3Client{}
	s := store.NewS3Store(client, "bucket")
	key := store.NewKey("Reports")

	client.On("GetObject", ctx, mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()
	client.On("DeleteObject", ctx, mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()

	var out snapshot
	assert.ErrorIs(t, s.Load(ctx, key, &out), store.ErrNotFound)
	assert.NoError(t, s.Delete(ctx, key))
	client.AssertExpectations(t)
}

func TestS3Store_Failure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := &MockS3Client{}
	s := store.NewS3Store(client, "bucket")

	client.On("PutObject", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("network down")).Once()

	err := s.Save(ctx, store.NewKey("Reports"), snapshot{})
	assert.ErrorIs(t, err, store.ErrStoreFailed)
	assert.ErrorIs(t, s.Save(ctx, store.NewKey(""), snapshot{}), store.ErrEmptyType)
	client.AssertExpectations(t)
}

func TestNewS3Client_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := store.NewS3Client(context.Background(), store.S3Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, store.ErrInvalidS3Config)
}

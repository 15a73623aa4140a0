package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/khunghaydien/AI-Scanner-Backend/internal/storage"
)

type fakeS3 struct {
	objects map[string][]byte
	puts    []string
	deletes []string
	failPut error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut != nil {
		return nil, f.failPut
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*params.Key] = data
	f.puts = append(f.puts, *params.Key)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(data)))}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[*params.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *params.Key)
	f.deletes = append(f.deletes, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func newS3System(t *testing.T) (*fakeS3, storage.System) {
	t.Helper()
	client := newFakeS3()
	return client, storage.NewS3WithClient(client, "test-bucket", testLogger())
}

func TestS3_StoreRetrieve(t *testing.T) {
	client, sys := newS3System(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "files/owner/a.png", "image/png", []byte("png data")); err != nil {
		t.Fatalf("Store() error: %v", err)
	}

	if len(client.puts) != 1 || client.puts[0] != "files/owner/a.png" {
		t.Errorf("Expected one put for files/owner/a.png, got %v", client.puts)
	}

	data, err := sys.Retrieve(ctx, "files/owner/a.png")
	if err != nil {
		t.Fatalf("Retrieve() error: %v", err)
	}
	if string(data) != "png data" {
		t.Errorf("Expected %q, got %q", "png data", data)
	}
}

func TestS3_RetrieveNotFound(t *testing.T) {
	_, sys := newS3System(t)

	_, err := sys.Retrieve(context.Background(), "missing.png")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestS3_DeleteIdempotent(t *testing.T) {
	client, sys := newS3System(t)
	ctx := context.Background()

	if err := sys.Delete(ctx, "never-existed.png"); err != nil {
		t.Errorf("Delete() of missing key should be nil, got %v", err)
	}
	if len(client.deletes) != 1 {
		t.Errorf("Expected delete call to reach the client, got %v", client.deletes)
	}
}

func TestS3_Validate(t *testing.T) {
	client, sys := newS3System(t)
	ctx := context.Background()

	exists, err := sys.Validate(ctx, "a.png")
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if exists {
		t.Error("Expected false for absent key")
	}

	client.objects["a.png"] = []byte("x")

	exists, err = sys.Validate(ctx, "a.png")
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !exists {
		t.Error("Expected true for present key")
	}
}

func TestS3_InvalidKey(t *testing.T) {
	_, sys := newS3System(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "/abs"} {
		if err := sys.Store(ctx, key, "", []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
			t.Errorf("Store(%q) expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestS3_StoreError(t *testing.T) {
	client, sys := newS3System(t)
	client.failPut = errors.New("connection refused")

	err := sys.Store(context.Background(), "a.png", "image/png", []byte("x"))
	if err == nil {
		t.Error("Expected error when put fails")
	}
}

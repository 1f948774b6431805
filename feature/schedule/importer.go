package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"schedule-reconciler/core/reconcile"
	"schedule-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// FetchImportedSchedule downloads and parses an imported schedule object
// from the storage bucket.
func FetchImportedSchedule(ctx context.Context, client storage.Client, bucket, objName string) (*reconcile.ImportedData, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s not found", bucket)
	}

	reader, err := client.GetObject(ctx, bucket, objName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", objName, err)
	}

	var imported reconcile.ImportedData
	if err := json.Unmarshal(data, &imported); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", objName, err)
	}

	return &imported, nil
}

// UploadProcessedSchedule serializes the processed schedule and uploads it
// to the storage bucket under the given object name.
func UploadProcessedSchedule(ctx context.Context, client storage.Client, bucket, objName string, processed reconcile.ImportedData) error {
	data, err := json.MarshalIndent(processed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize processed schedule: %w", err)
	}

	_, err = client.PutObject(ctx, bucket, objName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objName, err)
	}

	return nil
}

package gcsexport

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"

	"github.com/dvloznov/statement-cleaner/internal/logger"
)

// ExportFiles uploads the generated output files to a GCS bucket under
// the given object prefix. It assumes Application Default Credentials
// are configured (gcloud auth application-default login).
func ExportFiles(ctx context.Context, bucketName, prefix string, paths []string) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	log := logger.FromContext(ctx)
	bkt := client.Bucket(bucketName)

	for _, p := range paths {
		object := path.Join(prefix, filepath.Base(p))
		if err := uploadFile(ctx, bkt, object, p); err != nil {
			return fmt.Errorf("upload %q to gs://%s/%s: %w", p, bucketName, object, err)
		}
		log.Info().Str("bucket", bucketName).Str("object", object).Msg("Uploaded output file")
	}
	return nil
}

func uploadFile(ctx context.Context, bkt *storage.BucketHandle, objectName, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file %q: %w", filePath, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := bkt.Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("copy file to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}

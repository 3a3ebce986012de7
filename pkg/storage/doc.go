// Package storage is the object store boundary of the service.
//
// Two interfaces cover everything the file service needs: Bucket (put, stat,
// prefix list, delete, ping) and Signer (time-limited download URLs).
// S3Storage implements both on any S3-compatible endpoint through
// aws-sdk-go-v2; MemoryStorage implements both in process.
//
// # Basic Usage
//
//	bucket, signer, err := storage.Open(ctx, storage.Config{
//		Bucket: "uploads",
//		Region: "eu-central-1",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	obj, err := bucket.Put(ctx, "uid/token_report.txt", r, size, "text/plain")
//	url, err := signer.SignedURL(ctx, obj.Key,
//		storage.WithExpiry(10*time.Minute),
//		storage.WithDownload("token_report.txt"),
//	)
//
// # Credentials
//
// With AccessKey and SecretKey empty, S3Storage resolves credentials through
// the default AWS chain. Presigning needs real keys: when the chain yields
// none, SignedURL fails with ErrNoCredentials instead of issuing an unusable URL.
//
// # Errors
//
// All failures wrap one of the package sentinels; match with errors.Is:
//
//	if errors.Is(err, storage.ErrNotFound) {
//		// object is gone
//	}
package storage

package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	imageutil "arrenda_backend/pkg/utils/image"
)

const MaxDocumentSize = 20 * 1024 * 1024 // 20MB

var allowedDocumentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

func getS3Client() (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("R2_ACCESS_KEY"),
			os.Getenv("R2_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", os.Getenv("R2_ACCOUNT_ID")))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return client, nil
}

func bucket() string {
	if b := os.Getenv("R2_BUCKET"); b != "" {
		return b
	}
	return "arrenda-files"
}

func publicURL(key string) string {
	base := strings.TrimSuffix(os.Getenv("R2_PUBLIC_URL"), "/")
	return base + "/" + key
}

// UploadPropertyPhoto re-encodes the image and stores it under the property's
// slug. Returns the public URL.
func UploadPropertyPhoto(file *multipart.FileHeader, username, propertySlug string) (string, error) {
	if file.Size > imageutil.MaxImageSize {
		return "", fmt.Errorf("file size too large, maximum is %d bytes", imageutil.MaxImageSize)
	}

	buf, contentType, err := imageutil.ProcessImage(file)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("photos/%s/%s/%s%s",
		slug.Make(username),
		propertySlug,
		uuid.New().String(),
		extensionFor(contentType),
	)

	if err := putObject(key, buf, contentType); err != nil {
		return "", err
	}
	return publicURL(key), nil
}

// UploadLeaseDocument stores a lease attachment (contract scan, inventory
// report) under the lease id.
func UploadLeaseDocument(file *multipart.FileHeader, username string, leaseID uint) (string, error) {
	if file.Size > MaxDocumentSize {
		return "", fmt.Errorf("file size too large, maximum is %d bytes", MaxDocumentSize)
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedDocumentTypes[contentType] {
		return "", fmt.Errorf("invalid file type %q, allowed: pdf, jpeg, png", contentType)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(src); err != nil {
		return "", err
	}

	key := fmt.Sprintf("leases/%s/%d/%d_%s",
		slug.Make(username),
		leaseID,
		time.Now().Unix(),
		slug.Make(strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)))+filepath.Ext(file.Filename),
	)

	if err := putObject(key, buf, contentType); err != nil {
		return "", err
	}
	return publicURL(key), nil
}

// UploadAvatar stores a profile picture keyed by username.
func UploadAvatar(file *multipart.FileHeader, username string) (string, error) {
	buf, contentType, err := imageutil.ProcessImage(file)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", slug.Make(username), uuid.New().String(), extensionFor(contentType))
	if err := putObject(key, buf, contentType); err != nil {
		return "", err
	}
	return publicURL(key), nil
}

// DeleteObject removes a previously uploaded file by its public URL.
func DeleteObject(fileURL string) error {
	base := strings.TrimSuffix(os.Getenv("R2_PUBLIC_URL"), "/")
	key := strings.TrimPrefix(strings.TrimPrefix(fileURL, base), "/")

	client, err := getS3Client()
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(bucket()),
		Key:    aws.String(key),
	})
	return err
}

func putObject(key string, buf *bytes.Buffer, contentType string) error {
	client, err := getS3Client()
	if err != nil {
		return err
	}

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket()),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("could not upload to storage: %v", err)
	}
	return nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	return ""
}

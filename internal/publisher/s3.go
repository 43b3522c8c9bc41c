package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var contentTypes = map[string]string{
	".mp4":  "video/mp4",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func (p *s3Publisher) Publish(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", localPath, err)
	}

	key := p.objectKey(localPath)
	in := &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
	}
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(localPath))]; ok {
		in.ContentType = aws.String(ct)
	}

	if _, err := p.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("upload to s3://%s/%s: %w", p.bucket, key, err)
	}

	location := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	p.logger.Info(ctx, "Published %s to %s", filepath.Base(localPath), location)
	return location, nil
}

func (p *s3Publisher) objectKey(localPath string) string {
	return p.prefix + filepath.Base(localPath)
}

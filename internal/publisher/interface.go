package publisher

import "context"

// Publisher copies finished artifacts to remote storage
type Publisher interface {
	// Publish uploads localPath and returns its remote location
	Publish(ctx context.Context, localPath string) (string, error)
}

package oss

import "context"

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Object is a stored blob: public id for later deletion, URL for clients,
// duration only for video uploads.
type Object struct {
	ID       string  `json:"public_id"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration,omitempty"`
}

// Storage is the blob store the services talk to. The minio implementation
// below is the production one; tests swap in fakes.
type Storage interface {
	PutImage(ctx context.Context, localPath, contentType string) (*Object, error)
	PutVideo(ctx context.Context, localPath string) (*Object, error)
	Remove(ctx context.Context, id string, kind Kind) error
}

package usecase

import "context"

type CatalogGateway interface {
	Fetch(ctx context.Context, url string, purpose FetchPurpose) (*FetchRes, error)
}

type ImageAcquirer interface {
	Acquire(ctx context.Context, req *AcquireImageReq) (*AcquireImageRes, error)
}

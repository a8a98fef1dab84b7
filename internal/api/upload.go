package api

import (
	"context"
	"net/http"

	"homequest-admin/internal/models"
	"homequest-admin/internal/transport"
)

var epUpload = register(Endpoint{Name: "uploadFile", Method: http.MethodPost, Path: "/upload/", Kind: KindMutation, Entity: "", Op: OpNone})

// UploadService pushes binary assets and returns their public URL.
// Uploads provide and invalidate no tags; the entity write that later
// references the URL drives its own invalidation.
type UploadService struct {
	c *Client
}

func (c *Client) Upload() *UploadService {
	return &UploadService{c: c}
}

func (s *UploadService) File(ctx context.Context, fileName string, data []byte) (models.UploadResult, error) {
	req := &transport.Request{
		Method: epUpload.Method,
		Path:   epUpload.Path,
		Multipart: &transport.Multipart{
			FileField: "file",
			FileName:  fileName,
			FileData:  data,
		},
	}
	return runMutation[models.UploadResult](ctx, s.c, req, nil)
}

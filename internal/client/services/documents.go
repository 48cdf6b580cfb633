package services

import (
	"context"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/client/result"
)

// UploadDocument materializes fileRef, uploads it, and always removes the
// temporary copy afterwards.
func (c *Coordinator) UploadDocument(ctx context.Context, kind, fileRef string) <-chan result.State[models.UploadDocumentResponse] {
	const op = "upload-document"

	return run(func(emit func(result.State[models.UploadDocumentResponse])) {
		emit(result.Loading[models.UploadDocumentResponse]{})

		path, err := c.files.Materialize(ctx, fileRef)
		if err != nil {
			emit(failure[models.UploadDocumentResponse](ctx, c, op, msgFileFailed, err, nil))
			return
		}
		defer c.removeTemp(ctx, path)

		resp, err := deref(c.client.UploadDocument(ctx, kind, path))
		if err != nil {
			emit(failure[models.UploadDocumentResponse](ctx, c, op, failureMessage(err, fallbackUpload), err, nil))
			return
		}

		c.log.Debug(ctx, "operation finished", "op", op, "status", "success")
		emit(result.Success[models.UploadDocumentResponse]{Data: resp})
	})
}

func (c *Coordinator) ListDocuments(ctx context.Context) <-chan result.State[[]models.Document] {
	return call(ctx, c, "list-documents", fallbackListDocuments,
		func(ctx context.Context) ([]models.Document, error) {
			return c.client.ListDocuments(ctx)
		}, nil)
}

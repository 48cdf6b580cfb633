package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
)

type uploadInput struct {
	Kind string
	File string
}

func (a *App) UploadDocument(ctx context.Context, in uploadInput) error {
	if err := a.prompt(&in.Kind, "Document kind (e.g. KTP, SIM, STNK)"); err != nil {
		return err
	}
	if err := a.prompt(&in.File, "File to upload"); err != nil {
		return err
	}
	in.Kind = strings.TrimSpace(in.Kind)

	return consume(a.docs.UploadDocument(ctx, in.Kind, in.File), func(r models.UploadDocumentResponse) {
		a.printf("%s\n", r.Message)
		printDocuments(a.out, []models.Document{r.Document})
	}, nil)
}

func (a *App) ListDocuments(ctx context.Context) error {
	return consume(a.docs.ListDocuments(ctx), func(docs []models.Document) {
		printDocuments(a.out, docs)
	}, nil)
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/mitrakurir/internal/client/models"
	"github.com/dmitrijs2005/mitrakurir/internal/client/result"
)

// consume drains ch, rendering each state. partial, when set, renders the
// last-known value carried by Loading. A Failure becomes the returned error.
func consume[T any](ch <-chan result.State[T], success func(T), partial func(*T)) error {
	var err error
	for s := range ch {
		result.Match(s,
			func(l result.Loading[T]) struct{} {
				if l.Partial != nil && partial != nil {
					partial(l.Partial)
				}
				return struct{}{}
			},
			func(s result.Success[T]) struct{} {
				success(s.Data)
				return struct{}{}
			},
			func(f result.Failure[T]) struct{} {
				err = errors.New(f.Message)
				return struct{}{}
			},
		)
	}
	return err
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func printProfile(w io.Writer, p *models.PartnerProfile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", p.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", p.Phone)
	fmt.Fprintf(tw, "Address:\t%s\n", orDash(p.Address))
	fmt.Fprintf(tw, "Birth date:\t%s\n", orDash(p.BirthDate))
	fmt.Fprintf(tw, "Bank account:\t%s\n", orDash(p.BankAccount))
	fmt.Fprintf(tw, "Photo:\t%s\n", orDash(p.PhotoPath))
	fmt.Fprintf(tw, "Verified:\t%s\n", yesNo(p.Verified))
	_ = tw.Flush()
}

func printDocuments(w io.Writer, docs []models.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents uploaded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tFILE\tUPLOADED")
	for _, d := range docs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.ID, d.Kind, d.FilePath, d.CreatedAt)
	}
	_ = tw.Flush()
}

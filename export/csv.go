package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/argo_explorer/domain/models"
)

const (
	DefaultFilename = "argo_data.csv"
	CSVContentType  = "text/csv; charset=utf-8"
)

// Artifact is a finished export ready to be handed to a download or chat
// upload.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// CSV writes the header of declared column keys followed by one line per
// record, in the given order. Cells hold the raw field text; fields
// containing a comma, quote or line break are quoted. Lines are separated
// by "\n" and there is no trailing newline.
func CSV(columns []models.Column, records []models.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = c.Key
	}
	if err := w.Write(row); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		for i, c := range columns {
			row[i] = r.Get(c.Key).String()
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %s: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// CSVArtifact exports records of ds under a filename derived from the
// dataset name.
func CSVArtifact(ds *models.Dataset, records []models.Record) (Artifact, error) {
	var columns []models.Column
	name := ""
	if ds != nil {
		columns, name = ds.Columns, ds.Name
	}
	body, err := CSV(columns, records)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename:    SuggestedFilename(name, ".csv"),
		ContentType: CSVContentType,
		Body:        body,
	}, nil
}

// SuggestedFilename transliterates name to ASCII and slugs it. An empty
// or unusable name gives argo_data with the extension.
func SuggestedFilename(name, ext string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(unidecode.Unidecode(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			underscore = false
		case b.Len() > 0 && !underscore:
			b.WriteByte('_')
			underscore = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "_")
	if slug == "" {
		slug = strings.TrimSuffix(DefaultFilename, ".csv")
	}
	return slug + ext
}

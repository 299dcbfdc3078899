package table

import (
	"strings"

	"github.com/pivolan/argo_explorer/domain/models"
)

// Filter returns the records whose string projection contains text,
// compared case-insensitively. Every declared column and the record id
// take part in the match. Empty text returns the dataset records as is.
// The result never aliases ds.Records, so callers may reorder it.
func Filter(ds *models.Dataset, text string) []models.Record {
	if ds == nil {
		return []models.Record{}
	}
	out := make([]models.Record, 0, len(ds.Records))
	needle := strings.ToLower(text)
	if needle == "" {
		return append(out, ds.Records...)
	}
	for _, r := range ds.Records {
		if matches(r, ds.Columns, needle) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Record, columns []models.Column, needle string) bool {
	if strings.Contains(strings.ToLower(string(r.ID)), needle) {
		return true
	}
	for _, c := range columns {
		v, ok := r.Fields[c.Key]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v.String()), needle) {
			return true
		}
	}
	return false
}

// IDs lists the record ids in order.
func IDs(records []models.Record) []models.RecordID {
	ids := make([]models.RecordID, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// Package exportstore stages generated export documents under short-lived
// ids. The encoding and the expiry policy live here, not in the services.
package exportstore

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/ornidex/ornidex/internal/utils"
)

// DefaultTTL is how long a staged export stays downloadable.
const DefaultTTL = 600 // seconds

// encode renders the rows as a CSV document. The sheet name travels as a
// comment-free convention: it only names the download, the content is flat.
func encode(rows []utils.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(rows) > 0 {
		if err := w.Write(rows[0].Keys()); err != nil {
			return nil, err
		}
	}
	for _, row := range rows {
		values := row.Values()
		record := make([]string, 0, len(values))
		for _, v := range values {
			if v == nil {
				record = append(record, "")
				continue
			}
			record = append(record, fmt.Sprint(v))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

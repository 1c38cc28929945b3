package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/kondannyobhikkhu/tipitaka/internal/metadata"
)

func writeJSON(cmd *cobra.Command, payload interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

type documentJSON struct {
	Number       string `json:"number"`
	EnglishTitle string `json:"english_title"`
	PaliTitle    string `json:"pali_title"`
	Collection   string `json:"collection"`
	Path         string `json:"path"`
}

func documentsJSON(docs []*metadata.Document) []documentJSON {
	out := make([]documentJSON, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentJSON{
			Number:       d.Number,
			EnglishTitle: d.EnglishTitle,
			PaliTitle:    d.PaliTitle,
			Collection:   string(d.Collection.ID),
			Path:         d.Path,
		})
	}
	return out
}

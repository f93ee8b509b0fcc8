package entity

// ImportRow is one parsed data line of a tabular import, keyed by canonical
// column name. Index is 1-based.
type ImportRow struct {
	Index  int
	Fields map[string]string
}

type ImportFailure struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
}

type ImportReport struct {
	Succeeded  int             `json:"succeeded"`
	Failed     []ImportFailure `json:"failed"`
	CreatedIDs []string        `json:"created_ids"`
}

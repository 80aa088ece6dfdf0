package domain

// WordStat is a single vocabulary entry of a document
type WordStat struct {
	Word        string `json:"word"`
	Frequency   int    `json:"frequency"`
	Translation string `json:"translation,omitempty"`
}

// HasTranslation reports whether a translation is attached
func (w WordStat) HasTranslation() bool {
	return w.Translation != ""
}

// DictionaryEntry is a saved word-translation pair of the user's dictionary
type DictionaryEntry struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	CreatedAt   Timestamp `json:"created_at"`
}

// Suggestions holds translation suggestions for a word
type Suggestions struct {
	Word        string   `json:"word"`
	Suggestions []string `json:"suggestions"`
	IsCommon    bool     `json:"is_common"`
}

// SortKey is a sortable column of the frequency table
type SortKey string

const (
	SortByWord      SortKey = "word"
	SortByFrequency SortKey = "frequency"
)

// SortDirection is the order of the frequency table
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortConfig is the current sort of the frequency table
type SortConfig struct {
	Key       SortKey
	Direction SortDirection
}

// DefaultSort is the sort a freshly opened table starts with
func DefaultSort() SortConfig {
	return SortConfig{Key: SortByFrequency, Direction: SortDesc}
}

// TableQuery combines sort and search of the frequency table
type TableQuery struct {
	Sort       SortConfig
	SearchTerm string
}

package models

// SermonListResponse is the filtered sermon list with its heading
type SermonListResponse struct {
	Sermons []Sermon `json:"sermons"`
	Count   int      `json:"count"`
	Title   string   `json:"title"`
}

// SurahSummary is a surah with the number of sermons in the catalog
type SurahSummary struct {
	Surah
	SermonCount int `json:"sermonCount"`
}

// SectionsResponse lists the selectable sections of a surah
type SectionsResponse struct {
	SurahNumber int      `json:"surahNumber"`
	Sections    []string `json:"sections"`
}

// GenerateRequest asks for a new sermon on a surah and optional section
type GenerateRequest struct {
	SurahNumber int    `json:"surahNumber"`
	Topic       string `json:"topic"`
}

// GenerationStatus reports whether a generation is in flight
type GenerationStatus struct {
	Generating bool   `json:"generating"`
	LastError  string `json:"lastError,omitempty"`
}

// CompletionResponse is the state of one sermon after a toggle
type CompletionResponse struct {
	ID        int  `json:"id"`
	Completed bool `json:"completed"`
}

// ProgressResponse summarises the completion set
type ProgressResponse struct {
	Completed []int   `json:"completed"`
	Count     int     `json:"count"`
	Total     int     `json:"total"`
	Ratio     float64 `json:"ratio"`
}

// PreviewState is the latest verse preview. Seq increases with every request.
type PreviewState struct {
	Seq         uint64 `json:"seq"`
	SurahNumber int    `json:"surahNumber,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Loading     bool   `json:"loading"`
	Verses      string `json:"verses,omitempty"`
	Error       string `json:"error,omitempty"`
}

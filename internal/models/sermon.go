package models

// Sermon is a complete Friday sermon document in the catalog
type Sermon struct {
	ID          int      `json:"id"`
	SurahNumber int      `json:"surahNumber"`
	Title       string   `json:"title"`
	PageNumber  int      `json:"pageNumber"`
	Verses      string   `json:"verses"`
	Khutbah1    Khutbah1 `json:"khutbah1"`
	Khutbah2    Khutbah2 `json:"khutbah2"`
}

// Khutbah1 is the first part of the sermon: verses, tafsir and reflections
type Khutbah1 struct {
	Title       string    `json:"title"`
	Verses      string    `json:"verses"`
	Tafsir      string    `json:"tafsir"`
	Reflections string    `json:"reflections"`
	Messages    []Message `json:"messages"`
	Repentance  string    `json:"repentance"`
}

// Message is a single faith lesson drawn from the verses
type Message struct {
	Message     string `json:"message"`
	Explanation string `json:"explanation"`
}

// Khutbah2 is the second part of the sermon: hadith and closing supplication
type Khutbah2 struct {
	Hadith           Hadith `json:"hadith"`
	HadithReflection string `json:"hadithReflection"`
	Dua              string `json:"dua"`
}

// Hadith is a narration with its authenticity grade
type Hadith struct {
	Text         string `json:"text"`
	Authenticity string `json:"authenticity"`
}

// SermonContent is the part of a sermon produced by the generation backend.
// Identifier, surah and page are supplied by the caller.
type SermonContent struct {
	Title    string   `json:"title"`
	Verses   string   `json:"verses"`
	Khutbah1 Khutbah1 `json:"khutbah1"`
	Khutbah2 Khutbah2 `json:"khutbah2"`
}

// NewGeneratedSermon builds a catalog document from generated content.
// Generated sermons have no physical page, so PageNumber is always 0.
func NewGeneratedSermon(id, surahNumber int, content SermonContent) Sermon {
	return Sermon{
		ID:          id,
		SurahNumber: surahNumber,
		Title:       content.Title,
		PageNumber:  0,
		Verses:      content.Verses,
		Khutbah1:    content.Khutbah1,
		Khutbah2:    content.Khutbah2,
	}
}

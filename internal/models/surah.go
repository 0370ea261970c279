package models

// Revelation types of a surah
const (
	RevelationMeccan  = "Meccan"
	RevelationMedinan = "Medinan"
)

// Surah is a chapter of the Quran (static reference data)
type Surah struct {
	Number         int    `json:"number" yaml:"number"`
	Name           string `json:"name" yaml:"name"`
	EnglishName    string `json:"englishName" yaml:"englishName"`
	RevelationType string `json:"revelationType" yaml:"revelationType"`
}

// PageRange is an inclusive range of mushaf pages covered by a surah
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

package prompts

import (
	"fmt"

	"github.com/minbar-sermons-api/internal/models"
)

// PageIndex resolves the mushaf page range of a surah
type PageIndex interface {
	PageRange(number int) (models.PageRange, bool)
}

// Sections lists the selectable topics of a surah: two halves of every
// page in its range. Surahs outside the index have none.
func Sections(pages PageIndex, surahNumber int) []string {
	r, ok := pages.PageRange(surahNumber)
	if !ok {
		return []string{}
	}
	options := make([]string, 0, 2*(r.End-r.Start+1))
	for p := r.Start; p <= r.End; p++ {
		options = append(options,
			fmt.Sprintf("صفحة %d - الجزء الأول", p),
			fmt.Sprintf("صفحة %d - الجزء الثاني", p),
		)
	}
	return options
}

package specification

import "gorm.io/gorm"

type ByUrl struct {
	Url string
}

func (s ByUrl) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("url = ?", s.Url)
}

// LinkMatches matches the phrase against title or url
type LinkMatches struct {
	Phrase string
}

func (s LinkMatches) Apply(db *gorm.DB) *gorm.DB {
	p := likePattern(s.Phrase)
	return db.Where("(title ILIKE ? OR url ILIKE ?)", p, p)
}

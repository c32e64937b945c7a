package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Title 是应用内部使用的精简模型，只能由 TitleRecord 转换得到。
type Title struct {
	Title          string
	Year           int
	RuntimeMinutes int
	Genre          string
	Director       string
	Rating         string
	Poster         string
}

// NewTitle 从已填充的 TitleRecord 逐字段转换出 Title。
// 纯函数、不会失败：无法解析的数字字段（例如 "N/A"）保持 0。
func NewTitle(rec TitleRecord) Title {
	return Title{
		Title:          rec.Title,
		Year:           leadingInt(rec.Year, 4),
		RuntimeMinutes: leadingInt(rec.Runtime, 0),
		Genre:          rec.Genre,
		Director:       rec.Director,
		Rating:         rec.ImdbRating,
		Poster:         rec.Poster,
	}
}

func (t Title) String() string {
	return fmt.Sprintf("Title{Title=%q Year=%d RuntimeMinutes=%d Genre=%q Director=%q Rating=%q Poster=%q}",
		t.Title, t.Year, t.RuntimeMinutes, t.Genre, t.Director, t.Rating, t.Poster)
}

// leadingInt 取 s 开头的连续数字并转为 int；max>0 时最多取 max 位。
// "2008–2012" => 2008，"136 min" => 136，"N/A" => 0。
func leadingInt(s string, max int) int {
	s = strings.TrimSpace(s)
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		if max > 0 && n == max {
			break
		}
		n++
	}
	if n == 0 {
		return 0
	}
	v, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0
	}
	return v
}

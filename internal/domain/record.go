package domain

import (
	"fmt"
	"strings"
)

// TitleRecord 与 OMDb 接口返回的 JSON 结构一一对应（远端原始记录）。
//
// 约束：
// - 字段映射只由 struct tag 决定（显式表，不依赖命名策略）
// - encoding/json 匹配 key 时大小写不敏感，"title" 同样落到 Title
// - JSON 中缺失的字段保持零值；未知字段直接忽略
type TitleRecord struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"`
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	ImdbRating string   `json:"imdbRating"`
	ImdbVotes  string   `json:"imdbVotes"`
	ImdbID     string   `json:"imdbID"`
	Type       string   `json:"Type"`

	// Response 是 OMDb 的状态字段："True" / "False"。
	Response string `json:"Response"`
	// Error 只在 Response=="False" 时出现，例如 "Movie not found!"。
	Error string `json:"Error,omitempty"`
}

type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Found 报告 OMDb 是否明确返回了失败状态。
// 没有 Response 字段的响应视为成功（字段缺失保持零值的约定）。
func (r TitleRecord) Found() bool {
	return !strings.EqualFold(strings.TrimSpace(r.Response), "False")
}

func (r TitleRecord) String() string {
	var b strings.Builder
	b.WriteString("TitleRecord{")
	fmt.Fprintf(&b, "Title=%q Year=%q Rated=%q Released=%q Runtime=%q Genre=%q Director=%q Writer=%q Actors=%q Plot=%q",
		r.Title, r.Year, r.Rated, r.Released, r.Runtime, r.Genre, r.Director, r.Writer, r.Actors, r.Plot)
	fmt.Fprintf(&b, " Language=%q Country=%q Awards=%q Poster=%q", r.Language, r.Country, r.Awards, r.Poster)
	b.WriteString(" Ratings=[")
	for i, rt := range r.Ratings {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%q:%q", rt.Source, rt.Value)
	}
	b.WriteString("]")
	fmt.Fprintf(&b, " Metascore=%q ImdbRating=%q ImdbVotes=%q ImdbID=%q Type=%q Response=%q",
		r.Metascore, r.ImdbRating, r.ImdbVotes, r.ImdbID, r.Type, r.Response)
	if r.Error != "" {
		fmt.Fprintf(&b, " Error=%q", r.Error)
	}
	b.WriteString("}")
	return b.String()
}

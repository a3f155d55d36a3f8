// Package teams holds the KBO club table and the reporter/author team
// relation used to triage abuse reports.
package teams

// Team describes one KBO club.
type Team struct {
	ID        string
	Name      string
	ShortName string
	City      string
	Stadium   string
}

// KBOTeams is the fixed league roster.
var KBOTeams = []Team{
	{ID: "samsung", Name: "삼성 라이온즈", ShortName: "삼성", City: "대구", Stadium: "대구삼성라이온즈파크"},
	{ID: "doosan", Name: "두산 베어스", ShortName: "두산", City: "서울", Stadium: "잠실야구장"},
	{ID: "lg", Name: "LG 트윈스", ShortName: "LG", City: "서울", Stadium: "잠실야구장"},
	{ID: "kiwoom", Name: "키움 히어로즈", ShortName: "키움", City: "서울", Stadium: "고척스카이돔"},
	{ID: "kia", Name: "KIA 타이거즈", ShortName: "KIA", City: "광주", Stadium: "광주기아챔피언스필드"},
	{ID: "kt", Name: "KT 위즈", ShortName: "KT", City: "수원", Stadium: "수원KT위즈파크"},
	{ID: "ssg", Name: "SSG 랜더스", ShortName: "SSG", City: "인천", Stadium: "인천SSG랜더스필드"},
	{ID: "nc", Name: "NC 다이노스", ShortName: "NC", City: "창원", Stadium: "창원NC파크"},
	{ID: "lotte", Name: "롯데 자이언츠", ShortName: "롯데", City: "부산", Stadium: "사직야구장"},
	{ID: "hanwha", Name: "한화 이글스", ShortName: "한화", City: "대전", Stadium: "한화생명이글스파크"},
}

// ByName finds a team by its full or short name.
func ByName(name string) (Team, bool) {
	for _, t := range KBOTeams {
		if t.Name == name || t.ShortName == name {
			return t, true
		}
	}
	return Team{}, false
}

// Relation classifies the reporter's team against the post author's team.
type Relation string

const (
	RelationUnset     Relation = "unset"
	RelationSameTeam  Relation = "sameTeam"
	RelationCrossTeam Relation = "crossTeam"
)

// ClassifyRelation derives the relation between a report's reporter and the
// reported post's author. Cross-team reports are surfaced to moderators as
// possible rival-fan pile-ons. Either side missing or unknown yields unset.
func ClassifyRelation(reporterTeam, authorTeam string) Relation {
	if reporterTeam == "" || authorTeam == "" {
		return RelationUnset
	}
	rt, ok := ByName(reporterTeam)
	if !ok {
		return RelationUnset
	}
	at, ok := ByName(authorTeam)
	if !ok {
		return RelationUnset
	}
	if rt.ID == at.ID {
		return RelationSameTeam
	}
	return RelationCrossTeam
}

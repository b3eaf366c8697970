package models

import "slices"

// VoteKind 區分程序性與實質性投票，僅用於顯示
type VoteKind string

const (
	VoteKindProcedural  VoteKind = "procedural"
	VoteKindSubstantive VoteKind = "substantive"
)

// Vote 內嵌於 Session，以 JSON 欄位保存
type Vote struct {
	Active     bool           `json:"active"`
	Topic      string         `json:"topic"`
	Kind       VoteKind       `json:"type"`
	Options    []string       `json:"options"`
	Results    map[string]int `json:"results"`
	TotalVotes int            `json:"totalVotes"`
	Voters     []string       `json:"voters"`
}

// InactiveVote 是尚未開始任何投票時的佔位值
func InactiveVote() Vote {
	return Vote{
		Options: []string{},
		Results: map[string]int{},
		Voters:  []string{},
	}
}

// NewVote 開啟新的投票，每個選項的票數從 0 開始
func NewVote(topic string, kind VoteKind, options []string) Vote {
	results := make(map[string]int, len(options))
	for _, opt := range options {
		results[opt] = 0
	}
	return Vote{
		Active:  true,
		Topic:   topic,
		Kind:    kind,
		Options: slices.Clone(options),
		Results: results,
		Voters:  []string{},
	}
}

// HasVoted 回報 userID 是否已在本次投票中投過票
func (v *Vote) HasVoted(userID string) bool {
	return slices.Contains(v.Voters, userID)
}

// Cast 記錄一張選票。
// allowUnlisted 為 false 時，不在 Options 內的選擇會被拒絕。
func (v *Vote) Cast(userID, choice string, allowUnlisted bool) error {
	if !v.Active {
		return ErrNoActiveVote
	}
	if v.HasVoted(userID) {
		return ErrDuplicateBallot
	}
	if !allowUnlisted && !slices.Contains(v.Options, choice) {
		return ErrUnknownOption
	}

	if v.Results == nil {
		v.Results = map[string]int{}
	}
	v.Voters = append(v.Voters, userID)
	v.Results[choice]++
	v.TotalVotes++
	return nil
}

// Close 結束投票，保留計票結果
func (v *Vote) Close() {
	v.Active = false
}

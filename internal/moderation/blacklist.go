package moderation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Blacklist is the curated set of absolute-block terms checked before
// any network call. The set is deliberately narrow: only unambiguous
// high-severity terms (serious crime, exploitation, hard-drug trade,
// concrete self-harm methods). Everyday words that double as slang are
// excluded so the model stage can judge them in context.
type Blacklist struct {
	Version string   `json:"version"`
	Terms   []string `json:"terms"`

	normalized []string
}

// DefaultBlacklist returns the compiled-in term set used when no
// blacklist file is configured.
func DefaultBlacklist() *Blacklist {
	b := &Blacklist{
		Version: "builtin",
		Terms: []string{
			"청부살인", "청부폭력", "청부", "암살", "도살", "난자", "토막시체",
			"사제총", "사제폭탄", "화염병", "실탄", "테러모의", "성매매", "인육",
			"강간", "윤간", "강제추행", "성노예", "최음제", "발정제", "물뽕", "지인능욕",
			"아동포르노", "페도", "로리", "쇼타", "근친상간", "수간",
			"조건만남", "원조교제", "출장샵", "애인대행", "키스방", "안마방", "오피", "성매수",
			"필로폰", "히로뽕", "메스암페타민", "펜타닐", "헤로인", "엑스터시", "lsd",
			"졸피뎀", "프로포폴", "케타민", "해피벌룬",
			"자살모의", "동반자살", "안락사", "손목긋기",
		},
	}
	b.index()
	return b
}

// LoadBlacklist reads a versioned term set from a JSON file, so the
// list can change without redeploying the pipeline.
func LoadBlacklist(path string) (*Blacklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blacklist file: %w", err)
	}

	var b Blacklist
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse blacklist file: %w", err)
	}
	if len(b.Terms) == 0 {
		return nil, fmt.Errorf("blacklist file %s contains no terms", path)
	}

	b.index()
	return &b, nil
}

func (b *Blacklist) index() {
	b.normalized = make([]string, 0, len(b.Terms))
	for _, t := range b.Terms {
		n := Normalize(t)
		if n != "" {
			b.normalized = append(b.normalized, n)
		}
	}
}

// Match scans normalized text for the first contained term. A hit is a
// definitive unsafe verdict; a miss only means the text moves on to the
// model stage.
func (b *Blacklist) Match(normalizedText string) (string, bool) {
	for _, term := range b.normalized {
		if strings.Contains(normalizedText, term) {
			return term, true
		}
	}
	return "", false
}

func (b *Blacklist) Len() int { return len(b.normalized) }

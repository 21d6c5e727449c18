package hirez

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// accountIDPrivacySentinel marks rows the vendor masks for privacy-restricted
// accounts. Such rows carry no usable data and are dropped during mapping.
const accountIDPrivacySentinel = "0"

// flexInt64 decodes vendor numeric ids, which arrive as either JSON numbers
// or quoted strings depending on the method.
type flexInt64 int64

func (v *flexInt64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*v = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric id %q", s)
	}
	*v = flexInt64(n)
	return nil
}

// flexString decodes values the vendor serves as either a string or a bare
// number.
type flexString string

func (v *flexString) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	*v = flexString(s)
	return nil
}

// vendorBool interprets the vendor's assorted truthy spellings ("y", "true",
// "1").
func vendorBool(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}

// Limits reports developer usage limits, as returned by getdataused.
type Limits struct {
	TotalRequests      int `json:"Total_Requests_Today"`
	SessionCap         int `json:"Session_Cap"`
	ActiveSessions     int `json:"Active_Sessions"`
	RequestLimit       int `json:"Request_Limit_Daily"`
	TotalSessions      int `json:"Total_Sessions_Today"`
	ConcurrentSessions int `json:"Concurrent_Sessions"`
	SessionTimeLimit   int `json:"Session_Time_Limit"`
}

// SessionsLeft returns how many sessions can still be created today, clamped
// at zero.
func (l *Limits) SessionsLeft() int {
	if rem := l.SessionCap - l.TotalSessions; rem > 0 {
		return rem
	}
	return 0
}

// RequestsLeft returns how many requests can still be made today, clamped at
// zero.
func (l *Limits) RequestsLeft() int {
	if rem := l.RequestLimit - l.TotalRequests; rem > 0 {
		return rem
	}
	return 0
}

// matchDateLayout is the vendor's US-style timestamp, e.g.
// "3/30/2018 10:00:00 PM".
const matchDateLayout = "1/2/2006 3:04:05 PM"

// Match is one entry of the esports pro-league schedule.
type Match struct {
	MatchupID      int64
	MatchNumber    int64
	MatchStatus    string
	MatchDate      string    // raw vendor timestamp
	StartTime      time.Time // parsed from MatchDate; zero when unparseable
	Region         string
	TournamentName string
	MapInstanceID  string
	AwayTeamClanID int64
	AwayTeamName   string
	AwayTeamTag    string
	HomeTeamClanID int64
	HomeTeamName   string
	HomeTeamTag    string
}

func (m *Match) UnmarshalJSON(data []byte) error {
	var aux struct {
		MatchupID      flexInt64  `json:"matchup_id"`
		MatchNumber    flexInt64  `json:"match_number"`
		MatchStatus    flexString `json:"match_status"`
		MatchDate      string     `json:"match_date"`
		Region         string     `json:"region"`
		TournamentName string     `json:"tournament_name"`
		MapInstanceID  flexString `json:"map_instance_id"`
		AwayTeamClanID flexInt64  `json:"away_team_clan_id"`
		AwayTeamName   string     `json:"away_team_name"`
		AwayTeamTag    string     `json:"away_team_tagname"`
		HomeTeamClanID flexInt64  `json:"home_team_clan_id"`
		HomeTeamName   string     `json:"home_team_name"`
		HomeTeamTag    string     `json:"home_team_tagname"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	m.MatchupID = int64(aux.MatchupID)
	m.MatchNumber = int64(aux.MatchNumber)
	m.MatchStatus = string(aux.MatchStatus)
	m.MatchDate = aux.MatchDate
	m.Region = aux.Region
	m.TournamentName = aux.TournamentName
	m.MapInstanceID = string(aux.MapInstanceID)
	m.AwayTeamClanID = int64(aux.AwayTeamClanID)
	m.AwayTeamName = aux.AwayTeamName
	m.AwayTeamTag = aux.AwayTeamTag
	m.HomeTeamClanID = int64(aux.HomeTeamClanID)
	m.HomeTeamName = aux.HomeTeamName
	m.HomeTeamTag = aux.HomeTeamTag

	// The timestamp format is locale-shaped and has drifted historically, so
	// parse failures keep the raw string and leave StartTime zero instead of
	// failing the whole payload.
	if t, err := time.Parse(matchDateLayout, aux.MatchDate); err == nil {
		m.StartTime = t.UTC()
	}
	return nil
}

// Friend is one entry of a player's friends list.
type Friend struct {
	AccountID string `json:"account_id"`
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Status    string `json:"status"`
}

// CharacterRank is a player's record with a single playable character. The
// vendor keys the character under "god" for Smite and "champion" for
// Paladins; both map onto the same normalized fields here.
type CharacterRank struct {
	CharacterName string
	CharacterID   int64
	PlayerID      string
	Rank          int64
	Worshippers   int64
	Wins          int64
	Losses        int64
	Kills         int64
	Deaths        int64
	Assists       int64
	MinutesPlayed int64
}

func (r *CharacterRank) UnmarshalJSON(data []byte) error {
	var aux struct {
		God           string     `json:"god"`
		Champion      string     `json:"champion"`
		GodID         flexInt64  `json:"god_id"`
		ChampionID    flexInt64  `json:"champion_id"`
		PlayerID      flexString `json:"player_id"`
		Rank          flexInt64  `json:"Rank"`
		Worshippers   flexInt64  `json:"Worshippers"`
		Wins          flexInt64  `json:"Wins"`
		Losses        flexInt64  `json:"Losses"`
		Kills         flexInt64  `json:"Kills"`
		Deaths        flexInt64  `json:"Deaths"`
		Assists       flexInt64  `json:"Assists"`
		MinutesPlayed flexInt64  `json:"MinutesPlayed"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.CharacterName = aux.God
	r.CharacterID = int64(aux.GodID)
	if r.CharacterName == "" {
		r.CharacterName = aux.Champion
	}
	if r.CharacterID == 0 {
		r.CharacterID = int64(aux.ChampionID)
	}
	if r.CharacterName == "" {
		return fmt.Errorf("rank entry is missing both god and champion fields")
	}

	r.PlayerID = string(aux.PlayerID)
	r.Rank = int64(aux.Rank)
	r.Worshippers = int64(aux.Worshippers)
	r.Wins = int64(aux.Wins)
	r.Losses = int64(aux.Losses)
	r.Kills = int64(aux.Kills)
	r.Deaths = int64(aux.Deaths)
	r.Assists = int64(aux.Assists)
	r.MinutesPlayed = int64(aux.MinutesPlayed)
	return nil
}

// Character is one entry of the playable-character catalog.
type Character struct {
	ID             int64
	Name           string
	Title          string
	Roles          string
	Pantheon       string // Smite only; empty for Paladins
	Lore           string
	OnFreeRotation bool
	Latest         bool // the vendor's latestGod / latestChampion flag
}

func (c *Character) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID             flexInt64  `json:"id"`
		Name           string     `json:"Name"`
		Title          string     `json:"Title"`
		Roles          string     `json:"Roles"`
		Pantheon       string     `json:"Pantheon"`
		Lore           string     `json:"Lore"`
		OnFreeRotation flexString `json:"OnFreeRotation"`
		LatestGod      flexString `json:"latestGod"`
		LatestChampion flexString `json:"latestChampion"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ID == 0 {
		return fmt.Errorf("character entry is missing id")
	}

	c.ID = int64(aux.ID)
	c.Name = aux.Name
	c.Title = aux.Title
	c.Roles = aux.Roles
	c.Pantheon = aux.Pantheon
	c.Lore = aux.Lore
	c.OnFreeRotation = vendorBool(string(aux.OnFreeRotation))
	c.Latest = vendorBool(string(aux.LatestGod)) || vendorBool(string(aux.LatestChampion))
	return nil
}

// Skin is one cosmetic skin for a character.
type Skin struct {
	SkinID1       int64
	SkinID2       int64
	CharacterID   int64
	CharacterName string
	SkinName      string
	Obtainability string // Smite only
	Rarity        string // Paladins only
	PriceFavor    int64
	PriceGems     int64
}

func (s *Skin) UnmarshalJSON(data []byte) error {
	var aux struct {
		SkinID1       flexInt64 `json:"skin_id1"`
		SkinID2       flexInt64 `json:"skin_id2"`
		GodID         flexInt64 `json:"god_id"`
		ChampionID    flexInt64 `json:"champion_id"`
		GodName       string    `json:"god_name"`
		ChampionName  string    `json:"champion_name"`
		SkinName      string    `json:"skin_name"`
		Obtainability string    `json:"obtainability"`
		Rarity        string    `json:"rarity"`
		PriceFavor    flexInt64 `json:"price_favor"`
		PriceGems     flexInt64 `json:"price_gems"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.SkinID1 = int64(aux.SkinID1)
	s.SkinID2 = int64(aux.SkinID2)
	s.CharacterID = int64(aux.GodID)
	if s.CharacterID == 0 {
		s.CharacterID = int64(aux.ChampionID)
	}
	s.CharacterName = aux.GodName
	if s.CharacterName == "" {
		s.CharacterName = aux.ChampionName
	}
	s.SkinName = aux.SkinName
	s.Obtainability = aux.Obtainability
	s.Rarity = aux.Rarity
	s.PriceFavor = int64(aux.PriceFavor)
	s.PriceGems = int64(aux.PriceGems)
	return nil
}

// RecommendedItem is one entry of a character's recommended item build.
type RecommendedItem struct {
	ItemID        int64
	Item          string
	Category      string
	Role          string
	CharacterID   int64
	CharacterName string
	IconID        int64
}

func (i *RecommendedItem) UnmarshalJSON(data []byte) error {
	var aux struct {
		ItemID   flexInt64 `json:"item_id"`
		Item     string    `json:"Item"`
		Category string    `json:"Category"`
		Role     string    `json:"Role"`
		GodID    flexInt64 `json:"god_id"`
		GodName  string    `json:"god_name"`
		IconID   flexInt64 `json:"icon_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ItemID == 0 {
		return fmt.Errorf("recommended item entry is missing item_id")
	}

	i.ItemID = int64(aux.ItemID)
	i.Item = aux.Item
	i.Category = aux.Category
	i.Role = aux.Role
	i.CharacterID = int64(aux.GodID)
	i.CharacterName = aux.GodName
	i.IconID = int64(aux.IconID)
	return nil
}

package hirez

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLimits_DerivedValuesClampAtZero(t *testing.T) {
	tests := []struct {
		name         string
		limits       Limits
		sessionsLeft int
		requestsLeft int
	}{
		{
			name:         "under the caps",
			limits:       Limits{SessionCap: 500, TotalSessions: 9, RequestLimit: 7500, TotalRequests: 250},
			sessionsLeft: 491,
			requestsLeft: 7250,
		},
		{
			name:         "usage over the caps",
			limits:       Limits{SessionCap: 500, TotalSessions: 501, RequestLimit: 7500, TotalRequests: 9000},
			sessionsLeft: 0,
			requestsLeft: 0,
		},
		{
			name:         "exactly at the caps",
			limits:       Limits{SessionCap: 500, TotalSessions: 500, RequestLimit: 7500, TotalRequests: 7500},
			sessionsLeft: 0,
			requestsLeft: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.limits.SessionsLeft(); got != tt.sessionsLeft {
				t.Errorf("SessionsLeft: expected %d, got %d", tt.sessionsLeft, got)
			}
			if got := tt.limits.RequestsLeft(); got != tt.requestsLeft {
				t.Errorf("RequestsLeft: expected %d, got %d", tt.requestsLeft, got)
			}
		})
	}
}

func TestMatch_ParsesVendorTimestamp(t *testing.T) {
	var m Match
	err := json.Unmarshal([]byte(`{"matchup_id":"1269","match_date":"3/30/2018 10:00:00 PM","home_team_name":"Luminosity"}`), &m)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := time.Date(2018, 3, 30, 22, 0, 0, 0, time.UTC)
	if !m.StartTime.Equal(want) {
		t.Errorf("Expected start time %v, got %v", want, m.StartTime)
	}
	if m.MatchDate != "3/30/2018 10:00:00 PM" {
		t.Errorf("Expected the raw timestamp to be preserved, got %q", m.MatchDate)
	}
}

func TestMatch_UnparseableTimestampFallsBackToRawString(t *testing.T) {
	var m Match
	err := json.Unmarshal([]byte(`{"matchup_id":"1269","match_date":"TBD"}`), &m)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !m.StartTime.IsZero() {
		t.Errorf("Expected zero start time for an unparseable date, got %v", m.StartTime)
	}
	if m.MatchDate != "TBD" {
		t.Errorf("Expected the raw string to survive, got %q", m.MatchDate)
	}
}

func TestCharacterRank_NormalizesBothNamingSchemes(t *testing.T) {
	smite := []byte(`{"god":"Anubis","god_id":1668,"player_id":"42","Rank":7,"Wins":30,"Losses":12}`)
	paladins := []byte(`{"champion":"Androxus","champion_id":"2205","player_id":7762,"Rank":"12","Wins":88,"Losses":70}`)

	var fromSmite, fromPaladins CharacterRank
	if err := json.Unmarshal(smite, &fromSmite); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := json.Unmarshal(paladins, &fromPaladins); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if fromSmite.CharacterName != "Anubis" || fromSmite.CharacterID != 1668 {
		t.Errorf("Unexpected Smite mapping: %+v", fromSmite)
	}
	if fromPaladins.CharacterName != "Androxus" || fromPaladins.CharacterID != 2205 {
		t.Errorf("Unexpected Paladins mapping: %+v", fromPaladins)
	}
	if fromPaladins.PlayerID != "7762" || fromPaladins.Rank != 12 {
		t.Errorf("Expected numeric wire values to normalize, got %+v", fromPaladins)
	}
}

func TestCharacterRank_MissingCharacterFieldIsAnError(t *testing.T) {
	var r CharacterRank
	if err := json.Unmarshal([]byte(`{"player_id":"42","Rank":7}`), &r); err == nil {
		t.Error("Expected an error for a rank entry without god or champion fields")
	}
}

func TestCharacter_MapsVendorFlags(t *testing.T) {
	smite := []byte(`{"id":1668,"Name":"Anubis","Title":"God of the Dead","Roles":"Mage","Pantheon":"Egyptian","OnFreeRotation":"true","latestGod":"n"}`)
	paladins := []byte(`{"id":2205,"Name":"Androxus","Title":"The Godslayer","Roles":"Flank","OnFreeRotation":"","latestChampion":"y"}`)

	var god, champion Character
	if err := json.Unmarshal(smite, &god); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := json.Unmarshal(paladins, &champion); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := Character{ID: 1668, Name: "Anubis", Title: "God of the Dead", Roles: "Mage", Pantheon: "Egyptian", OnFreeRotation: true}
	if diff := cmp.Diff(want, god); diff != "" {
		t.Errorf("Smite character mismatch (-want +got):\n%s", diff)
	}
	if !champion.Latest {
		t.Error("Expected latestChampion to map onto Latest")
	}
	if champion.OnFreeRotation {
		t.Error("Expected an empty OnFreeRotation flag to map to false")
	}
}

func TestCharacter_MissingIDIsAnError(t *testing.T) {
	var c Character
	if err := json.Unmarshal([]byte(`{"Name":"Anubis"}`), &c); err == nil {
		t.Error("Expected an error for a character entry without an id")
	}
}

func TestFlexInt64_AcceptsBothWireShapes(t *testing.T) {
	var v struct {
		Quoted flexInt64 `json:"quoted"`
		Bare   flexInt64 `json:"bare"`
		Null   flexInt64 `json:"null"`
	}
	if err := json.Unmarshal([]byte(`{"quoted":"1269","bare":1270,"null":null}`), &v); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v.Quoted != 1269 || v.Bare != 1270 || v.Null != 0 {
		t.Errorf("Unexpected values: %+v", v)
	}

	var bad struct {
		ID flexInt64 `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"id":"twelve"}`), &bad); err == nil {
		t.Error("Expected an error for a non-numeric id")
	}
}

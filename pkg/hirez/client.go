package hirez

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
)

// Version is the library version reported in the User-Agent header.
const Version = "0.1.0"

// ClientConfig configures a Client. DevID and AuthKey are the credentials
// issued by Hi-Rez Studios and are immutable for the client's lifetime.
type ClientConfig struct {
	DevID   string
	AuthKey string

	// DefaultEndpoint is used when a call does not override it.
	// Defaults to EndpointSmitePC.
	DefaultEndpoint Endpoint

	// DefaultLanguage is used for localized catalog calls when not
	// overridden. Defaults to LanguageEnglish.
	DefaultLanguage Language

	// BaseURLs overrides the built-in endpoint base URLs, keyed by endpoint.
	BaseURLs map[Endpoint]string

	// Timeout applies to the owned HTTP client. Defaults to 30 seconds.
	// Ignored when the client is built with NewClientWithHTTPClient.
	Timeout time.Duration

	UserAgent string

	// Logger receives debug output for issued requests and session
	// transitions. Discarded when nil.
	Logger log.Interface
}

func (cfg *ClientConfig) endpointOrDefault() Endpoint {
	if cfg.DefaultEndpoint != "" {
		return cfg.DefaultEndpoint
	}
	return EndpointSmitePC
}

func (cfg *ClientConfig) languageOrDefault() Language {
	if cfg.DefaultLanguage != "" {
		return cfg.DefaultLanguage
	}
	return LanguageEnglish
}

func (cfg *ClientConfig) userAgentOrDefault() string {
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	return fmt.Sprintf("go-hirez/%s [%s]", Version, runtime.Version())
}

func (cfg *ClientConfig) loggerOrDefault() log.Interface {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return &log.Logger{Handler: discard.Default, Level: log.ErrorLevel}
}

// Client is a Hi-Rez Studios API client. It exposes one method per vendor
// operation and owns a single ephemeral API session shared by all of them.
// Methods are safe for concurrent use.
type Client struct {
	cfg        *ClientConfig
	req        *requester
	httpClient *http.Client
}

// NewClient creates a new Client that owns its HTTP transport.
func NewClient(cfg *ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return NewClientWithHTTPClient(cfg, &http.Client{Timeout: timeout})
}

// NewClientWithHTTPClient creates a new Client using a caller-supplied HTTP
// client.
func NewClientWithHTTPClient(cfg *ClientConfig, httpClient *http.Client) *Client {
	return &Client{
		cfg:        cfg,
		req:        newRequester(cfg, httpClient),
		httpClient: httpClient,
	}
}

// Close releases the transport's idle connections. The vendor session is not
// torn down; it expires server-side.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// CallOption overrides a per-call default.
type CallOption func(*callOptions)

type callOptions struct {
	endpoint Endpoint
	language Language
}

// WithEndpoint directs a single call at the given endpoint instead of the
// configured default.
func WithEndpoint(e Endpoint) CallOption {
	return func(o *callOptions) { o.endpoint = e }
}

// WithLanguage localizes a single catalog call instead of the configured
// default.
func WithLanguage(l Language) CallOption {
	return func(o *callOptions) { o.language = l }
}

func (c *Client) options(opts []CallOption) callOptions {
	o := callOptions{
		endpoint: c.cfg.endpointOrDefault(),
		language: c.cfg.languageOrDefault(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Ping checks connectivity with the API. It requires no authentication and
// reports false, not an error, when the API answers without its success
// marker.
func (c *Client) Ping(ctx context.Context, opts ...CallOption) (bool, error) {
	o := c.options(opts)
	raw, err := c.req.unauthenticated(ctx, o.endpoint, "ping", nil)
	if err != nil {
		return false, err
	}
	return payloadReportsSuccess(raw), nil
}

// GetDataUsed returns the developer's usage limits for today.
func (c *Client) GetDataUsed(ctx context.Context, opts ...CallOption) (*Limits, error) {
	o := c.options(opts)
	raw, err := c.req.authenticated(ctx, o.endpoint, "getdataused", nil)
	if err != nil {
		return nil, err
	}

	// The vendor wraps the record in a one-element list.
	var list []Limits
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("getdataused: %w", err)}
	}
	if len(list) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("getdataused returned an empty list")}
	}
	limits := list[0]
	return &limits, nil
}

// GetEsportsSchedule returns the esports pro-league schedule as a set keyed
// by matchup id. Duplicate ids collapse to a single entry.
func (c *Client) GetEsportsSchedule(ctx context.Context, opts ...CallOption) (map[int64]Match, error) {
	o := c.options(opts)
	raw, err := c.req.authenticated(ctx, o.endpoint, "getesportsproleaguedetails", nil)
	if err != nil {
		return nil, err
	}

	var entries []Match
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("getesportsproleaguedetails: %w", err)}
	}
	schedule := make(map[int64]Match, len(entries))
	for _, m := range entries {
		schedule[m.MatchupID] = m
	}
	return schedule, nil
}

// GetFriends returns a player's friends list. An unknown player name and a
// privacy-restricted account both yield an empty slice, not an error.
// Privacy-masked rows are dropped.
func (c *Client) GetFriends(ctx context.Context, player string, opts ...CallOption) ([]Friend, error) {
	if player == "" {
		return nil, fmt.Errorf("player name must not be empty")
	}
	o := c.options(opts)
	raw, err := c.req.authenticated(ctx, o.endpoint, "getfriends", []Param{{Name: "player", Value: player}})
	if err != nil {
		return nil, err
	}

	var entries []Friend
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("getfriends: %w", err)}
	}
	friends := entries[:0]
	for _, f := range entries {
		if f.AccountID == accountIDPrivacySentinel {
			continue
		}
		friends = append(friends, f)
	}
	return friends, nil
}

// GetRanks returns a player's per-character rank records. Smite's "god" keys
// and Paladins' "champion" keys map onto the same normalized record. An
// unknown or privacy-restricted player yields an empty slice, not an error.
func (c *Client) GetRanks(ctx context.Context, player string, opts ...CallOption) ([]CharacterRank, error) {
	if player == "" {
		return nil, fmt.Errorf("player name must not be empty")
	}
	o := c.options(opts)

	method := "getgodranks"
	if o.endpoint.game() == gamePaladins {
		method = "getchampionranks"
	}
	raw, err := c.req.authenticated(ctx, o.endpoint, method, []Param{{Name: "player", Value: player}})
	if err != nil {
		return nil, err
	}

	var entries []CharacterRank
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("%s: %w", method, err)}
	}
	ranks := entries[:0]
	for _, r := range entries {
		if r.PlayerID == accountIDPrivacySentinel {
			continue
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}

// GetCharacters returns the playable-character catalog, localized to the
// call's language.
func (c *Client) GetCharacters(ctx context.Context, opts ...CallOption) ([]Character, error) {
	o := c.options(opts)

	method := "getgods"
	if o.endpoint.game() == gamePaladins {
		method = "getchampions"
	}
	raw, err := c.req.authenticated(ctx, o.endpoint, method, []Param{{Name: "languageCode", Value: o.language.Code()}})
	if err != nil {
		return nil, err
	}

	var characters []Character
	if err := json.Unmarshal(raw, &characters); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("%s: %w", method, err)}
	}
	return characters, nil
}

// GetSkins returns the skins available for one character, localized to the
// call's language.
func (c *Client) GetSkins(ctx context.Context, characterID int64, opts ...CallOption) ([]Skin, error) {
	o := c.options(opts)

	method := "getgodskins"
	if o.endpoint.game() == gamePaladins {
		method = "getchampionskins"
	}
	params := []Param{
		{Name: "characterId", Value: strconv.FormatInt(characterID, 10)},
		{Name: "languageCode", Value: o.language.Code()},
	}
	raw, err := c.req.authenticated(ctx, o.endpoint, method, params)
	if err != nil {
		return nil, err
	}

	var skins []Skin
	if err := json.Unmarshal(raw, &skins); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("%s: %w", method, err)}
	}
	return skins, nil
}

// GetRecommendedItems returns the recommended item builds for one character
// as a set keyed by item id. The vendor's corresponding Paladins method is
// non-functional, so calls against the Paladins endpoint fail with
// *UnsupportedOperationError before any request is made.
func (c *Client) GetRecommendedItems(ctx context.Context, characterID int64, opts ...CallOption) (map[int64]RecommendedItem, error) {
	o := c.options(opts)
	if o.endpoint.game() == gamePaladins {
		return nil, &UnsupportedOperationError{
			Method:   "getchampionrecommendeditems",
			Endpoint: o.endpoint,
			Reason:   "the vendor's recommended-items method returns no data for Paladins",
		}
	}

	params := []Param{
		{Name: "characterId", Value: strconv.FormatInt(characterID, 10)},
		{Name: "languageCode", Value: o.language.Code()},
	}
	raw, err := c.req.authenticated(ctx, o.endpoint, "getgodrecommendeditems", params)
	if err != nil {
		return nil, err
	}

	var entries []RecommendedItem
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("getgodrecommendeditems: %w", err)}
	}
	items := make(map[int64]RecommendedItem, len(entries))
	for _, item := range entries {
		items[item.ItemID] = item
	}
	return items, nil
}

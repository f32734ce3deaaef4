package nhlfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mtkallio/playoff-pool/internal/domain/gamelog"
	"github.com/mtkallio/playoff-pool/internal/domain/player"
	"github.com/mtkallio/playoff-pool/internal/platform/logging"
	"github.com/mtkallio/playoff-pool/internal/platform/resilience"
	"github.com/mtkallio/playoff-pool/internal/usecase"
)

const defaultBaseURL = "https://api-web.nhle.com/v1"

var errFeedTransient = crerr.New("nhl feed transient failure")

type ClientConfig struct {
	HTTPClient       *http.Client
	BaseURL          string
	Timeout          time.Duration
	MaxRetries       int
	Logger           *logging.Logger
	CircuitEnabled   bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// Client pulls playoff skater and goalie data from the public NHL feed
// and maps it onto pool domain types.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq),
		circuitEnabled: cfg.CircuitEnabled,
	}
}

type feedPlayerRecord struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Team           string  `json:"team"`
	Position       string  `json:"position"`
	BirthDate      string  `json:"birthDate"`
	BirthCountry   string  `json:"birthCountry"`
	GamesPlayed    int     `json:"gamesPlayed"`
	Goals          int     `json:"goals"`
	Assists        int     `json:"assists"`
	PlusMinus      int     `json:"plusMinus"`
	PenaltyMinutes int     `json:"penaltyMinutes"`
	Wins           int     `json:"wins"`
	Shutouts       int     `json:"shutouts"`
	SavePct        float64 `json:"savePct"`
}

type feedPlayersEnvelope struct {
	Players []feedPlayerRecord `json:"players"`
}

type feedGameLogRecord struct {
	GameID    int64   `json:"gameId"`
	PlayerID  string  `json:"playerId"`
	GameStart string  `json:"gameStart"`
	Goals     int     `json:"goals"`
	Assists   int     `json:"assists"`
	PlusMinus int     `json:"plusMinus"`
	Win       bool    `json:"win"`
	Shutout   bool    `json:"shutout"`
	Shots     int     `json:"shots"`
	Saves     int     `json:"saves"`
	SavePct   float64 `json:"savePct"`
}

type feedGameLogsEnvelope struct {
	GameLogs []feedGameLogRecord `json:"gameLogs"`
}

func (c *Client) FetchPlayers(ctx context.Context) ([]player.Player, error) {
	var envelope feedPlayersEnvelope
	if err := c.doJSON(ctx, "/playoff-pool/players", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}

	out := make([]player.Player, 0, len(envelope.Players))
	for _, record := range envelope.Players {
		mapped, err := mapFeedPlayer(record)
		if err != nil {
			c.logger.WarnContext(ctx, "skip malformed feed player", "player_id", record.ID, "error", err)
			continue
		}
		out = append(out, mapped)
	}
	return out, nil
}

func (c *Client) FetchGameLogs(ctx context.Context, afterGameID int64) ([]gamelog.Entry, error) {
	query := map[string]string{}
	if afterGameID > 0 {
		query["afterGameId"] = strconv.FormatInt(afterGameID, 10)
	}

	var envelope feedGameLogsEnvelope
	if err := c.doJSON(ctx, "/playoff-pool/game-logs", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch game logs after game %d: %w", afterGameID, err)
	}

	out := make([]gamelog.Entry, 0, len(envelope.GameLogs))
	for _, record := range envelope.GameLogs {
		mapped, err := mapFeedGameLog(record)
		if err != nil {
			c.logger.WarnContext(ctx, "skip malformed feed game log", "game_id", record.GameID, "player_id", record.PlayerID, "error", err)
			continue
		}
		out = append(out, mapped)
	}
	return out, nil
}

func mapFeedPlayer(record feedPlayerRecord) (player.Player, error) {
	id := strings.TrimSpace(record.ID)
	if id == "" {
		return player.Player{}, crerr.New("player id is empty")
	}

	position := player.Position(strings.ToUpper(strings.TrimSpace(record.Position)))
	if !position.IsSkater() && !position.IsGoalie() {
		return player.Player{}, crerr.Newf("unknown position %q", record.Position)
	}

	birthDate, err := time.Parse("2006-01-02", strings.TrimSpace(record.BirthDate))
	if err != nil {
		return player.Player{}, crerr.Wrapf(err, "parse birth date %q", record.BirthDate)
	}

	return player.Player{
		ID:           id,
		Name:         strings.TrimSpace(record.Name),
		Team:         strings.TrimSpace(record.Team),
		Position:     position,
		BirthDate:    birthDate,
		BirthCountry: strings.ToUpper(strings.TrimSpace(record.BirthCountry)),
		Stats: player.SeasonStats{
			GamesPlayed:    record.GamesPlayed,
			Goals:          record.Goals,
			Assists:        record.Assists,
			PlusMinus:      record.PlusMinus,
			PenaltyMinutes: record.PenaltyMinutes,
			Wins:           record.Wins,
			Shutouts:       record.Shutouts,
			SavePct:        record.SavePct,
		},
	}, nil
}

func mapFeedGameLog(record feedGameLogRecord) (gamelog.Entry, error) {
	if record.GameID <= 0 {
		return gamelog.Entry{}, crerr.New("game id must be positive")
	}
	playerID := strings.TrimSpace(record.PlayerID)
	if playerID == "" {
		return gamelog.Entry{}, crerr.New("player id is empty")
	}

	gameStart, err := time.Parse(time.RFC3339, strings.TrimSpace(record.GameStart))
	if err != nil {
		return gamelog.Entry{}, crerr.Wrapf(err, "parse game start %q", record.GameStart)
	}

	return gamelog.Entry{
		GameID:    record.GameID,
		PlayerID:  playerID,
		GameStart: gameStart,
		Goals:     record.Goals,
		Assists:   record.Assists,
		PlusMinus: record.PlusMinus,
		Win:       record.Win,
		Shutout:   record.Shutout,
		Shots:     record.Shots,
		Saves:     record.Saves,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nhl feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: nhl feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errFeedTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errFeedTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errFeedTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errFeedTransient, "feed status=%d", resp.StatusCode)
			default:
				return nil, crerr.Newf("feed status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("feed request failed")
	}
	c.logger.WarnContext(ctx, "nhl feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

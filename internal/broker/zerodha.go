package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	apperrors "options-strategist/internal/errors"
	"options-strategist/internal/greeks"
	"options-strategist/internal/models"
	"options-strategist/pkg/utils"
)

// quoteBatchSize is the number of symbols per Kite quote request. The
// API caps one request at 500 instruments.
const quoteBatchSize = 250

// vixSymbol is the Kite instrument for India VIX.
const vixSymbol = "NSE:INDIA VIX"

// ZerodhaProvider implements ChainProvider for Zerodha Kite Connect.
type ZerodhaProvider struct {
	client        *kiteconnect.Client
	apiKey        string
	apiSecret     string
	accessToken   string
	tokenPath     string
	authenticated bool
	instruments   []kiteconnect.Instrument
	mu            sync.RWMutex
}

// ZerodhaConfig holds configuration for the Zerodha provider.
type ZerodhaConfig struct {
	APIKey      string
	APISecret   string
	AccessToken string
	TokenPath   string
}

// NewZerodhaProvider creates a new Zerodha chain provider. A saved
// session is loaded from disk when no access token is supplied.
func NewZerodhaProvider(cfg ZerodhaConfig) *ZerodhaProvider {
	client := kiteconnect.New(cfg.APIKey)

	tokenPath := cfg.TokenPath
	if tokenPath == "" {
		homeDir, _ := os.UserHomeDir()
		tokenPath = filepath.Join(homeDir, ".config", "options-strategist", "session.json")
	}

	z := &ZerodhaProvider{
		client:    client,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		tokenPath: tokenPath,
	}

	if cfg.AccessToken != "" {
		z.accessToken = cfg.AccessToken
		z.authenticated = true
		client.SetAccessToken(cfg.AccessToken)
	} else {
		_ = z.loadSession()
	}

	return z
}

// sessionData represents persisted session data.
type sessionData struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LoginURL returns the Zerodha login URL for the OAuth flow.
func (z *ZerodhaProvider) LoginURL() string {
	return z.client.GetLoginURL()
}

// CompleteLogin completes the OAuth flow with the request token and
// persists the session.
func (z *ZerodhaProvider) CompleteLogin(ctx context.Context, requestToken string) error {
	session, err := z.client.GenerateSession(requestToken, z.apiSecret)
	if err != nil {
		return fmt.Errorf("failed to generate session: %w", err)
	}

	z.mu.Lock()
	z.accessToken = session.AccessToken
	z.authenticated = true
	z.client.SetAccessToken(session.AccessToken)
	z.mu.Unlock()

	if err := z.saveSession(session.AccessToken); err != nil {
		// Session is still valid for this process
		fmt.Printf("warning: failed to persist session: %v\n", err)
	}

	return nil
}

// Logout invalidates the session and clears stored credentials.
func (z *ZerodhaProvider) Logout(ctx context.Context) error {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.authenticated {
		if _, err := z.client.InvalidateAccessToken(); err != nil {
			fmt.Printf("warning: failed to invalidate token: %v\n", err)
		}
	}

	z.accessToken = ""
	z.authenticated = false

	if err := os.Remove(z.tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// IsAuthenticated returns whether the provider is authenticated.
func (z *ZerodhaProvider) IsAuthenticated() bool {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.authenticated
}

func (z *ZerodhaProvider) loadSession() error {
	data, err := os.ReadFile(z.tokenPath)
	if err != nil {
		return err
	}

	var session sessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return err
	}

	// Zerodha tokens expire at 6 AM IST the next day
	if time.Now().After(session.ExpiresAt) {
		return fmt.Errorf("session expired")
	}

	z.mu.Lock()
	z.accessToken = session.AccessToken
	z.authenticated = true
	z.client.SetAccessToken(session.AccessToken)
	z.mu.Unlock()

	return nil
}

func (z *ZerodhaProvider) saveSession(accessToken string) error {
	dir := filepath.Dir(z.tokenPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	now := time.Now().In(utils.IndiaLocation)
	expiresAt := time.Date(now.Year(), now.Month(), now.Day()+1, 6, 0, 0, 0, utils.IndiaLocation)

	session := sessionData{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return os.WriteFile(z.tokenPath, data, 0600)
}

// spotSymbolFor maps an underlying name to its Kite index or equity
// quote symbol.
func spotSymbolFor(symbol string) string {
	switch symbol {
	case "NIFTY":
		return "NSE:NIFTY 50"
	case "BANKNIFTY":
		return "NSE:NIFTY BANK"
	case "FINNIFTY":
		return "NSE:NIFTY FIN SERVICE"
	case "MIDCPNIFTY":
		return "NSE:NIFTY MID SELECT"
	case "SENSEX":
		return "BSE:SENSEX"
	case "BANKEX":
		return "BSE:BANKEX"
	default:
		return "NSE:" + symbol
	}
}

// GetSpot fetches the spot price of an underlying.
func (z *ZerodhaProvider) GetSpot(ctx context.Context, symbol string) (float64, error) {
	if !z.IsAuthenticated() {
		return 0, apperrors.ErrNotAuthenticated
	}

	sym := spotSymbolFor(symbol)
	quotes, err := utils.RetryWithResult(ctx, utils.DefaultRetryConfig(), func() (kiteconnect.Quote, error) {
		return z.client.GetQuote(sym)
	})
	if err != nil {
		return 0, apperrors.NewChainError(symbol, "failed to get spot quote", err)
	}
	q, ok := quotes[sym]
	if !ok {
		return 0, apperrors.NewChainError(symbol, "spot quote missing from response", apperrors.ErrSymbolNotFound)
	}
	return q.LastPrice, nil
}

// GetVIX fetches the current India VIX level. A failed lookup is not
// fatal: strategy construction simply loses its volatility gate, so
// callers get zero and a non-nil error to log.
func (z *ZerodhaProvider) GetVIX(ctx context.Context) (float64, error) {
	if !z.IsAuthenticated() {
		return 0, apperrors.ErrNotAuthenticated
	}

	quotes, err := z.client.GetQuote(vixSymbol)
	if err != nil {
		return 0, fmt.Errorf("failed to get VIX: %w", err)
	}
	q, ok := quotes[vixSymbol]
	if !ok {
		return 0, fmt.Errorf("VIX quote missing from response")
	}
	return q.LastPrice, nil
}

// GetOptionChain fetches and assembles the option chain for a symbol.
// A zero expiry selects the nearest available one.
func (z *ZerodhaProvider) GetOptionChain(ctx context.Context, symbol string, expiry time.Time) (*models.OptionChain, error) {
	if !z.IsAuthenticated() {
		return nil, apperrors.ErrNotAuthenticated
	}

	spot, err := z.GetSpot(ctx, symbol)
	if err != nil {
		return nil, err
	}

	vix, err := z.GetVIX(ctx)
	if err != nil {
		vix = 0
	}

	instruments, err := z.getInstruments()
	if err != nil {
		return nil, apperrors.NewChainError(symbol, "failed to get instruments", err)
	}

	options, lotSize, chainExpiry, err := filterOptions(instruments, symbol, expiry)
	if err != nil {
		return nil, err
	}
	if lotSize == 0 {
		lotSize = LotSizeFor(symbol)
	}

	days := daysToExpiry(chainExpiry)

	// Batch quote lookups, then assemble strike rows
	quotes, err := z.batchQuotes(ctx, options)
	if err != nil {
		return nil, apperrors.NewChainError(symbol, "failed to get option quotes", err)
	}

	strikeMap := make(map[float64]*models.OptionStrike)
	for _, inst := range options {
		key := fmt.Sprintf("%s:%s", inst.Exchange, inst.Tradingsymbol)
		q, ok := quotes[key]
		if !ok {
			continue
		}

		row, ok := strikeMap[inst.StrikePrice]
		if !ok {
			row = &models.OptionStrike{Strike: inst.StrikePrice}
			strikeMap[inst.StrikePrice] = row
		}

		kind := models.CallOption
		if inst.InstrumentType == "PE" {
			kind = models.PutOption
		}

		data := &models.OptionData{
			Symbol: inst.Tradingsymbol,
			LTP:    q.LastPrice,
			OI:     int64(q.OI),
			Volume: int64(q.Volume),
			Greeks: greeks.Estimate(spot, inst.StrikePrice, days, kind, vix),
		}

		if kind == models.CallOption {
			row.Call = data
		} else {
			row.Put = data
		}
	}

	strikes := make([]models.OptionStrike, 0, len(strikeMap))
	for _, row := range strikeMap {
		strikes = append(strikes, *row)
	}
	sort.Slice(strikes, func(i, j int) bool { return strikes[i].Strike < strikes[j].Strike })

	if len(strikes) == 0 {
		return nil, apperrors.NewChainError(symbol, "no option quotes returned", apperrors.ErrEmptyChain)
	}

	return &models.OptionChain{
		Symbol:       symbol,
		SpotPrice:    spot,
		VIX:          vix,
		Expiry:       chainExpiry,
		DaysToExpiry: days,
		LotSize:      lotSize,
		Strikes:      strikes,
	}, nil
}

// getInstruments returns the cached NFO+BFO instrument dump, fetching
// it once per process.
func (z *ZerodhaProvider) getInstruments() ([]kiteconnect.Instrument, error) {
	z.mu.RLock()
	cached := z.instruments
	z.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	instruments, err := z.client.GetInstruments()
	if err != nil {
		return nil, err
	}

	z.mu.Lock()
	z.instruments = instruments
	z.mu.Unlock()

	return instruments, nil
}

// filterOptions narrows the instrument dump to the symbol's CE/PE rows
// at the requested expiry. A zero expiry selects the nearest future
// one.
func filterOptions(instruments []kiteconnect.Instrument, symbol string, expiry time.Time) ([]kiteconnect.Instrument, int, time.Time, error) {
	var candidates []kiteconnect.Instrument
	for _, inst := range instruments {
		if inst.Name != symbol {
			continue
		}
		if inst.InstrumentType != "CE" && inst.InstrumentType != "PE" {
			continue
		}
		candidates = append(candidates, inst)
	}
	if len(candidates) == 0 {
		return nil, 0, time.Time{}, apperrors.NewChainError(symbol, "no option instruments found", apperrors.ErrSymbolNotFound)
	}

	target := expiry
	if target.IsZero() {
		// Nearest expiry on or after today
		today := time.Now().Truncate(24 * time.Hour)
		for _, inst := range candidates {
			e := inst.Expiry.Time
			if e.Before(today) {
				continue
			}
			if target.IsZero() || e.Before(target) {
				target = e
			}
		}
		if target.IsZero() {
			return nil, 0, time.Time{}, apperrors.NewChainError(symbol, "no live expiry found", apperrors.ErrEmptyChain)
		}
	}

	var options []kiteconnect.Instrument
	lotSize := 0
	for _, inst := range candidates {
		if !sameDay(inst.Expiry.Time, target) {
			continue
		}
		options = append(options, inst)
		if lotSize == 0 {
			lotSize = int(inst.LotSize)
		}
	}
	if len(options) == 0 {
		return nil, 0, time.Time{}, apperrors.NewChainError(symbol, "no options at requested expiry", apperrors.ErrEmptyChain)
	}

	return options, lotSize, target, nil
}

// batchQuotes fetches quotes for all option instruments in chunks,
// retrying transient failures per chunk.
func (z *ZerodhaProvider) batchQuotes(ctx context.Context, options []kiteconnect.Instrument) (kiteconnect.Quote, error) {
	all := make(kiteconnect.Quote)
	for start := 0; start < len(options); start += quoteBatchSize {
		end := start + quoteBatchSize
		if end > len(options) {
			end = len(options)
		}
		symbols := make([]string, 0, end-start)
		for _, inst := range options[start:end] {
			symbols = append(symbols, fmt.Sprintf("%s:%s", inst.Exchange, inst.Tradingsymbol))
		}
		quotes, err := utils.RetryWithResult(ctx, utils.DefaultRetryConfig(), func() (kiteconnect.Quote, error) {
			return z.client.GetQuote(symbols...)
		})
		if err != nil {
			return nil, err
		}
		for k, v := range quotes {
			all[k] = v
		}
	}
	return all, nil
}

func daysToExpiry(expiry time.Time) float64 {
	d := time.Until(expiry).Hours() / 24
	if d < 0 {
		return 0
	}
	return math.Round(d*10) / 10
}

func sameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

var _ ChainProvider = (*ZerodhaProvider)(nil)

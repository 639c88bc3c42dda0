package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"ClubLedger/internal/aggregate"
	"ClubLedger/internal/ledger"
	"ClubLedger/internal/model"
	"ClubLedger/internal/rate"
	"ClubLedger/internal/roster"
	"ClubLedger/internal/schedule"
	"ClubLedger/internal/store"

	"github.com/google/logger"
)

// Snapshot is one parsed read of all four tables. Derived views are
// recomputed from a snapshot on every request; the snapshot itself is
// cached for a bounded interval as an optimization only.
type Snapshot struct {
	Transactions []model.Transaction
	Schedule     []model.ScheduleEntry
	Rates        []model.RateEntry
	Members      []model.Member
}

// ErrInvalidSubmission marks submissions rejected before touching the
// store.
var ErrInvalidSubmission = errors.New("invalid submission")

// Draw is one member's submitted number on the input form.
type Draw struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
}

// Tracker orchestrates the load-transform pipeline over the store.
type Tracker struct {
	mu       sync.Mutex
	store    store.Store
	ttl      time.Duration
	fallback int

	snap     *Snapshot
	loadedAt time.Time

	now func() time.Time
}

// New creates a Tracker. ttl bounds how long a snapshot is served before
// it is reloaded; fallback is the amount charged for numbers outside the
// rate table (0 keeps the default).
func New(st store.Store, ttl time.Duration, fallback int) *Tracker {
	if fallback <= 0 {
		fallback = rate.DefaultFallback
	}
	return &Tracker{store: st, ttl: ttl, fallback: fallback, now: time.Now}
}

// Snapshot returns the cached snapshot, reloading it when stale. If a
// reload fails but an earlier snapshot exists, the stale one is served:
// a storage hiccup must not blank a dashboard that was already showing
// data.
func (t *Tracker) Snapshot() (*Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.snap != nil && t.now().Sub(t.loadedAt) < t.ttl {
		return t.snap, nil
	}

	snap, err := t.load()
	if err != nil {
		if t.snap != nil {
			logger.Errorf("snapshot reload failed, serving stale data: %v", err)
			return t.snap, nil
		}
		return nil, err
	}
	t.snap = snap
	t.loadedAt = t.now()
	return snap, nil
}

// Refresh reloads the snapshot immediately, regardless of age.
func (t *Tracker) Refresh() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap, err := t.load()
	if err != nil {
		return err
	}
	t.snap = snap
	t.loadedAt = t.now()
	return nil
}

// Invalidate drops the cached snapshot so the next read hits the store.
// Called after every write.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap = nil
}

func (t *Tracker) load() (*Snapshot, error) {
	txHeader, txRows, err := t.readTable(store.TableTransactions)
	if err != nil {
		return nil, err
	}
	schedHeader, schedRows, err := t.readTable(store.TableSchedule)
	if err != nil {
		return nil, err
	}
	rateHeader, rateRows, err := t.readTable(store.TableRates)
	if err != nil {
		return nil, err
	}
	memberHeader, memberRows, err := t.readTable(store.TableMembers)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Transactions: ledger.ParseRows(txHeader, txRows),
		Schedule:     schedule.ParseRows(schedHeader, schedRows),
		Rates:        rate.ParseRows(rateHeader, rateRows),
		Members:      roster.ParseRows(memberHeader, memberRows),
	}, nil
}

func (t *Tracker) readTable(table string) ([]string, [][]string, error) {
	header, rows, err := t.store.Read(table)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", table, err)
	}
	if err := store.CheckColumns(table, header); err != nil {
		return nil, nil, err
	}
	return header, rows, nil
}

// Seasons returns the selectable seasons: every schedule season plus the
// "ALL" pseudo-season.
func (t *Tracker) Seasons() ([]string, error) {
	snap, err := t.Snapshot()
	if err != nil {
		return nil, err
	}
	return append(schedule.Seasons(snap.Schedule), model.SeasonAll), nil
}

// Views runs the full pipeline for one season selection and returns
// every derived view. An empty season means "ALL".
func (t *Tracker) Views(season string) (*model.SeasonViews, error) {
	if season == "" {
		season = model.SeasonAll
	}
	snap, err := t.Snapshot()
	if err != nil {
		return nil, err
	}

	canonical := ledger.Canonicalize(snap.Transactions)
	joined := schedule.Join(canonical, snap.Schedule)
	slice := schedule.FilterSeason(joined, season)
	eligible := roster.RankingTargets(snap.Members)

	ranking, grand := aggregate.Ranking(slice, eligible)
	return &model.SeasonViews{
		Season:     season,
		Ranking:    ranking,
		GrandTotal: grand,
		Cumulative: aggregate.Cumulative(slice, eligible),
		BestDraws:  aggregate.BestDraws(slice, aggregate.TopN),
		WorstDraws: aggregate.WorstDraws(slice, aggregate.TopN),
		Averages:   aggregate.Averages(slice),
		Missed:     aggregate.MissedDraws(slice),
		History:    slice,
	}, nil
}

// OpenMatches returns the home games open for input under the given
// season selection ("ALL" targets the most recent season).
func (t *Tracker) OpenMatches(season string) ([]model.ScheduleEntry, error) {
	if season == "" {
		season = model.SeasonAll
	}
	snap, err := t.Snapshot()
	if err != nil {
		return nil, err
	}
	return schedule.HomeMatches(schedule.CurrentSlice(snap.Schedule, season)), nil
}

// InputMembers returns the members shown on the submission form.
func (t *Tracker) InputMembers() ([]model.Member, error) {
	snap, err := t.Snapshot()
	if err != nil {
		return nil, err
	}
	return roster.Active(snap.Members), nil
}

// SubmitDraws converts one match's drawn numbers into ledger rows and
// appends them. Amounts are resolved against the current rate table and
// frozen into the rows; later rate edits never touch them. Members with
// number 0 submitted nothing and get no row. Corrections are new
// appends: canonicalization picks the latest row per member per match.
func (t *Tracker) SubmitDraws(season, matchID, date string, draws []Draw) ([]model.Transaction, error) {
	if season == "" || season == model.SeasonAll {
		return nil, fmt.Errorf("%w: need a concrete season, got %q", ErrInvalidSubmission, season)
	}
	if matchID == "" {
		return nil, fmt.Errorf("%w: missing match_id", ErrInvalidSubmission)
	}

	snap, err := t.Snapshot()
	if err != nil {
		return nil, err
	}
	table := rate.NewTable(snap.Rates)
	table.Fallback = t.fallback
	stamp := t.now()

	var txs []model.Transaction
	var rows [][]string
	for _, d := range draws {
		if d.Number <= model.NumberNone || d.Name == "" {
			continue
		}
		tx := model.Transaction{
			Date:      date,
			Season:    season,
			MatchID:   matchID,
			Name:      d.Name,
			Number:    d.Number,
			Amount:    table.Resolve(d.Number),
			Timestamp: stamp,
		}
		txs = append(txs, tx)
		rows = append(rows, ledger.Row(tx))
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if err := t.store.Append(store.TableTransactions, rows); err != nil {
		return nil, fmt.Errorf("append transactions: %w", err)
	}
	t.Invalidate()
	logger.Infof("appended %d draws for season=%s match=%s", len(rows), season, matchID)
	return txs, nil
}

// ReplaceRates swaps the whole rate table.
func (t *Tracker) ReplaceRates(entries []model.RateEntry) error {
	err := t.store.Replace(store.TableRates, store.Columns[store.TableRates], rate.Rows(entries))
	if err != nil {
		return fmt.Errorf("replace rates: %w", err)
	}
	t.Invalidate()
	logger.Infof("replaced rate table with %d entries", len(entries))
	return nil
}

// ReplaceMembers swaps the whole member table.
func (t *Tracker) ReplaceMembers(members []model.Member) error {
	err := t.store.Replace(store.TableMembers, store.Columns[store.TableMembers], roster.Rows(members))
	if err != nil {
		return fmt.Errorf("replace members: %w", err)
	}
	t.Invalidate()
	logger.Infof("replaced member table with %d members", len(members))
	return nil
}

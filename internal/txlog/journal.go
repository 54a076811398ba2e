package txlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/cdp-wallet/internal/common"
	"github.com/AlexZinkM/cdp-wallet/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"
	fileExt    = ".jsonl"
)

// Journal is an append-only record of submission attempts, one JSON line per
// attempt in <dir>/transactions/<agent>/<YYYY-MM-DD>.jsonl (UTC dates).
type Journal struct {
	dir    string
	logger *zap.Logger
	mu     sync.Mutex
}

// New creates a journal rooted at dir. Nothing is created until the first Append.
func New(dir string, logger *zap.Logger) *Journal {
	return &Journal{dir: dir, logger: logger}
}

func (j *Journal) agentDir(agent string) string {
	return filepath.Join(j.dir, "transactions", agent)
}

func (j *Journal) dayFile(agent string, day time.Time) string {
	return filepath.Join(j.agentDir(agent), day.UTC().Format(dateLayout)+fileExt)
}

// Append writes tx to its agent's file for the day of tx.Timestamp.
// Missing ID and Timestamp are filled in and the stored record is returned.
func (j *Journal) Append(tx model.Transaction) (model.Transaction, error) {
	if tx.Agent == "" {
		return tx, fmt.Errorf("transaction has no agent")
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now().UTC()
	}

	line, err := json.Marshal(tx)
	if err != nil {
		return tx, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(j.agentDir(tx.Agent), 0755); err != nil {
		return tx, fmt.Errorf("failed to create journal directory: %w", err)
	}

	f, err := os.OpenFile(j.dayFile(tx.Agent, tx.Timestamp), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return tx, fmt.Errorf("failed to open journal file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return tx, fmt.Errorf("failed to write journal entry: %w", err)
	}

	j.logger.Debug("Transaction journaled",
		zap.String("id", tx.ID),
		zap.String("agent", tx.Agent),
		zap.String("status", string(tx.Status)))
	return tx, nil
}

// List returns one agent's records for a UTC day in write order.
func (j *Journal) List(agent string, day time.Time) ([]model.Transaction, error) {
	return j.readFile(j.dayFile(agent, day))
}

// Query returns one agent's records matching req, newest first.
func (j *Journal) Query(agent string, req *model.LogRequest) ([]model.Transaction, error) {
	if req == nil {
		req = &model.LogRequest{}
	}

	days, err := j.days(agent)
	if err != nil {
		return nil, err
	}

	result := make([]model.Transaction, 0)
	for _, day := range days {
		// whole-day pruning before reading the file
		if req.From != nil && day.Add(24*time.Hour).Before(*req.From) {
			continue
		}
		if req.To != nil && day.After(*req.To) {
			continue
		}

		txs, err := j.List(agent, day)
		if err != nil {
			return nil, err
		}
		for _, tx := range txs {
			if req.Match(tx) {
				result = append(result, tx)
			}
		}
	}

	// Sort by time DESC (newest first)
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Timestamp.After(result[b].Timestamp)
	})
	return result, nil
}

// Last returns the newest record of agent with the given status, if any.
func (j *Journal) Last(agent string, status model.TransactionStatus) (*model.Transaction, error) {
	days, err := j.days(agent)
	if err != nil {
		return nil, err
	}

	for i := len(days) - 1; i >= 0; i-- {
		txs, err := j.List(agent, days[i])
		if err != nil {
			return nil, err
		}
		var last *model.Transaction
		for k := range txs {
			if txs[k].Status != status {
				continue
			}
			if last == nil || !txs[k].Timestamp.Before(last.Timestamp) {
				last = &txs[k]
			}
		}
		if last != nil {
			return last, nil
		}
	}
	return nil, nil
}

// Report aggregates the given agents' records for a UTC day.
func (j *Journal) Report(day time.Time, agents []string) (*model.DailyReport, error) {
	report := &model.DailyReport{
		Date:   day.UTC().Format(dateLayout),
		Agents: make([]model.AgentReport, 0, len(agents)),
	}

	for _, agent := range agents {
		txs, err := j.List(agent, day)
		if err != nil {
			return nil, err
		}

		sentETH, sentUSDC := new(big.Int), new(big.Int)
		ar := model.AgentReport{Agent: agent, Count: len(txs)}
		for _, tx := range txs {
			switch tx.Status {
			case model.TransactionStatusSubmitted:
				ar.Submitted++
			case model.TransactionStatusFailed:
				ar.Failed++
				continue
			}

			raw, ok := new(big.Int).SetString(tx.RawAmount, 10)
			if !ok {
				j.logger.Warn("Skipping journal entry with bad raw amount",
					zap.String("id", tx.ID), zap.String("raw", tx.RawAmount))
				continue
			}
			switch tx.Asset {
			case model.AssetNative:
				sentETH.Add(sentETH, raw)
			case model.AssetToken:
				sentUSDC.Add(sentUSDC, raw)
			}
		}
		ar.SentETH = common.WeiToETH(sentETH)
		ar.SentUSDC = common.MicroToUSDC(sentUSDC)

		report.Total += ar.Count
		report.Submitted += ar.Submitted
		report.Failed += ar.Failed
		report.Agents = append(report.Agents, ar)
	}
	return report, nil
}

// days lists the UTC days that have a file for agent, oldest first.
func (j *Journal) days(agent string) ([]time.Time, error) {
	entries, err := os.ReadDir(j.agentDir(agent))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read journal directory: %w", err)
	}

	days := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		day, err := time.Parse(dateLayout, strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(a, b int) bool { return days[a].Before(days[b]) })
	return days, nil
}

func (j *Journal) readFile(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Transaction{}, nil
		}
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}
	defer f.Close()

	txs := make([]model.Transaction, 0)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var tx model.Transaction
		if err := json.Unmarshal([]byte(line), &tx); err != nil {
			j.logger.Warn("Skipping malformed journal line",
				zap.String("file", path), zap.Int("line", lineNo), zap.Error(err))
			continue
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal file: %w", err)
	}
	return txs, nil
}

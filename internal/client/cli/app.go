package cli

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/proofkeeper/internal/account"
	"github.com/dmitrijs2005/proofkeeper/internal/client/client"
	"github.com/dmitrijs2005/proofkeeper/internal/client/config"
	"github.com/dmitrijs2005/proofkeeper/internal/client/models"
	"github.com/dmitrijs2005/proofkeeper/internal/client/poe"
	"github.com/dmitrijs2005/proofkeeper/internal/client/repositories/history"
	"github.com/dmitrijs2005/proofkeeper/internal/client/services"
	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/filex"
	"github.com/dmitrijs2005/proofkeeper/internal/logging"
	"github.com/dmitrijs2005/proofkeeper/internal/rpc"
)

const (
	unlockAttempts = 3
	historyShown   = 5
	pingTimeout    = 3 * time.Second
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// node is the ledger client surface the app uses.
type node interface {
	pinger
	poe.Ledger
	services.Ledger
	QueryProof(ctx context.Context, digest string) (rpc.Proof, error)
	EvidenceDownloadURL(ctx context.Context, digest string) (string, error)
	Close() error
}

type App struct {
	config   *config.Config
	db       *sql.DB
	ledger   node
	keystore services.KeystoreService
	history  history.Repository
	logger   logging.Logger
	logFile  io.Closer
	out      io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	for _, path := range []string{c.LogFile, c.DatabaseFile} {
		if _, err := filex.EnsureSubdDir(filepath.Dir(path)); err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger := logging.NewJSONLogger(f, slog.LevelInfo)

	db, err := client.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	ledger, err := client.NewLedgerClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		_ = f.Close()
		return nil, err
	}

	return &App{
		config:   c,
		db:       db,
		ledger:   ledger,
		keystore: services.NewKeystoreService(db),
		history:  history.NewSQLiteRepository(db),
		logger:   logger,
		logFile:  f,
		out:      os.Stdout,
	}, nil
}

// Unlock opens the local account, creating one on first start.
func (a *App) Unlock(ctx context.Context) (*account.KeyPair, error) {
	ok, err := a.keystore.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return a.createAccount(ctx)
	}

	for i := 0; i < unlockAttempts; i++ {
		pw, err := GetPassword(a.out, "Keystore password: ")
		if err != nil {
			return nil, err
		}
		kp, err := a.keystore.Unlock(ctx, pw)
		common.WipeByteArray(pw)
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Wrong password")
			continue
		}
		if err != nil {
			return nil, err
		}
		return kp, nil
	}
	return nil, client.ErrUnauthorized
}

func (a *App) createAccount(ctx context.Context) (*account.KeyPair, error) {
	fmt.Fprintln(a.out, "No account found, creating a new one.")

	pw, err := GetPassword(a.out, "New keystore password: ")
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(pw)

	confirm, err := GetPassword(a.out, "Repeat password: ")
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(pw, confirm) {
		return nil, ErrPasswordMismatch
	}

	kp, err := a.keystore.Create(ctx, pw)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "Account created: %s\n", kp.Address())
	a.logger.Info(ctx, "account created", "address", kp.Address())
	return kp, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	kp, err := a.Unlock(ctx)
	if err != nil {
		return err
	}
	defer kp.Wipe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tx := services.NewTxService(a.ledger, a.history, kp, a.config.TxMortality, a.logger)
	p := tea.NewProgram(poe.New(ctx, a.ledger, tx, a.logger), tea.WithContext(ctx))

	go a.StartOnlineStatusWatcher(ctx, a.ledger, a.config.OnlineCheckInterval, func(online bool) {
		p.Send(poe.OnlineMsg{Online: online})
	})

	final, err := p.Run()
	if m, ok := final.(poe.Model); ok {
		m.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	return a.printHistory(ctx)
}

func (a *App) printHistory(ctx context.Context) error {
	entries, err := a.history.Recent(ctx, historyShown)
	if err != nil {
		return err
	}
	writeHistory(a.out, entries)
	return nil
}

func writeHistory(w io.Writer, entries []models.HistoryEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(w, "Recent transactions:")
	for _, e := range entries {
		line := fmt.Sprintf("  %s %-15s %s %s", e.CreatedAt.Local().Format(time.DateTime), e.Call, e.Digest, e.Status)
		if e.Block != 0 {
			line += fmt.Sprintf(" #%d", e.Block)
		}
		fmt.Fprintln(w, line)
	}
}

func (a *App) Close() {
	if a.ledger != nil {
		_ = a.ledger.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

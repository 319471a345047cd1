package poe

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmitrijs2005/proofkeeper/internal/client/services"
	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/digest"
	"github.com/dmitrijs2005/proofkeeper/internal/logging"
	"github.com/dmitrijs2005/proofkeeper/internal/rpc"
)

const eventBuffer = 64

// Ledger opens live claim queries.
type Ledger interface {
	SubscribeProof(ctx context.Context, digest string, fn func(rpc.Proof)) (func(), error)
}

// Transactor signs and submits the component's calls.
type Transactor interface {
	Signer() string
	Dispatch(ctx context.Context, call, digest string, status services.StatusFunc) (rpc.Receipt, error)
	ArchiveEvidence(ctx context.Context, digest, path string, status services.StatusFunc) error
}

// OnlineMsg reports node reachability to the component.
type OnlineMsg struct{ Online bool }

type digestMsg digest.Result

type proofMsg struct {
	subID uint64
	proof rpc.Proof
}

type subscribeErrMsg struct {
	subID uint64
	err   error
}

type statusMsg struct{ line string }

type txDoneMsg struct{ err error }

// Model is the bubbletea model of the component. Asynchronous work only
// reports back through messages; Update is the single writer of State.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	events chan tea.Msg

	ledger Ledger
	tx     Transactor
	hasher *digest.Hasher
	logger logging.Logger

	state   State
	input   string
	hashing bool
	busy    bool
	online  bool
	err     error

	sub       *subscription
	nextSubID uint64
}

func New(ctx context.Context, l Ledger, tx Transactor, logger logging.Logger) Model {
	ctx, cancel := context.WithCancel(ctx)
	return Model{
		ctx:    ctx,
		cancel: cancel,
		events: make(chan tea.Msg, eventBuffer),
		ledger: l,
		tx:     tx,
		hasher: digest.NewHasher(),
		logger: logger.With("module", "poe"),
	}
}

func (m Model) State() State { return m.state }

func (m Model) Init() tea.Cmd {
	return m.wait()
}

// wait delivers the next message pushed by a background callback.
func (m Model) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) send(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.ctx.Done():
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(v)

	case digestMsg:
		return m.handleDigest(digest.Result(v))

	case proofMsg:
		if m.sub == nil || v.subID != m.sub.id || m.sub.isClosed() {
			return m, m.wait()
		}
		m.state.ApplyClaim(v.proof)
		return m, m.wait()

	case subscribeErrMsg:
		if m.sub != nil && v.subID == m.sub.id {
			m.err = v.err
		}
		return m, nil

	case statusMsg:
		m.state.Status = v.line
		return m, m.wait()

	case txDoneMsg:
		m.busy = false
		if v.err != nil {
			m.logger.Warn(m.ctx, "transaction failed", "error", v.err)
		}
		return m, nil

	case OnlineMsg:
		m.online = v.Online
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Close()
		return m, tea.Quit

	case tea.KeyEnter:
		path := strings.TrimSpace(m.input)
		if path == "" {
			return m, nil
		}
		m.hashing = true
		m.err = nil
		work := m.hasher.Start(m.ctx, path)
		return m, func() tea.Msg { return digestMsg(work()) }

	case tea.KeyCtrlS:
		if m.busy || !m.state.CanCreate() {
			return m, nil
		}
		return m.dispatch(common.CallCreateClaim)

	case tea.KeyCtrlR:
		if m.busy || !m.state.CanRevoke(m.tx.Signer()) {
			return m, nil
		}
		return m.dispatch(common.CallRevokeClaim)

	case tea.KeyCtrlE:
		if m.busy || !m.state.CanArchive(m.tx.Signer()) {
			return m, nil
		}
		m.busy = true
		d, path := m.state.Digest, m.state.Path
		return m, func() tea.Msg {
			err := m.tx.ArchiveEvidence(m.ctx, d, path, m.pushStatus)
			return txDoneMsg{err: err}
		}

	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.input += " "
		return m, nil

	case tea.KeyRunes:
		m.input += string(k.Runes)
		return m, nil
	}

	return m, nil
}

func (m Model) pushStatus(line string) {
	m.send(statusMsg{line: line})
}

func (m Model) dispatch(call string) (tea.Model, tea.Cmd) {
	m.busy = true
	d := m.state.Digest
	return m, func() tea.Msg {
		_, err := m.tx.Dispatch(m.ctx, call, d, m.pushStatus)
		return txDoneMsg{err: err}
	}
}

func (m Model) handleDigest(r digest.Result) (tea.Model, tea.Cmd) {
	if !m.hasher.IsCurrent(r.Generation) {
		return m, nil
	}
	m.hashing = false

	if r.Err != nil {
		m.err = r.Err
		m.sub.close()
		m.sub = nil
		m.state.SetDigest("", "")
		return m, nil
	}

	if r.Digest == m.state.Digest {
		m.state.Path = r.Path
		return m, nil
	}

	m.sub.close()
	m.state.SetDigest(r.Path, r.Digest)

	m.nextSubID++
	sub := newSubscription(m.nextSubID)
	m.sub = sub

	return m, m.subscribe(sub, r.Digest)
}

func (m Model) subscribe(sub *subscription, d string) tea.Cmd {
	return func() tea.Msg {
		unsubscribe, err := m.ledger.SubscribeProof(m.ctx, d, func(p rpc.Proof) {
			m.send(proofMsg{subID: sub.id, proof: p})
		})
		if err != nil {
			return subscribeErrMsg{subID: sub.id, err: err}
		}
		sub.attach(unsubscribe)
		return nil
	}
}

// Close tears the component down. It is safe to call more than once.
func (m *Model) Close() {
	m.sub.close()
	m.sub = nil
	m.hasher.Stop()
	m.state.Reset()
	m.cancel()
}

package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/proofkeeper/internal/digest"
	"github.com/dmitrijs2005/proofkeeper/internal/filex"
	"github.com/dmitrijs2005/proofkeeper/internal/flagx"
)

// Command is a one-shot action run instead of the interactive component.
// Query and Evidence take a file path or a 0x-prefixed digest.
type Command struct {
	Query    string
	Evidence string
	Forget   bool
}

func (c Command) Empty() bool {
	return c.Query == "" && c.Evidence == "" && !c.Forget
}

// ParseCommand reads the one-shot flags from args, ignoring the config flags.
func ParseCommand(args []string) (Command, error) {
	var c Command

	fs := flag.NewFlagSet("command", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&c.Query, "query", "", "print the claim on a file or digest and exit")
	fs.StringVar(&c.Evidence, "evidence", "", "print the evidence download URL for a file or digest and exit")
	fs.BoolVar(&c.Forget, "forget", false, "remove the local account and exit")

	if err := flagx.ParseFiltered(fs, args); err != nil {
		return Command{}, err
	}

	n := 0
	for _, set := range []bool{c.Query != "", c.Evidence != "", c.Forget} {
		if set {
			n++
		}
	}
	if n > 1 {
		return Command{}, fmt.Errorf("only one of -query, -evidence, -forget may be given")
	}
	return c, nil
}

// Exec runs c and closes the app.
func (a *App) Exec(ctx context.Context, c Command) error {
	defer a.Close()

	switch {
	case c.Forget:
		return a.forget(ctx)
	case c.Query != "":
		return a.query(ctx, c.Query)
	case c.Evidence != "":
		return a.evidenceURL(ctx, c.Evidence)
	}
	return nil
}

func (a *App) query(ctx context.Context, target string) error {
	d, err := resolveDigest(ctx, target)
	if err != nil {
		return err
	}

	p, err := a.ledger.QueryProof(ctx, d)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Digest: %s\n", d)
	if p.Claimed() {
		fmt.Fprintf(a.out, "This file is claimed by %s at block #%d\n", p.Owner, p.Block)
	} else {
		fmt.Fprintln(a.out, "This file has not been claimed")
	}
	return nil
}

func (a *App) evidenceURL(ctx context.Context, target string) error {
	d, err := resolveDigest(ctx, target)
	if err != nil {
		return err
	}

	url, err := a.ledger.EvidenceDownloadURL(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}

// forget asks for the keystore password before deleting the account.
func (a *App) forget(ctx context.Context) error {
	ok, err := a.keystore.Exists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "No account stored")
		return nil
	}

	kp, err := a.Unlock(ctx)
	if err != nil {
		return err
	}
	defer kp.Wipe()

	if err := a.keystore.Forget(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account removed: %s\n", kp.Address())
	a.logger.Info(ctx, "account removed", "address", kp.Address())
	return nil
}

// resolveDigest accepts a digest as is and hashes anything else as a file.
func resolveDigest(ctx context.Context, target string) (string, error) {
	if strings.HasPrefix(target, digest.Prefix) {
		if d, err := digest.Normalize(target); err == nil {
			return d, nil
		}
	}

	content, err := filex.ReadFile(ctx, target)
	if err != nil {
		return "", err
	}
	return digest.FromBytes(content), nil
}

// Package actors contains the concurrent workloads for the stress test. Each
// actor drives the backend through the real client package, so the stress run
// exercises the same code path as an interactive session.
package actors

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"sync/atomic"
	"time"

	"helpdesk/client"
	"helpdesk/session"
)

var sampleQueries = []string{
	"my printer keeps jamming every few pages",
	"the scanner produces completely black pages",
	"laptop battery drains within an hour",
	"monitor flickers when the projector is on",
	"keyboard keys are sticking after a coffee spill",
	"the shredder stopped halfway through a stack",
	"photocopier leaves streaks on every copy",
	"wireless presenter will not pair anymore",
	"label maker prints blank labels",
	"conference phone echoes badly on calls",
}

// tolerable reports whether a submit failure is expected under chaos. Killed
// database backends surface as service errors; everything else is a bug.
func tolerable(err error) bool {
	cerr, ok := client.AsError(err)
	if !ok {
		return false
	}
	return cerr.Kind == client.KindServiceError || cerr.Kind == client.KindUnreachable
}

func newClient(baseURL, storeDir, name string) (*client.Client, error) {
	store := session.NewStore(filepath.Join(storeDir, name+".json"))
	return client.New(baseURL, store)
}

// Chatter logs in as a seeded account and submits support queries until
// stopped, incrementing fulfilled for every exchange the backend resolved.
func Chatter(ctx context.Context, baseURL, storeDir, email, password string, fulfilled *atomic.Int64, stop <-chan struct{}) error {
	c, err := newClient(baseURL, storeDir, email)
	if err != nil {
		return fmt.Errorf("chatter client: %w", err)
	}
	if _, err := c.Login(ctx, email, password); err != nil {
		return fmt.Errorf("chatter login: %w", err)
	}
	eng := client.NewEngine(c)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		query := sampleQueries[rand.Intn(len(sampleQueries))]
		if _, err := eng.Submit(ctx, query); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			if !tolerable(err) {
				return fmt.Errorf("chatter submit: %w", err)
			}
		} else {
			fulfilled.Add(1)
		}
		time.Sleep(time.Duration(10+rand.Intn(30)) * time.Millisecond)
	}
}

// Registrar creates fresh accounts in a loop; duplicate emails and chaos
// failures are expected under contention.
func Registrar(ctx context.Context, baseURL, storeDir string, stop <-chan struct{}) error {
	c, err := newClient(baseURL, storeDir, "registrar")
	if err != nil {
		return fmt.Errorf("registrar client: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		email := fmt.Sprintf("stress+%d@example.com", rand.Int63())
		if _, err := c.Register(ctx, email, "stress-pass-123", "Stress User"); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			if !tolerable(err) {
				return fmt.Errorf("registrar: %w", err)
			}
		}
		time.Sleep(time.Duration(50+rand.Intn(100)) * time.Millisecond)
	}
}

// Auditor reads the account listing and per-user histories the way the admin
// dashboard does, verifying reads stay serviceable while writers hammer the
// same tables.
func Auditor(ctx context.Context, baseURL, storeDir, userID string, stop <-chan struct{}) error {
	c, err := newClient(baseURL, storeDir, "auditor")
	if err != nil {
		return fmt.Errorf("auditor client: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		if _, err := c.Users(ctx); err != nil && !tolerable(err) {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("auditor users: %w", err)
		}
		if _, err := c.UserIssues(ctx, userID); err != nil && !tolerable(err) {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("auditor issues: %w", err)
		}
		time.Sleep(time.Duration(40+rand.Intn(80)) * time.Millisecond)
	}
}

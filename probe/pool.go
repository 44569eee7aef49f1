package probe

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chainregistry/protoreg/record"
	"github.com/chainregistry/protoreg/violation"
)

const (
	// DefaultWorkers is the default probe concurrency.
	DefaultWorkers = 5

	// DefaultRequestDelay is the default pause between request launches,
	// keeping the pass under remote rate limits.
	DefaultRequestDelay = 200 * time.Millisecond
)

// Options configures a Prober. Contracts and Links may each be nil to skip
// that half of the pass.
type Options struct {
	// Contracts verifies addresses against the verification API.
	Contracts *ContractClient

	// Links checks documentation-link reachability.
	Links *LinkChecker

	// Cache, when non-nil, short-circuits contract probes for addresses
	// already known to be verified.
	Cache *VerifyCache

	// Workers is the pool size. Default DefaultWorkers.
	Workers int

	// RequestDelay throttles request launches. Default DefaultRequestDelay.
	RequestDelay time.Duration

	// Logger receives per-probe debug logging. Default slog.Default().
	Logger *slog.Logger
}

// ContractResult is the probe outcome for one address occurrence.
type ContractResult struct {
	// File is the record declaring the address.
	File string `json:"file"`

	// Label is the key the address is declared under.
	Label string `json:"label"`

	// Address is the address as written in the record.
	Address string `json:"address"`

	// Status is the probe outcome.
	Status VerifyStatus `json:"status"`

	// Detail is a human-readable description of the outcome.
	Detail string `json:"detail"`

	// Cached is true when the outcome came from the verification cache.
	Cached bool `json:"cached,omitempty"`
}

// LinkResult is the probe outcome for one documentation link.
type LinkResult struct {
	// File is the record declaring the link.
	File string `json:"file"`

	// Label is the link's key in the record.
	Label string `json:"label"`

	// URL is the probed URL.
	URL string `json:"url"`

	// OK is true when the link answered with a non-error status.
	OK bool `json:"ok"`

	// Detail describes the failure when OK is false.
	Detail string `json:"detail,omitempty"`
}

// Summary is the collected outcome of one probe pass over a partition.
// Results are sorted by (file, label) for deterministic output.
type Summary struct {
	Files     int              `json:"files"`
	Contracts []ContractResult `json:"contracts,omitempty"`
	Links     []LinkResult     `json:"links,omitempty"`
}

// Verified counts contract probes that confirmed the address.
func (s *Summary) Verified() int {
	n := 0
	for _, r := range s.Contracts {
		if r.Status.Verified() {
			n++
		}
	}
	return n
}

// Unverified counts contract probes that did not confirm the address,
// whatever the reason.
func (s *Summary) Unverified() int {
	return len(s.Contracts) - s.Verified()
}

// DeadLinks counts link probes that failed.
func (s *Summary) DeadLinks() int {
	n := 0
	for _, r := range s.Links {
		if !r.OK {
			n++
		}
	}
	return n
}

// Violations converts the probe outcomes into report violations: one
// dead-link violation per failed link and one unverified-contract warning
// per unconfirmed address.
func (s *Summary) Violations() []violation.Violation {
	var out []violation.Violation
	for _, r := range s.Links {
		if !r.OK {
			out = append(out, violation.NewDeadLink(r.File, r.Label, r.Detail))
		}
	}
	for _, r := range s.Contracts {
		if !r.Status.Verified() {
			out = append(out, violation.NewUnverifiedContract(r.File, r.Label,
				record.CanonicalAddress(r.Address), r.Detail))
		}
	}
	return out
}

// Prober runs the liveness pass over already-loaded records.
type Prober struct {
	opts Options
}

// Workers returns the effective pool size after defaults.
func (p *Prober) Workers() int {
	return p.opts.Workers
}

// New creates a Prober with defaults applied.
func New(opts Options) *Prober {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.RequestDelay <= 0 {
		opts.RequestDelay = DefaultRequestDelay
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Prober{opts: opts}
}

// Run probes every address and link of the given records using a bounded
// worker pool. Probe failures never fail the pass; the only error returned
// is context cancellation, in which case partial results are discarded.
func (p *Prober) Run(ctx context.Context, records []*record.Protocol) (*Summary, error) {
	summary := &Summary{Files: len(records)}
	logger := p.opts.Logger.With("component", "probe")

	// One launch per tick keeps the aggregate request rate bounded no
	// matter how many workers are idle.
	throttle := time.NewTicker(p.opts.RequestDelay)
	defer throttle.Stop()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for _, rec := range records {
		rec := rec
		if p.opts.Contracts != nil {
			for _, label := range rec.Labels() {
				label := label
				g.Go(func() error {
					res, err := p.verifyOne(gctx, throttle, rec.File, label, rec.Addresses[label])
					if err != nil {
						return err
					}
					logger.Debug("contract probed",
						"file", res.File, "label", res.Label, "status", res.Status, "cached", res.Cached)
					mu.Lock()
					summary.Contracts = append(summary.Contracts, res)
					mu.Unlock()
					return nil
				})
			}
		}
		if p.opts.Links != nil {
			for _, label := range rec.LinkLabels() {
				label := label
				url, ok := rec.Links[label].(string)
				if !ok {
					// Non-string links are a schema problem, not a probe target.
					continue
				}
				g.Go(func() error {
					res, err := p.checkOne(gctx, throttle, rec.File, label, url)
					if err != nil {
						return err
					}
					logger.Debug("link probed", "file", res.File, "label", res.Label, "ok", res.OK)
					mu.Lock()
					summary.Links = append(summary.Links, res)
					mu.Unlock()
					return nil
				})
			}
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(summary.Contracts, func(i, j int) bool {
		a, b := summary.Contracts[i], summary.Contracts[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Label < b.Label
	})
	sort.Slice(summary.Links, func(i, j int) bool {
		a, b := summary.Links[i], summary.Links[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Label < b.Label
	})
	return summary, nil
}

func (p *Prober) verifyOne(ctx context.Context, throttle *time.Ticker, file, label, address string) (ContractResult, error) {
	res := ContractResult{File: file, Label: label, Address: address}

	if p.opts.Cache != nil {
		hit, err := p.opts.Cache.Get(ctx, address)
		if err != nil {
			// A broken cache degrades to probing, never to failing the pass.
			p.opts.Logger.Warn("verification cache unavailable", "error", err)
		} else if hit {
			res.Status = StatusVerified
			res.Detail = "verified"
			res.Cached = true
			return res, nil
		}
	}

	select {
	case <-ctx.Done():
		return res, ctx.Err()
	case <-throttle.C:
	}

	status, detail, err := p.opts.Contracts.Verify(ctx, address)
	if err != nil {
		return res, err
	}
	res.Status = status
	res.Detail = detail

	if p.opts.Cache != nil {
		if err := p.opts.Cache.Put(ctx, address, status); err != nil {
			p.opts.Logger.Warn("verification cache write failed", "error", err)
		}
	}
	return res, nil
}

func (p *Prober) checkOne(ctx context.Context, throttle *time.Ticker, file, label, url string) (LinkResult, error) {
	res := LinkResult{File: file, Label: label, URL: url}

	select {
	case <-ctx.Done():
		return res, ctx.Err()
	case <-throttle.C:
	}

	ok, detail, err := p.opts.Links.Check(ctx, url)
	if err != nil {
		return res, err
	}
	res.OK = ok
	res.Detail = detail
	return res, nil
}

// Package pipeline runs one deal from product reference to published post.
package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"dealpost/internal/asin"
	"dealpost/internal/bot"
	"dealpost/internal/catalog"
	"dealpost/internal/domain"
	"dealpost/internal/post"
	"dealpost/internal/storage"
)

// Announcer publishes a composed announcement.
type Announcer interface {
	Announce(ctx context.Context, msg bot.Message) error
}

// Settings are the per-run values the stages need from the configuration.
type Settings struct {
	AssociateTag string
	Marketplace  string
	PostsDir     string
	Layout       string
	Location     *time.Location
}

// Request is one deal to publish.
type Request struct {
	Reference string
	Note      string
}

// Result describes a finished run.
type Result struct {
	Path         string
	Document     post.Document
	Record       domain.ProductRecord
	AffiliateURL string
	// Announced is true when the announcement was delivered.
	Announced bool
	// AnnounceErr is set when the announcement failed; the post is still written.
	AnnounceErr error
}

// Runner wires the stages together. Announcer and Ledger are optional.
type Runner struct {
	Lookup    catalog.Lookup
	Announcer Announcer
	Ledger    storage.Repository
	Settings  Settings
	Now       func() time.Time
	Log       logrus.FieldLogger
}

// Fetch resolves reference and looks the product up, without writing anything.
func (r *Runner) Fetch(ctx context.Context, reference string) (domain.ProductRecord, error) {
	id, err := asin.Resolve(reference)
	if err != nil {
		return domain.ProductRecord{}, err
	}
	r.log().WithField("asin", id).Debug("Reference resolved")

	return r.Lookup.Lookup(ctx, id)
}

// Run publishes one deal. Any error returned is fatal; a failed announcement
// is reported through Result.AnnounceErr instead.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	rec, err := r.Fetch(ctx, req.Reference)
	if err != nil {
		return Result{}, err
	}
	log := r.log().WithField("asin", rec.ASIN)

	now := r.now()
	if r.Settings.Location != nil {
		now = now.In(r.Settings.Location)
	}

	affiliateURL := post.AffiliateURL(rec.DetailPageURL, r.Settings.AssociateTag, r.Settings.Marketplace, rec.ASIN)
	doc := post.Compose(post.Input{
		Record:       rec,
		AffiliateURL: affiliateURL,
		Note:         req.Note,
		Layout:       r.Settings.Layout,
		Now:          now,
	})

	r.warnIfPublished(ctx, log, rec.ASIN)
	if post.Exists(r.Settings.PostsDir, doc) {
		log.WithField("file", doc.Filename).Warn("Post already exists and will be overwritten")
	}

	path, err := post.Write(r.Settings.PostsDir, doc)
	if err != nil {
		return Result{}, err
	}
	log.WithField("path", path).Info("Post written")

	res := Result{
		Path:         path,
		Document:     doc,
		Record:       rec,
		AffiliateURL: affiliateURL,
	}

	if r.Announcer != nil {
		msg := bot.FormatAnnouncement(rec, affiliateURL, req.Note)
		if err := r.Announcer.Announce(ctx, msg); err != nil {
			log.WithError(err).Warn("Announcement failed")
			res.AnnounceErr = err
		} else {
			res.Announced = true
		}
	}

	r.record(ctx, log, res, now)
	return res, nil
}

func (r *Runner) warnIfPublished(ctx context.Context, log logrus.FieldLogger, id string) {
	if r.Ledger == nil {
		return
	}
	previous, err := r.Ledger.GetDealsByASIN(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Could not read deal ledger")
		return
	}
	if len(previous) > 0 {
		log.WithFields(logrus.Fields{
			"last_post":      previous[0].PostPath,
			"last_posted_at": previous[0].CreatedAt,
		}).Warn("Product was already posted")
	}
}

// record appends the run to the ledger. Ledger failures never fail the run.
func (r *Runner) record(ctx context.Context, log logrus.FieldLogger, res Result, now time.Time) {
	if r.Ledger == nil {
		return
	}
	deal := domain.Deal{
		ASIN:         res.Record.ASIN,
		Title:        res.Record.DisplayTitle(),
		PostPath:     res.Path,
		AffiliateURL: res.AffiliateURL,
		Announced:    res.Announced,
		CreatedAt:    now,
	}
	if res.Record.Price != nil {
		deal.PriceCurrent = post.FormatAmount(res.Record.Price.Amount.String())
	}
	if err := r.Ledger.SaveDeal(ctx, deal); err != nil {
		log.WithError(err).Warn("Could not record deal in ledger")
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) log() logrus.FieldLogger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}

// Package run sequences one alert cycle: collect every source, deduplicate
// against the persisted history, and deliver the digest. Sources execute
// strictly one after another; a source failing is reported and skipped,
// never fatal. Only a failed mail send aborts the run.
package run

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/suhasramanand/intern-alert/internal/browser"
	"github.com/suhasramanand/intern-alert/internal/config"
	"github.com/suhasramanand/intern-alert/internal/dedup"
	"github.com/suhasramanand/intern-alert/internal/digest"
	"github.com/suhasramanand/intern-alert/internal/mailer"
	"github.com/suhasramanand/intern-alert/internal/models"
	"github.com/suhasramanand/intern-alert/internal/recency"
	"github.com/suhasramanand/intern-alert/internal/scraper"
	"github.com/suhasramanand/intern-alert/internal/seen"
	"github.com/suhasramanand/intern-alert/internal/ui"
)

// InternListSource is the static Webflow source plus its browser fallback.
type InternListSource interface {
	Fetch(ctx context.Context) ([]models.Job, error)
	FetchBrowser(ctx context.Context, drv *browser.Driver, windowMins int) ([]models.Job, error)
}

// JobrightSource filters internally; Fetch returns in-window records only.
type JobrightSource interface {
	Fetch(ctx context.Context, now time.Time) ([]models.Job, error)
	FetchBrowser(ctx context.Context, drv *browser.Driver) ([]models.Job, error)
}

// AirtableSource tries the shared-view API first; the browser reads the
// rendered table when the API refuses.
type AirtableSource interface {
	FetchAPI(ctx context.Context) ([]models.Job, error)
	FetchBrowser(ctx context.Context, drv *browser.Driver, now time.Time) ([]models.Job, error)
}

type Runner struct {
	Cfg        config.Config
	InternList InternListSource
	Jobright   JobrightSource
	Airtable   AirtableSource
	Store      seen.Store
	Mailer     mailer.Mailer
	UI         *ui.UI
	Log        zerolog.Logger

	// Launch starts the optional headless browser; nil disables fallbacks.
	Launch func() (*browser.Driver, error)
	// Now is the run clock, injectable for tests.
	Now func() time.Time

	drv      *browser.Driver
	launched bool
}

// Summary is what one run did, for the console report and exit decision.
type Summary struct {
	Results []models.SourceResult
	Novel   []models.Job
	Body    string
	Sent    bool
	DryRun  bool
}

func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	defer r.closeBrowser()

	set, err := r.Store.Load()
	if err != nil {
		return nil, err
	}

	results := []models.SourceResult{
		r.collectInternList(ctx, now),
		r.collectJobright(ctx, now),
		r.collectAirtable(ctx, now),
	}

	novel := dedup.Merge(results, set)

	// Persist no matter what happened above, so the history always
	// reflects this run.
	if err := r.Store.Save(set); err != nil {
		return nil, err
	}

	summary := &Summary{Results: results, Novel: novel}
	r.report(summary, now)

	if len(novel) == 0 {
		return summary, nil
	}

	summary.Body = digest.Body(novel, r.Cfg.WindowMins, now)
	if !r.Cfg.HasCredentials() {
		summary.DryRun = true
		r.UI.Warnf("EMAIL_TO / EMAIL_APP_PASSWORD not set; digest below")
		r.UI.Infof("%s", summary.Body)
		return summary, nil
	}

	subject := digest.Subject(len(novel))
	if err := r.Mailer.Send(ctx, r.Cfg.EmailFrom, r.Cfg.EmailTo, subject, summary.Body); err != nil {
		r.Log.Error().Err(err).Msg("digest delivery failed")
		return summary, err
	}
	summary.Sent = true
	r.UI.Successf("Email sent to %s (%d jobs)", r.Cfg.EmailTo, len(novel))
	return summary, nil
}

func (r *Runner) collectInternList(ctx context.Context, now time.Time) models.SourceResult {
	res := models.SourceResult{Source: scraper.SourceInternList}
	parsed, err := r.InternList.Fetch(ctx)
	if err != nil {
		r.Log.Warn().Err(err).Str("source", res.Source).Msg("static fetch failed")
		res.Err = err
	}
	res.Parsed = len(parsed)

	for _, job := range parsed {
		if recency.JobInWindow(job, r.Cfg.WindowMins, now) {
			res.Jobs = append(res.Jobs, job)
		}
	}
	res.InWindow = len(res.Jobs)
	if res.InWindow > 0 {
		return res
	}

	// Static page stale or broken: the hourly-updated table only renders
	// client side, so give the browser a chance.
	drv := r.driver()
	if drv == nil {
		return res
	}
	jobs, err := r.InternList.FetchBrowser(ctx, drv, r.Cfg.WindowMins)
	if err != nil {
		r.Log.Warn().Err(err).Str("source", res.Source).Msg("browser fallback failed")
		return res
	}
	if len(jobs) > 0 {
		res.Jobs = jobs
		res.InWindow = len(jobs)
		res.Err = nil
	}
	return res
}

func (r *Runner) collectJobright(ctx context.Context, now time.Time) models.SourceResult {
	res := models.SourceResult{Source: scraper.SourceJobright}
	jobs, err := r.Jobright.Fetch(ctx, now)
	if err != nil {
		r.Log.Warn().Err(err).Str("source", res.Source).Msg("fetch failed")
		res.Err = err
	}

	if len(jobs) == 0 {
		if drv := r.driver(); drv != nil {
			pwJobs, pwErr := r.Jobright.FetchBrowser(ctx, drv)
			if pwErr != nil {
				r.Log.Warn().Err(pwErr).Str("source", res.Source).Msg("browser fallback failed")
			} else if len(pwJobs) > 0 {
				jobs = pwJobs
				res.Err = nil
			}
		}
	}

	res.Jobs = jobs
	res.Parsed = len(jobs)
	res.InWindow = len(jobs)
	return res
}

func (r *Runner) collectAirtable(ctx context.Context, now time.Time) models.SourceResult {
	res := models.SourceResult{Source: scraper.SourceAirtable}
	jobs, err := r.Airtable.FetchAPI(ctx)
	if err != nil {
		r.Log.Info().Err(err).Str("source", res.Source).Msg("API unavailable, trying browser")
		drv := r.driver()
		if drv == nil {
			res.Err = err
			return res
		}
		jobs, err = r.Airtable.FetchBrowser(ctx, drv, now)
		if err != nil {
			r.Log.Warn().Err(err).Str("source", res.Source).Msg("browser fallback failed")
			res.Err = err
			return res
		}
	}

	res.Jobs = jobs
	res.Parsed = len(jobs)
	res.InWindow = len(jobs)
	return res
}

// driver lazily launches the headless browser once per run; a failed launch
// is remembered and every later fallback degrades to empty.
func (r *Runner) driver() *browser.Driver {
	if r.launched {
		return r.drv
	}
	r.launched = true
	if r.Launch == nil {
		return nil
	}
	drv, err := r.Launch()
	if err != nil {
		r.Log.Info().Err(err).Msg("headless browser unavailable")
		return nil
	}
	r.drv = drv
	return r.drv
}

func (r *Runner) closeBrowser() {
	if r.drv != nil {
		if err := r.drv.Close(); err != nil {
			r.Log.Warn().Err(err).Msg("browser close failed")
		}
		r.drv = nil
	}
}

func (r *Runner) report(s *Summary, now time.Time) {
	novelBySource := map[string]int{}
	for _, job := range s.Novel {
		novelBySource[job.Source]++
	}
	for _, res := range s.Results {
		if res.Failed() {
			r.UI.Warnf("%s: failed: %v", res.Source, res.Err)
			continue
		}
		r.UI.Infof("%s: %d parsed, %d in window, %d new", res.Source, res.Parsed, res.InWindow, novelBySource[res.Source])
	}
	r.UI.Infof("Jobs to send this run: %d (current time: %s)", len(s.Novel), recency.NowEastern(now))
}

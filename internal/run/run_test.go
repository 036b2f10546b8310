package run

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/suhasramanand/intern-alert/internal/browser"
	"github.com/suhasramanand/intern-alert/internal/config"
	"github.com/suhasramanand/intern-alert/internal/models"
	"github.com/suhasramanand/intern-alert/internal/seen"
	"github.com/suhasramanand/intern-alert/internal/ui"
)

type fakeInternList struct {
	jobs         []models.Job
	err          error
	browserJobs  []models.Job
	browserCalls int
}

func (f *fakeInternList) Fetch(context.Context) ([]models.Job, error) {
	return f.jobs, f.err
}

func (f *fakeInternList) FetchBrowser(context.Context, *browser.Driver, int) ([]models.Job, error) {
	f.browserCalls++
	return f.browserJobs, nil
}

type fakeJobright struct {
	jobs []models.Job
	err  error
}

func (f *fakeJobright) Fetch(context.Context, time.Time) ([]models.Job, error) {
	return f.jobs, f.err
}

func (f *fakeJobright) FetchBrowser(context.Context, *browser.Driver) ([]models.Job, error) {
	return nil, nil
}

type fakeAirtable struct {
	jobs []models.Job
	err  error
}

func (f *fakeAirtable) FetchAPI(context.Context) ([]models.Job, error) {
	return f.jobs, f.err
}

func (f *fakeAirtable) FetchBrowser(context.Context, *browser.Driver, time.Time) ([]models.Job, error) {
	return nil, nil
}

type sentMail struct {
	from, to, subject, body string
}

type fakeMailer struct {
	err  error
	sent []sentMail
}

func (f *fakeMailer) Send(_ context.Context, from, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{from, to, subject, body})
	return nil
}

func testConfig(seenPath string) config.Config {
	return config.Config{
		SeenFile:      seenPath,
		WindowMins:    120,
		MinHourlyPay:  25,
		EmailTo:       "alerts@example.com",
		EmailFrom:     "alerts@example.com",
		EmailPassword: "app-password",
		SMTPHost:      "smtp.gmail.com",
		SMTPPort:      465,
	}
}

func newRunner(cfg config.Config, il *fakeInternList, jr *fakeJobright, at *fakeAirtable, m *fakeMailer) *Runner {
	return &Runner{
		Cfg:        cfg,
		InternList: il,
		Jobright:   jr,
		Airtable:   at,
		Store:      seen.NewFileStore(cfg.SeenFile),
		Mailer:     m,
		UI:         ui.New(io.Discard, io.Discard, ui.ColorNever),
		Log:        zerolog.Nop(),
		Now: func() time.Time {
			return time.Date(2026, time.February, 14, 12, 0, 0, 0, time.UTC)
		},
	}
}

func freshJob(id, title string) models.Job {
	return models.Job{
		ID: id, Source: "jobright", Title: title,
		Company: "Acme", URL: "https://acme.com/" + id, PostedRaw: "30 mins ago",
	}
}

func TestRunSendsDigestOnceThenGoesQuiet(t *testing.T) {
	seenPath := filepath.Join(t.TempDir(), "seen_ids.txt")
	cfg := testConfig(seenPath)

	jr := &fakeJobright{jobs: []models.Job{freshJob("jr_1", "Data Intern"), freshJob("jr_2", "ML Intern")}}
	m := &fakeMailer{}
	r := newRunner(cfg, &fakeInternList{}, jr, &fakeAirtable{}, m)

	s, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(s.Novel) != 2 || !s.Sent {
		t.Fatalf("first run should alert on both jobs: %+v", s)
	}
	if len(m.sent) != 1 {
		t.Fatalf("expected exactly one mail, got %d", len(m.sent))
	}
	mail := m.sent[0]
	if mail.to != "alerts@example.com" || mail.subject != "Intern alert: 2 new DS/ML/Analytics internships" {
		t.Fatalf("unexpected mail: %+v", mail)
	}

	// same payload, fresh runner, history persisted on disk in between
	r2 := newRunner(cfg, &fakeInternList{}, jr, &fakeAirtable{}, m)
	s2, err := r2.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(s2.Novel) != 0 || s2.Sent {
		t.Fatalf("second run must be quiet: %+v", s2)
	}
	if len(m.sent) != 1 {
		t.Fatalf("no second mail expected, got %d", len(m.sent))
	}
}

func TestRunSourceFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "seen_ids.txt"))

	il := &fakeInternList{err: errors.New("fetch blocked")}
	jr := &fakeJobright{jobs: []models.Job{freshJob("jr_1", "Data Intern")}}
	m := &fakeMailer{}
	r := newRunner(cfg, il, jr, &fakeAirtable{}, m)

	s, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("one failing source must not abort the run: %v", err)
	}
	if !s.Results[0].Failed() {
		t.Fatal("intern-list result should record its error")
	}
	if len(s.Novel) != 1 || s.Novel[0].ID != "jr_1" {
		t.Fatalf("surviving sources should still alert: %+v", s.Novel)
	}
	if len(m.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(m.sent))
	}
}

func TestRunMailerFailureIsFatal(t *testing.T) {
	seenPath := filepath.Join(t.TempDir(), "seen_ids.txt")
	cfg := testConfig(seenPath)

	jr := &fakeJobright{jobs: []models.Job{freshJob("jr_1", "Data Intern")}}
	m := &fakeMailer{err: errors.New("smtp: auth failed")}
	r := newRunner(cfg, &fakeInternList{}, jr, &fakeAirtable{}, m)

	s, err := r.Run(context.Background())
	if err == nil {
		t.Fatal("mailer failure must surface as the run error")
	}
	if s == nil || s.Sent {
		t.Fatalf("summary should report the unsent batch: %+v", s)
	}

	// history was already persisted before the send attempt
	set, loadErr := seen.Load(seenPath)
	if loadErr != nil {
		t.Fatalf("load seen file: %v", loadErr)
	}
	if !set.Has("jr_1") {
		t.Fatal("seen file should already contain the batch")
	}
}

func TestRunNoCredentialsDryRuns(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "seen_ids.txt"))
	cfg.EmailPassword = ""

	jr := &fakeJobright{jobs: []models.Job{freshJob("jr_1", "Data Intern")}}
	m := &fakeMailer{}
	r := newRunner(cfg, &fakeInternList{}, jr, &fakeAirtable{}, m)

	s, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !s.DryRun || s.Sent {
		t.Fatalf("missing credentials should dry-run: %+v", s)
	}
	if len(m.sent) != 0 {
		t.Fatalf("no mail expected, got %d", len(m.sent))
	}
	if s.Body == "" {
		t.Fatal("dry run should still render the digest body")
	}
}

func TestRunNothingNovelSendsNothing(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "seen_ids.txt"))

	m := &fakeMailer{}
	r := newRunner(cfg, &fakeInternList{}, &fakeJobright{}, &fakeAirtable{}, m)

	s, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(s.Novel) != 0 || s.Sent || len(m.sent) != 0 {
		t.Fatalf("empty run should stay silent: %+v", s)
	}
}

func TestRunInternListWindowFilter(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "seen_ids.txt"))

	stale := time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)
	il := &fakeInternList{jobs: []models.Job{
		{ID: "il_today", Source: "intern-list", Title: "Fresh", PostedRaw: "February 14, 2026", Posted: &today},
		{ID: "il_stale", Source: "intern-list", Title: "Stale", PostedRaw: "February 11, 2026", Posted: &stale},
	}}
	r := newRunner(cfg, il, &fakeJobright{}, &fakeAirtable{}, &fakeMailer{})

	s, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	res := s.Results[0]
	if res.Parsed != 2 || res.InWindow != 1 {
		t.Fatalf("expected 2 parsed / 1 in window, got %d / %d", res.Parsed, res.InWindow)
	}
	if len(s.Novel) != 1 || s.Novel[0].ID != "il_today" {
		t.Fatalf("unexpected novel batch: %+v", s.Novel)
	}
	if il.browserCalls != 0 {
		t.Fatal("browser fallback should not run when the window has hits")
	}
}

func TestRunBrowserFallbackSkippedWithoutLauncher(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "seen_ids.txt"))

	il := &fakeInternList{browserJobs: []models.Job{freshJob("il_pw_1", "Rendered Intern")}}
	r := newRunner(cfg, il, &fakeJobright{}, &fakeAirtable{}, &fakeMailer{})
	// Launch left nil: --no-browser and CI-without-playwright behave this way

	s, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if il.browserCalls != 0 {
		t.Fatal("nil launcher must disable the fallback")
	}
	if len(s.Novel) != 0 {
		t.Fatalf("unexpected novel batch: %+v", s.Novel)
	}
}

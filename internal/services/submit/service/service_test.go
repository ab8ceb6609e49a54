package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"modgate/internal/core/lexicon"
	"modgate/internal/core/moderate"
	"modgate/internal/modkit"
	perr "modgate/internal/platform/errors"
	contentdom "modgate/internal/services/content/domain"
	ledgerdom "modgate/internal/services/ledger/domain"
	notifydom "modgate/internal/services/notify/domain"
	"modgate/internal/services/submit/domain"
)

type fakeLedger struct {
	mu      sync.Mutex
	entries map[string]ledgerdom.Entry
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: map[string]ledgerdom.Entry{}}
}

func (f *fakeLedger) Create(_ context.Context, args ledgerdom.CreateArgs) (ledgerdom.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := ledgerdom.Entry{
		ID:          uuid.NewString(),
		ContentType: args.ContentType,
		ContentID:   args.ContentID,
		Snapshot:    args.Snapshot,
		FlaggedByAI: args.FlaggedByAI,
		ReporterID:  args.ReporterID,
		AuthorID:    args.AuthorID,
		CategoryID:  args.CategoryID,
		Reason:      args.Reason,
		Status:      ledgerdom.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeLedger) Get(_ context.Context, id string) (ledgerdom.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[id]
	if !ok {
		return ledgerdom.Entry{}, perr.NotFoundf("entry %s not found", id)
	}
	return e, nil
}

func (f *fakeLedger) ListPending(_ context.Context, _ ledgerdom.PageArgs) ([]ledgerdom.Entry, error) {
	return nil, nil
}

func (f *fakeLedger) Resolve(_ context.Context, _ ledgerdom.ResolveArgs) (ledgerdom.Entry, error) {
	return ledgerdom.Entry{}, nil
}

func (f *fakeLedger) Flag(_ context.Context, _, _ string) error { return nil }

func (f *fakeLedger) AssignContentID(_ context.Context, _, _ string) error { return nil }

type fakeContent struct {
	mu       sync.Mutex
	comments []contentdom.CommentArgs
}

func (f *fakeContent) CreateBlog(_ context.Context, _ contentdom.BlogArgs) (string, error) {
	return "", perr.Newf(perr.ErrorCodeUnknown, "intake never creates blogs directly")
}

func (f *fakeContent) UpdateBlog(_ context.Context, _ string, _ contentdom.BlogArgs) error {
	return perr.Newf(perr.ErrorCodeUnknown, "intake never updates blogs directly")
}

func (f *fakeContent) CreateComment(_ context.Context, args contentdom.CommentArgs) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = append(f.comments, args)
	return "comment-1", nil
}

func (f *fakeContent) Delete(_ context.Context, _ contentdom.Kind, _ string) error { return nil }

type fakeReader struct{ owner string }

func (f fakeReader) BlogAuthor(_ context.Context, _ string) (string, error) {
	if f.owner == "" {
		return "", perr.NotFoundf("blog not found")
	}
	return f.owner, nil
}

type fakeNotify struct {
	mu   sync.Mutex
	sent []notifydom.NotifyArgs
}

func (f *fakeNotify) Notify(_ context.Context, args notifydom.NotifyArgs) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, args)
	return nil
}

type fakeJobs struct {
	mu       sync.Mutex
	enqueued []string
}

func (f *fakeJobs) Enqueue(_ context.Context, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enqueued = append(f.enqueued, entryID)
	return nil
}

type highScorer struct{ p float64 }

func (h highScorer) Score(string) (float64, error) { return h.p, nil }

func testModerator(scorer moderate.Scorer) *moderate.Moderator {
	h := lexicon.NewHolder(lexicon.Build([]string{"badword"}))
	return moderate.New(
		moderate.NewPrimary(h, nil),
		moderate.NewAdvanced(scorer, 0),
	)
}

func newHarness(scorer moderate.Scorer, owner string) (*Svc, *fakeLedger, *fakeContent, *fakeNotify, *fakeJobs) {
	ledger := newFakeLedger()
	content := &fakeContent{}
	notify := &fakeNotify{}
	jobs := &fakeJobs{}
	svc := New(modkit.Deps{}, domain.Ports{
		Ledger:    ledger,
		Content:   content,
		Reader:    fakeReader{owner: owner},
		Notify:    notify,
		Jobs:      jobs,
		Moderator: testModerator(scorer),
	})
	return svc, ledger, content, notify, jobs
}

func TestSubmitBlog_QueuesPendingEntryAndJob(t *testing.T) {
	t.Parallel()

	svc, ledger, _, _, jobs := newHarness(highScorer{p: 0}, "owner-1")

	rc, err := svc.SubmitBlog(context.Background(), domain.SubmitBlogArgs{
		AuthorID: "author-1",
		Title:    "contains badword in the title",
		Body:     "body",
	})
	if err != nil {
		t.Fatalf("SubmitBlog: %v", err)
	}
	if rc.Status != ledgerdom.StatusPending {
		t.Fatalf("status = %q, want pending", rc.Status)
	}

	// intake never runs the pipeline inline for blogs, even dirty ones
	e, err := ledger.Get(context.Background(), rc.EntryID)
	if err != nil {
		t.Fatalf("entry not stored: %v", err)
	}
	if e.Snapshot.Kind != ledgerdom.SnapshotBlog || e.Snapshot.Blog.Title == "" {
		t.Fatalf("snapshot not captured: %+v", e.Snapshot)
	}
	if len(jobs.enqueued) != 1 || jobs.enqueued[0] != rc.EntryID {
		t.Fatalf("job not enqueued: %v", jobs.enqueued)
	}
}

func TestEditBlog_CarriesExistingBlogID(t *testing.T) {
	t.Parallel()

	svc, ledger, _, _, _ := newHarness(highScorer{p: 0}, "owner-1")

	rc, err := svc.EditBlog(context.Background(), domain.EditBlogArgs{
		BlogID:   "blog-7",
		AuthorID: "author-1",
		Title:    "new title",
		Body:     "new body",
	})
	if err != nil {
		t.Fatalf("EditBlog: %v", err)
	}

	e, _ := ledger.Get(context.Background(), rc.EntryID)
	if e.ContentID == nil || *e.ContentID != "blog-7" {
		t.Fatalf("edit entry must reference the live blog: %v", e.ContentID)
	}
}

func TestSubmitComment_CleanPublishesImmediately(t *testing.T) {
	t.Parallel()

	svc, ledger, content, notify, _ := newHarness(highScorer{p: 0.10}, "owner-1")

	res, err := svc.SubmitComment(context.Background(), domain.SubmitCommentArgs{
		BlogID:   "blog-1",
		AuthorID: "author-1",
		Body:     "nice post",
	})
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	if !res.Verdict.IsSafe || res.CommentID != "comment-1" {
		t.Fatalf("clean comment not published: %+v", res)
	}
	if len(content.comments) != 1 {
		t.Fatalf("comments created = %d, want 1", len(content.comments))
	}
	if len(ledger.entries) != 0 {
		t.Fatal("clean comment must not open a ledger entry")
	}
	if len(notify.sent) != 1 || notify.sent[0].RecipientID != "owner-1" {
		t.Fatalf("blog author not told about the comment: %+v", notify.sent)
	}
}

func TestSubmitComment_SelfCommentSkipsNotification(t *testing.T) {
	t.Parallel()

	svc, _, _, notify, _ := newHarness(highScorer{p: 0}, "author-1")

	if _, err := svc.SubmitComment(context.Background(), domain.SubmitCommentArgs{
		BlogID:   "blog-1",
		AuthorID: "author-1",
		Body:     "replying to myself",
	}); err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	if len(notify.sent) != 0 {
		t.Fatalf("own comment must not notify: %+v", notify.sent)
	}
}

func TestSubmitComment_FlaggedGoesPendingWithRedactedVerdict(t *testing.T) {
	t.Parallel()

	svc, ledger, content, notify, _ := newHarness(highScorer{p: 0.82}, "owner-1")

	res, err := svc.SubmitComment(context.Background(), domain.SubmitCommentArgs{
		BlogID:   "blog-1",
		AuthorID: "author-1",
		Body:     "subtle spam the lexicon misses",
	})
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	if res.Verdict.IsSafe || res.CommentID != "" {
		t.Fatalf("flagged comment must not publish: %+v", res)
	}
	if strings.Contains(res.Verdict.Reason, "0.82") {
		t.Fatalf("confidence leaked to the author: %q", res.Verdict.Reason)
	}
	if len(content.comments) != 0 {
		t.Fatal("flagged comment must not be created")
	}

	e, err := ledger.Get(context.Background(), res.EntryID)
	if err != nil {
		t.Fatalf("pending entry missing: %v", err)
	}
	if !e.FlaggedByAI || e.Status != ledgerdom.StatusPending {
		t.Fatalf("entry = %+v, want pending and AI-flagged", e)
	}
	if !strings.Contains(e.Reason, "0.82") {
		t.Fatalf("audit reason lost the confidence: %q", e.Reason)
	}
	if len(notify.sent) != 1 || notify.sent[0].Verb != notifydom.VerbQueued {
		t.Fatalf("author not told about the queue: %+v", notify.sent)
	}
}

func TestSubmitComment_LexiconHitQueuesWithTerm(t *testing.T) {
	t.Parallel()

	svc, ledger, _, _, _ := newHarness(highScorer{p: 0}, "owner-1")

	res, err := svc.SubmitComment(context.Background(), domain.SubmitCommentArgs{
		BlogID:   "blog-1",
		AuthorID: "author-1",
		Body:     "this has badword in it",
	})
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	if res.Verdict.IsSafe {
		t.Fatal("lexicon hit must flag")
	}
	e, _ := ledger.Get(context.Background(), res.EntryID)
	if !strings.Contains(e.Reason, "badword") {
		t.Fatalf("reason = %q, want the matched term", e.Reason)
	}
}

func TestReport_OpensPendingEntryReferencingContent(t *testing.T) {
	t.Parallel()

	svc, ledger, _, _, jobs := newHarness(highScorer{p: 0}, "owner-1")

	rc, err := svc.Report(context.Background(), domain.ReportArgs{
		ContentType: ledgerdom.ContentBlog,
		ContentID:   "blog-5",
		ReporterID:  "reporter-1",
		AuthorID:    "author-1",
		Reason:      "offensive content",
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	e, _ := ledger.Get(context.Background(), rc.EntryID)
	if e.ReporterID == nil || *e.ReporterID != "reporter-1" {
		t.Fatalf("reporter not recorded: %+v", e)
	}
	if e.ContentID == nil || *e.ContentID != "blog-5" {
		t.Fatalf("report must reference the live content: %+v", e)
	}
	if e.FlaggedByAI {
		t.Fatal("a user report is not an AI flag")
	}
	if e.Snapshot.Kind != ledgerdom.SnapshotNone {
		t.Fatalf("report must not carry a snapshot: %+v", e.Snapshot)
	}
	if len(jobs.enqueued) != 0 {
		t.Fatal("reports go straight to human review, never the worker")
	}
}

func TestSubmitBlog_ValidationRejectsEmptyTitle(t *testing.T) {
	t.Parallel()

	svc, _, _, _, jobs := newHarness(highScorer{p: 0}, "owner-1")

	_, err := svc.SubmitBlog(context.Background(), domain.SubmitBlogArgs{AuthorID: "author-1", Body: "body"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(jobs.enqueued) != 0 {
		t.Fatal("invalid submission must not enqueue")
	}
}
